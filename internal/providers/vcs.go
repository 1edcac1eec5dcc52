package providers

import (
	"github.com/GordyD/prettier-master/internal/config"
	domainErrors "github.com/GordyD/prettier-master/internal/errors"
	"github.com/GordyD/prettier-master/internal/vcs"
	"github.com/GordyD/prettier-master/internal/vcs/github"
)

// NewVCSClient creates the pull request client for the repository identified
// by slug, authenticated with the configured token.
func NewVCSClient(slug string, cfg *config.Config) (vcs.VCSClient, error) {
	if cfg.GitHub.Token == "" {
		return nil, domainErrors.ErrTokenMissing
	}
	client, err := github.NewGitHubClientForSlug(slug, cfg.GitHub.Token, cfg.GitHub.Host)
	if err != nil {
		return nil, err
	}
	return client, nil
}
