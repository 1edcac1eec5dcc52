package vcs

import (
	"context"

	"github.com/GordyD/prettier-master/internal/models"
)

// VCSClient is the part of a hosting provider's API prettier-master needs.
type VCSClient interface {
	// CreatePullRequest opens pr, or returns the already open pull request
	// with the same head, and reports its web URL.
	CreatePullRequest(ctx context.Context, pr models.PullRequest) (string, error)
}
