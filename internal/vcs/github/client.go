package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v84/github"
	"golang.org/x/oauth2"

	domainErrors "github.com/GordyD/prettier-master/internal/errors"
	"github.com/GordyD/prettier-master/internal/logger"
	"github.com/GordyD/prettier-master/internal/models"
	"github.com/GordyD/prettier-master/internal/vcs"
)

var _ vcs.VCSClient = (*GitHubClient)(nil)

const publicHost = "github.com"

type PullRequestsService interface {
	Create(ctx context.Context, owner, repo string, pull *github.NewPullRequest) (*github.PullRequest, *github.Response, error)
	List(ctx context.Context, owner, repo string, opts *github.PullRequestListOptions) ([]*github.PullRequest, *github.Response, error)
}

type GitHubClient struct {
	prService PullRequestsService
	owner     string
	repo      string
}

// NewGitHubClient authenticates with token against host. Hosts other than
// github.com are treated as GitHub Enterprise installations.
func NewGitHubClient(owner, repo, token, host string) (*GitHubClient, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if host != "" && host != publicHost {
		var err error
		client, err = client.WithEnterpriseURLs(
			fmt.Sprintf("https://%s/api/v3/", host),
			fmt.Sprintf("https://%s/api/uploads/", host),
		)
		if err != nil {
			return nil, domainErrors.ErrInvalidConfig.
				WithError(err).
				WithContext("host", host)
		}
	}

	return NewGitHubClientWithServices(client.PullRequests, owner, repo), nil
}

func NewGitHubClientWithServices(prService PullRequestsService, owner, repo string) *GitHubClient {
	return &GitHubClient{
		prService: prService,
		owner:     owner,
		repo:      repo,
	}
}

// NewGitHubClientForSlug is NewGitHubClient for an "owner/repo" slug.
func NewGitHubClientForSlug(slug, token, host string) (*GitHubClient, error) {
	owner, repo, ok := strings.Cut(slug, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, domainErrors.ErrRepoSlug.WithContext("slug", slug)
	}
	return NewGitHubClient(owner, repo, token, host)
}

func (ghc *GitHubClient) CreatePullRequest(ctx context.Context, pr models.PullRequest) (string, error) {
	url, ok, err := ghc.findOpenPullRequest(ctx, pr.Head, pr.Base)
	if err != nil {
		return "", err
	}
	if ok {
		logger.Info(ctx, "reusing open pull request", "head", pr.Head, "url", url)
		return url, nil
	}

	created, resp, err := ghc.prService.Create(ctx, ghc.owner, ghc.repo, &github.NewPullRequest{
		Title: github.Ptr(pr.Title),
		Head:  github.Ptr(pr.Head),
		Base:  github.Ptr(pr.Base),
		Body:  github.Ptr(pr.Body),
	})
	if err != nil {
		// A concurrent build may have opened it between the lookup and now.
		if resp != nil && resp.Response != nil && resp.StatusCode == http.StatusUnprocessableEntity {
			if url, ok, findErr := ghc.findOpenPullRequest(ctx, pr.Head, pr.Base); findErr == nil && ok {
				return url, nil
			}
		}
		return "", ghc.mapError(resp, err, domainErrors.ErrCreatePullRequest).
			WithContext("head", pr.Head).
			WithContext("base", pr.Base)
	}

	logger.Info(ctx, "pull request created", "number", created.GetNumber(), "url", created.GetHTMLURL())
	return created.GetHTMLURL(), nil
}

func (ghc *GitHubClient) findOpenPullRequest(ctx context.Context, head, base string) (string, bool, error) {
	prs, resp, err := ghc.prService.List(ctx, ghc.owner, ghc.repo, &github.PullRequestListOptions{
		State: "open",
		Head:  ghc.owner + ":" + head,
		Base:  base,
	})
	if err != nil {
		return "", false, ghc.mapError(resp, err, domainErrors.ErrCreatePullRequest)
	}
	for _, pr := range prs {
		if pr.GetHead().GetRef() == head {
			return pr.GetHTMLURL(), true, nil
		}
	}
	return "", false, nil
}

// mapError turns an API failure into the most specific domain error,
// falling back to fallback.
func (ghc *GitHubClient) mapError(resp *github.Response, err error, fallback *domainErrors.AppError) *domainErrors.AppError {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return domainErrors.ErrGitHubRateLimit.WithError(err)
	}

	if resp != nil && resp.Response != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrGitHubTokenInvalid.WithError(err)
		case http.StatusForbidden:
			return domainErrors.ErrGitHubInsufficientPerms.WithError(err)
		case http.StatusNotFound:
			return domainErrors.ErrRepositoryNotFound.
				WithError(err).
				WithContext("repo", ghc.owner+"/"+ghc.repo)
		case http.StatusTooManyRequests:
			return domainErrors.ErrGitHubRateLimit.WithError(err)
		}
		return fallback.WithError(err).WithContext("status_code", resp.StatusCode)
	}

	return fallback.WithError(err)
}
