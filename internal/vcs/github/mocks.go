package github

import (
	"context"

	"github.com/google/go-github/v84/github"
	"github.com/stretchr/testify/mock"
)

type MockPRService struct {
	mock.Mock
}

func (m *MockPRService) Create(ctx context.Context, owner, repo string, pull *github.NewPullRequest) (*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, pull)
	var resp *github.Response
	if r := args.Get(1); r != nil {
		resp = r.(*github.Response)
	}
	if pr := args.Get(0); pr != nil {
		return pr.(*github.PullRequest), resp, args.Error(2)
	}
	return nil, resp, args.Error(2)
}

func (m *MockPRService) List(ctx context.Context, owner, repo string, opts *github.PullRequestListOptions) ([]*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	var resp *github.Response
	if r := args.Get(1); r != nil {
		resp = r.(*github.Response)
	}
	if prs := args.Get(0); prs != nil {
		return prs.([]*github.PullRequest), resp, args.Error(2)
	}
	return nil, resp, args.Error(2)
}
