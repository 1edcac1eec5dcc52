package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/GordyD/prettier-master/internal/models"
)

type (
	MockGitService struct {
		mock.Mock
	}

	MockFormatter struct {
		mock.Mock
	}

	MockVCSClient struct {
		mock.Mock
	}
)

func (m *MockGitService) Status(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if files := args.Get(0); files != nil {
		return files.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGitService) IsClean(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockGitService) CurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) HeadCommit(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) ChangedFiles(ctx context.Context, commit string) ([]string, error) {
	args := m.Called(ctx, commit)
	if files := args.Get(0); files != nil {
		return files.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGitService) ChangedFilesInRange(ctx context.Context, commitRange string) ([]string, error) {
	args := m.Called(ctx, commitRange)
	if files := args.Get(0); files != nil {
		return files.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGitService) LastCommitAuthor(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) LastCommitSubject(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) RepoSlug(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) ConfigureIdentity(ctx context.Context, name, email string) error {
	args := m.Called(ctx, name, email)
	return args.Error(0)
}

func (m *MockGitService) SetOrigin(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *MockGitService) Checkout(ctx context.Context, branch string) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockGitService) CreateBranch(ctx context.Context, branch string) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockGitService) AddAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGitService) Commit(ctx context.Context, message, author string) error {
	args := m.Called(ctx, message, author)
	return args.Error(0)
}

func (m *MockGitService) Push(ctx context.Context, remote, branch string) error {
	args := m.Called(ctx, remote, branch)
	return args.Error(0)
}

func (m *MockFormatter) Format(ctx context.Context, files []string) error {
	args := m.Called(ctx, files)
	return args.Error(0)
}

func (m *MockVCSClient) CreatePullRequest(ctx context.Context, pr models.PullRequest) (string, error) {
	args := m.Called(ctx, pr)
	return args.String(0), args.Error(1)
}
