package services

import (
	"context"
	"strings"

	"github.com/GordyD/prettier-master/internal/ci"
	"github.com/GordyD/prettier-master/internal/config"
	domainErrors "github.com/GordyD/prettier-master/internal/errors"
	"github.com/GordyD/prettier-master/internal/git"
	"github.com/GordyD/prettier-master/internal/i18n"
	"github.com/GordyD/prettier-master/internal/logger"
	"github.com/GordyD/prettier-master/internal/models"
	"github.com/GordyD/prettier-master/internal/vcs"
)

// CommitMessagePrefix starts the subject of every commit prettier-master
// creates. A HEAD with this prefix is never formatted again.
const CommitMessagePrefix = "Prettifying of JS for "

const shortHashLen = 7

type GitService interface {
	Status(ctx context.Context) ([]string, error)
	IsClean(ctx context.Context) (bool, error)
	CurrentBranch(ctx context.Context) (string, error)
	HeadCommit(ctx context.Context) (string, error)
	ChangedFiles(ctx context.Context, commit string) ([]string, error)
	ChangedFilesInRange(ctx context.Context, commitRange string) ([]string, error)
	LastCommitAuthor(ctx context.Context) (string, error)
	LastCommitSubject(ctx context.Context) (string, error)
	RepoSlug(ctx context.Context) (string, error)
	ConfigureIdentity(ctx context.Context, name, email string) error
	SetOrigin(ctx context.Context, url string) error
	Checkout(ctx context.Context, branch string) error
	CreateBranch(ctx context.Context, branch string) error
	AddAll(ctx context.Context) error
	Commit(ctx context.Context, message, author string) error
	Push(ctx context.Context, remote, branch string) error
}

type Formatter interface {
	Format(ctx context.Context, files []string) error
}

// VCSClientFactory builds the pull request client once the repository slug
// is known.
type VCSClientFactory func(slug string) (vcs.VCSClient, error)

type PrettifyService struct {
	cfg          *config.Config
	env          ci.Environment
	git          GitService
	formatter    Formatter
	newVCSClient VCSClientFactory
	trans        *i18n.Translations
}

func NewPrettifyService(
	cfg *config.Config,
	gitService GitService,
	formatter Formatter,
	newVCSClient VCSClientFactory,
	trans *i18n.Translations,
) *PrettifyService {
	return &PrettifyService{
		cfg:          cfg,
		env:          ci.Detect(cfg),
		git:          gitService,
		formatter:    formatter,
		newVCSClient: newVCSClient,
		trans:        trans,
	}
}

// Run applies the guard chain, formats the files changed by HEAD and
// publishes the result. Benign stops are reported through Result.Outcome;
// an error always means the run failed.
func (s *PrettifyService) Run(ctx context.Context) (*models.Result, error) {
	ctx = logger.With(ctx, "ci", s.env.String())

	clean, err := s.git.IsClean(ctx)
	if err != nil {
		return nil, err
	}
	if !clean {
		return nil, domainErrors.ErrDirtyTree
	}

	branch, err := s.resolveBranch(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "resolved branch", "branch", branch)

	var slug string
	if s.env.IsCI {
		if slug, err = s.prepareCI(ctx); err != nil {
			return nil, err
		}
		if branch != s.cfg.MasterBranch {
			return &models.Result{Outcome: models.OutcomeNotMaster, Branch: branch}, nil
		}
		if s.env.PullRequest {
			return &models.Result{Outcome: models.OutcomePullRequest, Branch: branch}, nil
		}
	}

	if s.cfg.SkipOwnCommits {
		subject, err := s.git.LastCommitSubject(ctx)
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(subject, CommitMessagePrefix) {
			return &models.Result{Outcome: models.OutcomeOwnCommit, Branch: branch}, nil
		}
	}

	commit, err := s.git.HeadCommit(ctx)
	if err != nil {
		return nil, err
	}
	ctx = logger.With(ctx, "commit", commit)

	files, err := s.changedFiles(ctx, commit)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Info(ctx, "no matching files changed", "extensions", s.cfg.Extensions)
		return &models.Result{Outcome: models.OutcomeNoChanges, Commit: commit, Branch: branch}, nil
	}

	// The pull request client is built before anything touches the tree, so
	// a missing token fails the run instead of leaving a pushed branch behind.
	var client vcs.VCSClient
	if s.cfg.PullRequestMode() && !s.cfg.IsDryRun() {
		if client, err = s.pullRequestClient(ctx, slug); err != nil {
			return nil, err
		}
	}

	if err := s.formatter.Format(ctx, files); err != nil {
		return nil, err
	}

	result := &models.Result{Commit: commit, Branch: branch, Files: files}
	if err := s.publish(ctx, result, client); err != nil {
		return nil, err
	}
	return result, nil
}

// resolveBranch prefers the branch named by the CI vendor, since CI
// checkouts are usually detached.
func (s *PrettifyService) resolveBranch(ctx context.Context) (string, error) {
	if s.env.Branch != "" {
		return s.env.Branch, nil
	}
	return s.git.CurrentBranch(ctx)
}

// prepareCI resolves the repository slug, checks the credentials and points
// origin at an authenticated remote so the push can succeed.
func (s *PrettifyService) prepareCI(ctx context.Context) (string, error) {
	slug, err := s.repoSlug(ctx)
	if err != nil {
		return "", err
	}

	if !s.cfg.HasCredentials() {
		return "", domainErrors.ErrMissingCredentials.
			WithContext("slug", slug).
			WithSuggestion(s.trans.GetMessage("credentials_setup", 0, map[string]interface{}{
				"Slug": slug,
			}))
	}

	if err := s.git.ConfigureIdentity(ctx, s.cfg.GitHub.UserName, s.cfg.GitHub.UserEmail); err != nil {
		return "", err
	}

	remote := git.AuthenticatedRemoteURL(s.cfg.GitHub.Host, s.cfg.GitHub.User, s.cfg.GitHub.Token, slug)
	if err := s.git.SetOrigin(ctx, remote); err != nil {
		return "", err
	}
	return slug, nil
}

func (s *PrettifyService) repoSlug(ctx context.Context) (string, error) {
	if s.env.RepoSlug != "" {
		return s.env.RepoSlug, nil
	}
	return s.git.RepoSlug(ctx)
}

// changedFiles lists the files of commit, or of the CI commit range when one
// is known, that carry one of the configured extensions.
func (s *PrettifyService) changedFiles(ctx context.Context, commit string) ([]string, error) {
	var (
		files []string
		err   error
	)
	if s.env.CommitRange != "" {
		files, err = s.git.ChangedFilesInRange(ctx, s.env.CommitRange)
	} else {
		files, err = s.git.ChangedFiles(ctx, commit)
	}
	if err != nil {
		return nil, err
	}
	return FilterByExtension(files, s.cfg.Extensions), nil
}

// publish commits the formatter's changes and pushes them. client is only
// set in pull request mode.
func (s *PrettifyService) publish(ctx context.Context, result *models.Result, client vcs.VCSClient) error {
	changes, err := s.git.Status(ctx)
	if err != nil {
		return err
	}
	result.Changes = len(changes)
	if result.Changes == 0 {
		result.Outcome = models.OutcomeNothingToUpdate
		return nil
	}

	if s.cfg.IsDryRun() {
		result.Outcome = models.OutcomeDryRun
		result.Updated = FilterByExtension(changes, s.cfg.Extensions)
		return nil
	}

	target := s.cfg.MasterBranch
	if s.cfg.PullRequestMode() {
		target = s.cfg.PRBranchPrefix + shortHash(result.Commit)
		if err := s.git.CreateBranch(ctx, target); err != nil {
			return err
		}
	} else if s.env.IsCI {
		if err := s.git.Checkout(ctx, target); err != nil {
			return err
		}
	}
	result.Branch = target

	author, err := s.git.LastCommitAuthor(ctx)
	if err != nil {
		return err
	}
	if err := s.git.AddAll(ctx); err != nil {
		return err
	}
	message := CommitMessage(result.Commit)
	if err := s.git.Commit(ctx, message, author); err != nil {
		return err
	}

	head, err := s.git.HeadCommit(ctx)
	if err != nil {
		return err
	}
	updated, err := s.git.ChangedFiles(ctx, head)
	if err != nil {
		return err
	}
	result.Updated = FilterByExtension(updated, s.cfg.Extensions)
	logger.Info(ctx, "formatting commit created", "files", len(result.Updated), "branch", target)

	if err := s.git.Push(ctx, git.DefaultRemote, target); err != nil {
		logger.Error(ctx, "push failed", err, "branch", target)
		return err
	}

	if !s.cfg.PullRequestMode() {
		result.Outcome = models.OutcomePushed
		return nil
	}

	url, err := s.openPullRequest(ctx, client, target, result)
	if err != nil {
		return err
	}
	result.Outcome = models.OutcomePullRequestOpened
	result.PullRequestURL = url
	return nil
}

func (s *PrettifyService) pullRequestClient(ctx context.Context, slug string) (vcs.VCSClient, error) {
	if slug == "" {
		var err error
		if slug, err = s.repoSlug(ctx); err != nil {
			return nil, err
		}
	}
	return s.newVCSClient(slug)
}

func (s *PrettifyService) openPullRequest(ctx context.Context, client vcs.VCSClient, head string, result *models.Result) (string, error) {
	return client.CreatePullRequest(ctx, models.PullRequest{
		Title: CommitMessage(result.Commit),
		Body: s.trans.GetMessage("pull_request_body", 0, map[string]interface{}{
			"Commit": result.Commit,
			"Files":  bulletList(result.Updated),
		}),
		Head: head,
		Base: s.cfg.MasterBranch,
	})
}

// CommitMessage is the subject of the formatting commit for commit.
func CommitMessage(commit string) string {
	return CommitMessagePrefix + commit
}

// FilterByExtension keeps the files ending in one of exts, in order.
func FilterByExtension(files, exts []string) []string {
	matched := make([]string, 0, len(files))
	for _, f := range files {
		for _, ext := range exts {
			if strings.HasSuffix(f, ext) {
				matched = append(matched, f)
				break
			}
		}
	}
	return matched
}

func shortHash(commit string) string {
	if len(commit) > shortHashLen {
		return commit[:shortHashLen]
	}
	return commit
}

func bulletList(items []string) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(item)
	}
	return sb.String()
}
