package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"

	domainErrors "github.com/GordyD/prettier-master/internal/errors"
	"github.com/GordyD/prettier-master/internal/logger"
	"github.com/GordyD/prettier-master/internal/runner"
)

const (
	DefaultRemote = "origin"
	gitBinary     = "git"
)

type GitService struct {
	runner runner.Runner
}

func NewGitService(r runner.Runner) *GitService {
	return &GitService{runner: r}
}

func (s *GitService) run(ctx context.Context, args ...string) (string, error) {
	return s.runner.Run(ctx, runner.New(gitBinary, args...))
}

// Status returns the paths reported by `git status --porcelain -z`, one per
// changed entry. Renames and copies report their destination path.
//
// With -z each entry is "XY path" terminated by NUL and paths are never
// quoted. A rename or copy is followed by one more field holding the source.
func (s *GitService) Status(ctx context.Context) ([]string, error) {
	output, err := s.run(ctx, "status", "--porcelain", "-z")
	if err != nil {
		return nil, domainErrors.ErrGetStatus.WithError(err)
	}

	changes := make([]string, 0)
	fields := strings.Split(output, "\x00")
	for i := 0; i < len(fields); i++ {
		entry := fields[i]
		if len(entry) <= 3 {
			continue
		}
		if strings.ContainsAny(entry[:2], "RC") {
			i++
		}
		changes = append(changes, entry[3:])
	}
	return changes, nil
}

func (s *GitService) IsClean(ctx context.Context) (bool, error) {
	changes, err := s.Status(ctx)
	if err != nil {
		return false, err
	}
	return len(changes) == 0, nil
}

func (s *GitService) CurrentBranch(ctx context.Context) (string, error) {
	output, err := s.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", domainErrors.ErrGetBranch.WithError(err)
	}
	return strings.TrimSpace(output), nil
}

func (s *GitService) HeadCommit(ctx context.Context) (string, error) {
	output, err := s.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", domainErrors.ErrGetCommit.WithError(err)
	}
	hash := strings.TrimSpace(output)
	if hash == "" {
		return "", domainErrors.ErrGetCommit
	}
	return hash, nil
}

// ChangedFiles lists the files touched by commit relative to its parent. A
// root commit lists every file it adds.
func (s *GitService) ChangedFiles(ctx context.Context, commit string) ([]string, error) {
	output, err := s.run(ctx, "diff-tree", "-z", "--no-commit-id", "--name-only", "-r", "--root", commit)
	if err != nil {
		return nil, domainErrors.ErrGetChangedFiles.WithError(err).WithContext("commit", commit)
	}
	return splitPaths(output), nil
}

// ChangedFilesInRange lists the files changed across a commit range such as
// "abc123...def456".
func (s *GitService) ChangedFilesInRange(ctx context.Context, commitRange string) ([]string, error) {
	output, err := s.run(ctx, "diff", "-z", "--name-only", commitRange)
	if err != nil {
		return nil, domainErrors.ErrGetChangedFiles.WithError(err).WithContext("range", commitRange)
	}
	return splitPaths(output), nil
}

// LastCommitAuthor returns "Name <email>" of HEAD, suitable for --author.
func (s *GitService) LastCommitAuthor(ctx context.Context) (string, error) {
	output, err := s.run(ctx, "log", "-1", "--format=%an <%ae>")
	if err != nil {
		return "", domainErrors.ErrGetAuthor.WithError(err)
	}
	return strings.TrimSpace(output), nil
}

func (s *GitService) LastCommitSubject(ctx context.Context) (string, error) {
	output, err := s.run(ctx, "log", "-1", "--format=%s")
	if err != nil {
		return "", domainErrors.ErrGetCommit.WithError(err)
	}
	return strings.TrimSpace(output), nil
}

func (s *GitService) RemoteURL(ctx context.Context, remote string) (string, error) {
	output, err := s.run(ctx, "remote", "get-url", remote)
	if err != nil {
		return "", domainErrors.ErrGetRepoURL.WithError(err).WithContext("remote", remote)
	}
	return strings.TrimSpace(output), nil
}

// RepoSlug returns "owner/repo" for the origin remote.
func (s *GitService) RepoSlug(ctx context.Context) (string, error) {
	url, err := s.RemoteURL(ctx, DefaultRemote)
	if err != nil {
		return "", domainErrors.ErrRepoSlug.WithError(err)
	}
	return ParseRepoSlug(url)
}

// ConfigureIdentity sets the global committer name and email.
func (s *GitService) ConfigureIdentity(ctx context.Context, name, email string) error {
	if _, err := s.run(ctx, "config", "--global", "user.name", name); err != nil {
		return domainErrors.ErrConfigureIdentity.WithError(err).WithContext("key", "user.name")
	}
	if _, err := s.run(ctx, "config", "--global", "user.email", email); err != nil {
		return domainErrors.ErrConfigureIdentity.WithError(err).WithContext("key", "user.email")
	}
	return nil
}

// SetOrigin points the origin remote at url. The url usually embeds
// credentials, so the add command runs as a secret.
func (s *GitService) SetOrigin(ctx context.Context, url string) error {
	if _, err := s.run(ctx, "remote", "remove", DefaultRemote); err != nil {
		logger.Warn(ctx, "could not remove origin remote, adding it anyway", "error", err)
	}
	if _, err := s.runner.Run(ctx, runner.NewSecret(gitBinary, "remote", "add", DefaultRemote, url)); err != nil {
		return domainErrors.ErrConfigureRemote.WithError(err)
	}
	return nil
}

func (s *GitService) Checkout(ctx context.Context, branch string) error {
	if _, err := s.run(ctx, "checkout", branch); err != nil {
		return domainErrors.ErrCheckout.WithError(err).WithContext("branch", branch)
	}
	return nil
}

// CreateBranch creates branch at HEAD and switches to it.
func (s *GitService) CreateBranch(ctx context.Context, branch string) error {
	if _, err := s.run(ctx, "checkout", "-b", branch); err != nil {
		return domainErrors.ErrCheckout.WithError(err).WithContext("branch", branch)
	}
	return nil
}

func (s *GitService) AddAll(ctx context.Context) error {
	if _, err := s.run(ctx, "add", "--all"); err != nil {
		return domainErrors.ErrAddFiles.WithError(err)
	}
	return nil
}

// Commit records the staged changes. A non-empty author is passed through
// as --author so the commit keeps the original attribution.
func (s *GitService) Commit(ctx context.Context, message, author string) error {
	args := []string{"commit", "-m", message}
	if author != "" {
		args = append(args, "--author="+author)
	}
	if _, err := s.run(ctx, args...); err != nil {
		return domainErrors.ErrCreateCommit.WithError(err)
	}
	return nil
}

func (s *GitService) Push(ctx context.Context, remote, branch string) error {
	if _, err := s.run(ctx, "push", remote, branch); err != nil {
		return domainErrors.ErrPush.WithError(err).
			WithContext("remote", remote).
			WithContext("branch", branch)
	}
	return nil
}

// Version returns the output of `git --version`.
func (s *GitService) Version(ctx context.Context) (string, error) {
	output, err := s.run(ctx, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// RepoRoot returns the absolute path of the working tree root.
func (s *GitService) RepoRoot(ctx context.Context) (string, error) {
	output, err := s.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// ParseRepoSlug extracts "owner/repo" from a remote URL in any form git
// accepts: scp-like (git@host:owner/repo.git), ssh://, https:// or git://.
func ParseRepoSlug(remoteURL string) (string, error) {
	ep, err := transport.NewEndpoint(strings.TrimSpace(remoteURL))
	if err != nil {
		return "", domainErrors.ErrRepoSlug.WithError(err)
	}
	if ep.Protocol == "file" {
		return "", domainErrors.ErrRepoSlug.WithError(fmt.Errorf("remote is a local path"))
	}

	slug := strings.TrimSuffix(strings.Trim(ep.Path, "/"), ".git")
	if !strings.Contains(slug, "/") || strings.HasPrefix(slug, "/") {
		return "", domainErrors.ErrRepoSlug.WithError(fmt.Errorf("remote path %q is not owner/repo", ep.Path))
	}
	return slug, nil
}

// AuthenticatedRemoteURL builds the https remote used to push from CI.
func AuthenticatedRemoteURL(host, user, token, slug string) string {
	return fmt.Sprintf("https://%s:%s@%s/%s", user, token, host, slug)
}

// splitPaths splits NUL terminated -z output. Paths are kept verbatim, so
// spaces and non-ASCII names survive.
func splitPaths(output string) []string {
	files := make([]string, 0)
	for _, path := range strings.Split(output, "\x00") {
		if path != "" {
			files = append(files, path)
		}
	}
	return files
}
