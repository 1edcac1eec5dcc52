package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeGit           ErrorType = "GIT"
	TypeFormatter     ErrorType = "FORMATTER"
	TypeVCS           ErrorType = "VCS"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string

	// base is the sentinel this error was derived from, so errors.Is keeps
	// matching after WithError/WithContext/WithSuggestion.
	base *AppError
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if stderr, ok := e.Context["stderr"].(string); ok && stderr != "" {
			msg += fmt.Sprintf(" - %s", stderr)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel e was derived from.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e == t || e.root() == t.root()
}

func (e *AppError) root() *AppError {
	if e.base != nil {
		return e.base
	}
	return e
}

func (e *AppError) clone() *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: e.Suggestion,
		base:       e.root(),
	}
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	c := e.clone()
	c.Err = err
	return c
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	c := e.clone()
	c.Context = ctx
	return c
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	c := e.clone()
	c.Suggestion = suggestion
	return c
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Git errors
var (
	ErrDirtyTree = NewAppError(TypeGit, "`git status` is not clean, aborting", nil).
			WithSuggestion("Commit or stash your changes first: git status")

	ErrGetStatus = NewAppError(TypeGit, "Failed to read working tree status", nil).
			WithSuggestion("Make sure you are in a git repository: git status")

	ErrGetBranch = NewAppError(TypeGit, "Failed to get current branch", nil).
			WithSuggestion("Make sure you are in a git repository: git status")

	ErrGetCommit = NewAppError(TypeGit, "Failed to resolve HEAD commit", nil).
			WithSuggestion("Make sure the repository has at least one commit: git log")

	ErrGetChangedFiles = NewAppError(TypeGit, "Failed to get changed files", nil).
				WithSuggestion("Verify the commit or range exists: git log --oneline")

	ErrGetAuthor = NewAppError(TypeGit, "Failed to read the last commit author", nil)

	ErrGetRepoURL = NewAppError(TypeGit, "Failed to get repository URL", nil).
			WithSuggestion("Add a remote: git remote add origin <url>")

	ErrRepoSlug = NewAppError(TypeGit, "Cannot find repository slug", nil).
			WithSuggestion("Set TRAVIS_REPO_SLUG or point the origin remote at owner/repo")

	ErrConfigureIdentity = NewAppError(TypeGit, "Failed to configure git committer identity", nil)

	ErrConfigureRemote = NewAppError(TypeGit, "Failed to configure the origin remote", nil)

	ErrCheckout = NewAppError(TypeGit, "Failed to check out branch", nil)

	ErrAddFiles = NewAppError(TypeGit, "Failed to stage changes", nil)

	ErrCreateCommit = NewAppError(TypeGit, "Failed to create commit", nil).
			WithSuggestion("Ensure git user is configured:\n   git config --global user.name \"Your Name\"\n   git config --global user.email \"your@email.com\"")

	ErrPush = NewAppError(TypeGit, "Failed to push to remote", nil).
		WithSuggestion("Verify remote is configured and the token can push: git remote -v")
)

// Configuration errors
var (
	ErrMissingCredentials = NewAppError(TypeConfiguration, "GITHUB_USER and GITHUB_TOKEN must be set to commit to the repository", nil)

	ErrTokenMissing = NewAppError(TypeConfiguration, "GITHUB_TOKEN is required to open pull requests", nil).
			WithSuggestion("Generate a token at: https://github.com/settings/tokens and export GITHUB_TOKEN")

	ErrInvalidConfig = NewAppError(TypeConfiguration, "Invalid configuration", nil)

	ErrHealthCheck = NewAppError(TypeConfiguration, "Some health checks failed", nil).
			WithSuggestion("Fix the failed checks above and run prettier-master doctor again")
)

// Formatter errors
var (
	ErrFormatterFailed = NewAppError(TypeFormatter, "Formatter failed", nil)
)

// VCS errors
var (
	ErrCreatePullRequest = NewAppError(TypeVCS, "Failed to create pull request", nil).
				WithSuggestion("Check your GitHub token has 'public_repo' or 'repo' scope")

	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens")

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub token has insufficient permissions", nil).
					WithSuggestion("Token needs 'public_repo' (or 'repo' for private repositories).\nRegenerate at: https://github.com/settings/tokens")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes and rerun the build")

	ErrRepositoryNotFound = NewAppError(TypeVCS, "repository not found", nil).
				WithSuggestion("Check repository slug and access permissions")
)

// Command runner errors
var (
	ErrCommandNotFound = NewAppError(TypeInternal, "Executable not found", nil).
				WithSuggestion("Make sure the executable is installed and on your PATH")

	ErrCommandFailed = NewAppError(TypeInternal, "Command failed", nil)
)
