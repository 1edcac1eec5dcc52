package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Config is everything prettier-master reads from its environment. It is
// loaded once in main and passed explicitly to the services that need it.
type Config struct {
	MasterBranch string   `env:"MASTER_BRANCH,default=master"`
	PrettierCmd  string   `env:"PRETTIER_CMD,default=prettier"`
	Extensions   []string `env:"PRETTIER_EXTENSIONS,default=.js"`
	Language     string   `env:"PRETTIER_MASTER_LANG,default=en"`

	// CI vendor markers. Any non-false value counts as set.
	CI       string `env:"CI"`
	Travis   string `env:"TRAVIS"`
	Circle   string `env:"CIRCLE"`
	CircleCI string `env:"CIRCLECI"`

	GitHub GitHubConfig

	PROnChange     string `env:"PR_ON_CHANGE"`
	PRBranchPrefix string `env:"PR_BRANCH_PREFIX,default=prettier-master/"`
	SkipOwnCommits bool   `env:"SKIP_OWN_COMMITS,default=true"`
	DryRun         string `env:"DRY_RUN"`

	TravisEnv TravisConfig
	CircleEnv CircleConfig

	// Debug and Verbose only come from command line flags.
	Debug   bool
	Verbose bool
}

type GitHubConfig struct {
	User      string `env:"GITHUB_USER"`
	Token     string `env:"GITHUB_TOKEN"`
	UserName  string `env:"GITHUB_USER_NAME,default=prettier-master"`
	UserEmail string `env:"GITHUB_USER_EMAIL,default=prettier-master@no-reply.github.com"`
	Host      string `env:"GITHUB_HOST,default=github.com"`
}

type TravisConfig struct {
	RepoSlug    string `env:"TRAVIS_REPO_SLUG"`
	Branch      string `env:"TRAVIS_BRANCH"`
	PullRequest string `env:"TRAVIS_PULL_REQUEST"`
	CommitRange string `env:"TRAVIS_COMMIT_RANGE"`
}

type CircleConfig struct {
	Branch       string `env:"CIRCLE_BRANCH"`
	PullRequest  string `env:"CI_PULL_REQUEST"`
	PullRequests string `env:"CI_PULL_REQUESTS"`
}

const (
	LangEN = "en"
	LangES = "es"

	defaultMasterBranch   = "master"
	defaultPrettierCmd    = "prettier"
	defaultLang           = LangEN
	defaultUserName       = "prettier-master"
	defaultUserEmail      = "prettier-master@no-reply.github.com"
	defaultGitHubHost     = "github.com"
	defaultPRBranchPrefix = "prettier-master/"
)

// LoadConfig reads the process environment.
func LoadConfig(ctx context.Context) (*Config, error) {
	return Load(ctx, envconfig.OsLookuper())
}

// Load reads the configuration through l, fills blank values with defaults and
// validates the result.
func Load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// applyDefaults covers variables that are exported but empty, which the
// environment decoder leaves blank instead of defaulting.
func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.MasterBranch) == "" {
		c.MasterBranch = defaultMasterBranch
	}
	if strings.TrimSpace(c.PrettierCmd) == "" {
		c.PrettierCmd = defaultPrettierCmd
	}
	if c.Language == "" {
		c.Language = defaultLang
	}
	if c.GitHub.UserName == "" {
		c.GitHub.UserName = defaultUserName
	}
	if c.GitHub.UserEmail == "" {
		c.GitHub.UserEmail = defaultUserEmail
	}
	if c.GitHub.Host == "" {
		c.GitHub.Host = defaultGitHubHost
	}
	if c.PRBranchPrefix == "" {
		c.PRBranchPrefix = defaultPRBranchPrefix
	}

	exts := make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		if ext = strings.TrimSpace(ext); ext != "" {
			exts = append(exts, ext)
		}
	}
	if len(exts) == 0 {
		exts = []string{".js"}
	}
	c.Extensions = exts
}

func (c *Config) Validate() error {
	if strings.ContainsAny(c.MasterBranch, " \t\n") {
		return fmt.Errorf("MASTER_BRANCH %q is not a valid branch name", c.MasterBranch)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	switch c.Language {
	case LangEN, LangES:
	default:
		return fmt.Errorf("unsupported language: %s", c.Language)
	}
	return nil
}

// IsSet reports whether an environment flag is turned on. Empty, "false" and
// "0" are off; everything else is on.
func IsSet(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "false", "0":
		return false
	default:
		return true
	}
}

func (c *Config) IsCI() bool {
	return IsSet(c.CI)
}

func (c *Config) IsTravis() bool {
	return IsSet(c.Travis)
}

func (c *Config) IsCircle() bool {
	return IsSet(c.Circle) || IsSet(c.CircleCI)
}

// PullRequestMode reports whether changes go through a pull request instead
// of a direct push to the master branch.
func (c *Config) PullRequestMode() bool {
	return IsSet(c.PROnChange)
}

func (c *Config) IsDryRun() bool {
	return IsSet(c.DryRun)
}

// HasCredentials reports whether both GITHUB_USER and GITHUB_TOKEN are present.
func (c *Config) HasCredentials() bool {
	return c.GitHub.User != "" && c.GitHub.Token != ""
}
