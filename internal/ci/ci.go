// Package ci describes the continuous-integration environment a run happens
// in, as seen through the loaded configuration.
package ci

import (
	"strings"

	"github.com/GordyD/prettier-master/internal/config"
)

type Vendor string

const (
	VendorNone    Vendor = ""
	VendorTravis  Vendor = "travis"
	VendorCircle  Vendor = "circle"
	VendorGeneric Vendor = "generic"
)

// Environment holds the facts the CI vendor hands us through its variables.
// Empty fields mean the vendor did not provide them and git must be asked.
type Environment struct {
	IsCI        bool
	Vendor      Vendor
	Branch      string
	RepoSlug    string
	PullRequest bool
	CommitRange string
}

// Detect derives the environment from cfg. Vendor specific values are only
// trusted when that vendor's marker variable is set.
func Detect(cfg *config.Config) Environment {
	env := Environment{IsCI: cfg.IsCI()}

	switch {
	case cfg.IsTravis():
		env.Vendor = VendorTravis
		env.Branch = strings.TrimSpace(cfg.TravisEnv.Branch)
		env.RepoSlug = strings.TrimSpace(cfg.TravisEnv.RepoSlug)
		env.CommitRange = strings.TrimSpace(cfg.TravisEnv.CommitRange)
	case cfg.IsCircle():
		env.Vendor = VendorCircle
		env.Branch = strings.TrimSpace(cfg.CircleEnv.Branch)
	case env.IsCI:
		env.Vendor = VendorGeneric
	}

	env.PullRequest = isPullRequest(cfg)
	return env
}

// isPullRequest checks every vendor's pull request variables. Travis sets
// TRAVIS_PULL_REQUEST to "false" on push builds; Circle only sets its
// variables on pull request builds.
func isPullRequest(cfg *config.Config) bool {
	return config.IsSet(cfg.TravisEnv.PullRequest) ||
		strings.TrimSpace(cfg.CircleEnv.PullRequest) != "" ||
		strings.TrimSpace(cfg.CircleEnv.PullRequests) != ""
}

func (e Environment) String() string {
	if !e.IsCI {
		return "local"
	}
	if e.Vendor == VendorGeneric {
		return "ci"
	}
	return string(e.Vendor)
}
