package models

// Outcome is how a run ended. Every outcome except an error exits 0.
type Outcome string

const (
	OutcomeNotMaster         Outcome = "not_master"
	OutcomePullRequest       Outcome = "pull_request"
	OutcomeOwnCommit         Outcome = "own_commit"
	OutcomeNoChanges         Outcome = "no_changes"
	OutcomeNothingToUpdate   Outcome = "nothing_to_update"
	OutcomeDryRun            Outcome = "dry_run"
	OutcomePushed            Outcome = "pushed"
	OutcomePullRequestOpened Outcome = "pull_request_opened"
)

// Skipped reports whether the run stopped before anything was committed.
func (o Outcome) Skipped() bool {
	switch o {
	case OutcomePushed, OutcomePullRequestOpened:
		return false
	default:
		return true
	}
}

type (
	// Result summarizes a completed run.
	Result struct {
		Outcome Outcome
		// Commit is the commit that was inspected, not the one created.
		Commit string
		// Branch is the branch the formatted commit went to.
		Branch string
		// Files are the changed files handed to the formatter.
		Files []string
		// Updated are the files the formatting commit touched.
		Updated []string
		// Changes is the number of working tree entries the formatter left.
		Changes        int
		PullRequestURL string
	}

	// PullRequest is a pull request to open from Head into Base.
	PullRequest struct {
		Title string
		Body  string
		Head  string
		Base  string
	}
)
