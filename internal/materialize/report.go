package materialize

import (
	"fmt"
)

// Severity separates best-effort failures from run-aborting ones
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityFatal
)

func (s Severity) String() string {
	if s == SeverityFatal {
		return "fatal"
	}
	return "warning"
}

// Step names a pipeline stage
type Step string

const (
	StepValidate   Step = "validate"
	StepCopy       Step = "copy"
	StepSubstitute Step = "substitute"
	StepCleanup    Step = "cleanup"
	StepVCS        Step = "vcs"
)

// Issue is a single failure recorded during a run
type Issue struct {
	Severity Severity
	Step     Step
	Path     string
	Err      error
}

func (i Issue) String() string {
	if i.Path == "" {
		return fmt.Sprintf("%s: %v", i.Step, i.Err)
	}
	return fmt.Sprintf("%s %s: %v", i.Step, i.Path, i.Err)
}

// Substitution records the replacements made in one file for one token
type Substitution struct {
	Path  string
	Token string
	Count int
}

// Report summarizes what a run changed
type Report struct {
	RunID             string
	ProjectName       string
	PackageIdentifier string
	// PackageDerived is true when the identifier was derived from the name
	PackageDerived bool

	Copied        []string
	Substitutions []Substitution
	// Skipped lists rule selectors that matched no file in the target
	Skipped []string
	Removed []string
	Commit  string

	Issues []Issue
}

// Warnings returns the non-fatal issues
func (r *Report) Warnings() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			out = append(out, issue)
		}
	}
	return out
}

// Replacements returns the total number of token replacements
func (r *Report) Replacements() int {
	total := 0
	for _, s := range r.Substitutions {
		total += s.Count
	}
	return total
}

func (r *Report) warn(step Step, path string, err error) {
	r.Issues = append(r.Issues, Issue{
		Severity: SeverityWarning,
		Step:     step,
		Path:     path,
		Err:      err,
	})
}
