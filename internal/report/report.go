package report

import (
	"fmt"

	"github.com/temirov/checkup/internal/homeaudit"
	"github.com/temirov/checkup/internal/inspect"
)

const (
	invalidInputTemplateConstant        = "invalid report input: %s"
	emptyRootsReasonConstant            = "at least one scan root is required"
	defaultBranchMainNameConstant       = "main"
	defaultBranchMasterNameConstant     = "master"
	unpushedBranchEntryTemplateConstant = "%s, branch %s"
)

// InvalidInputError reports report inputs that cannot be aggregated.
type InvalidInputError struct {
	Reason string
}

func (invalidInput InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputTemplateConstant, invalidInput.Reason)
}

// BuildMetadata carries the scan parameters that accompany the
// aggregated findings in a ScanReport.
type BuildMetadata struct {
	Roots         []string
	HomeDirectory string
	GitCheckRan   bool
	HomeCheckRan  bool
}

// ScanReport aggregates one complete run: repository findings
// partitioned by category plus home audit violations. Records appear
// at most once per category and keep the inspection ordering.
type ScanReport struct {
	Roots             []string
	HomeDirectory     string
	TotalRepositories int
	Dirty             []inspect.RepositoryRecord
	Unpushed          []inspect.RepositoryRecord
	Failed            []inspect.RepositoryRecord
	Violations        []homeaudit.HomeViolation
	GitCheckRan       bool
	HomeCheckRan      bool
}

// Build partitions inspection records and home violations into a
// ScanReport. It performs no I/O.
func Build(records []inspect.RepositoryRecord, violations []homeaudit.HomeViolation, metadata BuildMetadata) (ScanReport, error) {
	if metadata.GitCheckRan && len(metadata.Roots) == 0 {
		return ScanReport{}, InvalidInputError{Reason: emptyRootsReasonConstant}
	}

	scanReport := ScanReport{
		Roots:             metadata.Roots,
		HomeDirectory:     metadata.HomeDirectory,
		TotalRepositories: len(records),
		Violations:        violations,
		GitCheckRan:       metadata.GitCheckRan,
		HomeCheckRan:      metadata.HomeCheckRan,
	}

	for _, record := range records {
		if record.Dirty {
			scanReport.Dirty = append(scanReport.Dirty, record)
		}
		if record.Unpushed {
			scanReport.Unpushed = append(scanReport.Unpushed, record)
		}
		if record.InspectionFailed {
			scanReport.Failed = append(scanReport.Failed, record)
		}
	}

	return scanReport, nil
}

// DirtyCount returns the number of repositories with dirty working trees.
func (scanReport ScanReport) DirtyCount() int {
	return len(scanReport.Dirty)
}

// UnpushedCount returns the number of unpushed entries: one per branch
// with unpushed commits, with the default branch collapsing into the
// repository itself.
func (scanReport ScanReport) UnpushedCount() int {
	return len(scanReport.UnpushedEntries())
}

// UnpushedEntries renders one line per unpushed branch. The default
// branch is listed as the repository path alone; other branches carry
// a branch suffix. A repository flagged unpushed without branch detail
// is listed once by path.
func (scanReport ScanReport) UnpushedEntries() []string {
	entries := []string{}
	for _, record := range scanReport.Unpushed {
		if len(record.UnpushedBranches) == 0 {
			entries = append(entries, record.Path)
			continue
		}
		for _, branchName := range record.UnpushedBranches {
			if branchName == defaultBranchMainNameConstant || branchName == defaultBranchMasterNameConstant {
				entries = append(entries, record.Path)
				continue
			}
			entries = append(entries, fmt.Sprintf(unpushedBranchEntryTemplateConstant, record.Path, branchName))
		}
	}
	return entries
}

// HasFindings reports whether the scan surfaced anything worth acting
// on: dirty or unpushed repositories, inspection failures, or home
// directory violations.
func (scanReport ScanReport) HasFindings() bool {
	return len(scanReport.Dirty) > 0 ||
		len(scanReport.Unpushed) > 0 ||
		len(scanReport.Failed) > 0 ||
		len(scanReport.Violations) > 0
}
