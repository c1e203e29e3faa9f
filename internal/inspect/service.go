package inspect

import (
	"context"

	"github.com/temirov/checkup/internal/gitrepo"
)

// GitStatusManager exposes the repository queries required by the inspector.
type GitStatusManager interface {
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
	HasCommits(executionContext context.Context, repositoryPath string) (bool, error)
	ListTrackedBranches(executionContext context.Context, repositoryPath string) ([]gitrepo.TrackedBranch, error)
	CountUnpushedCommits(executionContext context.Context, repositoryPath string, tracked gitrepo.TrackedBranch) (int, error)
}

// ProgressReporter receives a notification after each repository finishes inspection.
type ProgressReporter interface {
	Increment()
}

// noopProgressReporter discards progress notifications.
type noopProgressReporter struct{}

// Increment implements ProgressReporter for the no-op reporter.
func (noopProgressReporter) Increment() {}

// Inspector coordinates per-repository status queries.
type Inspector struct {
	statusManager  GitStatusManager
	upstreamPolicy UpstreamPolicy
}

// NewInspector constructs an Inspector using the provided status manager and upstream policy.
func NewInspector(statusManager GitStatusManager, upstreamPolicy UpstreamPolicy) *Inspector {
	if len(upstreamPolicy) == 0 {
		upstreamPolicy = UpstreamPolicySkip
	}
	return &Inspector{statusManager: statusManager, upstreamPolicy: upstreamPolicy}
}

// InspectRepository gathers dirty and unpushed status for a single repository.
// Query failures flag the record instead of propagating so one broken
// repository never halts a scan.
func (inspector *Inspector) InspectRepository(executionContext context.Context, repositoryPath string) RepositoryRecord {
	record := RepositoryRecord{Path: repositoryPath}

	cleanWorktree, cleanError := inspector.statusManager.CheckCleanWorktree(executionContext, repositoryPath)
	if cleanError != nil {
		record.InspectionFailed = true
		return record
	}
	record.Dirty = !cleanWorktree

	hasCommits, commitsError := inspector.statusManager.HasCommits(executionContext, repositoryPath)
	if commitsError != nil {
		record.InspectionFailed = true
		return record
	}
	if !hasCommits {
		// A freshly initialized repository has nothing to push.
		return record
	}

	trackedBranches, trackingError := inspector.statusManager.ListTrackedBranches(executionContext, repositoryPath)
	if trackingError != nil {
		record.InspectionFailed = true
		return record
	}

	if len(trackedBranches) == 0 {
		if inspector.upstreamPolicy == UpstreamPolicyUnpushed {
			record.Unpushed = true
		}
		return record
	}

	for _, trackedBranch := range trackedBranches {
		unpushedCount, countError := inspector.statusManager.CountUnpushedCommits(executionContext, repositoryPath, trackedBranch)
		if countError != nil {
			record.InspectionFailed = true
			continue
		}
		if unpushedCount > 0 {
			record.Unpushed = true
			record.UnpushedBranches = append(record.UnpushedBranches, trackedBranch.Branch)
		}
	}

	return record
}

// InspectRepositories inspects every repository in order and preserves the input ordering.
func (inspector *Inspector) InspectRepositories(executionContext context.Context, repositoryPaths []string, progress ProgressReporter) []RepositoryRecord {
	if progress == nil {
		progress = noopProgressReporter{}
	}

	records := make([]RepositoryRecord, 0, len(repositoryPaths))
	for _, repositoryPath := range repositoryPaths {
		records = append(records, inspector.InspectRepository(executionContext, repositoryPath))
		progress.Increment()
	}
	return records
}
