package checkup

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/checkup/internal/discovery"
	"github.com/temirov/checkup/internal/execshell"
	"github.com/temirov/checkup/internal/gitrepo"
	"github.com/temirov/checkup/internal/homeaudit"
	"github.com/temirov/checkup/internal/inspect"
	"github.com/temirov/checkup/internal/mailer"
	"github.com/temirov/checkup/internal/report"
)

// RepositoryDiscoverer locates git repositories beneath the scan roots.
type RepositoryDiscoverer interface {
	DiscoverRepositories(repositoryRoots []string) ([]string, error)
}

// RepositoryInspector classifies discovered repositories.
type RepositoryInspector interface {
	InspectRepositories(executionContext context.Context, repositoryPaths []string, progress inspect.ProgressReporter) []inspect.RepositoryRecord
}

// HomeAuditor checks a home directory against an allow-list policy.
type HomeAuditor interface {
	Audit(homeDirectory string, policy homeaudit.Policy) ([]homeaudit.HomeViolation, error)
}

// ReportMailer emails a finished scan report.
type ReportMailer interface {
	SendReport(executionContext context.Context, scanReport report.ScanReport) error
}

// ResolveRepositoryDiscoverer returns the provided discoverer or a
// filesystem-backed default honoring the ignored path segments.
func ResolveRepositoryDiscoverer(existing RepositoryDiscoverer, ignoredSegments []string) RepositoryDiscoverer {
	if existing != nil {
		return existing
	}
	return discovery.NewFilesystemRepositoryDiscovererWithIgnoredSegments(ignoredSegments)
}

// ResolveGitExecutor returns the provided executor or constructs a
// shell-backed default.
func ResolveGitExecutor(existing gitrepo.GitExecutor, logger *zap.Logger, observer execshell.CommandEventObserver) (gitrepo.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	if observer != nil {
		return execshell.NewShellExecutorWithObserver(logger, commandRunner, observer)
	}
	return execshell.NewShellExecutor(logger, commandRunner)
}

// ResolveRepositoryInspector returns the provided inspector or builds
// one over a git repository manager.
func ResolveRepositoryInspector(existing RepositoryInspector, executor gitrepo.GitExecutor, upstreamPolicy inspect.UpstreamPolicy) (RepositoryInspector, error) {
	if existing != nil {
		return existing, nil
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(executor)
	if managerError != nil {
		return nil, managerError
	}
	return inspect.NewInspector(repositoryManager, upstreamPolicy), nil
}

// ResolveHomeAuditor returns the provided auditor or a filesystem-backed default.
func ResolveHomeAuditor(existing HomeAuditor) HomeAuditor {
	if existing != nil {
		return existing
	}
	return homeaudit.NewAuditor()
}

// ResolveReportMailer returns the provided mailer or an SMTP-backed default.
func ResolveReportMailer(existing ReportMailer, mailConfiguration MailConfiguration) (ReportMailer, error) {
	if existing != nil {
		return existing, nil
	}
	return mailer.NewMailer(
		mailer.NewSMTPTransport(),
		mailConfiguration.CredentialsDirectory,
		mailConfiguration.SMTPHost,
		mailConfiguration.SMTPPort,
	)
}
