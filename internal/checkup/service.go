package checkup

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/checkup/internal/homeaudit"
	"github.com/temirov/checkup/internal/inspect"
	"github.com/temirov/checkup/internal/report"
)

const (
	discoveryFailedTemplateConstant      = "repository discovery failed: %w"
	homeAuditFailedTemplateConstant      = "home audit failed: %w"
	reportBuildFailedTemplateConstant    = "report assembly failed: %w"
	reportDeliveryFailedTemplateConstant = "report delivery failed: %w"
	mailSkippedLogMessageConstant        = "email skipped: no findings to report"
	mailFailureLogMessageConstant        = "email delivery failed"
	scanSummaryLogMessageConstant        = "scan completed"
	logFieldRepositoryCountConstant      = "repository_count"
	logFieldDirtyCountConstant           = "dirty_count"
	logFieldUnpushedCountConstant        = "unpushed_count"
	logFieldFailureCountConstant         = "failure_count"
	logFieldViolationCountConstant       = "violation_count"
	logFieldErrorConstant                = "error"
	serviceOutputNotConfiguredConstant   = "service output writer must be provided"
)

// ErrOutputNotConfigured indicates NewService received a nil output writer.
var ErrOutputNotConfigured = errors.New(serviceOutputNotConfiguredConstant)

// ServiceDependencies lists the collaborators a Service requires.
type ServiceDependencies struct {
	Logger     *zap.Logger
	Discoverer RepositoryDiscoverer
	Inspector  RepositoryInspector
	Auditor    HomeAuditor
	Mailer     ReportMailer
	Output     io.Writer
}

// Service orchestrates one scan: repository discovery and inspection,
// the home audit, report assembly, and delivery.
type Service struct {
	logger     *zap.Logger
	discoverer RepositoryDiscoverer
	inspector  RepositoryInspector
	auditor    HomeAuditor
	mailer     ReportMailer
	renderer   *report.ConsoleRenderer
	output     io.Writer
}

// NewService wires a Service from its dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Output == nil {
		return nil, ErrOutputNotConfigured
	}

	serviceLogger := dependencies.Logger
	if serviceLogger == nil {
		serviceLogger = zap.NewNop()
	}

	return &Service{
		logger:     serviceLogger,
		discoverer: dependencies.Discoverer,
		inspector:  dependencies.Inspector,
		auditor:    dependencies.Auditor,
		mailer:     dependencies.Mailer,
		renderer:   report.NewConsoleRenderer(),
		output:     dependencies.Output,
	}, nil
}

// Run executes the scan described by options. Findings never produce
// an error; only setup failures and requested-but-failed email
// delivery do.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	records := []inspect.RepositoryRecord{}
	if options.GitCheckEnabled {
		repositoryPaths, discoveryError := service.discoverer.DiscoverRepositories(options.Roots)
		if discoveryError != nil {
			return fmt.Errorf(discoveryFailedTemplateConstant, discoveryError)
		}
		records = service.inspector.InspectRepositories(
			executionContext,
			repositoryPaths,
			service.resolveProgressReporter(options, len(repositoryPaths)),
		)
	}

	violations := []homeaudit.HomeViolation{}
	if options.HomeCheckEnabled {
		auditedViolations, auditError := service.auditor.Audit(options.HomeDirectory, options.HomePolicy)
		if auditError != nil {
			return fmt.Errorf(homeAuditFailedTemplateConstant, auditError)
		}
		violations = auditedViolations
	}

	scanReport, buildError := report.Build(records, violations, report.BuildMetadata{
		Roots:         options.Roots,
		HomeDirectory: options.HomeDirectory,
		GitCheckRan:   options.GitCheckEnabled,
		HomeCheckRan:  options.HomeCheckEnabled,
	})
	if buildError != nil {
		return fmt.Errorf(reportBuildFailedTemplateConstant, buildError)
	}

	service.logger.Info(
		scanSummaryLogMessageConstant,
		zap.Int(logFieldRepositoryCountConstant, scanReport.TotalRepositories),
		zap.Int(logFieldDirtyCountConstant, scanReport.DirtyCount()),
		zap.Int(logFieldUnpushedCountConstant, scanReport.UnpushedCount()),
		zap.Int(logFieldFailureCountConstant, len(scanReport.Failed)),
		zap.Int(logFieldViolationCountConstant, len(scanReport.Violations)),
	)

	return service.dispatch(executionContext, scanReport, options.ReportChoice)
}

func (service *Service) dispatch(executionContext context.Context, scanReport report.ScanReport, choice ReportChoice) error {
	if choice.IncludesPrint() {
		fmt.Fprint(service.output, service.renderer.Render(scanReport))
	}

	if !choice.IncludesEmail() {
		return nil
	}
	if !scanReport.HasFindings() {
		service.logger.Info(mailSkippedLogMessageConstant)
		return nil
	}

	if mailError := service.mailer.SendReport(executionContext, scanReport); mailError != nil {
		service.logger.Error(mailFailureLogMessageConstant, zap.String(logFieldErrorConstant, mailError.Error()))
		return fmt.Errorf(reportDeliveryFailedTemplateConstant, mailError)
	}
	return nil
}

func (service *Service) resolveProgressReporter(options CommandOptions, repositoryCount int) inspect.ProgressReporter {
	if !options.ReportChoice.IncludesPrint() || repositoryCount == 0 {
		return nil
	}
	return inspect.NewConsoleProgressReporter(service.output, repositoryCount)
}
