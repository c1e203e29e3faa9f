package checkup_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/checkup/internal/checkup"
	"github.com/temirov/checkup/internal/discovery"
	"github.com/temirov/checkup/internal/homeaudit"
	"github.com/temirov/checkup/internal/inspect"
	"github.com/temirov/checkup/internal/report"
)

const (
	scanRootConstant        = "/home/user"
	dirtyRepositoryConstant = "/home/user/projects/alpha"
	cleanRepositoryConstant = "/home/user/projects/beta"
	homeDirectoryConstant   = "/home/user"
	strayHomeEntryConstant  = "/home/user/tmp_download"
)

type stubDiscoverer struct {
	repositories []string
	failure      error
	requested    [][]string
}

func (discoverer *stubDiscoverer) DiscoverRepositories(repositoryRoots []string) ([]string, error) {
	discoverer.requested = append(discoverer.requested, repositoryRoots)
	return discoverer.repositories, discoverer.failure
}

type stubInspector struct {
	records []inspect.RepositoryRecord
}

func (inspector *stubInspector) InspectRepositories(executionContext context.Context, repositoryPaths []string, progress inspect.ProgressReporter) []inspect.RepositoryRecord {
	return inspector.records
}

type stubAuditor struct {
	violations []homeaudit.HomeViolation
	failure    error
}

func (auditor *stubAuditor) Audit(homeDirectory string, policy homeaudit.Policy) ([]homeaudit.HomeViolation, error) {
	return auditor.violations, auditor.failure
}

type stubMailer struct {
	sentReports []report.ScanReport
	failure     error
}

func (reportMailer *stubMailer) SendReport(executionContext context.Context, scanReport report.ScanReport) error {
	reportMailer.sentReports = append(reportMailer.sentReports, scanReport)
	return reportMailer.failure
}

func dirtyRecord() inspect.RepositoryRecord {
	return inspect.RepositoryRecord{Path: dirtyRepositoryConstant, Dirty: true}
}

func buildService(testInstance *testing.T, discoverer *stubDiscoverer, inspector *stubInspector, auditor *stubAuditor, reportMailer *stubMailer, output *bytes.Buffer) *checkup.Service {
	testInstance.Helper()
	service, serviceError := checkup.NewService(checkup.ServiceDependencies{
		Discoverer: discoverer,
		Inspector:  inspector,
		Auditor:    auditor,
		Mailer:     reportMailer,
		Output:     output,
	})
	require.NoError(testInstance, serviceError)
	return service
}

func defaultOptions(choice checkup.ReportChoice) checkup.CommandOptions {
	return checkup.CommandOptions{
		Roots:            []string{scanRootConstant},
		ReportChoice:     choice,
		GitCheckEnabled:  true,
		HomeCheckEnabled: true,
		HomeDirectory:    homeDirectoryConstant,
		UpstreamPolicy:   inspect.UpstreamPolicySkip,
	}
}

func TestServiceRequiresOutputWriter(testInstance *testing.T) {
	_, serviceError := checkup.NewService(checkup.ServiceDependencies{})
	require.ErrorIs(testInstance, serviceError, checkup.ErrOutputNotConfigured)
}

func TestServicePrintsFindingsWithoutFailing(testInstance *testing.T) {
	output := &bytes.Buffer{}
	discoverer := &stubDiscoverer{repositories: []string{dirtyRepositoryConstant, cleanRepositoryConstant}}
	inspector := &stubInspector{records: []inspect.RepositoryRecord{dirtyRecord(), {Path: cleanRepositoryConstant}}}
	auditor := &stubAuditor{violations: []homeaudit.HomeViolation{{Path: strayHomeEntryConstant, Location: homeaudit.ViolationLocationTopLevel}}}
	reportMailer := &stubMailer{}

	service := buildService(testInstance, discoverer, inspector, auditor, reportMailer, output)
	runError := service.Run(context.Background(), defaultOptions(checkup.ReportChoicePrint))

	require.NoError(testInstance, runError)
	require.Contains(testInstance, output.String(), dirtyRepositoryConstant)
	require.Contains(testInstance, output.String(), strayHomeEntryConstant)
	require.Empty(testInstance, reportMailer.sentReports)
	require.Equal(testInstance, [][]string{{scanRootConstant}}, discoverer.requested)
}

func TestServiceSkipsEmailOnCleanScan(testInstance *testing.T) {
	output := &bytes.Buffer{}
	discoverer := &stubDiscoverer{repositories: []string{cleanRepositoryConstant}}
	inspector := &stubInspector{records: []inspect.RepositoryRecord{{Path: cleanRepositoryConstant}}}
	reportMailer := &stubMailer{}

	service := buildService(testInstance, discoverer, inspector, &stubAuditor{}, reportMailer, output)
	runError := service.Run(context.Background(), defaultOptions(checkup.ReportChoiceEmail))

	require.NoError(testInstance, runError)
	require.Empty(testInstance, reportMailer.sentReports)
}

func TestServiceEmailsFindings(testInstance *testing.T) {
	output := &bytes.Buffer{}
	discoverer := &stubDiscoverer{repositories: []string{dirtyRepositoryConstant}}
	inspector := &stubInspector{records: []inspect.RepositoryRecord{dirtyRecord()}}
	reportMailer := &stubMailer{}

	service := buildService(testInstance, discoverer, inspector, &stubAuditor{}, reportMailer, output)
	runError := service.Run(context.Background(), defaultOptions(checkup.ReportChoiceEmail))

	require.NoError(testInstance, runError)
	require.Len(testInstance, reportMailer.sentReports, 1)
	require.Equal(testInstance, 1, reportMailer.sentReports[0].DirtyCount())
	require.Empty(testInstance, output.String())
}

func TestServiceBothStillPrintsWhenEmailFails(testInstance *testing.T) {
	output := &bytes.Buffer{}
	discoverer := &stubDiscoverer{repositories: []string{dirtyRepositoryConstant}}
	inspector := &stubInspector{records: []inspect.RepositoryRecord{dirtyRecord()}}
	transportFailure := errors.New("connection refused")
	reportMailer := &stubMailer{failure: transportFailure}

	service := buildService(testInstance, discoverer, inspector, &stubAuditor{}, reportMailer, output)
	runError := service.Run(context.Background(), defaultOptions(checkup.ReportChoiceBoth))

	require.Error(testInstance, runError)
	require.ErrorIs(testInstance, runError, transportFailure)
	require.Contains(testInstance, output.String(), dirtyRepositoryConstant)
}

func TestServiceSurfacesSetupFailures(testInstance *testing.T) {
	testCases := []struct {
		name       string
		discoverer *stubDiscoverer
		auditor    *stubAuditor
	}{
		{
			name:       "discovery_failure",
			discoverer: &stubDiscoverer{failure: discovery.InvalidPathError{Path: "/missing"}},
			auditor:    &stubAuditor{},
		},
		{
			name:       "home_audit_failure",
			discoverer: &stubDiscoverer{},
			auditor:    &stubAuditor{failure: homeaudit.InvalidPathError{Path: "/missing"}},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			output := &bytes.Buffer{}
			service := buildService(testInstance, testCase.discoverer, &stubInspector{}, testCase.auditor, &stubMailer{}, output)
			runError := service.Run(context.Background(), defaultOptions(checkup.ReportChoicePrint))
			require.Error(testInstance, runError)
		})
	}
}

func TestServiceRunsAreIdempotent(testInstance *testing.T) {
	discoverer := &stubDiscoverer{repositories: []string{dirtyRepositoryConstant}}
	inspector := &stubInspector{records: []inspect.RepositoryRecord{dirtyRecord()}}

	firstOutput := &bytes.Buffer{}
	firstService := buildService(testInstance, discoverer, inspector, &stubAuditor{}, &stubMailer{}, firstOutput)
	require.NoError(testInstance, firstService.Run(context.Background(), defaultOptions(checkup.ReportChoicePrint)))

	secondOutput := &bytes.Buffer{}
	secondService := buildService(testInstance, discoverer, inspector, &stubAuditor{}, &stubMailer{}, secondOutput)
	require.NoError(testInstance, secondService.Run(context.Background(), defaultOptions(checkup.ReportChoicePrint)))

	require.Equal(testInstance, firstOutput.String(), secondOutput.String())
}
