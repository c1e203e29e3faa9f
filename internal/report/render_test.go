package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/checkup/internal/homeaudit"
	"github.com/temirov/checkup/internal/inspect"
	"github.com/temirov/checkup/internal/report"
)

func TestPlainTextLayout(testInstance *testing.T) {
	testCases := []struct {
		name             string
		scanReport       report.ScanReport
		expectedContent  []string
		forbiddenContent []string
	}{
		{
			name: "clean_run_reports_success",
			scanReport: report.ScanReport{
				Roots:             []string{scanRootPathConstant},
				TotalRepositories: 2,
				GitCheckRan:       true,
				HomeCheckRan:      true,
			},
			expectedContent: []string{
				"[git-check]",
				"- Checked at and below \"/home/user\".",
				"- Found 2 git repositories.",
				"All git repositories checked were clean.",
				"[home-check]",
				"Home check passed. Home directory clean!",
			},
			forbiddenContent: []string{"dirty", "need to be pushed"},
		},
		{
			name: "findings_render_bulleted_sections",
			scanReport: report.ScanReport{
				Roots:             []string{scanRootPathConstant},
				TotalRepositories: 3,
				Dirty:             []inspect.RepositoryRecord{{Path: firstRepositoryPathConstant, Dirty: true}},
				Unpushed: []inspect.RepositoryRecord{
					{Path: secondRepositoryPathConstant, Unpushed: true, UnpushedBranches: []string{"feature"}},
				},
				Failed:       []inspect.RepositoryRecord{{Path: thirdRepositoryPathConstant, InspectionFailed: true}},
				GitCheckRan:  true,
				HomeCheckRan: true,
				Violations: []homeaudit.HomeViolation{
					{Path: "/home/user/tmp_download", Location: homeaudit.ViolationLocationTopLevel},
				},
			},
			expectedContent: []string{
				"The following repositories (1) have dirty working trees:",
				"\t - " + firstRepositoryPathConstant,
				"The following branches (1) need to be pushed:",
				"\t - " + secondRepositoryPathConstant + ", branch feature",
				"Could not inspect the following repositories (1):",
				"\t - " + thirdRepositoryPathConstant,
				"Home check found 1 unexpected entry:",
				"\t - /home/user/tmp_download",
			},
			forbiddenContent: []string{"All git repositories checked were clean."},
		},
		{
			name: "single_repository_uses_singular_noun",
			scanReport: report.ScanReport{
				Roots:             []string{scanRootPathConstant},
				TotalRepositories: 1,
				GitCheckRan:       true,
			},
			expectedContent:  []string{"- Found 1 git repository."},
			forbiddenContent: []string{"[home-check]"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			renderedText := report.PlainText(testCase.scanReport)
			for _, expectedFragment := range testCase.expectedContent {
				require.Contains(testInstance, renderedText, expectedFragment)
			}
			for _, forbiddenFragment := range testCase.forbiddenContent {
				require.NotContains(testInstance, renderedText, forbiddenFragment)
			}
		})
	}
}

func TestPlainTextIsDeterministic(testInstance *testing.T) {
	scanReport := report.ScanReport{
		Roots:             []string{scanRootPathConstant},
		TotalRepositories: 1,
		Dirty:             []inspect.RepositoryRecord{{Path: firstRepositoryPathConstant, Dirty: true}},
		GitCheckRan:       true,
	}
	require.Equal(testInstance, report.PlainText(scanReport), report.PlainText(scanReport))
}

func TestConsoleRendererPreservesLineStructure(testInstance *testing.T) {
	scanReport := report.ScanReport{
		Roots:             []string{scanRootPathConstant},
		TotalRepositories: 1,
		Dirty:             []inspect.RepositoryRecord{{Path: firstRepositoryPathConstant, Dirty: true}},
		GitCheckRan:       true,
	}

	plainLineCount := strings.Count(report.PlainText(scanReport), "\n")
	consoleLineCount := strings.Count(report.NewConsoleRenderer().Render(scanReport), "\n")
	require.Equal(testInstance, plainLineCount, consoleLineCount)
}
