package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	gitSectionHeaderConstant          = "[git-check]"
	homeSectionHeaderConstant         = "[home-check]"
	checkedRootTemplateConstant       = "- Checked at and below %q."
	foundRepositoriesTemplateConstant = "- Found %d git %s."
	repositorySingularWordConstant    = "repository"
	repositoryPluralWordConstant      = "repositories"
	dirtyHeaderTemplateConstant       = "The following repositories (%d) have dirty working trees:"
	unpushedHeaderTemplateConstant    = "The following branches (%d) need to be pushed:"
	failedHeaderTemplateConstant      = "Could not inspect the following repositories (%d):"
	cleanGitMessageConstant           = "All git repositories checked were clean."
	homeProblemsTemplateConstant      = "Home check found %d unexpected %s:"
	homeEntrySingularWordConstant     = "entry"
	homeEntryPluralWordConstant       = "entries"
	cleanHomeMessageConstant          = "Home check passed. Home directory clean!"
	bulletLineTemplateConstant        = "\t - %s"
)

type reportLineKind int

const (
	reportLineHeader reportLineKind = iota
	reportLineDetail
	reportLineProblem
	reportLineBullet
	reportLineClean
	reportLineBlank
)

type reportLine struct {
	kind reportLineKind
	text string
}

// Console styling follows the terminal renderer conventions used
// elsewhere in the tool family.
var (
	consoleHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D97706"))
	consoleProblemStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	consoleBulletStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E8E6E3"))
	consoleCleanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	consoleDetailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// PlainText renders the report as unstyled text suitable for an email
// body. The layout is deterministic for a given report.
func PlainText(scanReport ScanReport) string {
	return joinLines(buildReportLines(scanReport), func(line reportLine) string {
		return line.text
	})
}

// ConsoleRenderer renders reports for interactive terminals.
type ConsoleRenderer struct{}

// NewConsoleRenderer constructs a ConsoleRenderer.
func NewConsoleRenderer() *ConsoleRenderer {
	return &ConsoleRenderer{}
}

// Render produces the styled console representation of the report. The
// line structure matches PlainText exactly.
func (renderer *ConsoleRenderer) Render(scanReport ScanReport) string {
	return joinLines(buildReportLines(scanReport), func(line reportLine) string {
		switch line.kind {
		case reportLineHeader:
			return consoleHeaderStyle.Render(line.text)
		case reportLineProblem:
			return consoleProblemStyle.Render(line.text)
		case reportLineBullet:
			return consoleBulletStyle.Render(line.text)
		case reportLineClean:
			return consoleCleanStyle.Render(line.text)
		case reportLineDetail:
			return consoleDetailStyle.Render(line.text)
		default:
			return line.text
		}
	})
}

func joinLines(lines []reportLine, renderLine func(reportLine) string) string {
	renderedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		renderedLines = append(renderedLines, renderLine(line))
	}
	return strings.Join(renderedLines, "\n") + "\n"
}

func buildReportLines(scanReport ScanReport) []reportLine {
	lines := []reportLine{}
	if scanReport.GitCheckRan {
		lines = append(lines, buildGitSectionLines(scanReport)...)
	}
	if scanReport.HomeCheckRan {
		if len(lines) > 0 {
			lines = append(lines, reportLine{kind: reportLineBlank})
		}
		lines = append(lines, buildHomeSectionLines(scanReport)...)
	}
	return lines
}

func buildGitSectionLines(scanReport ScanReport) []reportLine {
	lines := []reportLine{{kind: reportLineHeader, text: gitSectionHeaderConstant}}
	for _, rootPath := range scanReport.Roots {
		lines = append(lines, reportLine{
			kind: reportLineDetail,
			text: fmt.Sprintf(checkedRootTemplateConstant, rootPath),
		})
	}
	lines = append(lines, reportLine{
		kind: reportLineDetail,
		text: fmt.Sprintf(
			foundRepositoriesTemplateConstant,
			scanReport.TotalRepositories,
			pluralizeCount(scanReport.TotalRepositories, repositorySingularWordConstant, repositoryPluralWordConstant),
		),
	})

	unpushedEntries := scanReport.UnpushedEntries()
	if len(scanReport.Dirty) > 0 {
		lines = append(lines, reportLine{kind: reportLineBlank})
		lines = append(lines, reportLine{
			kind: reportLineProblem,
			text: fmt.Sprintf(dirtyHeaderTemplateConstant, len(scanReport.Dirty)),
		})
		for _, record := range scanReport.Dirty {
			lines = append(lines, bulletLine(record.Path))
		}
	}
	if len(unpushedEntries) > 0 {
		lines = append(lines, reportLine{kind: reportLineBlank})
		lines = append(lines, reportLine{
			kind: reportLineProblem,
			text: fmt.Sprintf(unpushedHeaderTemplateConstant, len(unpushedEntries)),
		})
		for _, unpushedEntry := range unpushedEntries {
			lines = append(lines, bulletLine(unpushedEntry))
		}
	}
	if len(scanReport.Failed) > 0 {
		lines = append(lines, reportLine{kind: reportLineBlank})
		lines = append(lines, reportLine{
			kind: reportLineProblem,
			text: fmt.Sprintf(failedHeaderTemplateConstant, len(scanReport.Failed)),
		})
		for _, record := range scanReport.Failed {
			lines = append(lines, bulletLine(record.Path))
		}
	}
	if len(scanReport.Dirty) == 0 && len(unpushedEntries) == 0 && len(scanReport.Failed) == 0 {
		lines = append(lines, reportLine{kind: reportLineBlank})
		lines = append(lines, reportLine{kind: reportLineClean, text: cleanGitMessageConstant})
	}

	return lines
}

func buildHomeSectionLines(scanReport ScanReport) []reportLine {
	lines := []reportLine{{kind: reportLineHeader, text: homeSectionHeaderConstant}}
	if len(scanReport.Violations) == 0 {
		lines = append(lines, reportLine{kind: reportLineClean, text: cleanHomeMessageConstant})
		return lines
	}

	lines = append(lines, reportLine{
		kind: reportLineProblem,
		text: fmt.Sprintf(
			homeProblemsTemplateConstant,
			len(scanReport.Violations),
			pluralizeCount(len(scanReport.Violations), homeEntrySingularWordConstant, homeEntryPluralWordConstant),
		),
	})
	for _, violation := range scanReport.Violations {
		lines = append(lines, bulletLine(violation.Path))
	}
	return lines
}

func bulletLine(text string) reportLine {
	return reportLine{kind: reportLineBullet, text: fmt.Sprintf(bulletLineTemplateConstant, text)}
}

func pluralizeCount(count int, singularWord string, pluralWord string) string {
	if count == 1 {
		return singularWord
	}
	return pluralWord
}
