package checkup

import (
	"fmt"
	"strings"

	"github.com/temirov/checkup/internal/homeaudit"
	"github.com/temirov/checkup/internal/inspect"
)

const (
	reportChoicePrintStringConstant       = "print"
	reportChoiceEmailStringConstant       = "email"
	reportChoiceBothStringConstant        = "both"
	unknownReportChoiceTemplateConstant   = "unknown report choice %q"
	unknownUpstreamPolicyTemplateConstant = "unknown upstream policy %q"
)

// ReportChoice selects how a finished scan report is delivered.
type ReportChoice string

// Supported report delivery choices.
const (
	ReportChoicePrint ReportChoice = ReportChoice(reportChoicePrintStringConstant)
	ReportChoiceEmail ReportChoice = ReportChoice(reportChoiceEmailStringConstant)
	ReportChoiceBoth  ReportChoice = ReportChoice(reportChoiceBothStringConstant)
)

// ParseReportChoice normalizes a raw choice value. Empty input selects
// printing.
func ParseReportChoice(rawChoice string) (ReportChoice, error) {
	normalizedChoice := strings.ToLower(strings.TrimSpace(rawChoice))
	switch normalizedChoice {
	case "", reportChoicePrintStringConstant:
		return ReportChoicePrint, nil
	case reportChoiceEmailStringConstant:
		return ReportChoiceEmail, nil
	case reportChoiceBothStringConstant:
		return ReportChoiceBoth, nil
	default:
		return ReportChoicePrint, fmt.Errorf(unknownReportChoiceTemplateConstant, rawChoice)
	}
}

// IncludesPrint reports whether the choice writes the report to the console.
func (choice ReportChoice) IncludesPrint() bool {
	return choice == ReportChoicePrint || choice == ReportChoiceBoth
}

// IncludesEmail reports whether the choice emails the report.
func (choice ReportChoice) IncludesEmail() bool {
	return choice == ReportChoiceEmail || choice == ReportChoiceBoth
}

// ParseUpstreamPolicy normalizes a raw upstream policy value. Empty
// input selects the skip policy.
func ParseUpstreamPolicy(rawPolicy string) (inspect.UpstreamPolicy, error) {
	normalizedPolicy := strings.ToLower(strings.TrimSpace(rawPolicy))
	switch normalizedPolicy {
	case "", string(inspect.UpstreamPolicySkip):
		return inspect.UpstreamPolicySkip, nil
	case string(inspect.UpstreamPolicyUnpushed):
		return inspect.UpstreamPolicyUnpushed, nil
	default:
		return inspect.UpstreamPolicySkip, fmt.Errorf(unknownUpstreamPolicyTemplateConstant, rawPolicy)
	}
}

// CommandOptions carries the fully resolved inputs for a single scan.
type CommandOptions struct {
	Roots            []string
	ReportChoice     ReportChoice
	GitCheckEnabled  bool
	HomeCheckEnabled bool
	HomeDirectory    string
	HomePolicy       homeaudit.Policy
	UpstreamPolicy   inspect.UpstreamPolicy
}
