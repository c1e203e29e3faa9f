package homeaudit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	invalidHomeDirectoryTemplateConstant     = "%s is not an existing directory"
	homeDirectoryReadErrorTemplateConstant   = "failed to read home directory %s: %w"
	auditedDirectoryReadTemplateConstant     = "failed to read audited directory %s: %w"
	unexpectedTopLevelReasonTemplateConstant = "unexpected top-level entry %q"
	unexpectedContentReasonTemplateConstant  = "unexpected entry %q in %s"
	hiddenEntryPrefixConstant                = "."
)

// ViolationLocationTopLevel marks violations found directly in the home
// directory rather than inside an audited subdirectory.
const ViolationLocationTopLevel = "top-level"

// HomeViolation describes a single entry that the policy does not
// allow. Location is ViolationLocationTopLevel or the name of the
// audited subdirectory containing the entry.
type HomeViolation struct {
	Path     string
	Location string
	Reason   string
}

// InvalidPathError reports a home directory that does not exist or is
// not a directory.
type InvalidPathError struct {
	Path string
}

func (invalidPath InvalidPathError) Error() string {
	return fmt.Sprintf(invalidHomeDirectoryTemplateConstant, invalidPath.Path)
}

// Auditor performs shallow policy checks over a home directory.
type Auditor struct{}

// NewAuditor constructs an Auditor.
func NewAuditor() *Auditor {
	return &Auditor{}
}

// Audit walks the top level of homeDirectory and the contents of every
// directory the policy marks for inspection. Hidden entries are never
// reported. The returned violations are ordered deterministically:
// top-level findings first, then audited directories in name order.
func (auditor *Auditor) Audit(homeDirectory string, policy Policy) ([]HomeViolation, error) {
	directoryInfo, statError := os.Stat(homeDirectory)
	if statError != nil || !directoryInfo.IsDir() {
		return nil, InvalidPathError{Path: homeDirectory}
	}

	topLevelEntries, readError := os.ReadDir(homeDirectory)
	if readError != nil {
		return nil, fmt.Errorf(homeDirectoryReadErrorTemplateConstant, homeDirectory, readError)
	}

	allowedTopLevelPatterns := collectTopLevelPatterns(policy)

	violations := []HomeViolation{}
	for _, entry := range topLevelEntries {
		entryName := entry.Name()
		if strings.HasPrefix(entryName, hiddenEntryPrefixConstant) {
			continue
		}
		if matchesAnyPattern(entryName, allowedTopLevelPatterns) {
			continue
		}
		violations = append(violations, HomeViolation{
			Path:     filepath.Join(homeDirectory, entryName),
			Location: ViolationLocationTopLevel,
			Reason:   fmt.Sprintf(unexpectedTopLevelReasonTemplateConstant, entryName),
		})
	}

	for _, auditedDirectoryName := range sortedLookDirectoryNames(policy) {
		directoryViolations, auditError := auditor.auditDirectory(
			homeDirectory,
			auditedDirectoryName,
			policy.Look[auditedDirectoryName],
		)
		if auditError != nil {
			return nil, auditError
		}
		violations = append(violations, directoryViolations...)
	}

	return violations, nil
}

func (auditor *Auditor) auditDirectory(homeDirectory string, directoryName string, allowedPatterns []string) ([]HomeViolation, error) {
	auditedPath := filepath.Join(homeDirectory, directoryName)
	directoryEntries, readError := os.ReadDir(auditedPath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil, nil
		}
		return nil, fmt.Errorf(auditedDirectoryReadTemplateConstant, auditedPath, readError)
	}

	violations := []HomeViolation{}
	for _, entry := range directoryEntries {
		entryName := entry.Name()
		if strings.HasPrefix(entryName, hiddenEntryPrefixConstant) {
			continue
		}
		if matchesAnyPattern(entryName, allowedPatterns) {
			continue
		}
		violations = append(violations, HomeViolation{
			Path:     filepath.Join(auditedPath, entryName),
			Location: directoryName,
			Reason:   fmt.Sprintf(unexpectedContentReasonTemplateConstant, entryName, directoryName),
		})
	}

	return violations, nil
}

func collectTopLevelPatterns(policy Policy) []string {
	patterns := make([]string, 0, len(policy.NoLook)+len(policy.Look))
	patterns = append(patterns, policy.NoLook...)
	for directoryName := range policy.Look {
		patterns = append(patterns, directoryName)
	}
	return patterns
}

func sortedLookDirectoryNames(policy Policy) []string {
	directoryNames := make([]string, 0, len(policy.Look))
	for directoryName := range policy.Look {
		directoryNames = append(directoryNames, directoryName)
	}
	sort.Strings(directoryNames)
	return directoryNames
}

func matchesAnyPattern(entryName string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == entryName {
			return true
		}
		if matched, matchError := filepath.Match(pattern, entryName); matchError == nil && matched {
			return true
		}
	}
	return false
}
