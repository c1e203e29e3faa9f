package homeaudit_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/checkup/internal/homeaudit"
)

const (
	allowedDocumentsDirectoryConstant = "Documents"
	allowedProjectsDirectoryConstant  = "Projects"
	downloadsDirectoryConstant        = "Downloads"
	strayTopLevelFileConstant         = "tmp_download"
	strayDownloadFileConstant         = "installer.dmg"
	allowedDownloadFileConstant       = "reading-list.txt"
	missingDirectoryPathConstant      = "/nonexistent/home"
)

func writeEntries(testInstance *testing.T, directoryPath string, directoryNames []string, fileNames []string) {
	testInstance.Helper()
	for _, directoryName := range directoryNames {
		require.NoError(testInstance, os.MkdirAll(filepath.Join(directoryPath, directoryName), 0o755))
	}
	for _, fileName := range fileNames {
		require.NoError(testInstance, os.WriteFile(filepath.Join(directoryPath, fileName), []byte{}, 0o644))
	}
}

func TestAuditorFindsPolicyViolations(testInstance *testing.T) {
	testCases := []struct {
		name               string
		topLevelDirs       []string
		topLevelFiles      []string
		downloadsFiles     []string
		policy             homeaudit.Policy
		expectedViolations int
		expectedLocations  []string
	}{
		{
			name:         "clean_home_produces_no_violations",
			topLevelDirs: []string{allowedDocumentsDirectoryConstant, allowedProjectsDirectoryConstant},
			policy: homeaudit.Policy{
				NoLook: []string{allowedDocumentsDirectoryConstant, allowedProjectsDirectoryConstant},
			},
			expectedViolations: 0,
		},
		{
			name:          "stray_top_level_file_reported",
			topLevelDirs:  []string{allowedDocumentsDirectoryConstant, allowedProjectsDirectoryConstant},
			topLevelFiles: []string{strayTopLevelFileConstant},
			policy: homeaudit.Policy{
				NoLook: []string{allowedDocumentsDirectoryConstant, allowedProjectsDirectoryConstant},
			},
			expectedViolations: 1,
			expectedLocations:  []string{homeaudit.ViolationLocationTopLevel},
		},
		{
			name:           "audited_directory_contents_checked",
			topLevelDirs:   []string{downloadsDirectoryConstant},
			downloadsFiles: []string{allowedDownloadFileConstant, strayDownloadFileConstant},
			policy: homeaudit.Policy{
				Look: map[string][]string{
					downloadsDirectoryConstant: {allowedDownloadFileConstant},
				},
			},
			expectedViolations: 1,
			expectedLocations:  []string{downloadsDirectoryConstant},
		},
		{
			name:          "glob_pattern_allows_matching_entries",
			topLevelDirs:  []string{allowedDocumentsDirectoryConstant},
			topLevelFiles: []string{"backup-2026.tar"},
			policy: homeaudit.Policy{
				NoLook: []string{allowedDocumentsDirectoryConstant, "backup-*.tar"},
			},
			expectedViolations: 0,
		},
		{
			name:          "hidden_entries_never_reported",
			topLevelFiles: []string{".bashrc", ".gitconfig"},
			policy: homeaudit.Policy{
				NoLook: []string{allowedDocumentsDirectoryConstant},
			},
			expectedViolations: 0,
		},
		{
			name:         "look_directory_counts_as_allowed_top_level",
			topLevelDirs: []string{downloadsDirectoryConstant},
			policy: homeaudit.Policy{
				Look: map[string][]string{downloadsDirectoryConstant: {}},
			},
			expectedViolations: 0,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			homeDirectory := testInstance.TempDir()
			writeEntries(testInstance, homeDirectory, testCase.topLevelDirs, testCase.topLevelFiles)
			if len(testCase.downloadsFiles) > 0 {
				writeEntries(
					testInstance,
					filepath.Join(homeDirectory, downloadsDirectoryConstant),
					nil,
					testCase.downloadsFiles,
				)
			}

			auditor := homeaudit.NewAuditor()
			violations, auditError := auditor.Audit(homeDirectory, testCase.policy)
			require.NoError(testInstance, auditError)
			require.Len(testInstance, violations, testCase.expectedViolations)
			for violationIndex, expectedLocation := range testCase.expectedLocations {
				require.Equal(testInstance, expectedLocation, violations[violationIndex].Location)
			}
		})
	}
}

func TestAuditorRejectsMissingHomeDirectory(testInstance *testing.T) {
	auditor := homeaudit.NewAuditor()
	_, auditError := auditor.Audit(missingDirectoryPathConstant, homeaudit.Policy{})
	require.Error(testInstance, auditError)

	var invalidPathError homeaudit.InvalidPathError
	require.ErrorAs(testInstance, auditError, &invalidPathError)
	require.Equal(testInstance, missingDirectoryPathConstant, invalidPathError.Path)
}

func TestAuditorSkipsMissingAuditedDirectory(testInstance *testing.T) {
	homeDirectory := testInstance.TempDir()

	auditor := homeaudit.NewAuditor()
	violations, auditError := auditor.Audit(homeDirectory, homeaudit.Policy{
		Look: map[string][]string{downloadsDirectoryConstant: {}},
	})
	require.NoError(testInstance, auditError)
	require.Empty(testInstance, violations)
}
