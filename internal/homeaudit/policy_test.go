package homeaudit_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/checkup/internal/homeaudit"
)

const (
	policyFileNameConstant     = "home-policy.yaml"
	yamlPolicyDocumentConstant = `nolook:
  - Documents
  - Projects
look:
  Downloads:
    - reading-list.txt
`
	nestedYAMLPolicyDocumentConstant = `home:
  nolook:
    - Documents
`
	jsonPolicyDocumentConstant        = `{"nolook": ["Documents"], "look": {"Downloads": []}}`
	invalidGlobPolicyDocumentConstant = `nolook:
  - "[unterminated"
`
)

func writePolicyFile(testInstance *testing.T, document string) string {
	testInstance.Helper()
	policyPath := filepath.Join(testInstance.TempDir(), policyFileNameConstant)
	require.NoError(testInstance, os.WriteFile(policyPath, []byte(document), 0o644))
	return policyPath
}

func TestLoadPolicyParsesSupportedDocuments(testInstance *testing.T) {
	testCases := []struct {
		name           string
		document       string
		expectedNoLook []string
		expectedLook   map[string][]string
	}{
		{
			name:           "yaml_document",
			document:       yamlPolicyDocumentConstant,
			expectedNoLook: []string{"Documents", "Projects"},
			expectedLook:   map[string][]string{"Downloads": {"reading-list.txt"}},
		},
		{
			name:           "nested_home_key",
			document:       nestedYAMLPolicyDocumentConstant,
			expectedNoLook: []string{"Documents"},
		},
		{
			name:           "json_document",
			document:       jsonPolicyDocumentConstant,
			expectedNoLook: []string{"Documents"},
			expectedLook:   map[string][]string{"Downloads": {}},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			policyPath := writePolicyFile(testInstance, testCase.document)
			policy, loadError := homeaudit.LoadPolicy(policyPath)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedNoLook, policy.NoLook)
			if testCase.expectedLook != nil {
				require.Equal(testInstance, testCase.expectedLook, policy.Look)
			}
		})
	}
}

func TestLoadPolicyValidation(testInstance *testing.T) {
	testCases := []struct {
		name    string
		prepare func(testInstance *testing.T) string
	}{
		{
			name: "empty_path",
			prepare: func(testInstance *testing.T) string {
				return "   "
			},
		},
		{
			name: "missing_file",
			prepare: func(testInstance *testing.T) string {
				return filepath.Join(testInstance.TempDir(), policyFileNameConstant)
			},
		},
		{
			name: "empty_policy",
			prepare: func(testInstance *testing.T) string {
				return writePolicyFile(testInstance, "{}")
			},
		},
		{
			name: "invalid_glob_pattern",
			prepare: func(testInstance *testing.T) string {
				return writePolicyFile(testInstance, invalidGlobPolicyDocumentConstant)
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			policyPath := testCase.prepare(testInstance)
			_, loadError := homeaudit.LoadPolicy(policyPath)
			require.Error(testInstance, loadError)
		})
	}
}
