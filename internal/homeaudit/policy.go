package homeaudit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	policyLoadErrorTemplateConstant      = "failed to load home policy: %w"
	policyParseErrorTemplateConstant     = "failed to parse home policy: %w"
	policyPathRequiredMessageConstant    = "home policy path must be provided"
	policyEmptyMessageConstant           = "home policy must define at least one allowed entry"
	policyInvalidPatternTemplateConstant = "home policy pattern %q is not a valid glob"
	policyPatternProbeNameConstant       = "probe"
)

// Policy lists the entries allowed to live directly in the home
// directory. Entries named by NoLook are accepted without inspection,
// while directories named by Look are accepted and their contents
// audited against the associated allow list. Patterns are matched as
// exact names first and as filepath.Match globs otherwise.
type Policy struct {
	NoLook []string            `yaml:"nolook" json:"nolook"`
	Look   map[string][]string `yaml:"look" json:"look"`
}

// LoadPolicy reads a standalone policy definition from disk. The file
// may be YAML or JSON, either at the document root or nested under a
// top-level "home" key.
func LoadPolicy(filePath string) (Policy, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Policy{}, errors.New(policyPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Policy{}, fmt.Errorf(policyLoadErrorTemplateConstant, readError)
	}

	var policy Policy
	if unmarshalError := yaml.Unmarshal(contentBytes, &policy); unmarshalError != nil {
		return Policy{}, fmt.Errorf(policyParseErrorTemplateConstant, unmarshalError)
	}

	if len(policy.NoLook) == 0 && len(policy.Look) == 0 {
		var wrapper struct {
			Home Policy `yaml:"home" json:"home"`
		}
		if nestedError := yaml.Unmarshal(contentBytes, &wrapper); nestedError == nil {
			policy = wrapper.Home
		}
	}

	if len(policy.NoLook) == 0 && len(policy.Look) == 0 {
		return Policy{}, errors.New(policyEmptyMessageConstant)
	}

	if validationError := validatePolicyPatterns(policy); validationError != nil {
		return Policy{}, validationError
	}

	return policy, nil
}

func validatePolicyPatterns(policy Policy) error {
	for _, pattern := range policy.NoLook {
		if patternError := validateGlobPattern(pattern); patternError != nil {
			return patternError
		}
	}
	for directoryName, allowedEntries := range policy.Look {
		if patternError := validateGlobPattern(directoryName); patternError != nil {
			return patternError
		}
		for _, pattern := range allowedEntries {
			if patternError := validateGlobPattern(pattern); patternError != nil {
				return patternError
			}
		}
	}
	return nil
}

func validateGlobPattern(pattern string) error {
	if _, matchError := filepath.Match(pattern, policyPatternProbeNameConstant); matchError != nil {
		return fmt.Errorf(policyInvalidPatternTemplateConstant, pattern)
	}
	return nil
}
