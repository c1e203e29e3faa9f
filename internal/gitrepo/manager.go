package gitrepo

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/temirov/checkup/internal/execshell"
)

const (
	gitStatusSubcommandConstant          = "status"
	gitStatusPorcelainFlagConstant       = "--porcelain"
	gitRevParseSubcommandConstant        = "rev-parse"
	gitVerifyFlagConstant                = "--verify"
	gitQuietFlagConstant                 = "--quiet"
	gitHeadReferenceConstant             = "HEAD"
	gitConfigSubcommandConstant          = "config"
	gitConfigRegexpFlagConstant          = "--get-regexp"
	gitBranchRemoteConfigPatternConstant = `^branch\..*\.remote$`
	gitRevListSubcommandConstant         = "rev-list"
	gitRevListCountFlagConstant          = "--count"
	branchConfigKeyPrefixConstant        = "branch."
	branchConfigKeySuffixConstant        = ".remote"
	executorNotConfiguredMessageConstant = "repository manager requires a git executor"
	configKeyValueSeparatorConstant      = " "
	configKeyValueComponentCountConstant = 2
	gitMissingConfigurationExitCodeInt   = 1
	gitRevisionRangeSeparatorConstant    = ".."
	gitRemoteBranchSeparatorConstant     = "/"
	gitConfigOutputLineSeparatorConstant = "\n"
)

// ErrExecutorNotConfigured reports construction without a git executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitExecutor exposes the subset of shell execution used by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// TrackedBranch pairs a local branch with its configured upstream remote.
type TrackedBranch struct {
	Branch string
	Remote string
}

// RepositoryManager performs read-only git queries against a working copy.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager validates dependencies and constructs a RepositoryManager.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CheckCleanWorktree reports whether the repository working tree has no uncommitted changes.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitStatusPorcelainFlagConstant},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return false, executionError
	}

	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}

// HasCommits reports whether the repository has at least one commit reachable from HEAD.
func (manager *RepositoryManager) HasCommits(executionContext context.Context, repositoryPath string) (bool, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitVerifyFlagConstant, gitQuietFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: repositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		commandFailure := execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) {
			return false, nil
		}
		return false, executionError
	}

	return true, nil
}

// ListTrackedBranches returns every local branch with a configured upstream remote.
func (manager *RepositoryManager) ListTrackedBranches(executionContext context.Context, repositoryPath string) ([]TrackedBranch, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitConfigSubcommandConstant, gitConfigRegexpFlagConstant, gitBranchRemoteConfigPatternConstant},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		commandFailure := execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) && commandFailure.Result.ExitCode == gitMissingConfigurationExitCodeInt {
			return nil, nil
		}
		return nil, executionError
	}

	return parseTrackedBranches(executionResult.StandardOutput), nil
}

// CountUnpushedCommits returns how many commits exist on the branch but not on its upstream remote.
func (manager *RepositoryManager) CountUnpushedCommits(executionContext context.Context, repositoryPath string, tracked TrackedBranch) (int, error) {
	revisionRange := tracked.Remote + gitRemoteBranchSeparatorConstant + tracked.Branch + gitRevisionRangeSeparatorConstant + tracked.Branch
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitRevListSubcommandConstant, gitRevListCountFlagConstant, revisionRange},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return 0, executionError
	}

	trimmedOutput := strings.TrimSpace(executionResult.StandardOutput)
	commitCount, parseError := strconv.Atoi(trimmedOutput)
	if parseError != nil {
		return 0, parseError
	}
	return commitCount, nil
}

func parseTrackedBranches(configOutput string) []TrackedBranch {
	var trackedBranches []TrackedBranch
	for _, configLine := range strings.Split(configOutput, gitConfigOutputLineSeparatorConstant) {
		trimmedLine := strings.TrimSpace(configLine)
		if len(trimmedLine) == 0 {
			continue
		}

		keyValueComponents := strings.SplitN(trimmedLine, configKeyValueSeparatorConstant, configKeyValueComponentCountConstant)
		if len(keyValueComponents) != configKeyValueComponentCountConstant {
			continue
		}

		configKey := keyValueComponents[0]
		remoteName := strings.TrimSpace(keyValueComponents[1])
		if !strings.HasPrefix(configKey, branchConfigKeyPrefixConstant) || !strings.HasSuffix(configKey, branchConfigKeySuffixConstant) {
			continue
		}

		branchName := strings.TrimSuffix(strings.TrimPrefix(configKey, branchConfigKeyPrefixConstant), branchConfigKeySuffixConstant)
		if len(branchName) == 0 || len(remoteName) == 0 {
			continue
		}

		trackedBranches = append(trackedBranches, TrackedBranch{Branch: branchName, Remote: remoteName})
	}
	return trackedBranches
}
