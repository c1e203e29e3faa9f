package execshell

import (
	"fmt"
	"strings"
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
)

const (
	gitStatusSubcommandNameConstant   = "status"
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitRevListSubcommandNameConstant  = "rev-list"
	gitConfigSubcommandNameConstant   = "config"
)

const (
	gitStatusStartTemplateConstant                = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant              = "Collected working tree status for %s"
	gitStatusFailureTemplateConstant              = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant     = "Unable to review working tree status in %s: %s"
	gitRevParseStartTemplateConstant              = "Resolving %s in %s"
	gitRevParseSuccessTemplateConstant            = "%s in %s resolved"
	gitRevParseFailureTemplateConstant            = "Failed to resolve %s in %s (exit code %d%s)"
	gitRevParseExecutionFailureTemplateConstant   = "Unable to resolve %s in %s: %s"
	gitRevListStartTemplateConstant               = "Counting commits for %s in %s"
	gitRevListSuccessTemplateConstant             = "Counted commits for %s in %s"
	gitRevListFailureTemplateConstant             = "Failed to count commits for %s in %s (exit code %d%s)"
	gitRevListExecutionFailureTemplateConstant    = "Unable to count commits for %s in %s: %s"
	gitConfigReadStartTemplateConstant            = "Reading branch tracking configuration in %s"
	gitConfigReadSuccessTemplateConstant          = "Read branch tracking configuration in %s"
	gitConfigReadFailureTemplateConstant          = "Failed to read branch tracking configuration in %s (exit code %d%s)"
	gitConfigReadExecutionFailureTemplateConstant = "Unable to read branch tracking configuration in %s: %s"
	fallbackRevisionReferenceLabelConstant        = "revision"
	fallbackRevisionRangeLabelConstant            = "revision range"
	gitRevisionReferenceArgumentMinimumCountInt   = 2
	gitRevisionRangeArgumentPositionFromEndInt    = 1
	gitRevisionReferenceFlagPrefixStringConstant  = "-"
)

// CommandMessageFormatter builds human-readable messages describing command lifecycle stages.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	switch formatter.gitSubcommand(command) {
	case gitStatusSubcommandNameConstant:
		return fmt.Sprintf(gitStatusStartTemplateConstant, formatter.workingDirectoryLabel(command))
	case gitRevParseSubcommandNameConstant:
		return fmt.Sprintf(gitRevParseStartTemplateConstant, formatter.revisionReference(command), formatter.workingDirectoryLabel(command))
	case gitRevListSubcommandNameConstant:
		return fmt.Sprintf(gitRevListStartTemplateConstant, formatter.revisionRange(command), formatter.workingDirectoryLabel(command))
	case gitConfigSubcommandNameConstant:
		return fmt.Sprintf(gitConfigReadStartTemplateConstant, formatter.workingDirectoryLabel(command))
	default:
		return fmt.Sprintf(genericStartTemplateConstant, formatter.formatCommandLabel(command))
	}
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	switch formatter.gitSubcommand(command) {
	case gitStatusSubcommandNameConstant:
		return fmt.Sprintf(gitStatusSuccessTemplateConstant, formatter.workingDirectoryLabel(command))
	case gitRevParseSubcommandNameConstant:
		return fmt.Sprintf(gitRevParseSuccessTemplateConstant, formatter.revisionReference(command), formatter.workingDirectoryLabel(command))
	case gitRevListSubcommandNameConstant:
		return fmt.Sprintf(gitRevListSuccessTemplateConstant, formatter.revisionRange(command), formatter.workingDirectoryLabel(command))
	case gitConfigSubcommandNameConstant:
		return fmt.Sprintf(gitConfigReadSuccessTemplateConstant, formatter.workingDirectoryLabel(command))
	default:
		return fmt.Sprintf(genericSuccessTemplateConstant, formatter.formatCommandLabel(command))
	}
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	standardErrorSuffix := formatter.formatStandardErrorSuffix(result.StandardError)
	switch formatter.gitSubcommand(command) {
	case gitStatusSubcommandNameConstant:
		return fmt.Sprintf(gitStatusFailureTemplateConstant, formatter.workingDirectoryLabel(command), result.ExitCode, standardErrorSuffix)
	case gitRevParseSubcommandNameConstant:
		return fmt.Sprintf(gitRevParseFailureTemplateConstant, formatter.revisionReference(command), formatter.workingDirectoryLabel(command), result.ExitCode, standardErrorSuffix)
	case gitRevListSubcommandNameConstant:
		return fmt.Sprintf(gitRevListFailureTemplateConstant, formatter.revisionRange(command), formatter.workingDirectoryLabel(command), result.ExitCode, standardErrorSuffix)
	case gitConfigSubcommandNameConstant:
		return fmt.Sprintf(gitConfigReadFailureTemplateConstant, formatter.workingDirectoryLabel(command), result.ExitCode, standardErrorSuffix)
	default:
		return fmt.Sprintf(genericFailureTemplateConstant, formatter.formatCommandLabel(command), result.ExitCode, standardErrorSuffix)
	}
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	failureMessage := unknownFailureMessageConstant
	if failure != nil {
		failureMessage = failure.Error()
	}
	switch formatter.gitSubcommand(command) {
	case gitStatusSubcommandNameConstant:
		return fmt.Sprintf(gitStatusExecutionFailureTemplateConstant, formatter.workingDirectoryLabel(command), failureMessage)
	case gitRevParseSubcommandNameConstant:
		return fmt.Sprintf(gitRevParseExecutionFailureTemplateConstant, formatter.revisionReference(command), formatter.workingDirectoryLabel(command), failureMessage)
	case gitRevListSubcommandNameConstant:
		return fmt.Sprintf(gitRevListExecutionFailureTemplateConstant, formatter.revisionRange(command), formatter.workingDirectoryLabel(command), failureMessage)
	case gitConfigSubcommandNameConstant:
		return fmt.Sprintf(gitConfigReadExecutionFailureTemplateConstant, formatter.workingDirectoryLabel(command), failureMessage)
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, formatter.formatCommandLabel(command), failureMessage)
	}
}

func (formatter CommandMessageFormatter) gitSubcommand(command ShellCommand) string {
	if command.Name != CommandGit {
		return emptyStringConstant
	}
	if len(command.Details.Arguments) == 0 {
		return emptyStringConstant
	}
	return command.Details.Arguments[0]
}

func (formatter CommandMessageFormatter) revisionReference(command ShellCommand) string {
	for argumentIndex := 1; argumentIndex < len(command.Details.Arguments); argumentIndex++ {
		argument := command.Details.Arguments[argumentIndex]
		if strings.HasPrefix(argument, gitRevisionReferenceFlagPrefixStringConstant) {
			continue
		}
		return argument
	}
	return fallbackRevisionReferenceLabelConstant
}

func (formatter CommandMessageFormatter) revisionRange(command ShellCommand) string {
	if len(command.Details.Arguments) < gitRevisionReferenceArgumentMinimumCountInt {
		return fallbackRevisionRangeLabelConstant
	}
	return command.Details.Arguments[len(command.Details.Arguments)-gitRevisionRangeArgumentPositionFromEndInt]
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) workingDirectoryLabel(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}
