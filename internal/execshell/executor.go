package execshell

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const (
	gitCommandNameConstant                  = "git"
	commandFailedErrorTemplateConstant      = "%s exited with code %d: %s"
	commandExecutionErrorTemplateConstant   = "%s could not be executed: %v"
	loggerNotConfiguredMessageConstant      = "shell executor requires a logger"
	runnerNotConfiguredMessageConstant      = "shell executor requires a command runner"
	executionLogCommandFieldNameConstant    = "command"
	executionLogArgumentsFieldNameConstant  = "arguments"
	executionLogDirectoryFieldNameConstant  = "working_directory"
	executionLogExitCodeFieldNameConstant   = "exit_code"
	trimmedStandardErrorFallbackConstant    = "no standard error output"
	standardErrorPreviewLengthLimitConstant = 200
)

// CommandName identifies an executable invoked through the shell executor.
type CommandName string

// CommandGit identifies the git executable.
const CommandGit CommandName = CommandName(gitCommandNameConstant)

// CommandDetails captures the invocation parameters for a shell command.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand pairs an executable name with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of a command invocation.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner abstracts process execution for testability.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// Initialization errors reported by NewShellExecutor.
var (
	ErrLoggerNotConfigured        = errors.New(loggerNotConfiguredMessageConstant)
	ErrCommandRunnerNotConfigured = errors.New(runnerNotConfiguredMessageConstant)
)

// CommandFailedError reports a command that ran to completion with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including trimmed standard error output.
func (failure CommandFailedError) Error() string {
	standardErrorPreview := previewStandardError(failure.Result.StandardError)
	return fmt.Sprintf(commandFailedErrorTemplateConstant, failure.Command.Name, failure.Result.ExitCode, standardErrorPreview)
}

// CommandExecutionError reports a command that could not be started or run.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, failure.Command.Name, failure.Cause)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As inspection.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ShellExecutor runs shell commands through a CommandRunner with structured logging.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observer  CommandEventObserver
	formatter CommandMessageFormatter
}

// NewShellExecutor validates dependencies and constructs a ShellExecutor.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner) (*ShellExecutor, error) {
	return NewShellExecutorWithObserver(logger, runner, nil)
}

// NewShellExecutorWithObserver constructs a ShellExecutor publishing lifecycle events to the supplied observer.
func NewShellExecutorWithObserver(logger *zap.Logger, runner CommandRunner, observer CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	if observer == nil {
		observer = noopCommandEventObserver{}
	}
	return &ShellExecutor{logger: logger, runner: runner, observer: observer}, nil
}

// ExecuteGit runs the git executable with the provided invocation details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

func (executor *ShellExecutor) execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.observer.CommandStarted(command)
	executor.logger.Debug(executor.formatter.BuildStartedMessage(command), executor.commandLogFields(command)...)

	executionResult, executionError := executor.runner.Run(executionContext, command)
	if executionError != nil {
		executor.observer.CommandExecutionFailed(command, executionError)
		executor.logger.Error(executor.formatter.BuildExecutionFailureMessage(command, executionError), executor.commandLogFields(command)...)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: executionError}
	}

	executor.observer.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		failureLogFields := append(executor.commandLogFields(command), zap.Int(executionLogExitCodeFieldNameConstant, executionResult.ExitCode))
		executor.logger.Debug(executor.formatter.BuildFailureMessage(command, executionResult), failureLogFields...)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(executor.formatter.BuildSuccessMessage(command), executor.commandLogFields(command)...)
	return executionResult, nil
}

func (executor *ShellExecutor) commandLogFields(command ShellCommand) []zap.Field {
	return []zap.Field{
		zap.String(executionLogCommandFieldNameConstant, string(command.Name)),
		zap.Strings(executionLogArgumentsFieldNameConstant, command.Details.Arguments),
		zap.String(executionLogDirectoryFieldNameConstant, command.Details.WorkingDirectory),
	}
}

func previewStandardError(standardError string) string {
	if len(standardError) == 0 {
		return trimmedStandardErrorFallbackConstant
	}
	if len(standardError) > standardErrorPreviewLengthLimitConstant {
		return standardError[:standardErrorPreviewLengthLimitConstant]
	}
	return standardError
}
