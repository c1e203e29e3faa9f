package checkup

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/checkup/internal/execshell"
	"github.com/temirov/checkup/internal/gitrepo"
	"github.com/temirov/checkup/internal/homeaudit"
	"github.com/temirov/checkup/internal/ui"
	"github.com/temirov/checkup/internal/utils"
	flagutils "github.com/temirov/checkup/internal/utils/flags"
	pathutils "github.com/temirov/checkup/internal/utils/path"
)

const (
	commandNameConstant                   = "check"
	commandShortDescriptionConstant       = "Check git repositories and the home directory"
	commandLongDescriptionConstant        = "check finds dirty and unpushed git repositories beneath the configured roots and reports home directory entries the allow-list policy does not permit."
	reportFlagNameConstant                = "report"
	reportFlagDescriptionConstant         = "Whether to print the report, email it, or both"
	gitCheckFlagNameConstant              = "git-check"
	gitCheckFlagDescriptionConstant       = "Run the git repository check"
	homeCheckFlagNameConstant             = "home-check"
	homeCheckFlagDescriptionConstant      = "Run the home directory audit"
	homePolicyFlagNameConstant            = "home-policy"
	homePolicyFlagUsageConstant           = "Path to a standalone home policy file (YAML or JSON)"
	printConfigFlagNameConstant           = "print-config"
	printConfigFlagUsageConstant          = "Print the effective configuration and exit"
	printConfigIndentConstant             = "  "
	printConfigErrorTemplateConstant      = "unable to render configuration: %w"
	configurationSourceLogMessageConstant = "configuration resolved"
	logFieldConfigurationFileConstant     = "config_file"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the check cobra command with configurable
// dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	HumanReadableLoggingProvider func() bool
	Discoverer                   RepositoryDiscoverer
	GitExecutor                  gitrepo.GitExecutor
	Inspector                    RepositoryInspector
	Auditor                      HomeAuditor
	Mailer                       ReportMailer
	CommandEventsObserver        execshell.CommandEventObserver

	rootFlagValues          *flagutils.RootFlagValues
	reportFlagValue         string
	gitCheckFlagValue       bool
	homeCheckFlagValue      bool
	homePolicyPathFlagValue string
	printConfigFlagValue    bool
	homeExpander            *pathutils.HomeExpander
	rootPathSanitizer       *pathutils.RepositoryPathSanitizer
}

// Build constructs the cobra command for the combined scan.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	builder.rootFlagValues = flagutils.BindRootFlags(command, flagutils.RootFlagValues{}, flagutils.RootFlagDefinition{Enabled: true})
	command.Flags().StringVar(
		&builder.reportFlagValue,
		reportFlagNameConstant,
		"",
		flagutils.FormatChoiceUsage(
			reportChoicePrintStringConstant,
			[]string{reportChoicePrintStringConstant, reportChoiceEmailStringConstant, reportChoiceBothStringConstant},
			reportFlagDescriptionConstant,
		),
	)
	flagutils.AddToggleFlag(command.Flags(), &builder.gitCheckFlagValue, gitCheckFlagNameConstant, "", true, gitCheckFlagDescriptionConstant)
	flagutils.AddToggleFlag(command.Flags(), &builder.homeCheckFlagValue, homeCheckFlagNameConstant, "", true, homeCheckFlagDescriptionConstant)
	command.Flags().StringVar(&builder.homePolicyPathFlagValue, homePolicyFlagNameConstant, "", homePolicyFlagUsageConstant)
	command.Flags().BoolVar(&builder.printConfigFlagValue, printConfigFlagNameConstant, false, printConfigFlagUsageConstant)

	builder.homeExpander = pathutils.NewHomeExpander()
	builder.rootPathSanitizer = pathutils.NewRepositoryPathSanitizerWithConfiguration(
		builder.homeExpander,
		pathutils.RepositoryPathSanitizerConfiguration{PruneNestedPaths: true},
	)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	if builder.printConfigFlagValue {
		return builder.printConfiguration(command, configuration)
	}

	options, optionsError := builder.parseOptions(configuration)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()

	contextAccessor := utils.NewCommandContextAccessor()
	if configurationFilePath, pathAvailable := contextAccessor.ConfigurationFilePath(command.Context()); pathAvailable {
		logger.Debug(configurationSourceLogMessageConstant, zap.String(logFieldConfigurationFileConstant, configurationFilePath))
	}

	gitExecutor, executorError := ResolveGitExecutor(builder.GitExecutor, logger, builder.resolveCommandEventsObserver(logger))
	if executorError != nil {
		return executorError
	}

	inspector, inspectorError := ResolveRepositoryInspector(builder.Inspector, gitExecutor, options.UpstreamPolicy)
	if inspectorError != nil {
		return inspectorError
	}

	reportMailer, mailerError := ResolveReportMailer(builder.Mailer, builder.expandMailConfiguration(configuration.Mail))
	if mailerError != nil {
		return mailerError
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger:     logger,
		Discoverer: ResolveRepositoryDiscoverer(builder.Discoverer, configuration.Check.IgnoredSegments),
		Inspector:  inspector,
		Auditor:    ResolveHomeAuditor(builder.Auditor),
		Mailer:     reportMailer,
		Output:     utils.NewFlushingWriter(command.OutOrStdout()),
	})
	if serviceError != nil {
		return serviceError
	}

	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) parseOptions(configuration CommandConfiguration) (CommandOptions, error) {
	reportChoiceSource := builder.reportFlagValue
	if len(reportChoiceSource) == 0 {
		reportChoiceSource = configuration.Check.Report
	}
	reportChoice, choiceError := ParseReportChoice(reportChoiceSource)
	if choiceError != nil {
		return CommandOptions{}, choiceError
	}

	upstreamPolicy, policyError := ParseUpstreamPolicy(configuration.Check.UpstreamPolicy)
	if policyError != nil {
		return CommandOptions{}, policyError
	}

	homePolicy, homePolicyError := builder.resolveHomePolicy(configuration)
	if homePolicyError != nil {
		return CommandOptions{}, homePolicyError
	}

	return CommandOptions{
		Roots:            builder.resolveRoots(configuration),
		ReportChoice:     reportChoice,
		GitCheckEnabled:  builder.gitCheckFlagValue,
		HomeCheckEnabled: builder.homeCheckFlagValue,
		HomeDirectory:    builder.homeExpander.Expand(configuration.Home.Directory),
		HomePolicy:       homePolicy,
		UpstreamPolicy:   upstreamPolicy,
	}, nil
}

func (builder *CommandBuilder) resolveRoots(configuration CommandConfiguration) []string {
	candidateRoots := configuration.Check.Roots
	if builder.rootFlagValues != nil && len(builder.rootFlagValues.Roots) > 0 {
		candidateRoots = builder.rootFlagValues.Roots
	}
	return builder.rootPathSanitizer.Sanitize(candidateRoots)
}

func (builder *CommandBuilder) resolveHomePolicy(configuration CommandConfiguration) (homeaudit.Policy, error) {
	if len(builder.homePolicyPathFlagValue) > 0 {
		return homeaudit.LoadPolicy(builder.homeExpander.Expand(builder.homePolicyPathFlagValue))
	}
	return homeaudit.Policy{
		NoLook: configuration.Home.NoLook,
		Look:   configuration.Home.Look,
	}, nil
}

func (builder *CommandBuilder) expandMailConfiguration(mailConfiguration MailConfiguration) MailConfiguration {
	expanded := mailConfiguration
	expanded.CredentialsDirectory = builder.homeExpander.Expand(mailConfiguration.CredentialsDirectory)
	return expanded
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return CommandConfiguration{}.sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveCommandEventsObserver(logger *zap.Logger) execshell.CommandEventObserver {
	if builder.CommandEventsObserver != nil {
		return builder.CommandEventsObserver
	}
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		return ui.NewConsoleCommandEventLogger(logger)
	}
	return nil
}

func (builder *CommandBuilder) printConfiguration(command *cobra.Command, configuration CommandConfiguration) error {
	renderedConfiguration, marshalError := json.MarshalIndent(configuration, "", printConfigIndentConstant)
	if marshalError != nil {
		return fmt.Errorf(printConfigErrorTemplateConstant, marshalError)
	}
	fmt.Fprintln(command.OutOrStdout(), string(renderedConfiguration))
	return nil
}
