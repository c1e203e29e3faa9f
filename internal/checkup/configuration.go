package checkup

import (
	"strings"

	"github.com/temirov/checkup/internal/inspect"
)

const (
	checkRootsConfigurationSuffixConstant          = ".roots"
	checkReportConfigurationSuffixConstant         = ".report"
	checkIgnoreConfigurationSuffixConstant         = ".ignore"
	checkUpstreamPolicyConfigurationSuffixConstant = ".upstream_policy"
	homeDirectoryConfigurationSuffixConstant       = ".directory"
	homeNoLookConfigurationSuffixConstant          = ".nolook"
	mailCredentialsConfigurationSuffixConstant     = ".credentials_dir"
	mailSMTPHostConfigurationSuffixConstant        = ".smtp_host"
	mailSMTPPortConfigurationSuffixConstant        = ".smtp_port"
	defaultScanRootConstant                        = "~"
	defaultHomeDirectoryConstant                   = "~"
	defaultSMTPHostConstant                        = "smtp.gmail.com"
	defaultSMTPPortConstant                        = "587"
	defaultCredentialsDirectoryConstant            = "."
)

// Path segments excluded from repository discovery unless overridden.
var defaultIgnoredSegments = []string{"venv", ".cargo", ".pyenv"}

// CheckConfiguration captures configuration values for the git half of
// the scan.
type CheckConfiguration struct {
	Roots           []string `mapstructure:"roots" json:"roots"`
	Report          string   `mapstructure:"report" json:"report"`
	IgnoredSegments []string `mapstructure:"ignore" json:"ignore"`
	UpstreamPolicy  string   `mapstructure:"upstream_policy" json:"upstream_policy"`
}

// HomeConfiguration captures configuration values for the home
// directory audit.
type HomeConfiguration struct {
	Directory string              `mapstructure:"directory" json:"directory"`
	NoLook    []string            `mapstructure:"nolook" json:"nolook"`
	Look      map[string][]string `mapstructure:"look" json:"look"`
}

// MailConfiguration captures mail delivery settings.
type MailConfiguration struct {
	CredentialsDirectory string `mapstructure:"credentials_dir" json:"credentials_dir"`
	SMTPHost             string `mapstructure:"smtp_host" json:"smtp_host"`
	SMTPPort             string `mapstructure:"smtp_port" json:"smtp_port"`
}

// CommandConfiguration groups the configuration sections consumed by
// the check command.
type CommandConfiguration struct {
	Check CheckConfiguration `mapstructure:"check" json:"check"`
	Home  HomeConfiguration  `mapstructure:"home" json:"home"`
	Mail  MailConfiguration  `mapstructure:"mail" json:"mail"`
}

// DefaultConfigurationValues provides baseline configuration entries
// registered before any configuration file is read.
func DefaultConfigurationValues(checkConfigurationKey string, homeConfigurationKey string, mailConfigurationKey string) map[string]any {
	return map[string]any{
		checkConfigurationKey + checkRootsConfigurationSuffixConstant:          []string{defaultScanRootConstant},
		checkConfigurationKey + checkReportConfigurationSuffixConstant:         reportChoicePrintStringConstant,
		checkConfigurationKey + checkIgnoreConfigurationSuffixConstant:         append([]string{}, defaultIgnoredSegments...),
		checkConfigurationKey + checkUpstreamPolicyConfigurationSuffixConstant: string(inspect.UpstreamPolicySkip),
		homeConfigurationKey + homeDirectoryConfigurationSuffixConstant:        defaultHomeDirectoryConstant,
		homeConfigurationKey + homeNoLookConfigurationSuffixConstant:           []string{},
		mailConfigurationKey + mailCredentialsConfigurationSuffixConstant:      defaultCredentialsDirectoryConstant,
		mailConfigurationKey + mailSMTPHostConfigurationSuffixConstant:         defaultSMTPHostConstant,
		mailConfigurationKey + mailSMTPPortConfigurationSuffixConstant:         defaultSMTPPortConstant,
	}
}

// sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Check.Roots = sanitizeValueList(configuration.Check.Roots)
	sanitized.Check.Report = strings.TrimSpace(configuration.Check.Report)
	sanitized.Check.IgnoredSegments = sanitizeValueList(configuration.Check.IgnoredSegments)
	sanitized.Check.UpstreamPolicy = strings.TrimSpace(configuration.Check.UpstreamPolicy)
	sanitized.Home.Directory = strings.TrimSpace(configuration.Home.Directory)
	sanitized.Mail.CredentialsDirectory = strings.TrimSpace(configuration.Mail.CredentialsDirectory)
	sanitized.Mail.SMTPHost = strings.TrimSpace(configuration.Mail.SMTPHost)
	sanitized.Mail.SMTPPort = strings.TrimSpace(configuration.Mail.SMTPPort)

	return sanitized
}

func sanitizeValueList(rawValues []string) []string {
	sanitizedValues := make([]string, 0, len(rawValues))
	for _, candidateValue := range rawValues {
		trimmedValue := strings.TrimSpace(candidateValue)
		if len(trimmedValue) == 0 {
			continue
		}
		sanitizedValues = append(sanitizedValues, trimmedValue)
	}
	return sanitizedValues
}
