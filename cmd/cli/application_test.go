package cli_test

import (
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"

	"github.com/temirov/checkup/cmd/cli"
)

const (
	decodedScanRootConstant      = "/srv/decoded"
	decodedSMTPHostConstant      = "smtp.example.org"
	decodedLookDirectoryConstant = "Downloads"
	decodedAllowedEntryConstant  = "reading-list.txt"
)

func TestApplicationConfigurationDecoding(testInstance *testing.T) {
	rawConfiguration := map[string]any{
		"common": map[string]any{
			"log_level":  "debug",
			"log_format": "console",
		},
		"check": map[string]any{
			"roots":           []string{decodedScanRootConstant},
			"report":          "both",
			"ignore":          []string{"venv"},
			"upstream_policy": "unpushed",
		},
		"home": map[string]any{
			"directory": "~",
			"nolook":    []string{"Documents"},
			"look": map[string]any{
				decodedLookDirectoryConstant: []string{decodedAllowedEntryConstant},
			},
		},
		"mail": map[string]any{
			"credentials_dir": "/etc/checkup",
			"smtp_host":       decodedSMTPHostConstant,
			"smtp_port":       "465",
		},
	}

	var decodedConfiguration cli.ApplicationConfiguration
	require.NoError(testInstance, mapstructure.Decode(rawConfiguration, &decodedConfiguration))

	require.Equal(testInstance, "debug", decodedConfiguration.Common.LogLevel)
	require.Equal(testInstance, "console", decodedConfiguration.Common.LogFormat)
	require.Equal(testInstance, []string{decodedScanRootConstant}, decodedConfiguration.Check.Roots)
	require.Equal(testInstance, "both", decodedConfiguration.Check.Report)
	require.Equal(testInstance, "unpushed", decodedConfiguration.Check.UpstreamPolicy)
	require.Equal(testInstance, []string{decodedAllowedEntryConstant}, decodedConfiguration.Home.Look[decodedLookDirectoryConstant])
	require.Equal(testInstance, decodedSMTPHostConstant, decodedConfiguration.Mail.SMTPHost)
	require.Equal(testInstance, "465", decodedConfiguration.Mail.SMTPPort)

	commandConfiguration := decodedConfiguration.CommandConfiguration()
	require.Equal(testInstance, decodedConfiguration.Check, commandConfiguration.Check)
	require.Equal(testInstance, decodedConfiguration.Mail, commandConfiguration.Mail)
}
