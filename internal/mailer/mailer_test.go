package mailer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/checkup/internal/inspect"
	"github.com/temirov/checkup/internal/mailer"
	"github.com/temirov/checkup/internal/report"
)

const (
	testRecipientAddressConstant = "owner@example.com"
	testSenderUsernameConstant   = "reports@example.com"
	testSenderPasswordConstant   = "app-password"
	testSMTPHostConstant         = "smtp.example.com"
	testSMTPPortConstant         = "587"
	dirtyRepositoryPathConstant  = "/home/user/projects/alpha"
)

type recordingMailTransport struct {
	serverAddress string
	credentials   mailer.Credentials
	message       []byte
	submitError   error
}

func (transport *recordingMailTransport) Submit(executionContext context.Context, serverAddress string, credentials mailer.Credentials, message []byte) error {
	transport.serverAddress = serverAddress
	transport.credentials = credentials
	transport.message = message
	return transport.submitError
}

func writeCredentialFiles(testInstance *testing.T, recipientContent string, senderContent string) string {
	testInstance.Helper()
	credentialsDirectory := testInstance.TempDir()
	if recipientContent != "" {
		recipientPath := filepath.Join(credentialsDirectory, "recipient")
		require.NoError(testInstance, os.WriteFile(recipientPath, []byte(recipientContent), 0o600))
	}
	if senderContent != "" {
		senderPath := filepath.Join(credentialsDirectory, "sender")
		require.NoError(testInstance, os.WriteFile(senderPath, []byte(senderContent), 0o600))
	}
	return credentialsDirectory
}

func buildReportWithFindings() report.ScanReport {
	return report.ScanReport{
		Roots:             []string{"/home/user"},
		TotalRepositories: 1,
		Dirty:             []inspect.RepositoryRecord{{Path: dirtyRepositoryPathConstant, Dirty: true}},
		GitCheckRan:       true,
	}
}

func TestLoadCredentials(testInstance *testing.T) {
	testCases := []struct {
		name             string
		recipientContent string
		senderContent    string
		expectError      bool
	}{
		{
			name:             "valid_credential_files",
			recipientContent: testRecipientAddressConstant + "\n",
			senderContent:    testSenderUsernameConstant + "\n" + testSenderPasswordConstant + "\n",
			expectError:      false,
		},
		{
			name:          "missing_recipient_file",
			senderContent: testSenderUsernameConstant + "\n" + testSenderPasswordConstant,
			expectError:   true,
		},
		{
			name:             "missing_sender_file",
			recipientContent: testRecipientAddressConstant,
			expectError:      true,
		},
		{
			name:             "sender_file_missing_password_line",
			recipientContent: testRecipientAddressConstant,
			senderContent:    testSenderUsernameConstant,
			expectError:      true,
		},
		{
			name:             "blank_recipient_file",
			recipientContent: "   \n",
			senderContent:    testSenderUsernameConstant + "\n" + testSenderPasswordConstant,
			expectError:      true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			credentialsDirectory := writeCredentialFiles(testInstance, testCase.recipientContent, testCase.senderContent)
			credentials, loadError := mailer.LoadCredentials(credentialsDirectory)
			if testCase.expectError {
				require.Error(testInstance, loadError)
				var missingCredentialsError mailer.MissingCredentialsError
				require.ErrorAs(testInstance, loadError, &missingCredentialsError)
				return
			}
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testRecipientAddressConstant, credentials.Recipient)
			require.Equal(testInstance, testSenderUsernameConstant, credentials.SenderUsername)
			require.Equal(testInstance, testSenderPasswordConstant, credentials.SenderPassword)
		})
	}
}

func TestMailerRequiresTransport(testInstance *testing.T) {
	_, constructionError := mailer.NewMailer(nil, "", testSMTPHostConstant, testSMTPPortConstant)
	require.ErrorIs(testInstance, constructionError, mailer.ErrTransportNotConfigured)
}

func TestSendReportComposesSubjectAndBody(testInstance *testing.T) {
	credentialsDirectory := writeCredentialFiles(
		testInstance,
		testRecipientAddressConstant+"\n",
		testSenderUsernameConstant+"\n"+testSenderPasswordConstant+"\n",
	)
	transport := &recordingMailTransport{}
	reportMailer, constructionError := mailer.NewMailer(transport, credentialsDirectory, testSMTPHostConstant, testSMTPPortConstant)
	require.NoError(testInstance, constructionError)

	sendError := reportMailer.SendReport(context.Background(), buildReportWithFindings())
	require.NoError(testInstance, sendError)

	require.Equal(testInstance, testSMTPHostConstant+":"+testSMTPPortConstant, transport.serverAddress)
	require.Equal(testInstance, testRecipientAddressConstant, transport.credentials.Recipient)
	messageText := string(transport.message)
	require.Contains(testInstance, messageText, "Subject: checkup report: 1 dirty, 0 unpushed")
	require.Contains(testInstance, messageText, "From: "+testSenderUsernameConstant)
	require.Contains(testInstance, messageText, "To: "+testRecipientAddressConstant)
	require.Contains(testInstance, messageText, dirtyRepositoryPathConstant)
}

func TestSendReportWrapsTransportFailure(testInstance *testing.T) {
	credentialsDirectory := writeCredentialFiles(
		testInstance,
		testRecipientAddressConstant,
		testSenderUsernameConstant+"\n"+testSenderPasswordConstant,
	)
	transportFailure := errors.New("connection refused")
	transport := &recordingMailTransport{submitError: transportFailure}
	reportMailer, constructionError := mailer.NewMailer(transport, credentialsDirectory, testSMTPHostConstant, testSMTPPortConstant)
	require.NoError(testInstance, constructionError)

	sendError := reportMailer.SendReport(context.Background(), buildReportWithFindings())
	require.Error(testInstance, sendError)

	var submissionError mailer.MailSubmissionError
	require.ErrorAs(testInstance, sendError, &submissionError)
	require.Equal(testInstance, testSMTPHostConstant, submissionError.Host)
	require.ErrorIs(testInstance, sendError, transportFailure)
}

func TestSendReportSurfacesMissingCredentials(testInstance *testing.T) {
	transport := &recordingMailTransport{}
	reportMailer, constructionError := mailer.NewMailer(transport, testInstance.TempDir(), testSMTPHostConstant, testSMTPPortConstant)
	require.NoError(testInstance, constructionError)

	sendError := reportMailer.SendReport(context.Background(), buildReportWithFindings())
	var missingCredentialsError mailer.MissingCredentialsError
	require.ErrorAs(testInstance, sendError, &missingCredentialsError)
	require.Nil(testInstance, transport.message)
}
