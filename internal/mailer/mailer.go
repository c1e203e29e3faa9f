package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/checkup/internal/report"
)

const (
	recipientFileNameConstant              = "recipient"
	senderFileNameConstant                 = "sender"
	senderFileLineCountInt                 = 2
	missingCredentialsTemplateConstant     = "missing mail credentials at %s: %s"
	credentialFileUnreadableReasonConstant = "file is not readable"
	recipientEmptyReasonConstant           = "recipient file must contain one address"
	senderMalformedReasonConstant          = "sender file must contain a username line and a password line"
	mailSubmissionTemplateConstant         = "failed to submit report to %s: %v"
	subjectTemplateConstant                = "checkup report: %d dirty, %d unpushed"
	subjectHeaderTemplateConstant          = "Subject: %s\r\n"
	fromHeaderTemplateConstant             = "From: %s\r\n"
	toHeaderTemplateConstant               = "To: %s\r\n"
	headerBodySeparatorConstant            = "\r\n"
	transportNotConfiguredMessageConstant  = "mail transport must be provided"
)

// ErrTransportNotConfigured indicates NewMailer received a nil transport.
var ErrTransportNotConfigured = errors.New(transportNotConfiguredMessageConstant)

// MissingCredentialsError reports credential files that are absent or
// unusable.
type MissingCredentialsError struct {
	Path   string
	Reason string
}

func (missingCredentials MissingCredentialsError) Error() string {
	return fmt.Sprintf(missingCredentialsTemplateConstant, missingCredentials.Path, missingCredentials.Reason)
}

// MailSubmissionError wraps a transport failure while submitting the
// report.
type MailSubmissionError struct {
	Host  string
	Cause error
}

func (mailSubmission MailSubmissionError) Error() string {
	return fmt.Sprintf(mailSubmissionTemplateConstant, mailSubmission.Host, mailSubmission.Cause)
}

// Unwrap exposes the underlying transport failure.
func (mailSubmission MailSubmissionError) Unwrap() error {
	return mailSubmission.Cause
}

// Credentials carries the mail account details loaded from the
// credential files: a recipient address plus the sending account's
// username and password.
type Credentials struct {
	Recipient      string
	SenderUsername string
	SenderPassword string
}

// LoadCredentials reads the recipient and sender files from the
// credentials directory. The recipient file holds one address; the
// sender file holds the username on the first line and the password on
// the second.
func LoadCredentials(credentialsDirectory string) (Credentials, error) {
	recipientPath := filepath.Join(credentialsDirectory, recipientFileNameConstant)
	recipientBytes, recipientError := os.ReadFile(recipientPath)
	if recipientError != nil {
		return Credentials{}, MissingCredentialsError{Path: recipientPath, Reason: credentialFileUnreadableReasonConstant}
	}
	recipientAddress := strings.TrimSpace(string(recipientBytes))
	if len(recipientAddress) == 0 {
		return Credentials{}, MissingCredentialsError{Path: recipientPath, Reason: recipientEmptyReasonConstant}
	}

	senderPath := filepath.Join(credentialsDirectory, senderFileNameConstant)
	senderBytes, senderError := os.ReadFile(senderPath)
	if senderError != nil {
		return Credentials{}, MissingCredentialsError{Path: senderPath, Reason: credentialFileUnreadableReasonConstant}
	}
	senderLines := strings.Split(strings.TrimSpace(string(senderBytes)), "\n")
	if len(senderLines) != senderFileLineCountInt {
		return Credentials{}, MissingCredentialsError{Path: senderPath, Reason: senderMalformedReasonConstant}
	}

	return Credentials{
		Recipient:      recipientAddress,
		SenderUsername: strings.TrimSpace(senderLines[0]),
		SenderPassword: strings.TrimSpace(senderLines[1]),
	}, nil
}

// Mailer submits scan reports over a MailTransport using credentials
// loaded from disk at send time.
type Mailer struct {
	transport            MailTransport
	credentialsDirectory string
	smtpHost             string
	smtpPort             string
}

// NewMailer constructs a Mailer for the given transport and settings.
func NewMailer(transport MailTransport, credentialsDirectory string, smtpHost string, smtpPort string) (*Mailer, error) {
	if transport == nil {
		return nil, ErrTransportNotConfigured
	}
	return &Mailer{
		transport:            transport,
		credentialsDirectory: credentialsDirectory,
		smtpHost:             smtpHost,
		smtpPort:             smtpPort,
	}, nil
}

// SendReport composes the report email and submits it. Credential
// problems surface as MissingCredentialsError; transport problems as
// MailSubmissionError.
func (mailer *Mailer) SendReport(executionContext context.Context, scanReport report.ScanReport) error {
	credentials, credentialsError := LoadCredentials(mailer.credentialsDirectory)
	if credentialsError != nil {
		return credentialsError
	}

	message := composeMessage(credentials, scanReport)
	serverAddress := net.JoinHostPort(mailer.smtpHost, mailer.smtpPort)
	if submitError := mailer.transport.Submit(executionContext, serverAddress, credentials, message); submitError != nil {
		return MailSubmissionError{Host: mailer.smtpHost, Cause: submitError}
	}
	return nil
}

func composeMessage(credentials Credentials, scanReport report.ScanReport) []byte {
	subjectText := fmt.Sprintf(subjectTemplateConstant, scanReport.DirtyCount(), scanReport.UnpushedCount())

	messageBuilder := strings.Builder{}
	messageBuilder.WriteString(fmt.Sprintf(subjectHeaderTemplateConstant, subjectText))
	messageBuilder.WriteString(fmt.Sprintf(fromHeaderTemplateConstant, credentials.SenderUsername))
	messageBuilder.WriteString(fmt.Sprintf(toHeaderTemplateConstant, credentials.Recipient))
	messageBuilder.WriteString(headerBodySeparatorConstant)
	messageBuilder.WriteString(report.PlainText(scanReport))
	return []byte(messageBuilder.String())
}
