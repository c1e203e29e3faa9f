package mailer

import (
	"context"
	"net"
	"net/smtp"
)

// MailTransport submits a composed message to a mail server. Tests
// provide in-memory implementations.
type MailTransport interface {
	Submit(executionContext context.Context, serverAddress string, credentials Credentials, message []byte) error
}

// SMTPTransport submits messages with authenticated SMTP.
type SMTPTransport struct{}

// NewSMTPTransport constructs an SMTPTransport.
func NewSMTPTransport() *SMTPTransport {
	return &SMTPTransport{}
}

// Submit authenticates as the sender and delivers the message to the
// recipient through the given server.
func (transport *SMTPTransport) Submit(executionContext context.Context, serverAddress string, credentials Credentials, message []byte) error {
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}

	serverHost, _, splitError := net.SplitHostPort(serverAddress)
	if splitError != nil {
		serverHost = serverAddress
	}

	authentication := smtp.PlainAuth("", credentials.SenderUsername, credentials.SenderPassword, serverHost)
	return smtp.SendMail(
		serverAddress,
		authentication,
		credentials.SenderUsername,
		[]string{credentials.Recipient},
		message,
	)
}
