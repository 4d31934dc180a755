package mailer

import (
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	// ErrNotConfigured is returned when no API key is set. Callers treat
	// mail as optional and only log this.
	ErrNotConfigured = errors.New("mailer: sendgrid api key is not configured")

	// ErrSendFailed covers transport errors and non-2xx responses.
	ErrSendFailed = errors.New("mailer: failed to send email")
)

// Logger is the subset of the application logger the mailer needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Mailer sends transactional email through SendGrid.
type Mailer struct {
	apiKey   string
	fromName string
	fromAddr string
	log      Logger
}

// New creates a mailer. An empty apiKey yields a mailer whose Send always
// returns ErrNotConfigured, which keeps mail optional in development.
func New(apiKey, fromName, fromAddr string, log Logger) *Mailer {
	return &Mailer{
		apiKey:   apiKey,
		fromName: fromName,
		fromAddr: fromAddr,
		log:      log,
	}
}

// Send delivers a single email with plain-text and HTML bodies.
func (m *Mailer) Send(toName, toAddr, subject, plainText, htmlContent string) error {
	if m.apiKey == "" {
		return ErrNotConfigured
	}

	from := mail.NewEmail(m.fromName, m.fromAddr)
	to := mail.NewEmail(toName, toAddr)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d: %s", ErrSendFailed, response.StatusCode, response.Body)
	}

	m.log.Info("Email sent to %s (subject: %s), status=%d", toAddr, subject, response.StatusCode)
	return nil
}
