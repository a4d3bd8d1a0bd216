// Package mail delivers the outbound messages the API sends.
// The only message today is the password reset link.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
)

// SMTPMailer sends mail through a plain-auth SMTP relay.
// It satisfies service.Mailer.
type SMTPMailer struct {
	addr string // host:port
	from string
	auth smtp.Auth
}

// NewSMTPMailer constructs an SMTPMailer.
// username/password may be empty for relays that accept unauthenticated
// submission (e.g. a local test relay).
func NewSMTPMailer(addr, from, username, password string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, smtpHost(addr))
	}
	return &SMTPMailer{addr: addr, from: from, auth: auth}
}

// SendPasswordReset mails the reset link to the given address.
// net/smtp has no context support; the context is checked before dialing so
// an already-cancelled request does not start a send.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mail.SMTPMailer.SendPasswordReset: %w", err)
	}

	msg := strings.Join([]string{
		"From: LogiRate <" + m.from + ">",
		"To: " + to,
		"Subject: Password Reset",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
		"",
		"<h3><em>Hello,</em> you requested a password reset</h3>",
		`<p>Kindly click this <a href="` + resetURL + `">link</a> to reset your password.</p>`,
	}, "\r\n")

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("mail.SMTPMailer.SendPasswordReset: %w", err)
	}
	return nil
}

// smtpHost strips the port from an SMTP address for PLAIN auth, keeping
// bracketed IPv6 literals like "[::1]:25" intact. An address without a port
// is returned as-is.
func smtpHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

// LogMailer is a Mailer for environments without an SMTP relay.
// The reset link lands in the server log instead of an inbox, which is
// enough for local development.
type LogMailer struct {
	Log *slog.Logger
}

// SendPasswordReset logs the reset link instead of sending it.
func (m LogMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	if m.Log != nil {
		m.Log.InfoContext(ctx, "password reset requested", "to", to, "reset_url", resetURL)
	}
	return nil
}
