package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"net/url"
	"strings"
)

type PasswordResetMailer struct {
	host        string
	port        string
	username    string
	password    string
	from        string
	useTLS      bool
	frontendURL string
	send        func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewPasswordResetMailer(host, port, username, password, from string, useTLS bool, frontendURL string) *PasswordResetMailer {
	return &PasswordResetMailer{
		host:        strings.TrimSpace(host),
		port:        strings.TrimSpace(port),
		username:    username,
		password:    password,
		from:        strings.TrimSpace(from),
		useTLS:      useTLS,
		frontendURL: strings.TrimRight(strings.TrimSpace(frontendURL), "/"),
		send:        smtp.SendMail,
	}
}

// SendPasswordReset mails both reset paths to the user: the one-time link and
// the numeric code.
func (m *PasswordResetMailer) SendPasswordReset(ctx context.Context, email, rawToken, rawOTP, name string) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" || m.from == "" {
		return errors.New("mailer missing configuration")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msg := m.buildMessage(email, rawToken, rawOTP, name)

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	// smtp.SendMail has no context support, so the deadline is honoured by
	// abandoning the send rather than interrupting it.
	done := make(chan error, 1)
	go func() {
		done <- m.send(addr, auth, m.from, []string{email}, msg)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func (m *PasswordResetMailer) resetLink(rawToken string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, url.QueryEscape(rawToken))
}

func (m *PasswordResetMailer) buildMessage(email, rawToken, rawOTP, name string) []byte {
	greeting := "Hello"
	if n := strings.TrimSpace(name); n != "" {
		greeting = "Hello " + n
	}

	body := strings.Builder{}
	fmt.Fprintf(&body, "%s,\n\n", greeting)
	body.WriteString("We received a request to reset your Glamouré password.\n\n")
	fmt.Fprintf(&body, "Open this link to choose a new password:\n%s\n\n", m.resetLink(rawToken))
	fmt.Fprintf(&body, "Or enter this verification code in the app: %s\n\n", rawOTP)
	body.WriteString("The link and the code are single use and expire shortly.\n")
	body.WriteString("If you did not request this, ignore this email.")

	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", email))
	message.WriteString("Subject: Reset your Glamoure password\r\n")
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	message.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	message.WriteString(body.String())
	message.WriteString("\r\n")
	return []byte(message.String())
}
