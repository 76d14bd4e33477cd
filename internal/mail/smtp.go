package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"time"
)

// SMTPConfig holds the transport settings for the SMTP mailer.
type SMTPConfig struct {
	Host     string // e.g. "smtp.example.com"
	Port     int    // 587 (STARTTLS) or 465 (SMTPS)
	Username string
	Password string
	UseSSL   bool // true for implicit TLS on 465
}

// SMTPMailer delivers messages over SMTP using the stdlib client.
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer constructs an SMTPMailer for the given transport settings.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers the message. The context is accepted for interface symmetry;
// net/smtp has no context support, so cancellation is bounded by the
// transport's own socket timeouts.
func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	raw := encode(msg)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if m.cfg.UseSSL {
		return m.sendTLS(addr, auth, msg, raw)
	}

	// Plain dial; the stdlib client upgrades via STARTTLS when the server
	// advertises it.
	if err := smtp.SendMail(addr, auth, msg.From.Email, []string{msg.To.Email}, raw); err != nil {
		return fmt.Errorf("mail.SMTPMailer.Send: %w", err)
	}
	return nil
}

// sendTLS handles implicit-TLS servers (SMTPS, usually port 465), which
// smtp.SendMail cannot speak to.
func (m *SMTPMailer) sendTLS(addr string, auth smtp.Auth, msg Message, raw []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12})
	if err != nil {
		return fmt.Errorf("mail.SMTPMailer.Send: dial: %w", err)
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("mail.SMTPMailer.Send: client: %w", err)
	}
	defer c.Quit()

	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("mail.SMTPMailer.Send: auth: %w", err)
	}
	if err := c.Mail(msg.From.Email); err != nil {
		return fmt.Errorf("mail.SMTPMailer.Send: mail from: %w", err)
	}
	if err := c.Rcpt(msg.To.Email); err != nil {
		return fmt.Errorf("mail.SMTPMailer.Send: rcpt to: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("mail.SMTPMailer.Send: data: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("mail.SMTPMailer.Send: write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("mail.SMTPMailer.Send: close: %w", err)
	}
	return nil
}

// encode serializes the message as a single-part HTML email with CRLF
// line endings as SMTP requires.
func encode(msg Message) []byte {
	var buf bytes.Buffer
	write := func(format string, a ...any) { fmt.Fprintf(&buf, format, a...) }

	write("From: %s <%s>\r\n", msg.From.Name, msg.From.Email)
	write("To: %s <%s>\r\n", msg.To.Name, msg.To.Email)
	write("Subject: %s\r\n", msg.Subject)
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("\r\n")
	write("%s\r\n", msg.HTML)

	return buf.Bytes()
}
