// Package mailer sends plain-text mail over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"bootcamper/config"
)

// Send delivers a single plain-text message. SMTP settings come from the
// environment; auth is skipped when no credentials are configured.
func Send(to, subject, body string) error {
	host := config.GetEnv("SMTP_HOST", "")
	port := config.GetEnv("SMTP_PORT", "587")
	user := config.GetEnv("SMTP_USER", "")
	pass := config.GetEnv("SMTP_PASS", "")
	fromName := config.GetEnv("FROM_NAME", "Bootcamper")
	fromEmail := config.GetEnv("FROM_EMAIL", "noreply@bootcamper.dev")

	if host == "" {
		return fmt.Errorf("SMTP_HOST not configured")
	}

	var auth smtp.Auth
	if user != "" && pass != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", fromName, fromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return smtp.SendMail(host+":"+port, auth, fromEmail, []string{to}, []byte(msg.String()))
}
