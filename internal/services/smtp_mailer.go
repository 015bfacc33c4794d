package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// SMTPMailer delivers mail over plain SMTP with STARTTLS. It implements the
// Mailer contract: a single synchronous attempt, no retries.
type SMTPMailer struct {
	host     string
	port     int
	address  string
	password string
}

func NewSMTPMailer(host string, port int, address, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		address:  address,
		password: password,
	}
}

// Send delivers one HTML message to every recipient in the ";"-joined list.
// Any failure along the connect/auth/send sequence aborts the whole call.
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}
	defer client.Close()

	if err := client.Hello(domainOf(m.address)); err != nil {
		return fmt.Errorf("hello failed: %w", err)
	}

	if err := client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
		return fmt.Errorf("starttls failed: %w", err)
	}

	auth := smtp.PlainAuth("", m.address, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("auth failed: %w", err)
	}

	if err := client.Mail(m.address); err != nil {
		return fmt.Errorf("mail from failed: %w", err)
	}

	recipients := strings.Split(to, ";")
	for _, recipient := range recipients {
		if err := client.Rcpt(recipient); err != nil {
			return fmt.Errorf("rcpt to %q failed: %w", recipient, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("data failed: %w", err)
	}

	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)))
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.address))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(recipients, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")

	if _, err := writer.Write(msg.Bytes()); err != nil {
		return fmt.Errorf("write body failed: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("close body failed: %w", err)
	}

	return client.Quit()
}

func domainOf(email string) string {
	if idx := strings.LastIndex(email, "@"); idx >= 0 {
		return email[idx+1:]
	}
	return "localhost"
}
