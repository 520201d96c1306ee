package email

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

type SMTPProvider struct {
	config Config
	auth   smtp.Auth
}

func NewSMTPProvider(config Config) *SMTPProvider {
	var auth smtp.Auth
	if config.Username != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}
	return &SMTPProvider{config: config, auth: auth}
}

func (p *SMTPProvider) Send(email *Email) error {
	if email.From == "" {
		email.From = p.config.FromEmail
	}

	message := p.buildMessage(email)
	addr := fmt.Sprintf("%s:%d", p.config.Host, p.config.Port)

	if p.config.UseTLS {
		return p.sendTLS(addr, email, message)
	}
	return smtp.SendMail(addr, p.auth, email.From, email.To, message)
}

func (p *SMTPProvider) sendTLS(addr string, email *Email, message []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: p.config.Host})
	if err != nil {
		return fmt.Errorf("email: tls dial: %w", err)
	}

	client, err := smtp.NewClient(conn, p.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("email: smtp client: %w", err)
	}
	defer client.Close()

	if p.auth != nil {
		if err := client.Auth(p.auth); err != nil {
			return fmt.Errorf("email: auth: %w", err)
		}
	}

	if err := client.Mail(email.From); err != nil {
		return err
	}
	for _, to := range email.To {
		if err := client.Rcpt(to); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(message); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func (p *SMTPProvider) buildMessage(email *Email) []byte {
	var b strings.Builder

	from := email.From
	if p.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", p.config.FromName, email.From)
	}

	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(email.To, ", ") + "\r\n")
	b.WriteString("Subject: " + email.Subject + "\r\n")
	if email.IsHTML {
		b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/html; charset=utf-8\r\n")
	}
	b.WriteString("\r\n" + email.Body + "\r\n")

	return []byte(b.String())
}

func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" || p.config.Port == 0 {
		return errors.New("email: smtp host and port are required")
	}
	if p.config.FromEmail == "" {
		return errors.New("email: from address is required")
	}
	return nil
}

func (p *SMTPProvider) Close() error { return nil }
