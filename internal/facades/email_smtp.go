package facades

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/aprilmaraat/simple-account-api/internal/logger"
)

// sendMailFunc matches smtp.SendMail; injectable for tests.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier delivers welcome mail directly over SMTP.
type SMTPNotifier struct {
	host     string
	port     int
	email    string // sender address and auth identity
	name     string // sender display name
	password string
	sendMail sendMailFunc
}

// NewSMTPNotifier creates an SMTP-backed notifier.
func NewSMTPNotifier(host string, port int, email, name, password string) *SMTPNotifier {
	return &SMTPNotifier{
		host:     host,
		port:     port,
		email:    email,
		name:     name,
		password: password,
		sendMail: smtp.SendMail,
	}
}

// Send delivers the welcome message to toAddress.
func (n *SMTPNotifier) Send(ctx context.Context, toAddress, displayName string) error {
	addr := fmt.Sprintf("%s:%d", n.host, n.port)

	var auth smtp.Auth
	if n.password != "" {
		auth = smtp.PlainAuth("", n.email, n.password, n.host)
	}

	msg := welcomeMessage(n.email, n.name, toAddress, displayName)

	err := n.sendMail(addr, auth, n.email, []string{toAddress}, msg)

	logger.Log.Infow(
		"smtp send",
		"to", toAddress,
		"addr", addr,
		"error", err,
	)

	if err != nil {
		return fmt.Errorf("smtp send to %s: %w", toAddress, err)
	}
	return nil
}

// welcomeMessage renders the RFC 5322 welcome mail body.
func welcomeMessage(fromEmail, fromName, toAddress, displayName string) []byte {
	return fmt.Appendf(nil,
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: Welcome to Simple Account\r\n"+
			"\r\n"+
			"Hello %s,\r\n"+
			"\r\n"+
			"Your account has been registered successfully.\r\n",
		fromName, fromEmail, toAddress, displayName)
}
