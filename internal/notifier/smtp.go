package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPMailer delivers verification codes over SMTP.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	codeTTL  time.Duration
}

// NewSMTPMailer constructs a production mailer.
func NewSMTPMailer(host string, port int, username, password, from string, codeTTL time.Duration) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		codeTTL:  codeTTL,
	}
}

// SendVerificationCode emails the code to the given address. Failures are not
// retried here; delivery retry policy belongs to the mail infrastructure.
func (m *SMTPMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	body, err := renderVerificationBody(code, m.codeTTL)
	if err != nil {
		return fmt.Errorf("render verification email: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(verificationSubject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("configure smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}
