package notifier

import (
	"context"
	"log/slog"
	"time"
)

// LogMailer writes verification codes to the log instead of delivering them.
// It stands in for a real transport in development and tests.
type LogMailer struct {
	logger  *slog.Logger
	codeTTL time.Duration
}

// NewLogMailer constructs a development mailer.
func NewLogMailer(logger *slog.Logger, codeTTL time.Duration) *LogMailer {
	return &LogMailer{logger: logger, codeTTL: codeTTL}
}

// SendVerificationCode logs the rendered email instead of sending it.
func (m *LogMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	body, err := renderVerificationBody(code, m.codeTTL)
	if err != nil {
		return err
	}
	m.logger.Info("verification email (not sent)", "to", email, "subject", verificationSubject, "body", body)
	return nil
}
