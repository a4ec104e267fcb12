// Package notifier delivers verification codes to users out-of-band.
//
// Two implementations exist: SMTPMailer for real delivery and LogMailer for
// development and tests. The mode is chosen once at startup from
// configuration, never per call.
package notifier

import (
	"context"
	"strings"
	"text/template"
	"time"
)

// Notifier sends a verification code to a destination email address.
type Notifier interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

const verificationSubject = "Verify your email address"

// emailParams is passed as data when executing the email template.
type emailParams struct {
	Code      string
	ExpiresIn time.Duration
}

var verificationTemplate = template.Must(template.New("verification").Parse(`Welcome to P2P!

Your verification code is: {{.Code}}

This code will expire in {{printf "%.f" .ExpiresIn.Minutes}} minutes.

If you did not create an account, you can ignore this email.
`))

// renderVerificationBody produces the plain-text email body for a code.
func renderVerificationBody(code string, expiresIn time.Duration) (string, error) {
	var b strings.Builder
	if err := verificationTemplate.Execute(&b, emailParams{Code: code, ExpiresIn: expiresIn}); err != nil {
		return "", err
	}
	return b.String(), nil
}
