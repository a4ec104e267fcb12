package config

import "time"

// Mailer modes recognized by MAILER_MODE.
const (
	MailerModeSMTP = "smtp"
	MailerModeLog  = "log"
)

// Config holds runtime configuration for the accounts service.
type Config struct {
	Environment         string
	Addr                string
	DatabaseURL         string
	MigrationsDir       string
	JWTSecret           string
	AccessTokenTTL      time.Duration
	VerificationCodeTTL time.Duration
	MailerMode          string
	SMTPHost            string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	MailFrom            string
}

// Load constructs a Config from environment variables.
func Load() Config {
	return Config{
		Environment:         GetString("APP_ENV", "development"),
		Addr:                GetString("API_ADDR", ":4000"),
		DatabaseURL:         GetString("DATABASE_URL", "postgres://p2p:p2p@db:5432/p2p?sslmode=disable"),
		MigrationsDir:       GetString("DB_MIGRATIONS_DIR", "./db/migrations"),
		JWTSecret:           GetString("JWT_SECRET", "supersecuresecret"),
		AccessTokenTTL:      time.Duration(GetInt("ACCESS_TOKEN_TTL_MIN", 15)) * time.Minute,
		VerificationCodeTTL: time.Duration(GetInt("VERIFICATION_CODE_TTL_MIN", 10)) * time.Minute,
		MailerMode:          GetString("MAILER_MODE", MailerModeLog),
		SMTPHost:            GetString("SMTP_HOST", ""),
		SMTPPort:            GetInt("SMTP_PORT", 587),
		SMTPUsername:        GetString("SMTP_USERNAME", ""),
		SMTPPassword:        GetString("SMTP_PASSWORD", ""),
		MailFrom:            GetString("MAIL_FROM", "P2P App <noreply@p2p.com>"),
	}
}
