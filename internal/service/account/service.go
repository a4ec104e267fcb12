// Package account implements the registration, verification and login
// lifecycle for user accounts.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/ichetanmittal/p2p-ios-backend/internal/config"
	"github.com/ichetanmittal/p2p-ios-backend/internal/crypto"
	"github.com/ichetanmittal/p2p-ios-backend/internal/domain"
	"github.com/ichetanmittal/p2p-ios-backend/internal/notifier"
	"github.com/ichetanmittal/p2p-ios-backend/internal/repository"
	"github.com/ichetanmittal/p2p-ios-backend/internal/token"
	"github.com/ichetanmittal/p2p-ios-backend/internal/verification"
)

var (
	ErrDuplicateEmail      = errors.New("account: email already registered")
	ErrDuplicatePhone      = errors.New("account: phone number already registered")
	ErrAccountNotFound     = errors.New("account: not found")
	ErrAlreadyVerified     = errors.New("account: email already verified")
	ErrNoPendingCode       = errors.New("account: no verification code found")
	ErrInvalidCode         = errors.New("account: invalid verification code")
	ErrCodeExpired         = errors.New("account: verification code expired")
	ErrInvalidCredentials  = errors.New("account: invalid credentials")
	ErrNotVerified         = errors.New("account: email not verified")
	ErrNotificationFailure = errors.New("account: could not send verification email")
)

// Service handles the account lifecycle. An account moves from unverified to
// verified exactly once; verified is terminal.
type Service struct {
	accounts repository.AccountRepository
	mailer   notifier.Notifier
	logger   *slog.Logger
	secret   string
	tokenTTL time.Duration
	codeTTL  time.Duration
}

// New constructs a Service.
func New(accounts repository.AccountRepository, mailer notifier.Notifier, logger *slog.Logger, cfg config.Config) Service {
	return Service{
		accounts: accounts,
		mailer:   mailer,
		logger:   logger,
		secret:   cfg.JWTSecret,
		tokenTTL: cfg.AccessTokenTTL,
		codeTTL:  cfg.VerificationCodeTTL,
	}
}

// PublicAccount is the externally visible projection of an account. It never
// carries the password hash or the verification code.
type PublicAccount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func publicView(a *domain.Account) PublicAccount {
	return PublicAccount{ID: a.ID, Name: a.Name, Email: a.Email, Phone: a.Phone}
}

// RegisterInput carries the registration request fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Validate enforces the registration shape contract.
func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required, validation.Length(6, 0)),
		validation.Field(&in.Phone, validation.Required),
	)
}

// Register creates an unverified account and emails its verification code.
//
// Duplicate checks run email first, then phone; the first failure wins. The
// account row is inserted before the notification goes out, so a notifier
// failure leaves an unverifiable account behind. That window is accepted: the
// store's unique indexes remain the authoritative duplicate guard either way.
func (s Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	if err := in.Validate(); err != nil {
		return "", err
	}

	if _, err := s.accounts.FindByEmail(ctx, in.Email); err == nil {
		s.logger.Warn("registration rejected", "reason", "email exists", "email", in.Email)
		return "", ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("lookup email: %w", err)
	}
	if _, err := s.accounts.FindByPhone(ctx, in.Phone); err == nil {
		s.logger.Warn("registration rejected", "reason", "phone exists", "phone", in.Phone)
		return "", ErrDuplicatePhone
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("lookup phone: %w", err)
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	code, expires, err := verification.NewCode(s.codeTTL)
	if err != nil {
		return "", err
	}

	acct, err := domain.NewAccount(uuid.NewString(), in.Name, in.Email, in.Phone, hash, code, expires)
	if err != nil {
		return "", err
	}
	if err := s.accounts.Insert(ctx, acct); err != nil {
		return "", fmt.Errorf("create account: %w", err)
	}
	s.logger.Info("account created", "account_id", acct.ID)

	if err := s.mailer.SendVerificationCode(ctx, acct.Email, code); err != nil {
		s.logger.Error("verification email failed", "account_id", acct.ID, "error", err)
		return "", fmt.Errorf("%w: %v", ErrNotificationFailure, err)
	}
	s.logger.Info("verification email sent", "account_id", acct.ID)

	return acct.ID, nil
}

// Verify checks the submitted code and promotes the account to verified.
// Check order is fixed: unknown account, already verified, missing code pair,
// code mismatch, expiry. An expired code is never accepted even if it matches.
func (s Service) Verify(ctx context.Context, accountID, code string) (PublicAccount, string, error) {
	acct, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return PublicAccount{}, "", ErrAccountNotFound
		}
		return PublicAccount{}, "", fmt.Errorf("lookup account: %w", err)
	}
	if acct.IsVerified {
		return PublicAccount{}, "", ErrAlreadyVerified
	}
	if !acct.HasPendingCode() {
		return PublicAccount{}, "", ErrNoPendingCode
	}
	if *acct.VerificationCode != code {
		s.logger.Warn("verification rejected", "account_id", acct.ID, "reason", "code mismatch")
		return PublicAccount{}, "", ErrInvalidCode
	}
	if acct.CodeExpired(time.Now()) {
		s.logger.Warn("verification rejected", "account_id", acct.ID, "reason", "code expired")
		return PublicAccount{}, "", ErrCodeExpired
	}

	acct.MarkVerified()
	if err := s.accounts.Update(ctx, acct); err != nil {
		return PublicAccount{}, "", fmt.Errorf("persist verification: %w", err)
	}
	s.logger.Info("account verified", "account_id", acct.ID)

	signed, err := token.Generate(acct.ID, s.secret, s.tokenTTL)
	if err != nil {
		return PublicAccount{}, "", fmt.Errorf("issue token: %w", err)
	}
	return publicView(acct), signed, nil
}

// Login authenticates by email or phone and issues a session token.
//
// Unknown identifiers and wrong passwords are indistinguishable; an unverified
// account is reported as such before the password is ever compared.
func (s Service) Login(ctx context.Context, identifier, password string) (PublicAccount, string, error) {
	acct, err := s.accounts.FindByEmailOrPhone(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return PublicAccount{}, "", ErrInvalidCredentials
		}
		return PublicAccount{}, "", fmt.Errorf("lookup account: %w", err)
	}
	if !acct.IsVerified {
		s.logger.Warn("login rejected", "account_id", acct.ID, "reason", "not verified")
		return PublicAccount{}, "", ErrNotVerified
	}
	if err := crypto.ComparePassword(acct.PasswordHash, password); err != nil {
		s.logger.Warn("login rejected", "account_id", acct.ID, "reason", "password mismatch")
		return PublicAccount{}, "", ErrInvalidCredentials
	}

	signed, err := token.Generate(acct.ID, s.secret, s.tokenTTL)
	if err != nil {
		return PublicAccount{}, "", fmt.Errorf("issue token: %w", err)
	}
	s.logger.Info("login succeeded", "account_id", acct.ID)
	return publicView(acct), signed, nil
}

// Authorize validates a bearer token and loads the account it is bound to.
func (s Service) Authorize(ctx context.Context, bearer string) (*domain.Account, error) {
	trimmed := strings.TrimSpace(bearer)
	if trimmed == "" {
		return nil, errors.New("token required")
	}
	claims, err := token.Parse(trimmed, s.secret)
	if err != nil {
		return nil, err
	}
	acct, err := s.accounts.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return acct, nil
}
