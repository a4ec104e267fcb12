package domain

import (
	"errors"
	"strings"
	"time"
)

// Account represents a registered user identity and its verification state.
//
// Exactly one of the following holds at any time: the account is verified, or
// both VerificationCode and VerificationCodeExpires are present. NewAccount and
// MarkVerified are the only paths that touch that pair.
type Account struct {
	ID                      string
	Name                    string
	Email                   string
	Phone                   string
	PasswordHash            []byte
	IsVerified              bool
	VerificationCode        *string
	VerificationCodeExpires *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

var (
	// ErrMissingField indicates a required account field was empty.
	ErrMissingField = errors.New("domain: missing required account field")
	// ErrMissingCode indicates an unverified account was built without a code pair.
	ErrMissingCode = errors.New("domain: verification code and expiry are required")
)

// NewAccount builds an unverified account with a pending verification code.
// The email is case-normalized here so every lookup and uniqueness check works
// on the stored form.
func NewAccount(id, name, email, phone string, passwordHash []byte, code string, expires time.Time) (*Account, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)
	if id == "" || name == "" || email == "" || phone == "" || len(passwordHash) == 0 {
		return nil, ErrMissingField
	}
	if code == "" || expires.IsZero() {
		return nil, ErrMissingCode
	}
	return &Account{
		ID:                      id,
		Name:                    name,
		Email:                   email,
		Phone:                   phone,
		PasswordHash:            passwordHash,
		IsVerified:              false,
		VerificationCode:        &code,
		VerificationCodeExpires: &expires,
	}, nil
}

// MarkVerified transitions the account to the verified state and clears the
// code pair. Verified is terminal; calling this again is a no-op.
func (a *Account) MarkVerified() {
	a.IsVerified = true
	a.VerificationCode = nil
	a.VerificationCodeExpires = nil
}

// HasPendingCode reports whether a verification code pair is present.
func (a Account) HasPendingCode() bool {
	return a.VerificationCode != nil && a.VerificationCodeExpires != nil
}

// CodeExpired reports whether the verification code is expired relative to now.
// Expiry is exclusive: a code checked exactly at its expiry instant is still valid.
func (a Account) CodeExpired(now time.Time) bool {
	if a.VerificationCodeExpires == nil {
		return false
	}
	return now.UTC().After(a.VerificationCodeExpires.UTC())
}
