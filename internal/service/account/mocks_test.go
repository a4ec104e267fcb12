package account

import (
	"context"
	"io"
	"strings"
	"sync"

	"log/slog"

	"github.com/ichetanmittal/p2p-ios-backend/internal/domain"
	"github.com/ichetanmittal/p2p-ios-backend/internal/repository"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type accountRepoMock struct {
	insertFunc             func(context.Context, *domain.Account) error
	updateFunc             func(context.Context, *domain.Account) error
	findByIDFunc           func(context.Context, string) (*domain.Account, error)
	findByEmailFunc        func(context.Context, string) (*domain.Account, error)
	findByPhoneFunc        func(context.Context, string) (*domain.Account, error)
	findByEmailOrPhoneFunc func(context.Context, string) (*domain.Account, error)
}

func (m accountRepoMock) Insert(ctx context.Context, account *domain.Account) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, account)
	}
	return nil
}

func (m accountRepoMock) Update(ctx context.Context, account *domain.Account) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, account)
	}
	return nil
}

func (m accountRepoMock) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m accountRepoMock) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m accountRepoMock) FindByPhone(ctx context.Context, phone string) (*domain.Account, error) {
	if m.findByPhoneFunc != nil {
		return m.findByPhoneFunc(ctx, phone)
	}
	return nil, repository.ErrNotFound
}

func (m accountRepoMock) FindByEmailOrPhone(ctx context.Context, identifier string) (*domain.Account, error) {
	if m.findByEmailOrPhoneFunc != nil {
		return m.findByEmailOrPhoneFunc(ctx, identifier)
	}
	return nil, repository.ErrNotFound
}

type mailerMock struct {
	sendFunc func(context.Context, string, string) error

	lastEmail string
	lastCode  string
}

func (m *mailerMock) SendVerificationCode(ctx context.Context, email, code string) error {
	m.lastEmail = email
	m.lastCode = code
	if m.sendFunc != nil {
		return m.sendFunc(ctx, email, code)
	}
	return nil
}

// memAccountRepo is an in-memory store used by the end-to-end lifecycle test.
type memAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: make(map[string]*domain.Account)}
}

func clone(a *domain.Account) *domain.Account {
	c := *a
	if a.VerificationCode != nil {
		code := *a.VerificationCode
		c.VerificationCode = &code
	}
	if a.VerificationCodeExpires != nil {
		exp := *a.VerificationCodeExpires
		c.VerificationCodeExpires = &exp
	}
	return &c
}

func (m *memAccountRepo) Insert(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.accounts {
		if existing.Email == account.Email || existing.Phone == account.Phone {
			return repository.ErrConstraintViolation
		}
	}
	m.accounts[account.ID] = clone(account)
	return nil
}

func (m *memAccountRepo) Update(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return repository.ErrNotFound
	}
	m.accounts[account.ID] = clone(account)
	return nil
}

func (m *memAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok {
		return clone(a), nil
	}
	return nil, repository.ErrNotFound
}

func (m *memAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == strings.ToLower(email) {
			return clone(a), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memAccountRepo) FindByPhone(_ context.Context, phone string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Phone == phone {
			return clone(a), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memAccountRepo) FindByEmailOrPhone(_ context.Context, identifier string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == strings.ToLower(identifier) || a.Phone == identifier {
			return clone(a), nil
		}
	}
	return nil, repository.ErrNotFound
}
