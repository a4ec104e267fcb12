package repository

import (
	"context"

	"github.com/ichetanmittal/p2p-ios-backend/internal/domain"
)

// AccountRepository persists accounts.
type AccountRepository interface {
	Insert(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Account, error)
	// FindByEmailOrPhone resolves a login identifier in a single disjunctive
	// query: case-insensitive against email, exact against phone.
	FindByEmailOrPhone(ctx context.Context, identifier string) (*domain.Account, error)
}
