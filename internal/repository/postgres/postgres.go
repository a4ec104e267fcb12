package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ichetanmittal/p2p-ios-backend/internal/domain"
	"github.com/ichetanmittal/p2p-ios-backend/internal/repository"
)

// Repository implements persistence interfaces on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ensure Repository satisfies interfaces.
var _ repository.AccountRepository = (*Repository)(nil)

const (
	accountColumns = `id, name, email, phone, password_hash, is_verified,
		verification_code, verification_code_expires, created_at, updated_at`

	accountInsert = `INSERT INTO accounts (
		id, name, email, phone, password_hash, is_verified,
		verification_code, verification_code_expires, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	RETURNING created_at, updated_at`

	accountUpdate = `UPDATE accounts SET
		name = $2, email = $3, phone = $4, password_hash = $5, is_verified = $6,
		verification_code = $7, verification_code_expires = $8, updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at`
)

// Insert persists a new account. Timestamps are assigned by the database and
// written back to the passed account.
func (r *Repository) Insert(ctx context.Context, account *domain.Account) error {
	row := r.pool.QueryRow(ctx, accountInsert,
		account.ID,
		account.Name,
		account.Email,
		account.Phone,
		account.PasswordHash,
		account.IsVerified,
		account.VerificationCode,
		account.VerificationCodeExpires,
	)
	if err := row.Scan(&account.CreatedAt, &account.UpdatedAt); err != nil {
		return mapConstraintError(err)
	}
	return nil
}

// Update persists mutable account fields and refreshes updated_at.
func (r *Repository) Update(ctx context.Context, account *domain.Account) error {
	row := r.pool.QueryRow(ctx, accountUpdate,
		account.ID,
		account.Name,
		account.Email,
		account.Phone,
		account.PasswordHash,
		account.IsVerified,
		account.VerificationCode,
		account.VerificationCodeExpires,
	)
	if err := row.Scan(&account.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return mapConstraintError(err)
	}
	return nil
}

// FindByID retrieves an account by identifier.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanAccount(r.pool.QueryRow(ctx, query, id))
}

// FindByEmail fetches an account by case-normalized email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE email = lower($1)`
	return r.scanAccount(r.pool.QueryRow(ctx, query, email))
}

// FindByPhone fetches an account by exact phone match.
func (r *Repository) FindByPhone(ctx context.Context, phone string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE phone = $1`
	return r.scanAccount(r.pool.QueryRow(ctx, query, phone))
}

// FindByEmailOrPhone resolves a login identifier against email or phone in one query.
func (r *Repository) FindByEmailOrPhone(ctx context.Context, identifier string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts
		WHERE email = lower($1) OR phone = $1
		LIMIT 1`
	return r.scanAccount(r.pool.QueryRow(ctx, query, identifier))
}

func (r *Repository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Phone,
		&a.PasswordHash,
		&a.IsVerified,
		&a.VerificationCode,
		&a.VerificationCodeExpires,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// mapConstraintError translates unique-index violations into the sentinel the
// service layer understands.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return repository.ErrConstraintViolation
		}
	}
	return err
}
