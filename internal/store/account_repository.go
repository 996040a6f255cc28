/**
 * @description
 * PostgreSQL implementation of the active-account repository. The account
 * pool is the credential inventory client statuses get assigned to; deletes
 * are restricted while references exist.
 */
package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Viikudev/netflix-crm/internal/domain"
)

// PostgresActiveAccountRepository is the PostgreSQL implementation of the
// ActiveAccountRepository.
type PostgresActiveAccountRepository struct {
	db *pgxpool.Pool
}

// NewPostgresActiveAccountRepository creates a new instance.
func NewPostgresActiveAccountRepository(db *pgxpool.Pool) *PostgresActiveAccountRepository {
	return &PostgresActiveAccountRepository{db: db}
}

// Create inserts a new account and returns it as stored.
func (r *PostgresActiveAccountRepository) Create(ctx context.Context, account *domain.ActiveAccount) (*domain.ActiveAccount, error) {
	query := `
        INSERT INTO active_accounts (email, password, expiration_date)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at
    `
	created := *account
	err := r.db.QueryRow(ctx, query,
		account.Email,
		account.Password,
		account.ExpirationDate,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		log.Printf("Error inserting active account: %v", err)
		return nil, err
	}
	return &created, nil
}

// List returns every account in the pool.
func (r *PostgresActiveAccountRepository) List(ctx context.Context) ([]domain.ActiveAccount, error) {
	query := `
        SELECT id, email, password, expiration_date, created_at, updated_at
        FROM active_accounts
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.ActiveAccount
	for rows.Next() {
		var account domain.ActiveAccount
		if err := rows.Scan(
			&account.ID, &account.Email, &account.Password, &account.ExpirationDate,
			&account.CreatedAt, &account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// GetByID retrieves one account. ErrNotFound is returned when the id does
// not exist.
func (r *PostgresActiveAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ActiveAccount, error) {
	query := `
        SELECT id, email, password, expiration_date, created_at, updated_at
        FROM active_accounts
        WHERE id = $1
    `
	var account domain.ActiveAccount
	err := r.db.QueryRow(ctx, query, id).Scan(
		&account.ID, &account.Email, &account.Password, &account.ExpirationDate,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// Update applies a partial update and returns the updated row.
func (r *PostgresActiveAccountRepository) Update(ctx context.Context, id uuid.UUID, patch ActiveAccountPatch) (*domain.ActiveAccount, error) {
	set, args := buildSet(
		column{"email", patch.Email},
		column{"password", patch.Password},
		column{"expiration_date", patch.ExpirationDate},
	)
	if set != "" {
		set += ", "
	}
	set += "updated_at = NOW()"
	args = append(args, id)

	query := fmt.Sprintf(`
        UPDATE active_accounts
        SET %s
        WHERE id = $%d
        RETURNING id, email, password, expiration_date, created_at, updated_at
    `, set, len(args))

	var account domain.ActiveAccount
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&account.ID, &account.Email, &account.Password, &account.ExpirationDate,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// Delete removes an account unless client statuses still reference it, in
// which case ErrReferenced is returned.
func (r *PostgresActiveAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM client_statuses WHERE active_account_id = $1`, id,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrReferenced
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM active_accounts WHERE id = $1`, id)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return ErrReferenced
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
