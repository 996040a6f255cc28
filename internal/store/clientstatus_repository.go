/**
 * @description
 * PostgreSQL implementation of the client-status repository. Listings join
 * the referenced account and service so callers get the shallow projections
 * in one round trip, and the expiration sweep is a single bulk UPDATE.
 */
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Viikudev/netflix-crm/internal/domain"
)

// PostgresClientStatusRepository is the PostgreSQL implementation of the
// ClientStatusRepository.
type PostgresClientStatusRepository struct {
	db *pgxpool.Pool
}

// NewPostgresClientStatusRepository creates a new instance.
func NewPostgresClientStatusRepository(db *pgxpool.Pool) *PostgresClientStatusRepository {
	return &PostgresClientStatusRepository{db: db}
}

// Create inserts a new client status and returns it as stored.
func (r *PostgresClientStatusRepository) Create(ctx context.Context, cs *domain.ClientStatus) (*domain.ClientStatus, error) {
	query := `
        INSERT INTO client_statuses
            (client_name, phone_number, active_account_id, service_id, profile_name, profile_pin, expiration_date, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at
    `
	created := *cs
	err := r.db.QueryRow(ctx, query,
		cs.ClientName,
		cs.PhoneNumber,
		cs.ActiveAccountID,
		cs.ServiceID,
		cs.ProfileName,
		cs.ProfilePIN,
		cs.ExpirationDate,
		cs.Status,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		log.Printf("Error inserting client status: %v", err)
		return nil, err
	}
	return &created, nil
}

// List returns every client status, newest first, enriched with the shallow
// account and service projections.
func (r *PostgresClientStatusRepository) List(ctx context.Context) ([]domain.ClientStatus, error) {
	query := `
        SELECT cs.id, cs.client_name, cs.phone_number, cs.active_account_id, cs.service_id,
               cs.profile_name, cs.profile_pin, cs.expiration_date, cs.status,
               cs.created_at, cs.updated_at,
               aa.id, aa.email, aa.expiration_date,
               s.id, s.service_name
        FROM client_statuses cs
        LEFT JOIN active_accounts aa ON aa.id = cs.active_account_id
        LEFT JOIN services s ON s.id = cs.service_id
        ORDER BY cs.created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ClientStatus
	for rows.Next() {
		var cs domain.ClientStatus
		var accountID *uuid.UUID
		var accountEmail *string
		var accountExpiration *time.Time
		var serviceID *uuid.UUID
		var serviceName *string

		if err := rows.Scan(
			&cs.ID, &cs.ClientName, &cs.PhoneNumber, &cs.ActiveAccountID, &cs.ServiceID,
			&cs.ProfileName, &cs.ProfilePIN, &cs.ExpirationDate, &cs.Status,
			&cs.CreatedAt, &cs.UpdatedAt,
			&accountID, &accountEmail, &accountExpiration,
			&serviceID, &serviceName,
		); err != nil {
			return nil, err
		}

		if accountID != nil && accountEmail != nil && accountExpiration != nil {
			cs.ActiveAccount = &domain.ActiveAccountRef{
				ID:             *accountID,
				Email:          *accountEmail,
				ExpirationDate: *accountExpiration,
			}
		}
		if serviceID != nil && serviceName != nil {
			cs.Service = &domain.ServiceRef{ID: *serviceID, ServiceName: *serviceName}
		}
		items = append(items, cs)
	}
	return items, rows.Err()
}

// Update applies a partial update and returns the updated row. ErrNotFound is
// returned when the id does not exist.
func (r *PostgresClientStatusRepository) Update(ctx context.Context, id uuid.UUID, patch ClientStatusPatch) (*domain.ClientStatus, error) {
	set, args := buildSet(
		column{"client_name", patch.ClientName},
		column{"phone_number", patch.PhoneNumber},
		column{"active_account_id", patch.ActiveAccountID},
		column{"service_id", patch.ServiceID},
		column{"profile_name", patch.ProfileName},
		column{"profile_pin", patch.ProfilePIN},
		column{"expiration_date", patch.ExpirationDate},
		column{"status", patch.Status},
	)
	if set != "" {
		set += ", "
	}
	set += "updated_at = NOW()"
	args = append(args, id)

	query := fmt.Sprintf(`
        UPDATE client_statuses
        SET %s
        WHERE id = $%d
        RETURNING id, client_name, phone_number, active_account_id, service_id,
                  profile_name, profile_pin, expiration_date, status, created_at, updated_at
    `, set, len(args))

	var cs domain.ClientStatus
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&cs.ID, &cs.ClientName, &cs.PhoneNumber, &cs.ActiveAccountID, &cs.ServiceID,
		&cs.ProfileName, &cs.ProfilePIN, &cs.ExpirationDate, &cs.Status,
		&cs.CreatedAt, &cs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cs, nil
}

// Delete removes a client status. ErrNotFound is returned when no row was
// deleted.
func (r *PostgresClientStatusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM client_statuses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ExpireOverdue marks every past-due, not-yet-expired record as EXPIRED and
// returns the transitioned rows. Running it again with no newly expired
// records matches nothing and changes nothing.
func (r *PostgresClientStatusRepository) ExpireOverdue(ctx context.Context, now time.Time) ([]ExpiredClientStatus, error) {
	query := `
        UPDATE client_statuses
        SET status = $1, updated_at = NOW()
        WHERE expiration_date < $2 AND status <> $1
        RETURNING id, client_name
    `
	rows, err := r.db.Query(ctx, query, domain.StatusExpired, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expired []ExpiredClientStatus
	for rows.Next() {
		var rec ExpiredClientStatus
		if err := rows.Scan(&rec.ID, &rec.ClientName); err != nil {
			return nil, err
		}
		expired = append(expired, rec)
	}
	return expired, rows.Err()
}

// column pairs a column name with an optional new value for buildSet.
type column struct {
	name  string
	value interface{}
}

// buildSet assembles the SET clause for a partial update, skipping nil
// values. The returned clause is empty when no column is set.
func buildSet(cols ...column) (string, []interface{}) {
	var set string
	var args []interface{}
	for _, c := range cols {
		if isNilPointer(c.value) {
			continue
		}
		if set != "" {
			set += ", "
		}
		args = append(args, c.value)
		set += fmt.Sprintf("%s = $%d", c.name, len(args))
	}
	return set, args
}

func isNilPointer(v interface{}) bool {
	switch p := v.(type) {
	case *string:
		return p == nil
	case *int:
		return p == nil
	case *int64:
		return p == nil
	case *time.Time:
		return p == nil
	case *uuid.UUID:
		return p == nil
	case *domain.Status:
		return p == nil
	default:
		return v == nil
	}
}
