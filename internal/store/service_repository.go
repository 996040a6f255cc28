/**
 * @description
 * PostgreSQL implementation of the service-catalog repository. Listings join
 * the users table for the createdBy projection; deletes are restricted while
 * client statuses still reference the service.
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

// PostgresServiceRepository is the PostgreSQL implementation of the
// ServiceRepository.
type PostgresServiceRepository struct {
	db *pgxpool.Pool
}

// NewPostgresServiceRepository creates a new instance.
func NewPostgresServiceRepository(db *pgxpool.Pool) *PostgresServiceRepository {
	return &PostgresServiceRepository{db: db}
}

// Create inserts a new service and returns it as stored.
func (r *PostgresServiceRepository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	query := `
        INSERT INTO services (service_name, price, currency, description, image_url, created_by)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at
    `
	created := *svc
	err := r.db.QueryRow(ctx, query,
		svc.ServiceName,
		svc.Price,
		svc.Currency,
		svc.Description,
		svc.ImageURL,
		svc.CreatedByID,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		log.Printf("Error inserting service: %v", err)
		return nil, err
	}
	return &created, nil
}

// List returns every service with the creating actor's id and name when the
// auth service has a matching user row.
func (r *PostgresServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	query := `
        SELECT s.id, s.service_name, s.price, s.currency, s.description, s.image_url,
               s.created_by, s.created_at, s.updated_at,
               u.id, u.name
        FROM services s
        LEFT JOIN users u ON u.id = s.created_by
        ORDER BY s.created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		var svc domain.Service
		var userID *uuid.UUID
		var userName *string
		if err := rows.Scan(
			&svc.ID, &svc.ServiceName, &svc.Price, &svc.Currency, &svc.Description, &svc.ImageURL,
			&svc.CreatedByID, &svc.CreatedAt, &svc.UpdatedAt,
			&userID, &userName,
		); err != nil {
			return nil, err
		}
		if userID != nil {
			name := ""
			if userName != nil {
				name = *userName
			}
			svc.CreatedBy = &domain.ActorRef{ID: *userID, Name: name}
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

// GetByID retrieves one service. ErrNotFound is returned when the id does
// not exist.
func (r *PostgresServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	query := `
        SELECT id, service_name, price, currency, description, image_url, created_by, created_at, updated_at
        FROM services
        WHERE id = $1
    `
	var svc domain.Service
	err := r.db.QueryRow(ctx, query, id).Scan(
		&svc.ID, &svc.ServiceName, &svc.Price, &svc.Currency, &svc.Description, &svc.ImageURL,
		&svc.CreatedByID, &svc.CreatedAt, &svc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &svc, nil
}

// Update applies a partial update and returns the updated row.
func (r *PostgresServiceRepository) Update(ctx context.Context, id uuid.UUID, patch ServicePatch) (*domain.Service, error) {
	set, args := buildSet(
		column{"service_name", patch.ServiceName},
		column{"price", patch.Price},
		column{"currency", patch.Currency},
		column{"description", patch.Description},
		column{"image_url", patch.ImageURL},
	)
	if set != "" {
		set += ", "
	}
	set += "updated_at = NOW()"
	args = append(args, id)

	query := fmt.Sprintf(`
        UPDATE services
        SET %s
        WHERE id = $%d
        RETURNING id, service_name, price, currency, description, image_url, created_by, created_at, updated_at
    `, set, len(args))

	var svc domain.Service
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&svc.ID, &svc.ServiceName, &svc.Price, &svc.Currency, &svc.Description, &svc.ImageURL,
		&svc.CreatedByID, &svc.CreatedAt, &svc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &svc, nil
}

// Delete removes a service unless client statuses still reference it, in
// which case ErrReferenced is returned.
func (r *PostgresServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM client_statuses WHERE service_id = $1`, id,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrReferenced
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		// Foreign-key backstop for a reference created between the check and
		// the delete.
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
