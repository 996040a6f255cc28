/**
 * @description
 * PostgreSQL mirror of externally-authenticated actors. The auth service owns
 * identity; this table only records the actors seen on protected mutations so
 * catalog rows can reference their creator. Upserted on every protected write,
 * so a fresh database never rejects the services.created_by foreign key.
 */
package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Viikudev/netflix-crm/internal/domain"
)

// PostgresActorRepository is the PostgreSQL implementation of the
// ActorRepository.
type PostgresActorRepository struct {
	db *pgxpool.Pool
}

// NewPostgresActorRepository creates a new instance.
func NewPostgresActorRepository(db *pgxpool.Pool) *PostgresActorRepository {
	return &PostgresActorRepository{db: db}
}

// Upsert records the actor, refreshing email and name on repeat visits.
func (r *PostgresActorRepository) Upsert(ctx context.Context, actor domain.Actor) error {
	query := `
        INSERT INTO users (id, email, name)
        VALUES ($1, $2, $3)
        ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name
    `
	_, err := r.db.Exec(ctx, query, actor.ID, actor.Email, actor.Name)
	return err
}
