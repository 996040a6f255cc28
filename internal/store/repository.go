/**
 * @description
 * This file defines the repository interfaces the application layer depends
 * on, the patch shapes used for partial updates, and the sentinel errors the
 * storage implementations report. Keeping the contract here decouples the
 * business logic from the PostgreSQL implementations and makes it easy to
 * stub in tests.
 */
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Viikudev/netflix-crm/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrReferenced is returned when a delete is rejected because client statuses
// still reference the row (restrict-on-delete policy).
var ErrReferenced = errors.New("record is referenced by client statuses")

// ClientStatusPatch carries the subset of client-status fields to update.
// Nil fields are left unchanged.
type ClientStatusPatch struct {
	ClientName      *string
	PhoneNumber     *string
	ActiveAccountID *uuid.UUID
	ServiceID       *uuid.UUID
	ProfileName     *string
	ProfilePIN      *int
	ExpirationDate  *time.Time
	Status          *domain.Status
}

// ServicePatch carries the subset of service fields to update. Price is
// already converted to minor units by the caller.
type ServicePatch struct {
	ServiceName *string
	Price       *int64
	Currency    *string
	Description *string
	ImageURL    *string
}

// ActiveAccountPatch carries the subset of account fields to update.
type ActiveAccountPatch struct {
	Email          *string
	Password       *string
	ExpirationDate *time.Time
}

// ExpiredClientStatus identifies a record transitioned by the expiration
// sweep, with enough context to publish an event about it.
type ExpiredClientStatus struct {
	ID         uuid.UUID
	ClientName string
}

// ClientStatusRepository defines storage operations for client statuses.
type ClientStatusRepository interface {
	Create(ctx context.Context, cs *domain.ClientStatus) (*domain.ClientStatus, error)
	List(ctx context.Context) ([]domain.ClientStatus, error)
	Update(ctx context.Context, id uuid.UUID, patch ClientStatusPatch) (*domain.ClientStatus, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ExpireOverdue transitions every record whose expiration date is strictly
	// before now and whose status is not already EXPIRED. It returns the
	// transitioned records and is a no-op when none match.
	ExpireOverdue(ctx context.Context, now time.Time) ([]ExpiredClientStatus, error)
}

// ServiceRepository defines storage operations for catalog services.
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	Update(ctx context.Context, id uuid.UUID, patch ServicePatch) (*domain.Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ActorRepository mirrors externally-authenticated actors into local storage
// so rows they create can reference them.
type ActorRepository interface {
	Upsert(ctx context.Context, actor domain.Actor) error
}

// ActiveAccountRepository defines storage operations for the account pool.
type ActiveAccountRepository interface {
	Create(ctx context.Context, account *domain.ActiveAccount) (*domain.ActiveAccount, error)
	List(ctx context.Context) ([]domain.ActiveAccount, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ActiveAccount, error)
	Update(ctx context.Context, id uuid.UUID, patch ActiveAccountPatch) (*domain.ActiveAccount, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
