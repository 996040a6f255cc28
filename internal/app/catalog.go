/**
 * @description
 * Service-catalog rules. Mutations require an already-resolved authenticated
 * actor; prices arrive in major units at the boundary and are stored in
 * cents. Deletion is restricted while client statuses reference the service.
 */
package app

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/Viikudev/netflix-crm/internal/domain"
	"github.com/Viikudev/netflix-crm/internal/store"
)

const defaultCurrency = "USD"

// toMinorUnits converts a major-unit price (e.g. 19.99) to cents (1999).
func toMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateService persists a new catalog service on behalf of actor.
func (s *Service) CreateService(ctx context.Context, actor domain.Actor, req domain.CreateServiceRequest) (*domain.Service, error) {
	if actor.ID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if err := domain.Validate(req); err != nil {
		return nil, err
	}

	currency := defaultCurrency
	if req.Currency != nil && *req.Currency != "" {
		currency = *req.Currency
	}

	// The auth service owns identity; mirror the actor locally so the
	// created_by reference resolves on a fresh database.
	if err := s.actors.Upsert(ctx, actor); err != nil {
		return nil, err
	}

	created, err := s.services.Create(ctx, &domain.Service{
		ServiceName: req.ServiceName,
		Price:       toMinorUnits(*req.Price),
		Currency:    currency,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatedByID: actor.ID,
	})
	if err != nil {
		return nil, err
	}

	created.CreatedBy = &domain.ActorRef{ID: actor.ID, Name: actor.Name}
	return created, nil
}

// ListServices returns the full catalog with the createdBy projection.
// Reads are public; stored prices come back in minor units unconverted.
func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.List(ctx)
}

// UpdateService applies a partial update on behalf of actor. A supplied
// price is converted to cents before persistence.
func (s *Service) UpdateService(ctx context.Context, actor domain.Actor, id uuid.UUID, req domain.UpdateServiceRequest) (*domain.Service, error) {
	if actor.ID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if err := domain.Validate(req); err != nil {
		return nil, err
	}

	patch := store.ServicePatch{
		ServiceName: req.ServiceName,
		Currency:    req.Currency,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if req.Price != nil {
		cents := toMinorUnits(*req.Price)
		patch.Price = &cents
	}

	return s.services.Update(ctx, id, patch)
}

// DeleteService removes a service on behalf of actor. ErrReferenced is
// returned while client statuses still reference it.
func (s *Service) DeleteService(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if actor.ID == uuid.Nil {
		return ErrUnauthorized
	}
	err := s.services.Delete(ctx, id)
	if errors.Is(err, store.ErrReferenced) {
		return ErrReferenced
	}
	return err
}
