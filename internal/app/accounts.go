/**
 * @description
 * Active-account pool rules. These operations carry no authentication
 * requirement, unlike the service catalog. An account's expiration date must
 * always parse to a timestamp; it is the default inherited by client statuses
 * created without one.
 */
package app

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Viikudev/netflix-crm/internal/domain"
	"github.com/Viikudev/netflix-crm/internal/store"
)

// CreateActiveAccount persists a new credential pool entry.
func (s *Service) CreateActiveAccount(ctx context.Context, req domain.CreateActiveAccountRequest) (*domain.ActiveAccount, error) {
	if err := domain.Validate(req); err != nil {
		return nil, err
	}

	expiration, err := domain.ParseDate(req.ExpirationDate)
	if err != nil {
		return nil, domain.NewValidationError("expirationDate", "must be a valid date")
	}

	return s.accounts.Create(ctx, &domain.ActiveAccount{
		Email:          req.Email,
		Password:       req.Password,
		ExpirationDate: expiration,
	})
}

// ListActiveAccounts returns every account in the pool.
func (s *Service) ListActiveAccounts(ctx context.Context) ([]domain.ActiveAccount, error) {
	return s.accounts.List(ctx)
}

// UpdateActiveAccount applies a partial update.
func (s *Service) UpdateActiveAccount(ctx context.Context, id uuid.UUID, req domain.UpdateActiveAccountRequest) (*domain.ActiveAccount, error) {
	if err := domain.Validate(req); err != nil {
		return nil, err
	}

	patch := store.ActiveAccountPatch{
		Email:    req.Email,
		Password: req.Password,
	}
	if req.ExpirationDate != nil {
		expiration, err := domain.ParseDate(*req.ExpirationDate)
		if err != nil {
			return nil, domain.NewValidationError("expirationDate", "must be a valid date")
		}
		patch.ExpirationDate = &expiration
	}

	return s.accounts.Update(ctx, id, patch)
}

// DeleteActiveAccount removes an account. ErrReferenced is returned while
// client statuses still reference it.
func (s *Service) DeleteActiveAccount(ctx context.Context, id uuid.UUID) error {
	err := s.accounts.Delete(ctx, id)
	if errors.Is(err, store.ErrReferenced) {
		return ErrReferenced
	}
	return err
}
