/**
 * @description
 * Client-status lifecycle rules: creation with referential checks and
 * expiration inheritance, partial update, deletion, and the expiration
 * sweep. The sweep is an explicit, separately triggerable operation; the
 * listing path invokes it and the cron scheduler runs it on its own.
 */
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Viikudev/netflix-crm/internal/domain"
	"github.com/Viikudev/netflix-crm/internal/store"
	"github.com/Viikudev/netflix-crm/pkg/rabbitmq"
)

// CreateClientStatus validates the request, resolves both foreign
// references, applies the expiration inheritance rule, and persists the
// record. Reference checks run before the write, so a failed creation leaves
// no partial row behind.
func (s *Service) CreateClientStatus(ctx context.Context, req domain.CreateClientStatusRequest) (*domain.ClientStatus, error) {
	if err := domain.Validate(req); err != nil {
		return nil, err
	}

	status := domain.Status(req.Status)
	if !status.IsValid() {
		return nil, statusValidationError()
	}

	accountID, err := uuid.Parse(req.ActiveAccountID)
	if err != nil {
		return nil, domain.NewValidationError("activeAccountId", "must be a valid id")
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, domain.NewValidationError("serviceId", "must be a valid id")
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Entity: "activeAccount"}
		}
		return nil, err
	}

	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Entity: "service"}
		}
		return nil, err
	}

	// Expiration resolution order: caller-supplied date, then the account's
	// expiration date.
	expiration := &account.ExpirationDate
	if req.ExpirationDate != nil {
		parsed, err := domain.ParseDate(*req.ExpirationDate)
		if err != nil {
			return nil, domain.NewValidationError("expirationDate", "must be a valid date")
		}
		expiration = &parsed
	}

	created, err := s.clientStatuses.Create(ctx, &domain.ClientStatus{
		ClientName:      req.ClientName,
		PhoneNumber:     req.PhoneNumber,
		ActiveAccountID: account.ID,
		ServiceID:       svc.ID,
		ProfileName:     req.ProfileName,
		ProfilePIN:      *req.ProfilePIN,
		ExpirationDate:  expiration,
		Status:          status,
	})
	if err != nil {
		return nil, err
	}

	created.ActiveAccount = &domain.ActiveAccountRef{
		ID:             account.ID,
		Email:          account.Email,
		ExpirationDate: account.ExpirationDate,
	}
	created.Service = &domain.ServiceRef{ID: svc.ID, ServiceName: svc.ServiceName}
	return created, nil
}

// ListClientStatuses reconciles expirations and returns every record, newest
// first, with the shallow account and service projections. A failing sweep
// is logged and does not block the read.
func (s *Service) ListClientStatuses(ctx context.Context) ([]domain.ClientStatus, error) {
	if _, err := s.ReconcileExpirations(ctx); err != nil {
		s.logger.Error("expiration sweep failed, continuing with list", "error", err)
	}
	return s.clientStatuses.List(ctx)
}

// UpdateClientStatus applies a partial update. Fields follow the same rules
// as creation; changed references must resolve.
func (s *Service) UpdateClientStatus(ctx context.Context, id uuid.UUID, req domain.UpdateClientStatusRequest) (*domain.ClientStatus, error) {
	if err := domain.Validate(req); err != nil {
		return nil, err
	}

	patch := store.ClientStatusPatch{
		ClientName:  req.ClientName,
		PhoneNumber: req.PhoneNumber,
		ProfileName: req.ProfileName,
		ProfilePIN:  req.ProfilePIN,
	}

	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !status.IsValid() {
			return nil, statusValidationError()
		}
		patch.Status = &status
	}

	if req.ActiveAccountID != nil {
		accountID, err := uuid.Parse(*req.ActiveAccountID)
		if err != nil {
			return nil, domain.NewValidationError("activeAccountId", "must be a valid id")
		}
		if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, &NotFoundError{Entity: "activeAccount"}
			}
			return nil, err
		}
		patch.ActiveAccountID = &accountID
	}

	if req.ServiceID != nil {
		serviceID, err := uuid.Parse(*req.ServiceID)
		if err != nil {
			return nil, domain.NewValidationError("serviceId", "must be a valid id")
		}
		if _, err := s.services.GetByID(ctx, serviceID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, &NotFoundError{Entity: "service"}
			}
			return nil, err
		}
		patch.ServiceID = &serviceID
	}

	if req.ExpirationDate != nil {
		parsed, err := domain.ParseDate(*req.ExpirationDate)
		if err != nil {
			return nil, domain.NewValidationError("expirationDate", "must be a valid date")
		}
		patch.ExpirationDate = &parsed
	}

	return s.clientStatuses.Update(ctx, id, patch)
}

// DeleteClientStatus removes a client status.
func (s *Service) DeleteClientStatus(ctx context.Context, id uuid.UUID) error {
	return s.clientStatuses.Delete(ctx, id)
}

// ReconcileExpirations transitions every past-due, not-yet-expired record to
// EXPIRED and publishes one event per transition. It is idempotent: a second
// run with no newly expired records changes nothing. The returned count is
// the number of transitioned records.
func (s *Service) ReconcileExpirations(ctx context.Context) (int, error) {
	now := s.now()
	expired, err := s.clientStatuses.ExpireOverdue(ctx, now)
	if err != nil {
		return 0, err
	}

	if s.publisher != nil {
		for _, rec := range expired {
			event := rabbitmq.ClientStatusExpiredEvent{
				ClientStatusID: rec.ID,
				ClientName:     rec.ClientName,
				ExpiredAt:      now,
			}
			if err := s.publisher.PublishClientStatusExpired(ctx, event); err != nil {
				// Best-effort: the state transition already happened.
				s.logger.Warn("failed to publish expiration event",
					"client_status_id", rec.ID, "error", err)
			}
		}
	}

	return len(expired), nil
}

func statusValidationError() *domain.ValidationError {
	values := make([]string, 0, len(domain.ValidStatuses()))
	for _, v := range domain.ValidStatuses() {
		values = append(values, string(v))
	}
	return domain.NewValidationError("status",
		fmt.Sprintf("must be one of: %s", strings.Join(values, ", ")))
}
