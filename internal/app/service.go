/**
 * @description
 * This file contains the application service that carries the business logic
 * for the CRM: the client-status lifecycle, the service catalog, and the
 * active-account pool. The Service orchestrates the repositories and applies
 * the rules; transport concerns stay in the api package.
 */
package app

import (
	"log/slog"
	"time"

	"github.com/Viikudev/netflix-crm/internal/store"
	"github.com/Viikudev/netflix-crm/pkg/rabbitmq"
)

// Service provides the business logic for the CRM entities.
type Service struct {
	clientStatuses store.ClientStatusRepository
	services       store.ServiceRepository
	accounts       store.ActiveAccountRepository
	actors         store.ActorRepository
	publisher      rabbitmq.Publisher
	logger         *slog.Logger

	// now is injectable so expiration behavior can be tested at fixed points
	// in time.
	now func() time.Time
}

// NewService creates a new application service. publisher may be nil when no
// broker is configured; expiration events are then skipped.
func NewService(
	clientStatuses store.ClientStatusRepository,
	services store.ServiceRepository,
	accounts store.ActiveAccountRepository,
	actors store.ActorRepository,
	publisher rabbitmq.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		clientStatuses: clientStatuses,
		services:       services,
		accounts:       accounts,
		actors:         actors,
		publisher:      publisher,
		logger:         logger,
		now:            time.Now,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
