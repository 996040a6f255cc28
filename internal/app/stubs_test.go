package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Viikudev/netflix-crm/internal/domain"
	"github.com/Viikudev/netflix-crm/internal/store"
	"github.com/Viikudev/netflix-crm/pkg/rabbitmq"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubClientStatusRepo struct {
	created      *domain.ClientStatus
	createErr    error
	listResult   []domain.ClientStatus
	listErr      error
	updated      *domain.ClientStatus
	updateErr    error
	updatePatch  store.ClientStatusPatch
	deleteErr    error
	expired      []store.ExpiredClientStatus
	expireErr    error
	expireCalls  int
	lastExpireAt time.Time
}

func (r *stubClientStatusRepo) Create(ctx context.Context, cs *domain.ClientStatus) (*domain.ClientStatus, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	created := *cs
	created.ID = uuid.New()
	r.created = &created
	return &created, nil
}

func (r *stubClientStatusRepo) List(ctx context.Context) ([]domain.ClientStatus, error) {
	return r.listResult, r.listErr
}

func (r *stubClientStatusRepo) Update(ctx context.Context, id uuid.UUID, patch store.ClientStatusPatch) (*domain.ClientStatus, error) {
	r.updatePatch = patch
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	if r.updated != nil {
		return r.updated, nil
	}
	return &domain.ClientStatus{ID: id}, nil
}

func (r *stubClientStatusRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.deleteErr
}

func (r *stubClientStatusRepo) ExpireOverdue(ctx context.Context, now time.Time) ([]store.ExpiredClientStatus, error) {
	r.expireCalls++
	r.lastExpireAt = now
	if r.expireErr != nil {
		return nil, r.expireErr
	}
	// Mirror the idempotent UPDATE: a second sweep finds nothing left.
	expired := r.expired
	r.expired = nil
	return expired, nil
}

type stubServiceRepo struct {
	byID      map[uuid.UUID]*domain.Service
	created   *domain.Service
	createErr error
	deleteErr error
}

func (r *stubServiceRepo) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	created := *svc
	created.ID = uuid.New()
	r.created = &created
	return &created, nil
}

func (r *stubServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	for _, svc := range r.byID {
		out = append(out, *svc)
	}
	return out, nil
}

func (r *stubServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	if svc, ok := r.byID[id]; ok {
		return svc, nil
	}
	return nil, store.ErrNotFound
}

func (r *stubServiceRepo) Update(ctx context.Context, id uuid.UUID, patch store.ServicePatch) (*domain.Service, error) {
	if svc, ok := r.byID[id]; ok {
		return svc, nil
	}
	return nil, store.ErrNotFound
}

func (r *stubServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.deleteErr
}

type stubAccountRepo struct {
	byID      map[uuid.UUID]*domain.ActiveAccount
	created   *domain.ActiveAccount
	deleteErr error
}

func (r *stubAccountRepo) Create(ctx context.Context, account *domain.ActiveAccount) (*domain.ActiveAccount, error) {
	created := *account
	created.ID = uuid.New()
	r.created = &created
	return &created, nil
}

func (r *stubAccountRepo) List(ctx context.Context) ([]domain.ActiveAccount, error) {
	var out []domain.ActiveAccount
	for _, acct := range r.byID {
		out = append(out, *acct)
	}
	return out, nil
}

func (r *stubAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ActiveAccount, error) {
	if acct, ok := r.byID[id]; ok {
		return acct, nil
	}
	return nil, store.ErrNotFound
}

func (r *stubAccountRepo) Update(ctx context.Context, id uuid.UUID, patch store.ActiveAccountPatch) (*domain.ActiveAccount, error) {
	if acct, ok := r.byID[id]; ok {
		return acct, nil
	}
	return nil, store.ErrNotFound
}

func (r *stubAccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.deleteErr
}

type stubActorRepo struct {
	upserted  []domain.Actor
	upsertErr error
}

func (r *stubActorRepo) Upsert(ctx context.Context, actor domain.Actor) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.upserted = append(r.upserted, actor)
	return nil
}

type stubPublisher struct {
	events     []rabbitmq.ClientStatusExpiredEvent
	publishErr error
}

func (p *stubPublisher) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	return p.publishErr
}

func (p *stubPublisher) PublishClientStatusExpired(ctx context.Context, event rabbitmq.ClientStatusExpiredEvent) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.events = append(p.events, event)
	return nil
}

func (p *stubPublisher) Close() {}
