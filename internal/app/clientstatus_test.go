package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Viikudev/netflix-crm/internal/domain"
	"github.com/Viikudev/netflix-crm/internal/store"
)

func newTestService(t *testing.T) (*Service, *stubClientStatusRepo, *stubServiceRepo, *stubAccountRepo, *stubPublisher) {
	t.Helper()
	svc, statuses, services, accounts, _, publisher := newTestServiceWithActors(t)
	return svc, statuses, services, accounts, publisher
}

func newTestServiceWithActors(t *testing.T) (*Service, *stubClientStatusRepo, *stubServiceRepo, *stubAccountRepo, *stubActorRepo, *stubPublisher) {
	t.Helper()
	statuses := &stubClientStatusRepo{}
	services := &stubServiceRepo{byID: map[uuid.UUID]*domain.Service{}}
	accounts := &stubAccountRepo{byID: map[uuid.UUID]*domain.ActiveAccount{}}
	actors := &stubActorRepo{}
	publisher := &stubPublisher{}
	svc := NewService(statuses, services, accounts, actors, publisher, testLogger())
	return svc, statuses, services, accounts, actors, publisher
}

func seedRefs(services *stubServiceRepo, accounts *stubAccountRepo, accountExpiry time.Time) (uuid.UUID, uuid.UUID) {
	accountID := uuid.New()
	serviceID := uuid.New()
	accounts.byID[accountID] = &domain.ActiveAccount{
		ID:             accountID,
		Email:          "pool@example.com",
		ExpirationDate: accountExpiry,
	}
	services.byID[serviceID] = &domain.Service{
		ID:          serviceID,
		ServiceName: "Netflix Premium",
	}
	return accountID, serviceID
}

func validCreateRequest(accountID, serviceID uuid.UUID) domain.CreateClientStatusRequest {
	pin := 1234
	return domain.CreateClientStatusRequest{
		ClientName:      "Maria",
		PhoneNumber:     "+58 412 5551234",
		ActiveAccountID: accountID.String(),
		ServiceID:       serviceID.String(),
		ProfileName:     "Maria P",
		ProfilePIN:      &pin,
		Status:          "ACTIVE",
	}
}

func TestCreateClientStatusInheritsAccountExpiration(t *testing.T) {
	svc, statuses, services, accounts, _ := newTestService(t)
	accountExpiry := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	accountID, serviceID := seedRefs(services, accounts, accountExpiry)

	created, err := svc.CreateClientStatus(context.Background(), validCreateRequest(accountID, serviceID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.ExpirationDate == nil || !created.ExpirationDate.Equal(accountExpiry) {
		t.Fatalf("expected inherited expiration %v, got %v", accountExpiry, created.ExpirationDate)
	}
	if statuses.created == nil {
		t.Fatal("expected record to be persisted")
	}
	if created.ActiveAccount == nil || created.ActiveAccount.ID != accountID {
		t.Fatalf("expected account projection, got %+v", created.ActiveAccount)
	}
	if created.Service == nil || created.Service.ServiceName != "Netflix Premium" {
		t.Fatalf("expected service projection, got %+v", created.Service)
	}
}

func TestCreateClientStatusExplicitExpirationWins(t *testing.T) {
	svc, _, services, accounts, _ := newTestService(t)
	accountID, serviceID := seedRefs(services, accounts, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))

	req := validCreateRequest(accountID, serviceID)
	explicit := "2025-12-31"
	req.ExpirationDate = &explicit

	created, err := svc.CreateClientStatus(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	if created.ExpirationDate == nil || !created.ExpirationDate.Equal(want) {
		t.Fatalf("expected explicit expiration %v, got %v", want, created.ExpirationDate)
	}
}

func TestCreateClientStatusRejectsUnknownReferences(t *testing.T) {
	svc, statuses, services, accounts, _ := newTestService(t)
	accountID, serviceID := seedRefs(services, accounts, time.Now())

	tests := []struct {
		name    string
		mutate  func(r *domain.CreateClientStatusRequest)
		wantMsg string
	}{
		{
			name:    "unknown account",
			mutate:  func(r *domain.CreateClientStatusRequest) { r.ActiveAccountID = uuid.NewString() },
			wantMsg: "activeAccount not found",
		},
		{
			name:    "unknown service",
			mutate:  func(r *domain.CreateClientStatusRequest) { r.ServiceID = uuid.NewString() },
			wantMsg: "service not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest(accountID, serviceID)
			tt.mutate(&req)

			_, err := svc.CreateClientStatus(context.Background(), req)
			var notFound *NotFoundError
			if !errors.As(err, &notFound) {
				t.Fatalf("expected NotFoundError, got %v", err)
			}
			if err.Error() != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, err.Error())
			}
			if statuses.created != nil {
				t.Fatal("no record may be persisted when a reference is dangling")
			}
		})
	}
}

func TestCreateClientStatusRejectsUnknownStatusValue(t *testing.T) {
	svc, _, services, accounts, _ := newTestService(t)
	accountID, serviceID := seedRefs(services, accounts, time.Now())

	req := validCreateRequest(accountID, serviceID)
	req.Status = "PAUSED"

	_, err := svc.CreateClientStatus(context.Background(), req)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := "status must be one of: ACTIVE, NEAR_EXPIRATION, EXPIRED"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestUpdateClientStatusRevalidatesChangedReferences(t *testing.T) {
	svc, statuses, services, accounts, _ := newTestService(t)
	accountID, _ := seedRefs(services, accounts, time.Now())

	missing := uuid.NewString()
	req := domain.UpdateClientStatusRequest{ServiceID: &missing}
	_, err := svc.UpdateClientStatus(context.Background(), uuid.New(), req)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for dangling service, got %v", err)
	}

	known := accountID.String()
	req = domain.UpdateClientStatusRequest{ActiveAccountID: &known}
	if _, err := svc.UpdateClientStatus(context.Background(), uuid.New(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if statuses.updatePatch.ActiveAccountID == nil || *statuses.updatePatch.ActiveAccountID != accountID {
		t.Fatalf("expected account id in patch, got %+v", statuses.updatePatch.ActiveAccountID)
	}
}

func TestReconcileExpirationsPublishesEvents(t *testing.T) {
	svc, statuses, _, _, publisher := newTestService(t)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })

	first := store.ExpiredClientStatus{ID: uuid.New(), ClientName: "Maria"}
	second := store.ExpiredClientStatus{ID: uuid.New(), ClientName: "Jose"}
	statuses.expired = []store.ExpiredClientStatus{first, second}

	count, err := svc.ReconcileExpirations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 transitions, got %d", count)
	}
	if !statuses.lastExpireAt.Equal(now) {
		t.Fatalf("expected sweep at %v, got %v", now, statuses.lastExpireAt)
	}
	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(publisher.events))
	}
	if publisher.events[0].ClientStatusID != first.ID || publisher.events[0].ClientName != "Maria" {
		t.Fatalf("unexpected first event: %+v", publisher.events[0])
	}
	if !publisher.events[0].ExpiredAt.Equal(now) {
		t.Fatalf("expected event timestamp %v, got %v", now, publisher.events[0].ExpiredAt)
	}
}

func TestReconcileExpirationsIsIdempotent(t *testing.T) {
	svc, statuses, _, _, _ := newTestService(t)
	statuses.expired = []store.ExpiredClientStatus{{ID: uuid.New(), ClientName: "Maria"}}

	first, err := svc.ReconcileExpirations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.ReconcileExpirations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != 1 || second != 0 {
		t.Fatalf("expected counts 1 then 0, got %d then %d", first, second)
	}
}

func TestReconcileExpirationsSurvivesPublishFailure(t *testing.T) {
	svc, statuses, _, _, publisher := newTestService(t)
	statuses.expired = []store.ExpiredClientStatus{{ID: uuid.New(), ClientName: "Maria"}}
	publisher.publishErr = errors.New("broker gone")

	count, err := svc.ReconcileExpirations(context.Background())
	if err != nil {
		t.Fatalf("publish failure must not fail the sweep: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 transition, got %d", count)
	}
}

func TestListClientStatusesContinuesWhenSweepFails(t *testing.T) {
	svc, statuses, _, _, _ := newTestService(t)
	statuses.expireErr = errors.New("db hiccup")
	statuses.listResult = []domain.ClientStatus{{ClientName: "Maria"}}

	items, err := svc.ListClientStatuses(context.Background())
	if err != nil {
		t.Fatalf("sweep failure must not block listing: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 record, got %d", len(items))
	}
	if statuses.expireCalls != 1 {
		t.Fatalf("expected the listing to attempt the sweep once, got %d", statuses.expireCalls)
	}
}
