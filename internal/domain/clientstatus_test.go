package domain

import (
	"testing"
	"time"
)

func TestDaysRemainingLabel(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	date := func(d time.Time) *time.Time { return &d }

	tests := []struct {
		name   string
		status Status
		expiry *time.Time
		want   string
	}{
		{
			name:   "expired status wins regardless of date",
			status: StatusExpired,
			expiry: date(now.Add(72 * time.Hour)),
			want:   "Expired",
		},
		{
			name:   "no expiration date renders dash",
			status: StatusActive,
			expiry: nil,
			want:   "-",
		},
		{
			name:   "past due but unswept still renders expired",
			status: StatusActive,
			expiry: date(now.Add(-48 * time.Hour)),
			want:   "Expired",
		},
		{
			name:   "future date renders whole days",
			status: StatusActive,
			expiry: date(now.Add(10*24*time.Hour + 6*time.Hour)),
			want:   "10 days",
		},
		{
			name:   "less than a day remaining truncates to zero",
			status: StatusNearExpiration,
			expiry: date(now.Add(5 * time.Hour)),
			want:   "0 days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := &ClientStatus{Status: tt.status, ExpirationDate: tt.expiry}
			if got := cs.DaysRemainingLabel(now); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2025-06-15"); err != nil {
		t.Fatalf("plain date should parse: %v", err)
	}
	if _, err := ParseDate("2025-06-15T10:30:00Z"); err != nil {
		t.Fatalf("RFC3339 timestamp should parse: %v", err)
	}
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestValidateCreateClientStatusRequest(t *testing.T) {
	pin := func(v int) *int { return &v }

	valid := CreateClientStatusRequest{
		ClientName:      "Maria",
		PhoneNumber:     "+58 412 5551234",
		ActiveAccountID: "f2b9c1a0-0000-0000-0000-000000000001",
		ServiceID:       "f2b9c1a0-0000-0000-0000-000000000002",
		ProfileName:     "Maria P",
		ProfilePIN:      pin(1234),
		Status:          "ACTIVE",
	}

	if err := Validate(valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(r *CreateClientStatusRequest)
		wantMsg string
	}{
		{
			name:    "missing client name",
			mutate:  func(r *CreateClientStatusRequest) { r.ClientName = "" },
			wantMsg: "clientName is required",
		},
		{
			name:    "client name too long",
			mutate:  func(r *CreateClientStatusRequest) { r.ClientName = "an improbably long client name" },
			wantMsg: "clientName must be at most 20 characters",
		},
		{
			name:    "missing pin",
			mutate:  func(r *CreateClientStatusRequest) { r.ProfilePIN = nil },
			wantMsg: "profilePIN is required",
		},
		{
			name:    "pin below range",
			mutate:  func(r *CreateClientStatusRequest) { r.ProfilePIN = pin(999) },
			wantMsg: "profilePIN must be at least 1000",
		},
		{
			name:    "pin above range",
			mutate:  func(r *CreateClientStatusRequest) { r.ProfilePIN = pin(10000) },
			wantMsg: "profilePIN must be at most 9999",
		},
		{
			name:    "missing status",
			mutate:  func(r *CreateClientStatusRequest) { r.Status = "" },
			wantMsg: "status is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := Validate(req)
			if err == nil {
				t.Fatal("expected validation error, got success")
			}
			if err.Error() != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestValidatePINBoundariesAccepted(t *testing.T) {
	pin := func(v int) *int { return &v }
	for _, p := range []int{1000, 9999} {
		req := CreateClientStatusRequest{
			ClientName:      "Maria",
			PhoneNumber:     "+58 412 5551234",
			ActiveAccountID: "f2b9c1a0-0000-0000-0000-000000000001",
			ServiceID:       "f2b9c1a0-0000-0000-0000-000000000002",
			ProfileName:     "Maria P",
			ProfilePIN:      pin(p),
			Status:          "ACTIVE",
		}
		if err := Validate(req); err != nil {
			t.Fatalf("pin %d should be accepted: %v", p, err)
		}
	}
}
