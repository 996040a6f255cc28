/**
 * @description
 * This file defines the core domain models for the client-status lifecycle:
 * the ClientStatus record that assigns a customer to an active account and a
 * service, its status enum, and the request shapes used by the API layer.
 */
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the payment/expiration state of a client subscription.
type Status string

const (
	StatusActive         Status = "ACTIVE"
	StatusNearExpiration Status = "NEAR_EXPIRATION"
	StatusExpired        Status = "EXPIRED"
)

// ValidStatuses lists every accepted status value, in the order they are
// reported in validation messages.
func ValidStatuses() []Status {
	return []Status{StatusActive, StatusNearExpiration, StatusExpired}
}

// IsValid reports whether s is one of the known status values.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusNearExpiration, StatusExpired:
		return true
	}
	return false
}

// ClientStatus represents one customer's assignment to an active account and
// a service, with its own profile slot and expiration.
type ClientStatus struct {
	ID              uuid.UUID          `json:"id"`
	ClientName      string             `json:"clientName"`
	PhoneNumber     string             `json:"phoneNumber"`
	ActiveAccountID uuid.UUID          `json:"activeAccountId"`
	ActiveAccount   *ActiveAccountRef  `json:"activeAccount,omitempty"`
	ServiceID       uuid.UUID          `json:"serviceId"`
	Service         *ServiceRef        `json:"service,omitempty"`
	ProfileName     string             `json:"profileName"`
	ProfilePIN      int                `json:"profilePIN"`
	ExpirationDate  *time.Time         `json:"expirationDate"`
	Status          Status             `json:"status"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// ActiveAccountRef is the shallow account projection embedded in listings.
type ActiveAccountRef struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	ExpirationDate time.Time `json:"expirationDate"`
}

// ServiceRef is the shallow service projection embedded in listings.
type ServiceRef struct {
	ID          uuid.UUID `json:"id"`
	ServiceName string    `json:"serviceName"`
}

// CreateClientStatusRequest is the payload for creating a client status.
// ExpirationDate is optional; when absent the referenced account's expiration
// date is inherited.
type CreateClientStatusRequest struct {
	ClientName      string  `json:"clientName" validate:"required,min=1,max=20"`
	PhoneNumber     string  `json:"phoneNumber" validate:"required"`
	ActiveAccountID string  `json:"activeAccountId" validate:"required"`
	ServiceID       string  `json:"serviceId" validate:"required"`
	ProfileName     string  `json:"profileName" validate:"required"`
	ProfilePIN      *int    `json:"profilePIN" validate:"required,gte=1000,lte=9999"`
	ExpirationDate  *string `json:"expirationDate" validate:"omitempty"`
	Status          string  `json:"status" validate:"required"`
}

// UpdateClientStatusRequest is the partial-update payload. Every field is
// optional; the same per-field rules as creation apply when present.
type UpdateClientStatusRequest struct {
	ClientName      *string `json:"clientName" validate:"omitempty,min=1,max=20"`
	PhoneNumber     *string `json:"phoneNumber" validate:"omitempty,min=1"`
	ActiveAccountID *string `json:"activeAccountId" validate:"omitempty"`
	ServiceID       *string `json:"serviceId" validate:"omitempty"`
	ProfileName     *string `json:"profileName" validate:"omitempty,min=1"`
	ProfilePIN      *int    `json:"profilePIN" validate:"omitempty,gte=1000,lte=9999"`
	ExpirationDate  *string `json:"expirationDate" validate:"omitempty"`
	Status          *string `json:"status" validate:"omitempty"`
}

// DaysRemainingLabel derives the display value for the "days remaining"
// column. The projection is pure: it is computed from the stored status and
// expiration date on every call and never persisted. A past-due date whose
// status has not been swept yet still renders "Expired".
func (c *ClientStatus) DaysRemainingLabel(now time.Time) string {
	if c.Status == StatusExpired {
		return "Expired"
	}
	if c.ExpirationDate == nil {
		return "-"
	}
	days := int(c.ExpirationDate.Sub(now) / (24 * time.Hour))
	if days < 0 {
		return "Expired"
	}
	return fmt.Sprintf("%d days", days)
}

// ParseDate parses a caller-supplied date string. RFC3339 timestamps and
// plain dates are accepted, matching the forms the dashboard submits.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
