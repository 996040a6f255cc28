/**
 * @description
 * Domain model for the active-account pool: the reusable subscription
 * credentials clients get assigned to. An account's expiration date is the
 * default inherited by client statuses created without one.
 */
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActiveAccount is one credential pool entry.
// Passwords are stored as received. Known concern, flagged in DESIGN.md.
type ActiveAccount struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"password"`
	ExpirationDate time.Time `json:"expirationDate"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreateActiveAccountRequest is the payload for creating an account.
// ExpirationDate is required and must parse as a date.
type CreateActiveAccountRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required"`
	ExpirationDate string `json:"expirationDate" validate:"required"`
}

// UpdateActiveAccountRequest is the partial-update payload for an account.
type UpdateActiveAccountRequest struct {
	Email          *string `json:"email" validate:"omitempty,email"`
	Password       *string `json:"password" validate:"omitempty,min=1"`
	ExpirationDate *string `json:"expirationDate" validate:"omitempty"`
}

// Actor is the authenticated user performing a protected operation. It is
// resolved once at the HTTP boundary and passed to the operations that
// require it.
type Actor struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}
