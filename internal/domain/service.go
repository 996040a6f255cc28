/**
 * @description
 * Domain model for the service catalog: the sellable subscription offerings
 * and their pricing. Prices are stored in minor currency units (cents); the
 * API boundary accepts major units and converts before persistence.
 */
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Service is a sellable subscription offering.
type Service struct {
	ID          uuid.UUID  `json:"id"`
	ServiceName string     `json:"serviceName"`
	// Price is stored in minor units (cents). Display layers divide by 100.
	Price       int64      `json:"price"`
	Currency    string     `json:"currency"`
	Description *string    `json:"description"`
	ImageURL    *string    `json:"imageUrl"`
	CreatedByID uuid.UUID  `json:"createdById"`
	CreatedBy   *ActorRef  `json:"createdBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ActorRef is the shallow projection of the actor who created a service.
type ActorRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CreateServiceRequest is the payload for creating a service. Price is given
// in major units (e.g. 9.99 dollars) and converted to cents on write.
type CreateServiceRequest struct {
	ServiceName string   `json:"serviceName" validate:"required,min=1"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty"`
	Description *string  `json:"description" validate:"omitempty"`
	Currency    *string  `json:"currency" validate:"omitempty"`
}

// UpdateServiceRequest is the partial-update payload for a service.
type UpdateServiceRequest struct {
	ServiceName *string  `json:"serviceName" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty"`
	Description *string  `json:"description" validate:"omitempty"`
	Currency    *string  `json:"currency" validate:"omitempty"`
}
