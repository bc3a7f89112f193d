package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProductCreated EventType = "product_created"
	EventProductUpdated EventType = "product_updated"
	EventProductDeleted EventType = "product_deleted"
)

// Actor identifies who performed the mutation, taken from the verified
// token subject.
type Actor struct {
	Subject string `json:"subject"`
	Role    string `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ProductCode string      `json:"product_code"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ProductCreatedPayload payload.
type ProductCreatedPayload struct {
	Location string  `json:"location"`
	Price    float64 `json:"price"`
}

// ProductUpdatedPayload payload.
type ProductUpdatedPayload struct {
	OldLocation string  `json:"old_location"`
	NewLocation string  `json:"new_location"`
	OldPrice    float64 `json:"old_price"`
	NewPrice    float64 `json:"new_price"`
}

// ProductDeletedPayload payload.
type ProductDeletedPayload struct {
	Affected int64 `json:"affected"`
}
