package entities

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for a placement. Zero means "not yet rated" and is the
// creation default; it never counts toward a provider's aggregate.
const (
	RatingUnset = 0
	RatingMin   = 1
	RatingMax   = 5
)

// Placement records that a consumer acted on a signal, with an optional
// 1-5 rating set after the fact.
type Placement struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	SignalID  uuid.UUID `json:"signalId"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// RateInput represents input for rating a placement
type RateInput struct {
	Rating int `json:"rating" binding:"required,gte=1,lte=5"`
}
