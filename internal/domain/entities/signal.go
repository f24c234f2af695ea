package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// SignalSide is the trade direction of a signal
type SignalSide string

const (
	SignalSideBuy  SignalSide = "BUY"
	SignalSideSell SignalSide = "SELL"
)

// SignalPayload is the structured trade instruction carried by a signal.
// Leverage is only meaningful for futures signals.
type SignalPayload struct {
	Symbol     string       `json:"symbol"`
	Side       SignalSide   `json:"side"`
	Quantity   float64      `json:"quantity"`
	Price      float64      `json:"price"`
	StopLoss   null.Float64 `json:"stopLoss,omitempty"`
	TakeProfit null.Float64 `json:"takeProfit,omitempty"`
	Leverage   null.Int     `json:"leverage,omitempty"`
}

// Signal represents a published trading signal. The owning provider is
// fixed at creation and never reassigned.
type Signal struct {
	ID         uuid.UUID     `json:"id"`
	ProviderID uuid.UUID     `json:"providerId"`
	Payload    SignalPayload `json:"signal"`
	IsSpot     bool          `json:"isSpot"`
	Status     bool          `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// CreateSpotSignalInput represents input for publishing a spot signal
type CreateSpotSignalInput struct {
	Symbol     string  `json:"symbol" binding:"required,max=12"`
	Side       string  `json:"side" binding:"required,oneof=BUY SELL"`
	Quantity   float64 `json:"quantity" binding:"required,gt=0"`
	Price      float64 `json:"price" binding:"required,gt=0"`
	StopLoss   float64 `json:"stopLoss" binding:"omitempty,gt=0"`
	TakeProfit float64 `json:"takeProfit" binding:"omitempty,gt=0"`
}

// CreateFuturesSignalInput represents input for publishing a futures signal
type CreateFuturesSignalInput struct {
	CreateSpotSignalInput
	Leverage int `json:"leverage" binding:"required,gte=1,lte=125"`
}
