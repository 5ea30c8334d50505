package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/dwikikusuma/cartsim/internal/pricing"
)

// Receipt is the outcome of a completed checkout.
type Receipt struct {
	ID       uuid.UUID
	FileName string
	Text     string
	IssuedAt time.Time
	Totals   pricing.Result
}
