package kafka

import (
	"strconv"
	"time"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingCancelled = "booking_cancelled"

	KindFlight      = "flight"
	KindDestination = "destination"
)

// BookingEvent is published for every booking created or cancelled.
type BookingEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Kind       string    `json:"kind"`
	BookingID  int64     `json:"booking_id"`
	UserID     int64     `json:"user_id"`
	Reference  string    `json:"reference"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Key partitions by user so a user's events stay ordered.
func (e BookingEvent) Key() string {
	return strconv.FormatInt(e.UserID, 10)
}
