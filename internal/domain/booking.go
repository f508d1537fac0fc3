package domain

import "time"

type BookingStatus string

// Cancellation is a hard delete, so confirmed is the only persisted state.
const BookingStatusConfirmed BookingStatus = "confirmed"

// FlightBooking keeps a snapshot of the flight as it was when booked.
type FlightBooking struct {
	ID            int64
	FlightID      int64
	UserID        int64
	FromCity      string
	ToCity        string
	DepartureTime time.Time
	ArrivalTime   time.Time
	Airline       string
	FlightNumber  string
	PriceCents    int64
	ClassType     ClassType
	Passengers    int
	// SeatsReserved records that Passengers seats were taken from the
	// flight when booked; only such bookings give seats back on cancel.
	SeatsReserved bool
	Status        BookingStatus
	CreatedAt     time.Time
}

// DestinationBooking keeps the guest name and pricing as they were when booked.
type DestinationBooking struct {
	ID                 int64
	DestinationID      int64
	UserID             int64
	GuestName          string
	Location           string
	CheckIn            time.Time
	CheckOut           time.Time
	Guests             int
	Nights             int
	PricePerNightCents int64
	TotalPriceCents    int64
	Status             BookingStatus
	BookedAt           time.Time
}
