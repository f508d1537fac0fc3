package domain

import "time"

type ClassType string

// MaxPartySize bounds passengers per flight booking or search and guests
// per stay.
const MaxPartySize = 50

const (
	ClassEconomy  ClassType = "economy"
	ClassBusiness ClassType = "business"
	ClassFirst    ClassType = "first"
)

func (c ClassType) Valid() bool {
	switch c {
	case ClassEconomy, ClassBusiness, ClassFirst:
		return true
	}
	return false
}

type Flight struct {
	ID             int64
	Airline        string
	FlightNumber   string
	FromCity       string
	ToCity         string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	ClassType      ClassType
	PriceCents     int64
	AvailableSeats int
}
