package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/kafka"
	"github.com/Domenick1991/travelbooking/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CreateFlightBooking(ctx context.Context, userID int64, input CreateFlightBookingInput) (*domain.FlightBooking, error)
	ListFlightBookings(ctx context.Context, userID int64) ([]domain.FlightBooking, error)
	CancelFlightBooking(ctx context.Context, userID, bookingID int64) error
	CreateDestinationBooking(ctx context.Context, userID int64, input CreateDestinationBookingInput) (*domain.DestinationBooking, error)
	ListDestinationBookings(ctx context.Context, userID int64) ([]domain.DestinationBooking, error)
	CancelDestinationBooking(ctx context.Context, userID, bookingID int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// CreateFlightBookingInput identifies the flight the client saw. All four
// identifying fields must match the stored flight.
type CreateFlightBookingInput struct {
	FlightID     int64
	FlightNumber string
	FromCity     string
	ToCity       string
	Passengers   int
}

// CreateDestinationBookingInput dates accept YYYY-MM-DD or RFC 3339.
type CreateDestinationBookingInput struct {
	DestinationID int64
	CheckIn       string
	CheckOut      string
	Guests        int
}

type BookingService struct {
	flightBookings       repository.FlightBookingRepository
	destinationBookings  repository.DestinationBookingRepository
	flights              repository.FlightRepository
	destinations         repository.DestinationRepository
	users                repository.UserRepository
	producer             Producer
	eventsTopic          string
	publishTimeout       time.Duration
	enforceSeatInventory bool
	logger               *slog.Logger
	now                  func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithProducer(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

// WithPublishTimeout bounds how long a request waits on the event
// producer before giving up on the event.
func WithPublishTimeout(timeout time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if timeout > 0 {
			s.publishTimeout = timeout
		}
	}
}

// WithSeatInventory makes new flight bookings reserve seats atomically.
// Cancelling releases seats for bookings that reserved them, whatever
// the current setting.
func WithSeatInventory(enforce bool) BookingServiceOption {
	return func(s *BookingService) {
		s.enforceSeatInventory = enforce
	}
}

func NewBookingService(
	flightBookings repository.FlightBookingRepository,
	destinationBookings repository.DestinationBookingRepository,
	flights repository.FlightRepository,
	destinations repository.DestinationRepository,
	users repository.UserRepository,
	logger *slog.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		flightBookings:      flightBookings,
		destinationBookings: destinationBookings,
		flights:             flights,
		destinations:        destinations,
		users:               users,
		publishTimeout:      DefaultPublishTimeout,
		logger:              logger,
		now:                 time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

const (
	// DefaultPublishTimeout caps the time a booking request spends on its event.
	DefaultPublishTimeout = 500 * time.Millisecond

	MaxPassengers = domain.MaxPartySize
	MaxGuests     = domain.MaxPartySize
	MaxStayNights = 365
)

var (
	errFlightNotFound      = domain.NotFound("FLIGHT_NOT_FOUND", "Flight not found")
	errDestinationNotFound = domain.NotFound("DESTINATION_NOT_FOUND", "Destination not found")
	errUserNotFound        = domain.NotFound("USER_NOT_FOUND", "User not found")
	errInsufficientSeats   = domain.NewError(domain.ErrCapacity, "INSUFFICIENT_SEATS", "Not enough seats available on this flight")
	errBookingNotFound     = domain.NewError(domain.ErrNotFoundOrUnauthorized, "BOOKING_NOT_FOUND", "Booking not found or unauthorized")
)

func (s *BookingService) CreateFlightBooking(ctx context.Context, userID int64, input CreateFlightBookingInput) (*domain.FlightBooking, error) {
	input.FlightNumber = strings.TrimSpace(input.FlightNumber)
	input.FromCity = strings.TrimSpace(input.FromCity)
	input.ToCity = strings.TrimSpace(input.ToCity)

	if input.FlightID <= 0 || input.FlightNumber == "" || input.FromCity == "" || input.ToCity == "" {
		return nil, domain.Validation("MISSING_FIELDS", "flight_id, flight_number, from_city and to_city are required")
	}
	if input.Passengers <= 0 || input.Passengers > MaxPassengers {
		return nil, domain.Validation("INVALID_PASSENGER_COUNT", "passengers must be between 1 and 50")
	}

	// Re-resolve against stale client data.
	flight, err := s.flights.FindExact(ctx, input.FlightID, input.FlightNumber, input.FromCity, input.ToCity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errFlightNotFound
		}
		return nil, domain.Storage("resolve flight", err)
	}

	booking := &domain.FlightBooking{
		FlightID:      flight.ID,
		UserID:        userID,
		FromCity:      flight.FromCity,
		ToCity:        flight.ToCity,
		DepartureTime: flight.DepartureTime,
		ArrivalTime:   flight.ArrivalTime,
		Airline:       flight.Airline,
		FlightNumber:  flight.FlightNumber,
		PriceCents:    flight.PriceCents,
		ClassType:     flight.ClassType,
		Passengers:    input.Passengers,
		Status:        domain.BookingStatusConfirmed,
	}
	if err := s.flightBookings.Create(ctx, booking, s.enforceSeatInventory); err != nil {
		if errors.Is(err, domain.ErrCapacity) {
			return nil, errInsufficientSeats
		}
		return nil, domain.Storage("create flight booking", err)
	}

	s.logger.InfoContext(ctx, "flight booked",
		"booking_id", booking.ID, "user_id", userID, "flight_id", flight.ID, "passengers", booking.Passengers)
	s.publish(ctx, kafka.BookingEvent{
		Type:       kafka.EventBookingCreated,
		Kind:       kafka.KindFlight,
		BookingID:  booking.ID,
		UserID:     userID,
		Reference:  booking.Airline + " " + booking.FlightNumber,
		Status:     string(booking.Status),
		TotalCents: booking.PriceCents * int64(booking.Passengers),
	})
	return booking, nil
}

func (s *BookingService) ListFlightBookings(ctx context.Context, userID int64) ([]domain.FlightBooking, error) {
	bookings, err := s.flightBookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.Storage("list flight bookings", err)
	}
	return bookings, nil
}

// CancelFlightBooking hard-deletes the booking. Unknown ids and other
// users' bookings fail identically.
func (s *BookingService) CancelFlightBooking(ctx context.Context, userID, bookingID int64) error {
	deleted, err := s.flightBookings.DeleteByOwner(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errBookingNotFound
		}
		return domain.Storage("cancel flight booking", err)
	}

	s.logger.InfoContext(ctx, "flight booking cancelled", "booking_id", bookingID, "user_id", userID)
	s.publish(ctx, kafka.BookingEvent{
		Type:       kafka.EventBookingCancelled,
		Kind:       kafka.KindFlight,
		BookingID:  deleted.ID,
		UserID:     userID,
		Reference:  deleted.Airline + " " + deleted.FlightNumber,
		Status:     "cancelled",
		TotalCents: deleted.PriceCents * int64(deleted.Passengers),
	})
	return nil
}

// CreateDestinationBooking prices the stay on the server from the stored
// nightly rate: total = price_per_night * guests * nights.
func (s *BookingService) CreateDestinationBooking(ctx context.Context, userID int64, input CreateDestinationBookingInput) (*domain.DestinationBooking, error) {
	if input.DestinationID <= 0 || strings.TrimSpace(input.CheckIn) == "" || strings.TrimSpace(input.CheckOut) == "" || input.Guests == 0 {
		return nil, domain.Validation("MISSING_FIELDS", "destination_id, check_in_date, check_out_date and guests are required")
	}
	if input.Guests < 0 || input.Guests > MaxGuests {
		return nil, domain.Validation("INVALID_GUEST_COUNT", "guests must be between 1 and 50")
	}

	checkIn, err := parseStayDate(input.CheckIn)
	if err != nil {
		return nil, domain.Validation("INVALID_DATE_FORMAT", "check_in_date must be YYYY-MM-DD or RFC 3339")
	}
	checkOut, err := parseStayDate(input.CheckOut)
	if err != nil {
		return nil, domain.Validation("INVALID_DATE_FORMAT", "check_out_date must be YYYY-MM-DD or RFC 3339")
	}
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return nil, domain.Validation("INVALID_DATES", "check_out_date must be after check_in_date")
	}
	if nights > MaxStayNights {
		return nil, domain.Validation("INVALID_DATES", "stays are limited to 365 nights")
	}

	destination, err := s.destinations.GetByID(ctx, input.DestinationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errDestinationNotFound
		}
		return nil, domain.Storage("load destination", err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errUserNotFound
		}
		return nil, domain.Storage("load user", err)
	}

	booking := &domain.DestinationBooking{
		DestinationID:      destination.ID,
		UserID:             userID,
		GuestName:          user.FullName,
		Location:           destination.Location,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		Guests:             input.Guests,
		Nights:             nights,
		PricePerNightCents: destination.PriceCents,
		TotalPriceCents:    TotalPriceCents(destination.PriceCents, input.Guests, nights),
		Status:             domain.BookingStatusConfirmed,
	}
	if err := s.destinationBookings.Create(ctx, booking); err != nil {
		return nil, domain.Storage("create destination booking", err)
	}

	s.logger.InfoContext(ctx, "destination booked",
		"booking_id", booking.ID, "user_id", userID, "destination_id", destination.ID, "nights", nights)
	s.publish(ctx, kafka.BookingEvent{
		Type:       kafka.EventBookingCreated,
		Kind:       kafka.KindDestination,
		BookingID:  booking.ID,
		UserID:     userID,
		Reference:  destination.Name,
		Status:     string(booking.Status),
		TotalCents: booking.TotalPriceCents,
	})
	return booking, nil
}

func (s *BookingService) ListDestinationBookings(ctx context.Context, userID int64) ([]domain.DestinationBooking, error) {
	bookings, err := s.destinationBookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.Storage("list destination bookings", err)
	}
	return bookings, nil
}

func (s *BookingService) CancelDestinationBooking(ctx context.Context, userID, bookingID int64) error {
	deleted, err := s.destinationBookings.DeleteByOwner(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errBookingNotFound
		}
		return domain.Storage("cancel destination booking", err)
	}

	s.logger.InfoContext(ctx, "destination booking cancelled", "booking_id", bookingID, "user_id", userID)
	s.publish(ctx, kafka.BookingEvent{
		Type:       kafka.EventBookingCancelled,
		Kind:       kafka.KindDestination,
		BookingID:  deleted.ID,
		UserID:     userID,
		Reference:  deleted.Location,
		Status:     "cancelled",
		TotalCents: deleted.TotalPriceCents,
	})
	return nil
}

const secondsPerDay = 24 * 60 * 60

// Nights counts started 24-hour periods between check-in and check-out.
// It works on whole seconds so ranges wider than time.Duration still count.
func Nights(checkIn, checkOut time.Time) int {
	secs := checkOut.Unix() - checkIn.Unix()
	if checkOut.Nanosecond() > checkIn.Nanosecond() {
		secs++
	}
	if secs <= 0 {
		return 0
	}
	return int((secs + secondsPerDay - 1) / secondsPerDay)
}

func TotalPriceCents(pricePerNightCents int64, guests, nights int) int64 {
	return pricePerNightCents * int64(guests) * int64(nights)
}

func parseStayDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// publish never fails the booking; a lost event only costs a notification.
// The wait on the producer is capped at publishTimeout.
func (s *BookingService) publish(ctx context.Context, event kafka.BookingEvent) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event.ID = uuid.NewString()
	event.OccurredAt = s.now().UTC()

	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()
	if err := s.producer.Publish(ctx, s.eventsTopic, event.Key(), event); err != nil {
		s.logger.WarnContext(ctx, "publish booking event failed",
			"type", event.Type, "kind", event.Kind, "booking_id", event.BookingID, "error", err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
