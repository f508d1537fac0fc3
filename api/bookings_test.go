package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBookingHandler_createFlight(t *testing.T) {
	s := newTestServer(t)

	input := booking.CreateFlightBookingInput{FlightID: 4, FlightNumber: "AF276", FromCity: "Paris", ToCity: "Tokyo", Passengers: 2}
	s.bookings.On("CreateFlightBooking", mock.Anything, int64(7), input).Return(&domain.FlightBooking{ID: 12}, nil).Once()

	// Display fields from the client are accepted and not forwarded.
	w := s.do(http.MethodPost, "/api/flight-bookings", s.token(t, 7), map[string]any{
		"flight_id":      4,
		"flight_number":  "AF276",
		"from_city":      "Paris",
		"to_city":        "Tokyo",
		"passengers":     2,
		"price":          "1.00",
		"airline":        "Cheap Air",
		"class_type":     "first",
		"departure_date": "2025-06-01T09:30:00Z",
		"arrival_date":   "2025-06-01T22:30:00Z",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":12,"message":"Flight booked successfully"}`, w.Body.String())
	s.bookings.AssertExpectations(t)
}

func TestBookingHandler_createFlight_Rejections(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, 7)

	w := s.do(http.MethodPost, "/api/flight-bookings", token, map[string]any{"flight_id": 4, "from_city": "Paris", "to_city": "Tokyo"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "MISSING_FIELDS", resp.Error)
	assert.Contains(t, resp.Message, "flight_number")

	w = s.do(http.MethodPost, "/api/flight-bookings", token, `{"flight_id":"four"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST_BODY", decodeError(t, w).Error)

	w = s.do(http.MethodPost, "/api/flight-bookings", token, map[string]any{
		"flight_id": 4, "flight_number": "AF276", "from_city": "Paris", "to_city": "Tokyo", "passengers": 1, "user_id": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST_BODY", decodeError(t, w).Error)

	s.bookings.AssertNotCalled(t, "CreateFlightBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_createFlight_ServiceErrors(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"stale flight", domain.NotFound("FLIGHT_NOT_FOUND", "Flight not found"), http.StatusNotFound, "FLIGHT_NOT_FOUND"},
		{"sold out", domain.NewError(domain.ErrCapacity, "INSUFFICIENT_SEATS", "Not enough seats"), http.StatusConflict, "INSUFFICIENT_SEATS"},
		{"bad passengers", domain.Validation("INVALID_PASSENGER_COUNT", "passengers must be a positive integer"), http.StatusBadRequest, "INVALID_PASSENGER_COUNT"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t)
			s.bookings.On("CreateFlightBooking", mock.Anything, int64(7), mock.Anything).Return(nil, tc.err).Once()

			w := s.do(http.MethodPost, "/api/flight-bookings", s.token(t, 7), map[string]any{
				"flight_id": 4, "flight_number": "AF276", "from_city": "Paris", "to_city": "Tokyo", "passengers": 2,
			})
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decodeError(t, w).Error)
		})
	}
}

func TestBookingHandler_listFlights(t *testing.T) {
	s := newTestServer(t)
	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	s.bookings.On("ListFlightBookings", mock.Anything, int64(7)).Return([]domain.FlightBooking{{
		ID: 12, FlightID: 4, UserID: 7, Airline: "Air France", FlightNumber: "AF276",
		PriceCents: 85000, ClassType: domain.ClassEconomy, Passengers: 2,
		Status: domain.BookingStatusConfirmed, CreatedAt: created,
	}}, nil).Once()
	s.bookings.On("ListFlightBookings", mock.Anything, int64(8)).Return([]domain.FlightBooking{}, nil).Once()

	w := s.do(http.MethodGet, "/api/flight-bookings", s.token(t, 7), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp []flightBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Air France", resp[0].Airline)
	assert.Equal(t, 850.0, resp[0].Price)
	assert.Equal(t, "confirmed", resp[0].Status)

	w = s.do(http.MethodGet, "/api/flight-bookings", s.token(t, 8), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestBookingHandler_cancelFlight(t *testing.T) {
	s := newTestServer(t)
	s.bookings.On("CancelFlightBooking", mock.Anything, int64(7), int64(12)).Return(nil).Once()
	s.bookings.On("CancelFlightBooking", mock.Anything, int64(8), int64(12)).
		Return(domain.NewError(domain.ErrNotFoundOrUnauthorized, "BOOKING_NOT_FOUND", "Booking not found or unauthorized")).Once()

	w := s.do(http.MethodDelete, "/api/flight-bookings/12", s.token(t, 7), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Flight booking cancelled successfully"}`, w.Body.String())

	w = s.do(http.MethodDelete, "/api/flight-bookings/12", s.token(t, 8), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "BOOKING_NOT_FOUND", resp.Error)
	assert.Equal(t, "Booking not found or unauthorized", resp.Message)

	w = s.do(http.MethodDelete, "/api/flight-bookings/-3", s.token(t, 7), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decodeError(t, w).Error)
}

func TestBookingHandler_createDestination(t *testing.T) {
	s := newTestServer(t)

	input := booking.CreateDestinationBookingInput{DestinationID: 1, CheckIn: "2025-07-01", CheckOut: "2025-07-04", Guests: 2}
	s.bookings.On("CreateDestinationBooking", mock.Anything, int64(7), input).
		Return(&domain.DestinationBooking{ID: 31, Nights: 3, TotalPriceCents: 60000}, nil).Once()

	w := s.do(http.MethodPost, "/api/destination-bookings", s.token(t, 7), map[string]any{
		"destination_id":  1,
		"location":        "Indonesia",
		"check_in_date":   "2025-07-01",
		"check_out_date":  "2025-07-04",
		"guests":          2,
		"nights":          99,
		"price_per_night": 1,
		"total_price":     1,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":31,"nights":3,"total_price":600,"message":"Destination booked successfully"}`, w.Body.String())
	s.bookings.AssertExpectations(t)
}

func TestBookingHandler_createDestination_MissingFields(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/destination-bookings", s.token(t, 7), map[string]any{"destination_id": 1, "guests": 2})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "MISSING_FIELDS", resp.Error)
	assert.Contains(t, resp.Message, "check_in_date")
	assert.Contains(t, resp.Message, "check_out_date")
}

func TestBookingHandler_destinationListAndCancel(t *testing.T) {
	s := newTestServer(t)
	s.bookings.On("ListDestinationBookings", mock.Anything, int64(7)).Return([]domain.DestinationBooking{{
		ID: 31, GuestName: "Jane Doe", Nights: 3, PricePerNightCents: 10000, TotalPriceCents: 60000,
	}}, nil).Once()
	s.bookings.On("CancelDestinationBooking", mock.Anything, int64(7), int64(31)).Return(nil).Once()

	w := s.do(http.MethodGet, "/api/destination-bookings", s.token(t, 7), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp []destinationBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Jane Doe", resp[0].Name)
	assert.Equal(t, 600.0, resp[0].TotalPrice)
	assert.Equal(t, 100.0, resp[0].PricePerNight)

	w = s.do(http.MethodDelete, "/api/destination-bookings/31", s.token(t, 7), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Destination booking cancelled successfully"}`, w.Body.String())
}
