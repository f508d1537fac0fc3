package api

import (
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
)

type flightResponse struct {
	ID             int64     `json:"id"`
	Airline        string    `json:"airline"`
	FlightNumber   string    `json:"flight_number"`
	FromCity       string    `json:"from_city"`
	ToCity         string    `json:"to_city"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	DepartureDate  string    `json:"departure_date"`
	ClassType      string    `json:"class_type"`
	Price          float64   `json:"price"`
	AvailableSeats int       `json:"available_seats"`
}

func newFlightResponse(f domain.Flight) flightResponse {
	return flightResponse{
		ID:             f.ID,
		Airline:        f.Airline,
		FlightNumber:   f.FlightNumber,
		FromCity:       f.FromCity,
		ToCity:         f.ToCity,
		DepartureTime:  f.DepartureTime.UTC(),
		ArrivalTime:    f.ArrivalTime.UTC(),
		DepartureDate:  f.DepartureTime.UTC().Format(time.DateOnly),
		ClassType:      string(f.ClassType),
		Price:          domain.CentsToAmount(f.PriceCents),
		AvailableSeats: f.AvailableSeats,
	}
}

type destinationResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Featured    bool    `json:"featured"`
}

func newDestinationResponses(list []domain.Destination) []destinationResponse {
	out := make([]destinationResponse, 0, len(list))
	for _, d := range list {
		out = append(out, destinationResponse{
			ID:          d.ID,
			Name:        d.Name,
			Location:    d.Location,
			Description: d.Description,
			Price:       domain.CentsToAmount(d.PriceCents),
			ImageURL:    d.ImageURL,
			Featured:    d.Featured,
		})
	}
	return out
}

type profileResponse struct {
	UserID    int64     `json:"user_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type flightBookingResponse struct {
	ID            int64     `json:"id"`
	FlightID      int64     `json:"flight_id"`
	UserID        int64     `json:"user_id"`
	FromCity      string    `json:"from_city"`
	ToCity        string    `json:"to_city"`
	DepartureDate time.Time `json:"departure_date"`
	ArrivalDate   time.Time `json:"arrival_date"`
	Airline       string    `json:"airline"`
	FlightNumber  string    `json:"flight_number"`
	Price         float64   `json:"price"`
	ClassType     string    `json:"class_type"`
	Passengers    int       `json:"passengers"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func newFlightBookingResponses(list []domain.FlightBooking) []flightBookingResponse {
	out := make([]flightBookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, flightBookingResponse{
			ID:            b.ID,
			FlightID:      b.FlightID,
			UserID:        b.UserID,
			FromCity:      b.FromCity,
			ToCity:        b.ToCity,
			DepartureDate: b.DepartureTime.UTC(),
			ArrivalDate:   b.ArrivalTime.UTC(),
			Airline:       b.Airline,
			FlightNumber:  b.FlightNumber,
			Price:         domain.CentsToAmount(b.PriceCents),
			ClassType:     string(b.ClassType),
			Passengers:    b.Passengers,
			Status:        string(b.Status),
			CreatedAt:     b.CreatedAt.UTC(),
		})
	}
	return out
}

type destinationBookingResponse struct {
	ID            int64     `json:"id"`
	DestinationID int64     `json:"destination_id"`
	UserID        int64     `json:"user_id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	CheckInDate   time.Time `json:"check_in_date"`
	CheckOutDate  time.Time `json:"check_out_date"`
	Guests        int       `json:"guests"`
	Nights        int       `json:"nights"`
	PricePerNight float64   `json:"price_per_night"`
	TotalPrice    float64   `json:"total_price"`
	Status        string    `json:"status"`
	BookingTime   time.Time `json:"booking_time"`
}

func newDestinationBookingResponses(list []domain.DestinationBooking) []destinationBookingResponse {
	out := make([]destinationBookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, destinationBookingResponse{
			ID:            b.ID,
			DestinationID: b.DestinationID,
			UserID:        b.UserID,
			Name:          b.GuestName,
			Location:      b.Location,
			CheckInDate:   b.CheckIn.UTC(),
			CheckOutDate:  b.CheckOut.UTC(),
			Guests:        b.Guests,
			Nights:        b.Nights,
			PricePerNight: domain.CentsToAmount(b.PricePerNightCents),
			TotalPrice:    domain.CentsToAmount(b.TotalPriceCents),
			Status:        string(b.Status),
			BookingTime:   b.BookedAt.UTC(),
		})
	}
	return out
}

type messageResponse struct {
	Message string `json:"message"`
}
