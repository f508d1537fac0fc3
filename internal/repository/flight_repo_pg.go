package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightFilter struct {
	FromCity   string
	ToCity     string
	ClassType  domain.ClassType
	Passengers int
	Date       time.Time
}

type FlightRepository interface {
	ListByRoute(ctx context.Context, fromCity, toCity string, class domain.ClassType) ([]domain.Flight, error)
	Search(ctx context.Context, filter FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	FindExact(ctx context.Context, id int64, flightNumber, fromCity, toCity string) (*domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, airline, flight_number, from_city, to_city, departure_time, arrival_time, class_type, price_cents, available_seats`

func scanFlight(row scanner) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.Airline, &f.FlightNumber, &f.FromCity, &f.ToCity, &f.DepartureTime, &f.ArrivalTime, &f.ClassType, &f.PriceCents, &f.AvailableSeats); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// ListByRoute returns every flight for the city pair and class, earliest
// departure first, regardless of date or free seats.
func (r *PGFlightRepository) ListByRoute(ctx context.Context, fromCity, toCity string, class domain.ClassType) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE from_city=$1 AND to_city=$2 AND class_type=$3
		ORDER BY departure_time, id`,
		fromCity, toCity, class)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	return collectFlights(rows)
}

// Search matches city pair and class exactly, the UTC calendar date of
// departure, and at least the requested number of free seats.
func (r *PGFlightRepository) Search(ctx context.Context, filter FlightFilter) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE from_city=$1 AND to_city=$2 AND class_type=$3
		AND available_seats >= $4
		AND (departure_time AT TIME ZONE 'UTC')::date = $5::date
		ORDER BY id`,
		filter.FromCity, filter.ToCity, filter.ClassType, filter.Passengers, filter.Date)
	if err != nil {
		return nil, fmt.Errorf("search flights: %w", err)
	}
	return collectFlights(rows)
}

func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	return scanFlight(row)
}

func (r *PGFlightRepository) FindExact(ctx context.Context, id int64, flightNumber, fromCity, toCity string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE id=$1 AND flight_number=$2 AND from_city=$3 AND to_city=$4`, id, flightNumber, fromCity, toCity)
	return scanFlight(row)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
