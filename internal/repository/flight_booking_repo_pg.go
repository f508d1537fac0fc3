package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightBookingRepository interface {
	Create(ctx context.Context, booking *domain.FlightBooking, reserveSeats bool) error
	ListByUser(ctx context.Context, userID int64) ([]domain.FlightBooking, error)
	DeleteByOwner(ctx context.Context, id, userID int64) (*domain.FlightBooking, error)
}

type PGFlightBookingRepository struct {
	db *pgxpool.Pool
}

func NewFlightBookingRepository(db *pgxpool.Pool) FlightBookingRepository {
	return &PGFlightBookingRepository{db: db}
}

const flightBookingColumns = `id, flight_id, user_id, from_city, to_city, departure_time, arrival_time,
	airline, flight_number, price_cents, class_type, passengers, seats_reserved, status, created_at`

func scanFlightBooking(row scanner) (*domain.FlightBooking, error) {
	var b domain.FlightBooking
	if err := row.Scan(&b.ID, &b.FlightID, &b.UserID, &b.FromCity, &b.ToCity, &b.DepartureTime, &b.ArrivalTime,
		&b.Airline, &b.FlightNumber, &b.PriceCents, &b.ClassType, &b.Passengers, &b.SeatsReserved, &b.Status, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts the booking and fills ID, CreatedAt and SeatsReserved.
// With reserveSeats the flight's free seats are decremented in the same
// transaction, and domain.ErrCapacity is returned when fewer than
// Passengers remain.
func (r *PGFlightBookingRepository) Create(ctx context.Context, booking *domain.FlightBooking, reserveSeats bool) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if reserveSeats {
		res, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - $2
			WHERE id=$1 AND available_seats >= $2`, booking.FlightID, booking.Passengers)
		if err != nil {
			return fmt.Errorf("reserve seats: %w", err)
		}
		if res.RowsAffected() == 0 {
			return domain.ErrCapacity
		}
	}

	booking.SeatsReserved = reserveSeats
	if err := tx.QueryRow(ctx, `INSERT INTO flight_bookings (
			flight_id, user_id, from_city, to_city, departure_time, arrival_time,
			airline, flight_number, price_cents, class_type, passengers, seats_reserved, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`,
		booking.FlightID, booking.UserID, booking.FromCity, booking.ToCity, booking.DepartureTime, booking.ArrivalTime,
		booking.Airline, booking.FlightNumber, booking.PriceCents, booking.ClassType, booking.Passengers,
		booking.SeatsReserved, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt); err != nil {
		return fmt.Errorf("insert flight booking: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PGFlightBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.FlightBooking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightBookingColumns+` FROM flight_bookings
		WHERE user_id=$1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list flight bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.FlightBooking, 0)
	for rows.Next() {
		b, err := scanFlightBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// DeleteByOwner removes the booking only when both id and owner match and
// returns the removed row. A missing row and a row owned by someone else
// are both domain.ErrNotFound. Seats go back to the flight only if the
// booking reserved them.
func (r *PGFlightBookingRepository) DeleteByOwner(ctx context.Context, id, userID int64) (*domain.FlightBooking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `DELETE FROM flight_bookings WHERE id=$1 AND user_id=$2 RETURNING `+flightBookingColumns, id, userID)
	deleted, err := scanFlightBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete flight booking: %w", err)
	}

	if deleted.SeatsReserved {
		// The flight may have left the catalog; the booking is still removed.
		if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats + $2 WHERE id=$1`, deleted.FlightID, deleted.Passengers); err != nil {
			return nil, fmt.Errorf("release seats: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return deleted, nil
}

var _ FlightBookingRepository = (*PGFlightBookingRepository)(nil)
