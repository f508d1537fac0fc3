package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DestinationBookingRepository interface {
	Create(ctx context.Context, booking *domain.DestinationBooking) error
	ListByUser(ctx context.Context, userID int64) ([]domain.DestinationBooking, error)
	DeleteByOwner(ctx context.Context, id, userID int64) (*domain.DestinationBooking, error)
}

type PGDestinationBookingRepository struct {
	db *pgxpool.Pool
}

func NewDestinationBookingRepository(db *pgxpool.Pool) DestinationBookingRepository {
	return &PGDestinationBookingRepository{db: db}
}

const destinationBookingColumns = `id, destination_id, user_id, name, location, check_in_date, check_out_date,
	guests, nights, price_per_night_cents, total_price_cents, status, booking_time`

func scanDestinationBooking(row scanner) (*domain.DestinationBooking, error) {
	var b domain.DestinationBooking
	if err := row.Scan(&b.ID, &b.DestinationID, &b.UserID, &b.GuestName, &b.Location, &b.CheckIn, &b.CheckOut,
		&b.Guests, &b.Nights, &b.PricePerNightCents, &b.TotalPriceCents, &b.Status, &b.BookedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGDestinationBookingRepository) Create(ctx context.Context, booking *domain.DestinationBooking) error {
	if err := r.db.QueryRow(ctx, `INSERT INTO destination_bookings (
			destination_id, user_id, name, location, check_in_date, check_out_date,
			guests, nights, price_per_night_cents, total_price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, booking_time`,
		booking.DestinationID, booking.UserID, booking.GuestName, booking.Location, booking.CheckIn, booking.CheckOut,
		booking.Guests, booking.Nights, booking.PricePerNightCents, booking.TotalPriceCents, booking.Status).
		Scan(&booking.ID, &booking.BookedAt); err != nil {
		return fmt.Errorf("insert destination booking: %w", err)
	}
	return nil
}

func (r *PGDestinationBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.DestinationBooking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+destinationBookingColumns+` FROM destination_bookings
		WHERE user_id=$1 ORDER BY booking_time DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list destination bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.DestinationBooking, 0)
	for rows.Next() {
		b, err := scanDestinationBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGDestinationBookingRepository) DeleteByOwner(ctx context.Context, id, userID int64) (*domain.DestinationBooking, error) {
	row := r.db.QueryRow(ctx, `DELETE FROM destination_bookings WHERE id=$1 AND user_id=$2 RETURNING `+destinationBookingColumns, id, userID)
	deleted, err := scanDestinationBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete destination booking: %w", err)
	}
	return deleted, nil
}

var _ DestinationBookingRepository = (*PGDestinationBookingRepository)(nil)
