package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DestinationRepository interface {
	List(ctx context.Context) ([]domain.Destination, error)
	ListFeatured(ctx context.Context, limit int) ([]domain.Destination, error)
	GetByID(ctx context.Context, id int64) (*domain.Destination, error)
}

type PGDestinationRepository struct {
	db *pgxpool.Pool
}

func NewDestinationRepository(db *pgxpool.Pool) DestinationRepository {
	return &PGDestinationRepository{db: db}
}

const destinationColumns = `id, name, location, description, price_cents, image_url, featured`

func scanDestination(row scanner) (*domain.Destination, error) {
	var d domain.Destination
	if err := row.Scan(&d.ID, &d.Name, &d.Location, &d.Description, &d.PriceCents, &d.ImageURL, &d.Featured); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *PGDestinationRepository) List(ctx context.Context) ([]domain.Destination, error) {
	return r.query(ctx, `SELECT `+destinationColumns+` FROM destinations ORDER BY id`)
}

func (r *PGDestinationRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Destination, error) {
	return r.query(ctx, `SELECT `+destinationColumns+` FROM destinations WHERE featured ORDER BY price_cents DESC, id LIMIT $1`, limit)
}

func (r *PGDestinationRepository) GetByID(ctx context.Context, id int64) (*domain.Destination, error) {
	row := r.db.QueryRow(ctx, `SELECT `+destinationColumns+` FROM destinations WHERE id=$1`, id)
	return scanDestination(row)
}

func (r *PGDestinationRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Destination, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	defer rows.Close()

	destinations := make([]domain.Destination, 0)
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		destinations = append(destinations, *d)
	}
	return destinations, rows.Err()
}

var _ DestinationRepository = (*PGDestinationRepository)(nil)
