package destinations

import (
	"context"
	"log/slog"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/repository"
)

type DestinationUseCase interface {
	Featured(ctx context.Context) ([]domain.Destination, error)
	Search(ctx context.Context) ([]domain.Destination, error)
}

// Cache is a read-through store for catalog listings. A nil slice with a
// nil error is a miss.
type Cache interface {
	GetDestinations(ctx context.Context, key string) ([]domain.Destination, error)
	SetDestinations(ctx context.Context, key string, destinations []domain.Destination) error
}

const (
	featuredKey = "featured"
	allKey      = "all"
)

type DestinationService struct {
	repo          repository.DestinationRepository
	cache         Cache
	featuredLimit int
	logger        *slog.Logger
}

type Option func(*DestinationService)

func WithCache(cache Cache) Option {
	return func(s *DestinationService) {
		s.cache = cache
	}
}

func WithFeaturedLimit(limit int) Option {
	return func(s *DestinationService) {
		if limit > 0 {
			s.featuredLimit = limit
		}
	}
}

func NewDestinationService(repo repository.DestinationRepository, logger *slog.Logger, opts ...Option) *DestinationService {
	s := &DestinationService{repo: repo, featuredLimit: 3, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DestinationService) Featured(ctx context.Context) ([]domain.Destination, error) {
	return s.cached(ctx, featuredKey, func() ([]domain.Destination, error) {
		return s.repo.ListFeatured(ctx, s.featuredLimit)
	})
}

// Search returns the whole catalog; query parameters are not applied.
func (s *DestinationService) Search(ctx context.Context) ([]domain.Destination, error) {
	return s.cached(ctx, allKey, func() ([]domain.Destination, error) {
		return s.repo.List(ctx)
	})
}

// cached treats cache failures as misses so the catalog stays available
// when redis is not.
func (s *DestinationService) cached(ctx context.Context, key string, load func() ([]domain.Destination, error)) ([]domain.Destination, error) {
	if s.cache != nil {
		hit, err := s.cache.GetDestinations(ctx, key)
		if err != nil {
			s.logger.WarnContext(ctx, "catalog cache read failed", "key", key, "error", err)
		} else if hit != nil {
			return hit, nil
		}
	}

	list, err := load()
	if err != nil {
		return nil, domain.Storage("list destinations", err)
	}

	if s.cache != nil {
		if err := s.cache.SetDestinations(ctx, key, list); err != nil {
			s.logger.WarnContext(ctx, "catalog cache write failed", "key", key, "error", err)
		}
	}
	return list, nil
}

var _ DestinationUseCase = (*DestinationService)(nil)
