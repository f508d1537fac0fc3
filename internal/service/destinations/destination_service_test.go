package destinations

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDestinationRepository struct {
	mock.Mock
}

func (m *MockDestinationRepository) List(ctx context.Context) ([]domain.Destination, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Destination), args.Error(1)
}

func (m *MockDestinationRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Destination, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Destination), args.Error(1)
}

func (m *MockDestinationRepository) GetByID(ctx context.Context, id int64) (*domain.Destination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Destination), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetDestinations(ctx context.Context, key string) ([]domain.Destination, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Destination), args.Error(1)
}

func (m *MockCache) SetDestinations(ctx context.Context, key string, destinations []domain.Destination) error {
	args := m.Called(ctx, key, destinations)
	return args.Error(0)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func catalog() []domain.Destination {
	return []domain.Destination{
		{ID: 5, Name: "Maldives", PriceCents: 159999, Featured: true},
		{ID: 6, Name: "Switzerland", PriceCents: 139999, Featured: true},
	}
}

func TestDestinationService_Featured_NoCache(t *testing.T) {
	repo := &MockDestinationRepository{}
	service := NewDestinationService(repo, discard)
	ctx := context.Background()

	repo.On("ListFeatured", ctx, 3).Return(catalog(), nil).Once()

	got, err := service.Featured(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog(), got)
	repo.AssertExpectations(t)
}

func TestDestinationService_Featured_CacheHit(t *testing.T) {
	repo := &MockDestinationRepository{}
	cache := &MockCache{}
	service := NewDestinationService(repo, discard, WithCache(cache), WithFeaturedLimit(2))
	ctx := context.Background()

	cache.On("GetDestinations", ctx, featuredKey).Return(catalog(), nil).Once()

	got, err := service.Featured(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	repo.AssertNotCalled(t, "ListFeatured", mock.Anything, mock.Anything)
}

func TestDestinationService_Search_CacheMissPopulates(t *testing.T) {
	repo := &MockDestinationRepository{}
	cache := &MockCache{}
	service := NewDestinationService(repo, discard, WithCache(cache))
	ctx := context.Background()

	cache.On("GetDestinations", ctx, allKey).Return(nil, nil).Once()
	repo.On("List", ctx).Return(catalog(), nil).Once()
	cache.On("SetDestinations", ctx, allKey, catalog()).Return(nil).Once()

	got, err := service.Search(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog(), got)
	cache.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestDestinationService_CacheFailureFallsBackToStore(t *testing.T) {
	repo := &MockDestinationRepository{}
	cache := &MockCache{}
	service := NewDestinationService(repo, discard, WithCache(cache))
	ctx := context.Background()

	cache.On("GetDestinations", ctx, allKey).Return(nil, errors.New("redis down")).Once()
	repo.On("List", ctx).Return(catalog(), nil).Once()
	cache.On("SetDestinations", ctx, allKey, mock.Anything).Return(errors.New("redis down")).Once()

	got, err := service.Search(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDestinationService_StorageError(t *testing.T) {
	repo := &MockDestinationRepository{}
	service := NewDestinationService(repo, discard)
	ctx := context.Background()

	repo.On("List", ctx).Return(nil, errors.New("db down")).Once()

	_, err := service.Search(ctx)
	assert.ErrorIs(t, err, domain.ErrStorage)
}
