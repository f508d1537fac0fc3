package api

import (
	"context"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/Domenick1991/travelbooking/internal/service/flights"
	"github.com/Domenick1991/travelbooking/internal/service/users"
	"github.com/stretchr/testify/mock"
)

// MockUserUseCase is a mock implementation of users.UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, input users.RegisterInput) (*users.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.AuthResult), args.Error(1)
}

func (m *MockUserUseCase) Login(ctx context.Context, input users.LoginInput) (*users.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.AuthResult), args.Error(1)
}

func (m *MockUserUseCase) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context, query flights.ListQuery) ([]domain.Flight, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Search(ctx context.Context, query flights.SearchQuery) ([]domain.Flight, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

// MockDestinationUseCase is a mock implementation of destinations.DestinationUseCase
type MockDestinationUseCase struct {
	mock.Mock
}

func (m *MockDestinationUseCase) Featured(ctx context.Context) ([]domain.Destination, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Destination), args.Error(1)
}

func (m *MockDestinationUseCase) Search(ctx context.Context) ([]domain.Destination, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Destination), args.Error(1)
}

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateFlightBooking(ctx context.Context, userID int64, input booking.CreateFlightBookingInput) (*domain.FlightBooking, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightBooking), args.Error(1)
}

func (m *MockBookingUseCase) ListFlightBookings(ctx context.Context, userID int64) ([]domain.FlightBooking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightBooking), args.Error(1)
}

func (m *MockBookingUseCase) CancelFlightBooking(ctx context.Context, userID, bookingID int64) error {
	return m.Called(ctx, userID, bookingID).Error(0)
}

func (m *MockBookingUseCase) CreateDestinationBooking(ctx context.Context, userID int64, input booking.CreateDestinationBookingInput) (*domain.DestinationBooking, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DestinationBooking), args.Error(1)
}

func (m *MockBookingUseCase) ListDestinationBookings(ctx context.Context, userID int64) ([]domain.DestinationBooking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DestinationBooking), args.Error(1)
}

func (m *MockBookingUseCase) CancelDestinationBooking(ctx context.Context, userID, bookingID int64) error {
	return m.Called(ctx, userID, bookingID).Error(0)
}
