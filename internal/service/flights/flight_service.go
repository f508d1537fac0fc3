package flights

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context, query ListQuery) ([]domain.Flight, error)
	Search(ctx context.Context, query SearchQuery) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

// ListQuery holds the raw query-string values for browsing a route.
type ListQuery struct {
	FromCity  string
	ToCity    string
	ClassType string
}

// SearchQuery holds the raw query-string values; Search validates them.
type SearchQuery struct {
	FromCity      string
	ToCity        string
	ClassType     string
	Passengers    string
	DepartureDate string
}

type FlightService struct {
	repo repository.FlightRepository
}

func NewFlightService(repo repository.FlightRepository) *FlightService {
	return &FlightService{repo: repo}
}

// List returns every flight on the route in the given class. Unlike
// Search, no matches is an empty list.
func (s *FlightService) List(ctx context.Context, query ListQuery) ([]domain.Flight, error) {
	fromCity := strings.TrimSpace(query.FromCity)
	toCity := strings.TrimSpace(query.ToCity)
	rawClass := strings.TrimSpace(query.ClassType)

	if missing := missingParams(
		param{"from_city", fromCity},
		param{"to_city", toCity},
		param{"class_type", rawClass},
	); missing != nil {
		return nil, missing
	}
	class, err := parseClass(rawClass)
	if err != nil {
		return nil, err
	}

	flights, err := s.repo.ListByRoute(ctx, fromCity, toCity, class)
	if err != nil {
		return nil, domain.Storage("list flights", err)
	}
	return flights, nil
}

// Search requires all five parameters. An empty result is reported as
// NO_FLIGHTS_FOUND rather than an empty list.
func (s *FlightService) Search(ctx context.Context, query SearchQuery) ([]domain.Flight, error) {
	filter, err := query.validate()
	if err != nil {
		return nil, err
	}

	flights, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, domain.Storage("search flights", err)
	}
	if len(flights) == 0 {
		return nil, domain.NotFound("NO_FLIGHTS_FOUND", fmt.Sprintf(
			"No flights found from %s to %s on %s or not enough seats available",
			filter.FromCity, filter.ToCity, query.DepartureDate))
	}
	return flights, nil
}

func (q SearchQuery) validate() (repository.FlightFilter, error) {
	q.FromCity = strings.TrimSpace(q.FromCity)
	q.ToCity = strings.TrimSpace(q.ToCity)
	q.ClassType = strings.TrimSpace(q.ClassType)
	q.Passengers = strings.TrimSpace(q.Passengers)
	q.DepartureDate = strings.TrimSpace(q.DepartureDate)

	if missing := missingParams(
		param{"from_city", q.FromCity},
		param{"to_city", q.ToCity},
		param{"class_type", q.ClassType},
		param{"passengers", q.Passengers},
		param{"departure_date", q.DepartureDate},
	); missing != nil {
		return repository.FlightFilter{}, missing
	}

	passengers, err := strconv.Atoi(q.Passengers)
	if err != nil || passengers <= 0 || passengers > domain.MaxPartySize {
		return repository.FlightFilter{}, domain.Validation("INVALID_PASSENGER_COUNT", "Invalid passenger count")
	}

	class, err := parseClass(q.ClassType)
	if err != nil {
		return repository.FlightFilter{}, err
	}

	date, err := ParseCalendarDate(q.DepartureDate)
	if err != nil {
		return repository.FlightFilter{}, domain.Validation("INVALID_DATE_FORMAT", "Invalid date format. Please use YYYY-MM-DD format.")
	}

	return repository.FlightFilter{
		FromCity:   q.FromCity,
		ToCity:     q.ToCity,
		ClassType:  class,
		Passengers: passengers,
		Date:       date,
	}, nil
}

type param struct{ name, value string }

func missingParams(params ...param) error {
	var missing []string
	for _, p := range params {
		if p.value == "" {
			missing = append(missing, p.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return domain.Validation("MISSING_PARAMETERS", "Missing required parameters: "+strings.Join(missing, ", "))
}

func parseClass(s string) (domain.ClassType, error) {
	class := domain.ClassType(strings.ToLower(s))
	if !class.Valid() {
		return "", domain.Validation("INVALID_CLASS_TYPE", "Invalid class_type. Use economy, business or first.")
	}
	return class, nil
}

// ParseCalendarDate accepts only zero-padded YYYY-MM-DD dates that exist
// on the calendar, returning midnight UTC.
func ParseCalendarDate(s string) (time.Time, error) {
	if len(s) != len(time.DateOnly) {
		return time.Time{}, fmt.Errorf("date %q: want YYYY-MM-DD", s)
	}
	return time.Parse(time.DateOnly, s)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("FLIGHT_NOT_FOUND", "Flight not found")
		}
		return nil, domain.Storage("get flight", err)
	}
	return flight, nil
}

var _ FlightUseCase = (*FlightService)(nil)
