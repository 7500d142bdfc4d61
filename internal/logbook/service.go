package logbook

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/glovebox/glovebox/backend/go-services/internal/vehicle"
	"github.com/glovebox/glovebox/backend/go-services/pkg/metrics"
)

// VehicleLookup confirms the caller owns the vehicle a log is filed against.
type VehicleLookup interface {
	Get(ctx context.Context, userID, id string) (*vehicle.Vehicle, error)
}

// Service validates and aggregates log entries. vehicles may be nil to skip the
// ownership check.
type Service struct {
	repo     Repository
	vehicles VehicleLookup
	now      func() time.Time
}

func NewService(repo Repository, vehicles VehicleLookup) *Service {
	return &Service{repo: repo, vehicles: vehicles, now: time.Now}
}

func validate(e *Entry) error {
	switch {
	case e.Type != KindFuel && e.Type != KindService:
		return fmt.Errorf("%w: type must be fuel or service", ErrInvalidInput)
	case e.Cost <= 0 || e.Odo <= 0:
		return fmt.Errorf("%w: cost and odometer are required", ErrInvalidInput)
	case e.Type == KindFuel && e.Liters <= 0:
		return fmt.Errorf("%w: fuel quantity in liters is required", ErrInvalidInput)
	case e.Type == KindService && e.ServiceCategory == "":
		return fmt.Errorf("%w: service category is required", ErrInvalidInput)
	}
	return nil
}

// AddLog files an entry against vehicleID. Fields that do not belong to the
// entry's type are dropped. The server assigns id and createdAt.
func (s *Service) AddLog(ctx context.Context, userID, vehicleID string, e Entry) (*Entry, error) {
	if vehicleID == "" {
		return nil, fmt.Errorf("%w: vehicle is required", ErrInvalidInput)
	}
	e.ID = ""
	e.CreatedAt = s.now().UTC()
	e.UserID = userID
	e.VehicleID = vehicleID
	e.Type = Kind(strings.ToLower(strings.TrimSpace(string(e.Type))))
	e.ServiceCategory = strings.TrimSpace(e.ServiceCategory)
	e.Notes = strings.TrimSpace(e.Notes)
	switch e.Type {
	case KindFuel:
		e.ServiceCategory = ""
	case KindService:
		e.Liters = 0
	}
	if err := validate(&e); err != nil {
		return nil, err
	}
	if s.vehicles != nil {
		if _, err := s.vehicles.Get(ctx, userID, vehicleID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, &e); err != nil {
		return nil, err
	}
	metrics.RecordsSaved.WithLabelValues("log", "create").Inc()
	return &e, nil
}

func (s *Service) ListLogs(ctx context.Context, userID, vehicleID string) ([]*Entry, error) {
	return s.repo.List(ctx, userID, vehicleID)
}

func (s *Service) DeleteLog(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *Service) TotalSpent(ctx context.Context, userID, vehicleID string) (float64, error) {
	return s.repo.TotalSpent(ctx, userID, vehicleID)
}

// Summary breaks spending down by type. The grand total comes from the store's
// own aggregation.
func (s *Service) Summary(ctx context.Context, userID, vehicleID string) (Summary, error) {
	list, err := s.repo.List(ctx, userID, vehicleID)
	if err != nil {
		return Summary{}, err
	}
	sum := Summarize(list)
	total, err := s.repo.TotalSpent(ctx, userID, vehicleID)
	if err != nil {
		return Summary{}, err
	}
	sum.TotalSpent = total
	return sum, nil
}

// Summarize totals entries by type. Fuel economy uses the distance between the
// lowest and highest fuel-fill odometer readings over the liters bought after
// the first of those fills.
func Summarize(entries []*Entry) Summary {
	var sum Summary
	var fuel []*Entry
	for _, e := range entries {
		sum.Entries++
		sum.TotalSpent += e.Cost
		switch e.Type {
		case KindFuel:
			sum.FuelSpent += e.Cost
			sum.FuelLiters += e.Liters
			fuel = append(fuel, e)
		case KindService:
			sum.ServiceSpent += e.Cost
		}
	}
	if len(fuel) >= 2 {
		sort.Slice(fuel, func(i, j int) bool { return fuel[i].Odo < fuel[j].Odo })
		distance := float64(fuel[len(fuel)-1].Odo - fuel[0].Odo)
		var liters float64
		for _, e := range fuel[1:] {
			liters += e.Liters
		}
		if distance > 0 && liters > 0 {
			sum.KmPerLiter = math.Round(distance/liters*100) / 100
		}
	}
	return sum
}
