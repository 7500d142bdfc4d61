package vehicle

import (
	"context"
	"fmt"
	"strings"

	"github.com/glovebox/glovebox/backend/go-services/pkg/metrics"
)

// Input is the vehicle setup form. Nil fields are left unchanged on update.
type Input struct {
	Type        *Type   `json:"type"`
	Name        *string `json:"name"`
	Plate       *string `json:"plate"`
	Odo         *int64  `json:"odo"`
	NextService *int64  `json:"nextService"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (in Input) apply(v *Vehicle) {
	if in.Type != nil {
		v.Type = Type(strings.ToLower(strings.TrimSpace(string(*in.Type))))
	}
	if in.Name != nil {
		v.Name = strings.TrimSpace(*in.Name)
	}
	if in.Plate != nil {
		v.Plate = strings.ToUpper(strings.TrimSpace(*in.Plate))
	}
	if in.Odo != nil {
		v.Odo = *in.Odo
	}
	if in.NextService != nil {
		v.NextService = *in.NextService
	}
}

func validate(v *Vehicle) error {
	switch {
	case v.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case v.Plate == "":
		return fmt.Errorf("%w: plate is required", ErrInvalidInput)
	case !v.Type.Valid():
		return fmt.Errorf("%w: type must be one of car, bike, van, lorry", ErrInvalidInput)
	case v.Odo < 0 || v.NextService < 0:
		return fmt.Errorf("%w: odometer readings cannot be negative", ErrInvalidInput)
	}
	return nil
}

// Add registers a vehicle. Every field is required except type, which defaults to car.
func (s *Service) Add(ctx context.Context, userID string, in Input) (*Vehicle, error) {
	if in.Odo == nil || in.NextService == nil {
		return nil, fmt.Errorf("%w: odo and nextService are required", ErrInvalidInput)
	}
	v := &Vehicle{UserID: userID, Type: TypeCar}
	in.apply(v)
	if err := validate(v); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	metrics.RecordsSaved.WithLabelValues("vehicle", "create").Inc()
	return v, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*Vehicle, error) {
	return s.repo.List(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Vehicle, error) {
	return s.repo.Get(ctx, userID, id)
}

// Active returns the user's default vehicle, the first one added.
func (s *Service) Active(ctx context.Context, userID string) (*Vehicle, error) {
	list, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return list[0], nil
}

func (s *Service) Update(ctx context.Context, userID, id string, in Input) (*Vehicle, error) {
	v, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	in.apply(v)
	if err := validate(v); err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, v); err != nil {
		return nil, err
	}
	metrics.RecordsSaved.WithLabelValues("vehicle", "update").Inc()
	return v, nil
}
