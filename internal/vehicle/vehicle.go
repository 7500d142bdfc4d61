// Package vehicle manages the garage: each user's vehicles and their odometer state.
package vehicle

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("vehicle not found")
	ErrInvalidInput = errors.New("invalid vehicle")
)

type Type string

const (
	TypeCar   Type = "car"
	TypeBike  Type = "bike"
	TypeVan   Type = "van"
	TypeLorry Type = "lorry"
)

func (t Type) Valid() bool {
	switch t {
	case TypeCar, TypeBike, TypeVan, TypeLorry:
		return true
	}
	return false
}

// Vehicle odometer readings are whole kilometres.
type Vehicle struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"userId" bson:"userId"`
	Type        Type      `json:"type" bson:"type"`
	Name        string    `json:"name" bson:"name"`
	Plate       string    `json:"plate" bson:"plate"`
	Odo         int64     `json:"odo" bson:"odo"`
	NextService int64     `json:"nextService" bson:"nextService"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// KmToService is the distance left before the next service, negative when overdue.
func (v *Vehicle) KmToService() int64 {
	return v.NextService - v.Odo
}
