// Package logbook records fuel fills and services against a vehicle and
// aggregates what they cost.
package logbook

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid log entry")
	ErrNotFound     = errors.New("log entry not found")
)

type Kind string

const (
	KindFuel    Kind = "fuel"
	KindService Kind = "service"
)

// Entry is one expense. Liters is set for fuel, ServiceCategory for service.
type Entry struct {
	ID              string    `json:"id" bson:"_id"`
	UserID          string    `json:"userId" bson:"userId"`
	VehicleID       string    `json:"vehicleId" bson:"vehicleId"`
	Type            Kind      `json:"type" bson:"type"`
	Cost            float64   `json:"cost" bson:"cost"`
	Odo             int64     `json:"odo" bson:"odo"`
	Liters          float64   `json:"liters,omitempty" bson:"liters,omitempty"`
	ServiceCategory string    `json:"serviceCategory,omitempty" bson:"serviceCategory,omitempty"`
	Notes           string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
}

type Summary struct {
	TotalSpent   float64 `json:"totalSpent"`
	FuelSpent    float64 `json:"fuelSpent"`
	ServiceSpent float64 `json:"serviceSpent"`
	Entries      int     `json:"entries"`
	FuelLiters   float64 `json:"fuelLiters"`
	// KmPerLiter is 0 until at least two fuel fills are logged.
	KmPerLiter float64 `json:"kmPerLiter"`
}
