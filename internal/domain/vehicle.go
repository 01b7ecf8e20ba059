package domain

import "time"

// FuelType represents the fuel type of a vehicle
type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelHybrid   FuelType = "hybrid"
	FuelElectric FuelType = "electric"
)

// VehicleGroup groups vehicles that share rental conditions
type VehicleGroup struct {
	ID           int64
	Name         string
	MinDriverAge int
}

// Vehicle represents a rentable vehicle from the fleet catalog
type Vehicle struct {
	ID       int64
	Category string
	Group    VehicleGroup
	Make     string
	Model    string
	FuelType FuelType
	Seats    int
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllowsDriverAge returns true if a driver of the given age may rent the vehicle
func (v *Vehicle) AllowsDriverAge(age int) bool {
	return age >= v.Group.MinDriverAge
}

// DisplayName returns "Make Model"
func (v *Vehicle) DisplayName() string {
	return v.Make + " " + v.Model
}

// Place is a pickup or drop-off location
type Place struct {
	ID      int64
	Name    string
	City    string
	Address string
}
