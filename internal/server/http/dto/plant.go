package dto

import "time"

// PlantResponse is an owned plant with its care schedule classification.
type PlantResponse struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Species           string     `json:"species,omitempty"`
	GrowthStage       string     `json:"growth_stage"`
	HealthStatus      string     `json:"health_status"`
	HeightCm          *float64   `json:"height_cm,omitempty"`
	LastWatered       *time.Time `json:"last_watered,omitempty"`
	LastFertilized    *time.Time `json:"last_fertilized,omitempty"`
	PurchaseDate      time.Time  `json:"purchase_date"`
	PlantingDate      *time.Time `json:"planting_date,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	WateringStatus    string     `json:"watering_status"`
	FertilizingStatus string     `json:"fertilizing_status"`
}

// CareRequest records a generic maintenance action.
type CareRequest struct {
	Type     string   `json:"type"`
	Notes    string   `json:"notes,omitempty"`
	HeightCm *float64 `json:"height_cm,omitempty"`
}

// HealthRequest sets a plant's health status.
type HealthRequest struct {
	Status string `json:"status"`
}

// MaintenanceResponse reports the outcome of a care action.
type MaintenanceResponse struct {
	Plant         PlantResponse `json:"plant"`
	PointsAwarded int64         `json:"points_awarded"`
	BonusApplied  bool          `json:"bonus_applied"`
}
