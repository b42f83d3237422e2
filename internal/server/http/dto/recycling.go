package dto

import "time"

// RecyclingRequest describes a plastic drop-off submission.
type RecyclingRequest struct {
	PlasticType string  `json:"plastic_type"`
	WeightKg    float64 `json:"weight_kg"`
	Notes       string  `json:"notes,omitempty"`
}

// RecyclingResponse is a recorded submission with its awarded points.
type RecyclingResponse struct {
	ID          int64     `json:"id"`
	PlasticType string    `json:"plastic_type"`
	WeightKg    float64   `json:"weight_kg"`
	Points      int64     `json:"points"`
	Notes       string    `json:"notes,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}
