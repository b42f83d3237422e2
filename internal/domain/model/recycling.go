package model

import "time"

// PlasticType enumerates accepted recycling plastic categories.
type PlasticType string

const (
	PlasticPET   PlasticType = "PET"
	PlasticHDPE  PlasticType = "HDPE"
	PlasticPVC   PlasticType = "PVC"
	PlasticLDPE  PlasticType = "LDPE"
	PlasticPP    PlasticType = "PP"
	PlasticOther PlasticType = "OTHER"
)

// Valid reports whether the plastic type is one of the enumerated values.
func (p PlasticType) Valid() bool {
	switch p {
	case PlasticPET, PlasticHDPE, PlasticPVC, PlasticLDPE, PlasticPP, PlasticOther:
		return true
	}
	return false
}

// RecyclingSubmission records a plastic drop-off. Immutable once created;
// Points is derived from weight and type and is never edited independently.
type RecyclingSubmission struct {
	ID          int64
	AccountID   int64
	PlasticType PlasticType
	WeightKg    float64
	Points      int64
	Notes       string
	SubmittedAt time.Time
}
