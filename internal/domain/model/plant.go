package model

import "time"

// GrowthStage describes the ordered lifecycle phase of an owned plant.
type GrowthStage string

const (
	StageSeedling    GrowthStage = "Seedling"
	StageYoungPlant  GrowthStage = "YoungPlant"
	StageMaturePlant GrowthStage = "MaturePlant"
	StageFullyGrown  GrowthStage = "FullyGrown"
)

// Next returns the following stage. FullyGrown is terminal and returns itself.
func (g GrowthStage) Next() GrowthStage {
	switch g {
	case StageSeedling:
		return StageYoungPlant
	case StageYoungPlant:
		return StageMaturePlant
	case StageMaturePlant:
		return StageFullyGrown
	default:
		return StageFullyGrown
	}
}

// Valid reports whether the stage is one of the enumerated values.
func (g GrowthStage) Valid() bool {
	switch g {
	case StageSeedling, StageYoungPlant, StageMaturePlant, StageFullyGrown:
		return true
	}
	return false
}

// HealthStatus describes plant condition as reported by maintenance or diagnosis.
type HealthStatus string

const (
	HealthGood HealthStatus = "Good"
	HealthFair HealthStatus = "Fair"
	HealthPoor HealthStatus = "Poor"
)

// Valid reports whether the status is one of the enumerated values.
func (h HealthStatus) Valid() bool {
	switch h {
	case HealthGood, HealthFair, HealthPoor:
		return true
	}
	return false
}

// PlantRecord describes an owned plant. The id is stable across the two
// systems that can report the same plant (direct records and order-derived
// projections) and is the sole dedup key when collections are merged.
type PlantRecord struct {
	ID             int64
	AccountID      int64
	ProductID      int64
	Name           string
	Species        string
	GrowthStage    GrowthStage
	HealthStatus   HealthStatus
	HeightCm       *float64
	LastWatered    *time.Time
	LastFertilized *time.Time
	PurchaseDate   time.Time
	PlantingDate   *time.Time
	Notes          string
}

// MaintenanceType enumerates supported plant-care actions.
type MaintenanceType string

const (
	MaintenanceWater     MaintenanceType = "water"
	MaintenanceFertilize MaintenanceType = "fertilize"
	MaintenancePrune     MaintenanceType = "prune"
	MaintenanceRepot     MaintenanceType = "repot"
	MaintenanceOther     MaintenanceType = "other"
)

// Valid reports whether the maintenance type is recognized.
func (m MaintenanceType) Valid() bool {
	switch m {
	case MaintenanceWater, MaintenanceFertilize, MaintenancePrune, MaintenanceRepot, MaintenanceOther:
		return true
	}
	return false
}

// MaintenanceEvent is a transient plant-care action. It drives plant mutation
// and a one-shot bonus computation and is not persisted as its own entity.
type MaintenanceEvent struct {
	PlantID  int64
	Type     MaintenanceType
	Notes    string
	HeightCm *float64
	At       time.Time
}

// CareStatus summarizes how an eligibility window applies to a plant right now.
type CareStatus string

const (
	CareNever    CareStatus = "never"
	CareRecent   CareStatus = "recent"
	CareEligible CareStatus = "eligible"
	CareOverdue  CareStatus = "overdue"
)
