package plant

import (
	"time"

	"github.com/verdora/ecotrade/internal/domain/model"
)

// Day thresholds for maintenance scheduling. The display windows drive the
// care status shown to users; the hard floors gate whether the action is
// accepted at all.
const (
	waterRecentDays   = 5
	waterBonusMaxDays = 9
	waterFloorDays    = 3
	fertRecentDays    = 25
	fertBonusMaxDays  = 35
	fertFloorDays     = 20
)

func daysSince(last *time.Time, now time.Time) (int, bool) {
	if last == nil {
		return 0, false
	}
	return int(now.Sub(*last).Hours() / 24), true
}

// WateringStatus classifies a plant against the watering window at the given time.
func WateringStatus(p *model.PlantRecord, now time.Time) model.CareStatus {
	days, ok := daysSince(p.LastWatered, now)
	switch {
	case !ok:
		return model.CareNever
	case days < waterRecentDays:
		return model.CareRecent
	case days <= waterBonusMaxDays:
		return model.CareEligible
	default:
		return model.CareOverdue
	}
}

// FertilizingStatus classifies a plant against the fertilizing window.
func FertilizingStatus(p *model.PlantRecord, now time.Time) model.CareStatus {
	days, ok := daysSince(p.LastFertilized, now)
	switch {
	case !ok:
		return model.CareNever
	case days < fertRecentDays:
		return model.CareRecent
	case days <= fertBonusMaxDays:
		return model.CareEligible
	default:
		return model.CareOverdue
	}
}

// wateringAllowed applies the hard floor: re-watering inside 3 days is
// rejected. A never-watered plant is always waterable.
func wateringAllowed(p *model.PlantRecord, now time.Time) bool {
	days, ok := daysSince(p.LastWatered, now)
	return !ok || days >= waterFloorDays
}

func fertilizingAllowed(p *model.PlantRecord, now time.Time) bool {
	days, ok := daysSince(p.LastFertilized, now)
	return !ok || days >= fertFloorDays
}

// inWateringBonusWindow reports whether acting now earns the repeat bonus.
func inWateringBonusWindow(p *model.PlantRecord, now time.Time) bool {
	days, ok := daysSince(p.LastWatered, now)
	return ok && days >= waterRecentDays && days <= waterBonusMaxDays
}

func inFertilizingBonusWindow(p *model.PlantRecord, now time.Time) bool {
	days, ok := daysSince(p.LastFertilized, now)
	return ok && days >= fertRecentDays && days <= fertBonusMaxDays
}
