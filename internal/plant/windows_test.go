package plant

import (
	"testing"
	"time"

	"github.com/verdora/ecotrade/internal/domain/model"
)

func plantWateredDaysAgo(days int, now time.Time) *model.PlantRecord {
	at := now.AddDate(0, 0, -days)
	return &model.PlantRecord{LastWatered: &at}
}

func plantFertilizedDaysAgo(days int, now time.Time) *model.PlantRecord {
	at := now.AddDate(0, 0, -days)
	return &model.PlantRecord{LastFertilized: &at}
}

func TestWateringStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		days int
		want model.CareStatus
	}{
		{0, model.CareRecent},
		{4, model.CareRecent},
		{5, model.CareEligible},
		{9, model.CareEligible},
		{10, model.CareOverdue},
		{30, model.CareOverdue},
	}
	for _, tc := range cases {
		if got := WateringStatus(plantWateredDaysAgo(tc.days, now), now); got != tc.want {
			t.Fatalf("day %d: expected %s, got %s", tc.days, tc.want, got)
		}
	}

	if got := WateringStatus(&model.PlantRecord{}, now); got != model.CareNever {
		t.Fatalf("expected never for unwatered plant, got %s", got)
	}
}

func TestFertilizingStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		days int
		want model.CareStatus
	}{
		{10, model.CareRecent},
		{24, model.CareRecent},
		{25, model.CareEligible},
		{35, model.CareEligible},
		{36, model.CareOverdue},
	}
	for _, tc := range cases {
		if got := FertilizingStatus(plantFertilizedDaysAgo(tc.days, now), now); got != tc.want {
			t.Fatalf("day %d: expected %s, got %s", tc.days, tc.want, got)
		}
	}

	if got := FertilizingStatus(&model.PlantRecord{}, now); got != model.CareNever {
		t.Fatalf("expected never for unfertilized plant, got %s", got)
	}
}

func TestHardFloors(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if wateringAllowed(plantWateredDaysAgo(2, now), now) {
		t.Fatal("watering inside 3-day floor must be rejected")
	}
	if !wateringAllowed(plantWateredDaysAgo(3, now), now) {
		t.Fatal("watering at the floor boundary must be allowed")
	}
	if !wateringAllowed(&model.PlantRecord{}, now) {
		t.Fatal("never-watered plant must be waterable")
	}

	if fertilizingAllowed(plantFertilizedDaysAgo(19, now), now) {
		t.Fatal("fertilizing inside 20-day floor must be rejected")
	}
	if !fertilizingAllowed(plantFertilizedDaysAgo(20, now), now) {
		t.Fatal("fertilizing at the floor boundary must be allowed")
	}
}

func TestBonusWindows(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if inWateringBonusWindow(plantWateredDaysAgo(4, now), now) {
		t.Fatal("day 4 must not be in the watering bonus window")
	}
	if !inWateringBonusWindow(plantWateredDaysAgo(6, now), now) {
		t.Fatal("day 6 must be in the watering bonus window")
	}
	if inWateringBonusWindow(plantWateredDaysAgo(12, now), now) {
		t.Fatal("day 12 must be past the watering bonus window")
	}
	if inWateringBonusWindow(&model.PlantRecord{}, now) {
		t.Fatal("never-watered plant has no bonus window")
	}

	if !inFertilizingBonusWindow(plantFertilizedDaysAgo(30, now), now) {
		t.Fatal("day 30 must be in the fertilizing bonus window")
	}
	if inFertilizingBonusWindow(plantFertilizedDaysAgo(40, now), now) {
		t.Fatal("day 40 must be past the fertilizing bonus window")
	}
}
