package plant

import (
	"testing"

	"github.com/verdora/ecotrade/internal/domain/model"
)

func record(id int64, name string) model.PlantRecord {
	return model.PlantRecord{ID: id, Name: name, GrowthStage: model.StageSeedling, HealthStatus: model.HealthGood}
}

func TestMergeIdempotent(t *testing.T) {
	a := []model.PlantRecord{record(1, "fern"), record(2, "aloe"), record(3, "basil")}

	got := Merge(a, a)
	if len(got) != len(a) {
		t.Fatalf("expected %d records, got %d", len(a), len(got))
	}
	for i := range a {
		if got[i].ID != a[i].ID || got[i].Name != a[i].Name {
			t.Fatalf("position %d: expected %+v, got %+v", i, a[i], got[i])
		}
	}
}

func TestMergeSecondSourceWins(t *testing.T) {
	a := []model.PlantRecord{record(1, "fern"), record(2, "aloe")}
	b := []model.PlantRecord{record(2, "aloe vera"), record(3, "basil")}

	got := Merge(a, b)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}

	// First-seen insertion order with b's record replacing a's in place.
	wantIDs := []int64{1, 2, 3}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("position %d: expected id %d, got %d", i, id, got[i].ID)
		}
	}
	if got[1].Name != "aloe vera" {
		t.Fatalf("expected b to overwrite colliding record, got %q", got[1].Name)
	}
}

func TestMergeUnionWithoutDuplicates(t *testing.T) {
	a := []model.PlantRecord{record(1, "a"), record(2, "b")}
	b := []model.PlantRecord{record(3, "c"), record(1, "a2"), record(4, "d")}

	got := Merge(a, b)
	seen := make(map[int64]bool)
	for _, p := range got {
		if seen[p.ID] {
			t.Fatalf("duplicate id %d in merge result", p.ID)
		}
		seen[p.ID] = true
	}
	for _, id := range []int64{1, 2, 3, 4} {
		if !seen[id] {
			t.Fatalf("id %d missing from union", id)
		}
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	if got := Merge(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d records", len(got))
	}
	a := []model.PlantRecord{record(1, "fern")}
	if got := Merge(a, nil); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected result for one-sided merge: %+v", got)
	}
	if got := Merge(nil, a); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected result for one-sided merge: %+v", got)
	}
}
