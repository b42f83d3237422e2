package plant

import "github.com/verdora/ecotrade/internal/domain/model"

// Merge reconciles plant collections from two sources into one deduplicated
// slice keyed by id. Records from b overwrite records from a on collision
// (source precedence, not timestamps); result order is the insertion order of
// first-seen ids. Total and side-effect free.
func Merge(a, b []model.PlantRecord) []model.PlantRecord {
	index := make(map[int64]int, len(a)+len(b))
	result := make([]model.PlantRecord, 0, len(a)+len(b))

	for _, lists := range [][]model.PlantRecord{a, b} {
		for _, p := range lists {
			if pos, seen := index[p.ID]; seen {
				result[pos] = p
				continue
			}
			index[p.ID] = len(result)
			result = append(result, p)
		}
	}
	return result
}
