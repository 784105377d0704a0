package combat

import "github.com/udisondev/battlecore/internal/model"

// dropChanceDivisor turns chance × rate into the roll threshold.
const dropChanceDivisor = 5000.0

// EligibleDrops filters a drop table by the map's category tags.
// Entries without a map type drop everywhere.
func EligibleDrops(drops []model.DropEntry, hasTag func(string) bool) []model.DropEntry {
	out := make([]model.DropEntry, 0, len(drops))
	for _, d := range drops {
		if d.MapType == "" || hasTag(d.MapType) {
			out = append(out, d)
		}
	}
	return out
}

// RollDrops shuffles the eligible entries and rolls each one until limit
// drops have succeeded. An entry succeeds when
// IntN(100) × Float64() <= chance × dropRate / 5000.
func RollDrops(rng Rand, eligible []model.DropEntry, dropRate float64, limit int) []model.DropEntry {
	if len(eligible) == 0 || limit <= 0 {
		return nil
	}

	order := make([]model.DropEntry, len(eligible))
	copy(order, eligible)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	var out []model.DropEntry
	for _, d := range order {
		if len(out) >= limit {
			break
		}
		u := float64(rng.IntN(100)) * rng.Float64()
		if u <= float64(d.Chance)*dropRate/dropChanceDivisor {
			out = append(out, d)
		}
	}
	return out
}
