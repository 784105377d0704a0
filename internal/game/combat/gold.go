package combat

// Gold multipliers by map category.
const (
	DefaultAreaGoldMultiplier = 1.0
	Act52GoldMultiplier       = 10.0
)

// RollGold computes the currency dropped by a kill.
// The drop happens when IntN(killerLevel) < monsterLevel; the base is drawn
// from [6×level, 12×level) and scaled by goldRate and area. The result is
// capped at maxGold; over reports that the uncapped amount exceeded it.
func RollGold(rng Rand, killerLevel, monsterLevel int16, goldRate, area float64, maxGold int64) (amount int64, over bool) {
	if monsterLevel <= 0 {
		return 0, false
	}
	if rng.IntN(max(int(killerLevel), 1)) >= int(monsterLevel) {
		return 0, false
	}

	lvl := int(monsterLevel)
	base := 6*lvl + rng.IntN(6*lvl)

	raw := float64(base) * goldRate * area
	if raw > float64(maxGold) {
		return maxGold, true
	}
	return max(0, int64(raw)), false
}
