package model

import "time"

// GoldVNum is the item vnum of the currency when it lies on the ground.
const GoldVNum int16 = 1046

// DropEntry is a static loot table row.
type DropEntry struct {
	ItemVNum int16
	Amount   int32
	Chance   int32  // rolled against chance*dropRate/5000
	MapType  string // "" = any map
}

// GroundItem is loot lying on a map, reserved for its owner.
type GroundItem struct {
	ID        int64
	MapID     int32
	ItemVNum  int16
	Amount    int32
	OwnerID   int64
	Position  Position
	DroppedAt time.Time
}

// IsGold reports whether the ground item is currency.
func (g GroundItem) IsGold() bool {
	return g.ItemVNum == GoldVNum
}
