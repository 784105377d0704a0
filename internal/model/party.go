package model

import (
	"fmt"
	"slices"
	"sync"
)

// MaxGroupMembers is the maximum group size.
const MaxGroupMembers = 3

// SharingMode decides how loot ownership is handled inside a group.
type SharingMode uint8

const (
	// SharingBroadcast keeps the first hitter as owner and tells every member.
	SharingBroadcast SharingMode = iota
	// SharingByOrder hands ownership to members in rotation.
	SharingByOrder
)

// Group is an ordered set of cooperating characters.
// Thread-safe: all methods acquire internal mutex.
type Group struct {
	mu      sync.RWMutex
	id      int32
	members []int64 // порядок вступления, нужен для ротации лута
	mode    SharingMode
	cursor  int
}

// NewGroup creates a group with the given founder.
func NewGroup(id int32, founder int64, mode SharingMode) *Group {
	g := &Group{
		id:      id,
		members: make([]int64, 0, MaxGroupMembers),
		mode:    mode,
	}
	g.members = append(g.members, founder)
	return g
}

// ID returns immutable group ID.
func (g *Group) ID() int32 {
	return g.id
}

// Mode returns current sharing mode.
func (g *Group) Mode() SharingMode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mode
}

// SetMode changes sharing mode.
func (g *Group) SetMode(mode SharingMode) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mode = mode
}

// Members returns a snapshot copy of member ids in join order.
func (g *Group) Members() []int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.members)
}

// IsMember checks if a character is in this group.
func (g *Group) IsMember(charID int64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Contains(g.members, charID)
}

// AddMember adds a character to the group.
func (g *Group) AddMember(charID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.members) >= MaxGroupMembers {
		return fmt.Errorf("group full (max %d members)", MaxGroupMembers)
	}
	if slices.Contains(g.members, charID) {
		return fmt.Errorf("character %d already in group", charID)
	}
	g.members = append(g.members, charID)
	return nil
}

// RemoveMember removes a character from the group.
// Returns true if the group should be disbanded (fewer than 2 members remaining).
func (g *Group) RemoveMember(charID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := slices.Index(g.members, charID)
	if idx < 0 {
		return false
	}
	g.members = slices.Delete(g.members, idx, idx+1)
	if g.cursor >= len(g.members) {
		g.cursor = 0
	}
	return len(g.members) < 2
}

// NextRecipient advances the loot rotation and returns the member whose turn it is.
func (g *Group) NextRecipient() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.members) == 0 {
		return 0
	}
	g.cursor = (g.cursor + 1) % len(g.members)
	return g.members[g.cursor]
}
