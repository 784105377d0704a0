package party

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/udisondev/battlecore/internal/model"
)

// Manager manages all active groups on the server.
// Thread-safe: uses RWMutex for group maps and atomic for ID generation.
type Manager struct {
	mu       sync.RWMutex
	groups   map[int32]*model.Group
	byMember map[int64]int32 // characterID → groupID
	nextID   atomic.Int32
}

// NewManager creates a new group manager.
func NewManager() *Manager {
	return &Manager{
		groups:   make(map[int32]*model.Group),
		byMember: make(map[int64]int32),
	}
}

// CreateGroup creates a group with founder and the given sharing mode.
func (m *Manager) CreateGroup(founder int64, mode model.SharingMode) (*model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gid, ok := m.byMember[founder]; ok {
		return nil, fmt.Errorf("character %d already in group %d", founder, gid)
	}

	id := m.nextID.Add(1)
	g := model.NewGroup(id, founder, mode)
	m.groups[id] = g
	m.byMember[founder] = id
	return g, nil
}

// Join adds charID to the group.
func (m *Manager) Join(groupID int32, charID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.groups[groupID]
	if !ok {
		return fmt.Errorf("group %d not found", groupID)
	}
	if gid, ok := m.byMember[charID]; ok {
		return fmt.Errorf("character %d already in group %d", charID, gid)
	}
	if err := g.AddMember(charID); err != nil {
		return fmt.Errorf("joining group %d: %w", groupID, err)
	}
	m.byMember[charID] = groupID
	return nil
}

// Leave removes charID from its group. The group is disbanded when fewer
// than two members remain. Returns whether a disband happened.
func (m *Manager) Leave(charID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	gid, ok := m.byMember[charID]
	if !ok {
		return false
	}
	delete(m.byMember, charID)

	g := m.groups[gid]
	if !g.RemoveMember(charID) {
		return false
	}
	m.disbandLocked(g)
	return true
}

// Disband removes a group and all of its memberships.
// Does NOT notify members -- caller is responsible for sending packets.
func (m *Manager) Disband(groupID int32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if g, ok := m.groups[groupID]; ok {
		m.disbandLocked(g)
	}
}

func (m *Manager) disbandLocked(g *model.Group) {
	for _, id := range g.Members() {
		delete(m.byMember, id)
	}
	delete(m.groups, g.ID())
}

// GroupOf returns the group charID belongs to.
func (m *Manager) GroupOf(charID int64) (*model.Group, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	gid, ok := m.byMember[charID]
	if !ok {
		return nil, false
	}
	g, ok := m.groups[gid]
	return g, ok
}

// Group returns a group by ID.
func (m *Manager) Group(groupID int32) (*model.Group, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.groups[groupID]
	return g, ok
}

// GroupCount returns the number of active groups.
func (m *Manager) GroupCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.groups)
}
