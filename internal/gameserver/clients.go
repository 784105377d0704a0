package gameserver

import (
	"log/slog"
	"sync"

	"github.com/udisondev/battlecore/internal/model"
)

// MapRoster lists the characters standing on a map.
type MapRoster interface {
	CharactersInMap(mapID int32) []*model.Character
}

// ClientManager manages all logged-in clients and implements broadcast.Sink.
// Thread-safe for concurrent access.
type ClientManager struct {
	roster MapRoster

	mu     sync.RWMutex
	byChar map[int64]*Client // characterID → client
}

// NewClientManager creates a client manager. Map broadcasts reach the
// characters roster reports on the map.
func NewClientManager(roster MapRoster) *ClientManager {
	return &ClientManager{
		roster: roster,
		byChar: make(map[int64]*Client, 256),
	}
}

// Register binds a character to its client.
// Returns false if the character already has a client.
func (cm *ClientManager) Register(charID int64, client *Client) bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if _, ok := cm.byChar[charID]; ok {
		return false
	}
	cm.byChar[charID] = client
	return true
}

// Unregister removes the binding if it still points at client.
func (cm *ClientManager) Unregister(charID int64, client *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.byChar[charID] == client {
		delete(cm.byChar, charID)
	}
}

// Client returns the client of a character.
func (cm *ClientManager) Client(charID int64) (*Client, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	c, ok := cm.byChar[charID]
	return c, ok
}

// Count returns the number of logged-in clients.
func (cm *ClientManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.byChar)
}

// Online returns every logged-in character.
func (cm *ClientManager) Online() []*model.Character {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	out := make([]*model.Character, 0, len(cm.byChar))
	for _, c := range cm.byChar {
		if ch := c.Character(); ch != nil {
			out = append(out, ch)
		}
	}
	return out
}

// ForEachClient iterates over logged-in clients. If fn returns false,
// iteration stops.
func (cm *ClientManager) ForEachClient(fn func(*Client) bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	for _, c := range cm.byChar {
		if !fn(c) {
			return
		}
	}
}

// SendTo queues data for one character. Returns false if it is offline.
func (cm *ClientManager) SendTo(charID int64, data []byte) bool {
	c, ok := cm.Client(charID)
	if !ok {
		return false
	}
	if err := c.Send(data); err != nil {
		slog.Debug("private send failed", "character", charID, "error", err)
		return false
	}
	return true
}

// SendToMap queues data for every online character on mapID.
// Returns the number of clients that accepted it.
func (cm *ClientManager) SendToMap(mapID int32, data []byte) int {
	n := 0
	for _, ch := range cm.roster.CharactersInMap(mapID) {
		if cm.SendTo(ch.ID(), data) {
			n++
		}
	}
	return n
}
