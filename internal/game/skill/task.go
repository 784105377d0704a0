package skill

import (
	"context"
	"sync"
	"time"
)

type taskKey struct {
	charID int64
	castID int16
}

// tasks tracks running casts so they can be cancelled on logout or death.
type tasks struct {
	mu     sync.Mutex
	nextID uint64
	byKey  map[taskKey]map[uint64]context.CancelFunc
}

func newTasks() *tasks {
	return &tasks{byKey: make(map[taskKey]map[uint64]context.CancelFunc)}
}

// start derives a cancellable context for a cast and registers it.
// The returned release func must be called when the cast ends.
func (t *tasks) start(parent context.Context, key taskKey) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	t.mu.Lock()
	t.nextID++
	id := t.nextID
	m, ok := t.byKey[key]
	if !ok {
		m = make(map[uint64]context.CancelFunc)
		t.byKey[key] = m
	}
	m[id] = cancel
	t.mu.Unlock()

	release := func() {
		cancel()
		t.mu.Lock()
		defer t.mu.Unlock()
		if m, ok := t.byKey[key]; ok {
			delete(m, id)
			if len(m) == 0 {
				delete(t.byKey, key)
			}
		}
	}
	return ctx, release
}

// cancelAll cancels every running cast of a character.
func (t *tasks) cancelAll(charID int64) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for k, m := range t.byKey {
		if k.charID != charID {
			continue
		}
		for _, c := range m {
			c()
			n++
		}
	}
	return n
}

// running returns the number of live casts of a character.
func (t *tasks) running(charID int64) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for k, m := range t.byKey {
		if k.charID == charID {
			n += len(m)
		}
	}
	return n
}

// sleep waits for d or until ctx is done. Reports whether d elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
