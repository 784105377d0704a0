package model

import (
	"sync"
	"time"
)

// ReserveResult is the outcome of SkillCastState.Reserve.
type ReserveResult uint8

const (
	Reserved ReserveResult = iota
	ReserveOnCooldown
	ReserveInFlight
)

// Reservation remembers the cooldown stamp replaced by Reserve so a cancelled
// cast can put it back.
type Reservation struct {
	prev time.Time
}

// SkillCastState is the per-character mutable record of one learned skill.
// Создаётся лениво при первом использовании, живёт вместе с сессией персонажа.
type SkillCastState struct {
	def *SkillDefinition

	mu       sync.Mutex
	lastUse  time.Time
	inFlight bool
	hit      uint8
	lastHit  time.Time
}

// NewSkillCastState creates cast state for the given skill template.
func NewSkillCastState(def *SkillDefinition) *SkillCastState {
	return &SkillCastState{def: def}
}

// Definition returns the immutable skill template.
func (s *SkillCastState) Definition() *SkillDefinition {
	return s.def
}

// LastUse returns the time of the last successful cast start.
func (s *SkillCastState) LastUse() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUse
}

// ReadyAt returns the earliest instant the skill may be cast again.
func (s *SkillCastState) ReadyAt(cooldown time.Duration) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUse.Add(cooldown)
}

// Reserve checks the cooldown and stamps lastUse=now in one step.
// Only one invocation per skill may be in flight at a time.
func (s *SkillCastState) Reserve(now time.Time, cooldown time.Duration) (Reservation, ReserveResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return Reservation{}, ReserveInFlight
	}
	if !s.lastUse.IsZero() && now.Before(s.lastUse.Add(cooldown)) {
		return Reservation{}, ReserveOnCooldown
	}

	r := Reservation{prev: s.lastUse}
	s.lastUse = now
	s.inFlight = true
	return r, Reserved
}

// Rollback undoes a Reserve: restores the previous cooldown stamp and frees
// the in-flight slot.
func (s *SkillCastState) Rollback(r Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUse = r.prev
	s.inFlight = false
}

// Finish frees the in-flight slot, keeping the cooldown stamp.
func (s *SkillCastState) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

// InFlight reports whether an invocation of this skill is still running.
func (s *SkillCastState) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// RecordHit advances the combo streak for a landed hit and returns the new value.
// The streak restarts at 1 when more than idle has passed since the previous hit.
func (s *SkillCastState) RecordHit(now time.Time, idle time.Duration) uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastHit.IsZero() || now.Sub(s.lastHit) > idle {
		s.hit = 0
	}
	s.hit++
	s.lastHit = now
	return s.hit
}

// ResetCombo drops the combo streak to zero.
func (s *SkillCastState) ResetCombo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit = 0
	s.lastHit = time.Time{}
}

// ComboHit returns the current combo streak.
func (s *SkillCastState) ComboHit() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hit
}
