package skill

import "errors"

// Rejection reasons returned in Outcome.Err. None of them is fatal: each
// one ends the current invocation only.
var (
	ErrUnknownCaster   = errors.New("caster not in world")
	ErrSkillNotFound   = errors.New("skill not learned")
	ErrMuted           = errors.New("caster is muted")
	ErrTransformLocked = errors.New("caster transformed too recently")
	ErrVehicled        = errors.New("caster is mounted")
	ErrWeaponNotLoaded = errors.New("weapon not loaded")
	ErrCasterDead      = errors.New("caster is dead")
	ErrTargetGone      = errors.New("target gone")
	ErrOutOfRange      = errors.New("target out of range")
	ErrOnCooldown      = errors.New("skill on cooldown")
	ErrCastInFlight    = errors.New("skill already being cast")
	ErrNotEnoughMP     = errors.New("not enough MP")
	ErrCancelled       = errors.New("cast cancelled")
)
