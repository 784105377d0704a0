package skill

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/udisondev/battlecore/internal/game/combat"
	"github.com/udisondev/battlecore/internal/gameserver/serverpackets"
	"github.com/udisondev/battlecore/internal/i18n"
	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/world"
)

// Target kinds used in inbound commands and outbound notifications.
const (
	KindMonster   int8 = 0
	KindCharacter int8 = 1
)

// MapLookup resolves a map by id.
type MapLookup interface {
	Map(id int32) (*world.Map, bool)
}

// Request is one skill use command.
type Request struct {
	CasterID int64
	CastID   int16

	// Single-target casts.
	Kind     int8
	TargetID int64

	// Zone casts aimed at a ground cell.
	Ground bool
	X, Y   int16
}

// Outcome reports whether a cast was accepted. Accepted casts resolve in
// the background; Err is set only for rejections.
type Outcome struct {
	Accepted bool
	Err      error
}

// CastManager validates skill casts and drives their timeline:
// cast begin → cast time → resolution → cooldown → skill ready.
// Each accepted cast runs in its own goroutine bound to the caller's
// context, so a closed session cancels every pending cast.
type CastManager struct {
	env     *combat.Env
	maps    MapLookup
	rewards *combat.Distributor
	tasks   *tasks
}

// NewCastManager creates a CastManager.
func NewCastManager(env *combat.Env, maps MapLookup) *CastManager {
	return &CastManager{
		env:     env,
		maps:    maps,
		rewards: combat.NewDistributor(env),
		tasks:   newTasks(),
	}
}

// cast is one accepted invocation.
type cast struct {
	caster *model.Character
	state  *model.SkillCastState
	def    *model.SkillDefinition
	area   *world.Map
	req    Request
	res    model.Reservation
	start  time.Time
	mpPaid int32
}

// TryCast validates req and, if every precondition holds, starts the cast.
func (cm *CastManager) TryCast(ctx context.Context, req Request) Outcome {
	caster, ok := cm.env.Characters.Character(req.CasterID)
	if !ok {
		return Outcome{Err: ErrUnknownCaster}
	}
	st, ok := caster.Skill(req.CastID)
	if !ok {
		slog.Debug("cast of unknown skill dropped", "caster", caster.Name(), "cast_id", req.CastID)
		return Outcome{Err: ErrSkillNotFound}
	}
	def := st.Definition()
	now := time.Now()

	if err := cm.checkCaster(caster, def, now); err != nil {
		cm.reject(caster, req, err, now)
		return Outcome{Err: err}
	}

	area, ok := cm.maps.Map(caster.MapID())
	if !ok {
		slog.Error("caster on unknown map", "caster", caster.Name(), "map", caster.MapID())
		cm.reject(caster, req, ErrTargetGone, now)
		return Outcome{Err: ErrTargetGone}
	}
	if err := cm.checkTarget(caster, def, area, req, now); err != nil {
		cm.reject(caster, req, err, now)
		return Outcome{Err: err}
	}

	res, rr := st.Reserve(now, cm.env.Combat.Units(def.Cooldown))
	switch rr {
	case model.ReserveOnCooldown:
		cm.reject(caster, req, ErrOnCooldown, now)
		return Outcome{Err: ErrOnCooldown}
	case model.ReserveInFlight:
		cm.reject(caster, req, ErrCastInFlight, now)
		return Outcome{Err: ErrCastInFlight}
	}

	c := &cast{caster: caster, state: st, def: def, area: area, req: req, res: res, start: now}
	if !caster.HasUnlimitedResources() {
		if !caster.ConsumeMP(int32(def.MPCost)) {
			st.Rollback(res)
			cm.reject(caster, req, ErrNotEnoughMP, now)
			return Outcome{Err: ErrNotEnoughMP}
		}
		c.mpPaid = int32(def.MPCost)
	}
	cm.env.Out.Stat(caster.ID(), caster.CurrentHP(), caster.MaxHP(), caster.CurrentMP(), caster.MaxMP())

	resetOtherCombos(caster, st)
	cm.env.Out.CastBegin(area.ID(), cm.castBegin(c))

	taskCtx, release := cm.tasks.start(ctx, taskKey{charID: caster.ID(), castID: def.CastID})
	go func() {
		defer release()
		cm.run(taskCtx, c)
	}()

	slog.Debug("cast started",
		"caster", caster.Name(),
		"skill", def.VNum,
		"cast_time", def.CastTime,
		"cooldown", def.Cooldown)
	return Outcome{Accepted: true}
}

// CancelAll cancels every pending cast of a character. Casts that have not
// resolved yet leave no trace: no damage, no cooldown, MP refunded.
func (cm *CastManager) CancelAll(charID int64) int {
	return cm.tasks.cancelAll(charID)
}

// Running returns the number of casts of a character still in progress.
func (cm *CastManager) Running(charID int64) int {
	return cm.tasks.running(charID)
}

// checkCaster runs the caster preconditions in order.
func (cm *CastManager) checkCaster(c *model.Character, def *model.SkillDefinition, now time.Time) error {
	if err := cm.checkControl(c, now); err != nil {
		return err
	}
	switch {
	case !c.WeaponLoaded(def.Weapon):
		return ErrWeaponNotLoaded
	case c.IsDead():
		return ErrCasterDead
	}
	return nil
}

// checkControl covers the preconditions that do not depend on the skill.
func (cm *CastManager) checkControl(c *model.Character, now time.Time) error {
	switch {
	case c.MutedUntil().After(now):
		return ErrMuted
	case now.Sub(c.LastTransform()) < cm.env.Combat.TransformLock:
		return ErrTransformLocked
	case c.IsVehicled():
		return ErrVehicled
	}
	return nil
}

func (cm *CastManager) checkTarget(c *model.Character, def *model.SkillDefinition, area *world.Map, req Request, now time.Time) error {
	if req.Ground {
		if def.TargetType != model.TargetGround {
			return ErrTargetGone
		}
		return nil
	}
	if def.TargetType == model.TargetSelf {
		return nil
	}
	if req.Kind == KindCharacter {
		// на персонажей кастуются только свои скиллы
		if req.TargetID != c.ID() {
			return ErrTargetGone
		}
		return nil
	}

	mon, ok := area.GetMonster(int32(req.TargetID))
	if !ok || !mon.IsAlive() {
		return ErrTargetGone
	}
	if def.TargetRange == 0 && !inReach(c.Position(), mon, def.Range, now) {
		return ErrOutOfRange
	}
	return nil
}

// inReach allows for the distance a moving monster may have covered since
// its position was last synced.
func inReach(from model.Position, mon *model.Monster, skillRange uint8, now time.Time) bool {
	reach := float64(skillRange)
	if moved := mon.LastMove(); !moved.IsZero() {
		speed := max(int(mon.Template().Speed), 1)
		reach += now.Sub(moved).Seconds() * 2 * float64(speed)
	}
	return float64(from.Distance(mon.Position())) <= reach
}

// reject sends the cancel notice and the localized explanation.
func (cm *CastManager) reject(c *model.Character, req Request, err error, now time.Time) {
	out := cm.env.Out
	msgs := cm.env.Messages
	id := c.ID()

	switch {
	case errors.Is(err, ErrMuted):
		out.Cancel(id, serverpackets.CancelGeneric, 0)
		key := i18n.MutedMale
		if c.Gender() == model.GenderFemale {
			key = i18n.MutedFemale
		}
		out.Say(id, serverpackets.SayInfo, msgs.Text(key))
		out.Say(id, serverpackets.SayWarning, msgs.Text(i18n.MuteTime, i18n.Clock(c.MutedUntil().Sub(now))))
	case errors.Is(err, ErrTransformLocked):
		out.Cancel(id, serverpackets.CancelGeneric, 0)
		out.Msg(id, serverpackets.MsgCentre, msgs.Text(i18n.CantAttack))
	case errors.Is(err, ErrVehicled):
		out.Cancel(id, serverpackets.CancelGeneric, 0)
	case errors.Is(err, ErrNotEnoughMP):
		out.Cancel(id, serverpackets.CancelTarget, req.TargetID)
		out.Msg(id, serverpackets.MsgCentre, msgs.Text(i18n.NotEnoughMP))
	case errors.Is(err, ErrOnCooldown), errors.Is(err, ErrCastInFlight):
		out.Cancel(id, serverpackets.CancelTarget, req.TargetID)
		out.Say(id, serverpackets.SayWarning, msgs.Text(i18n.SkillNotReady))
	default:
		out.Cancel(id, serverpackets.CancelTarget, req.TargetID)
	}

	slog.Debug("cast rejected", "caster", c.Name(), "cast_id", req.CastID, "reason", err)
}

func (cm *CastManager) castBegin(c *cast) *serverpackets.CastBegin {
	p := &serverpackets.CastBegin{
		CasterID:   c.caster.ID(),
		TargetKind: c.req.Kind,
		TargetID:   c.req.TargetID,
		CastID:     c.def.CastID,
		Cooldown:   c.def.Cooldown,
		CastAnim:   c.def.CastAnimation,
		CastEffect: c.def.CastEffect,
		SkillVNum:  c.def.VNum,
	}
	switch {
	case c.req.Ground:
		p.TargetKind, p.TargetID = KindMonster, -1
	case c.def.TargetType == model.TargetSelf:
		p.TargetKind, p.TargetID = KindCharacter, c.caster.ID()
	}
	return p
}

// run is the background part of a cast.
func (cm *CastManager) run(ctx context.Context, c *cast) {
	defer func() {
		if r := recover(); r != nil {
			c.state.Finish()
			slog.Error("cast panicked", "caster", c.caster.Name(), "skill", c.def.VNum, "panic", r)
		}
	}()

	if !sleep(ctx, cm.env.Combat.Units(c.def.CastTime)) {
		cm.abort(c, ErrCancelled)
		return
	}
	// таймер мог сработать одновременно с отменой сессии
	if ctx.Err() != nil {
		cm.abort(c, ErrCancelled)
		return
	}
	if c.caster.IsDead() {
		cm.abort(c, ErrCasterDead)
		return
	}

	if err := cm.resolve(c); err != nil {
		cm.abort(c, err)
		if errors.Is(err, ErrTargetGone) {
			cm.env.Out.Cancel(c.caster.ID(), serverpackets.CancelTarget, c.req.TargetID)
		}
		return
	}
	c.state.Finish()

	remaining := cm.env.Combat.Units(c.def.Cooldown) - time.Since(c.start)
	if !sleep(ctx, remaining) {
		return
	}
	cm.env.Out.Ready(c.caster.ID(), c.def.CastID)
}

// abort undoes an unresolved cast.
func (cm *CastManager) abort(c *cast, reason error) {
	c.state.Rollback(c.res)
	if c.mpPaid > 0 {
		c.caster.RestoreMP(c.mpPaid)
	}
	slog.Debug("cast aborted", "caster", c.caster.Name(), "skill", c.def.VNum, "reason", reason)
}

func (cm *CastManager) resolve(c *cast) error {
	snap, ok := cm.env.Characters.SnapshotOf(c.caster.ID())
	if !ok {
		return ErrUnknownCaster
	}

	switch {
	case c.req.Ground:
		return cm.resolveGround(c, &snap)
	case c.def.TargetType == model.TargetSelf:
		return cm.resolveSelf(c, &snap)
	case c.req.Kind == KindCharacter:
		cm.outcomeSelf(c, &snap)
		return nil
	default:
		return cm.resolveMonster(c, &snap)
	}
}

func (cm *CastManager) resolveMonster(c *cast, snap *model.CombatantSnapshot) error {
	mon, ok := c.area.GetMonster(int32(c.req.TargetID))
	if !ok || !mon.IsAlive() {
		return ErrTargetGone
	}

	now := time.Now()
	hit, res := cm.env.Engine.Resolve(snap, c.def, mon, now)
	if !res.Applied {
		return ErrTargetGone
	}

	anim, effect := c.def.AttackAnimation, c.def.Effect
	if res.Killed {
		c.state.ResetCombo()
	} else {
		anim, effect = comboVisuals(c.state, now, cm.env.Combat.ComboIdleWindow)
	}

	cm.env.Out.Outcome(c.area.ID(), cm.outcome(c, snap, mon, hit, res, hit.Mode, anim, effect))
	if res.Killed {
		cm.rewards.OnKill(mon, c.caster, c.area)
	}

	if c.def.TargetRange > 0 {
		cm.hitArea(c, snap, combat.SelectTargets(c.area, mon.Position(), c.def.TargetRange, mon.ID()))
	}
	return nil
}

func (cm *CastManager) resolveSelf(c *cast, snap *model.CombatantSnapshot) error {
	cm.outcomeSelf(c, snap)
	cm.hitArea(c, snap, combat.SelectTargets(c.area, snap.Position, c.def.TargetRange, -1))
	return nil
}

func (cm *CastManager) resolveGround(c *cast, snap *model.CombatantSnapshot) error {
	cm.env.Out.GroundEffect(c.area.ID(), &serverpackets.GroundEffect{
		CasterID:     c.caster.ID(),
		X:            c.req.X,
		Y:            c.req.Y,
		SkillVNum:    c.def.VNum,
		Cooldown:     c.def.Cooldown,
		AttackAnim:   c.def.AttackAnimation,
		AttackEffect: c.def.Effect,
	})
	cm.hitArea(c, snap, combat.SelectTargets(c.area, model.NewPosition(c.req.X, c.req.Y), c.def.TargetRange, -1))
	return nil
}

// hitArea resolves one pass over a snapshot of area targets.
func (cm *CastManager) hitArea(c *cast, snap *model.CombatantSnapshot, targets []*model.Monster) {
	combat.Pass(targets, func(mon *model.Monster) {
		hit, res := cm.env.Engine.Resolve(snap, c.def, mon, time.Now())
		if !res.Applied {
			return
		}
		cm.env.Out.Outcome(c.area.ID(), cm.outcome(c, snap, mon, hit, res, model.HitModeArea, c.def.AttackAnimation, c.def.Effect))
		if res.Killed {
			cm.rewards.OnKill(mon, c.caster, c.area)
		}
	})
}

func (cm *CastManager) outcomeSelf(c *cast, snap *model.CombatantSnapshot) {
	var pct int32
	if snap.MaxHP > 0 {
		pct = int32(int64(snap.HP) * 100 / int64(snap.MaxHP))
	}
	cm.env.Out.Outcome(c.area.ID(), &serverpackets.SkillOutcome{
		CasterID:        c.caster.ID(),
		TargetKind:      KindCharacter,
		TargetID:        c.caster.ID(),
		SkillVNum:       c.def.VNum,
		Cooldown:        c.def.Cooldown,
		AttackAnim:      c.def.AttackAnimation,
		AttackEffect:    c.def.Effect,
		CasterX:         snap.Position.X,
		CasterY:         snap.Position.Y,
		TargetAlive:     true,
		TargetHPPercent: pct,
		HitMode:         model.HitModeSelf,
		SkillTypeCode:   int8(c.def.Type),
	})
}

func (cm *CastManager) outcome(c *cast, snap *model.CombatantSnapshot, mon *model.Monster, hit combat.Hit, res model.HitResult, mode model.HitMode, anim, effect int16) *serverpackets.SkillOutcome {
	return &serverpackets.SkillOutcome{
		CasterID:        c.caster.ID(),
		TargetKind:      KindMonster,
		TargetID:        int64(mon.ID()),
		SkillVNum:       c.def.VNum,
		Cooldown:        c.def.Cooldown,
		AttackAnim:      anim,
		AttackEffect:    effect,
		CasterX:         snap.Position.X,
		CasterY:         snap.Position.Y,
		TargetAlive:     !res.Killed,
		TargetHPPercent: res.HPPercent,
		Damage:          hit.Damage,
		HitMode:         mode,
		SkillTypeCode:   int8(c.def.Type),
	}
}

// MultiTarget is one (skill, monster) pair of a multi-target command.
type MultiTarget struct {
	CastID    int16
	MonsterID int32
}

// TryMultiTarget resolves one immediate hit per pair. The caster must pass
// the same preconditions as TryCast; a pair is skipped when its skill needs
// an unloaded weapon or is on cooldown. Returns the number of hits landed.
func (cm *CastManager) TryMultiTarget(ctx context.Context, casterID int64, pairs []MultiTarget) (int, error) {
	caster, ok := cm.env.Characters.Character(casterID)
	if !ok {
		return 0, ErrUnknownCaster
	}
	now := time.Now()
	err := cm.checkControl(caster, now)
	if err == nil && caster.IsDead() {
		err = ErrCasterDead
	}
	if err != nil {
		cm.reject(caster, Request{CasterID: casterID}, err, now)
		return 0, err
	}

	area, ok := cm.maps.Map(caster.MapID())
	if !ok {
		return 0, ErrTargetGone
	}

	hits := 0
	for _, p := range pairs {
		if ctx.Err() != nil || caster.IsDead() {
			break
		}
		st, ok := caster.Skill(p.CastID)
		if !ok {
			continue
		}
		if !caster.WeaponLoaded(st.Definition().Weapon) {
			slog.Debug("multi-target pair skipped", "caster", caster.Name(), "cast_id", p.CastID, "reason", ErrWeaponNotLoaded)
			continue
		}
		mon, ok := area.GetMonster(p.MonsterID)
		if !ok || !mon.IsAlive() {
			continue
		}
		def := st.Definition()
		res, rr := st.Reserve(time.Now(), cm.env.Combat.Units(def.Cooldown))
		if rr != model.Reserved {
			continue
		}

		snap, ok := cm.env.Characters.SnapshotOf(casterID)
		if !ok {
			st.Rollback(res)
			return hits, ErrUnknownCaster
		}
		c := &cast{
			caster: caster,
			state:  st,
			def:    def,
			area:   area,
			req:    Request{CasterID: casterID, CastID: p.CastID, Kind: KindMonster, TargetID: int64(p.MonsterID)},
			res:    res,
			start:  time.Now(),
		}
		hit, hr := cm.env.Engine.Resolve(&snap, def, mon, c.start)
		if !hr.Applied {
			st.Rollback(res)
			continue
		}
		st.Finish()
		hits++

		cm.env.Out.Outcome(area.ID(), cm.outcome(c, &snap, mon, hit, hr, hit.Mode, def.AttackAnimation, def.Effect))
		if hr.Killed {
			cm.rewards.OnKill(mon, caster, area)
		}
		cm.readyAfterCooldown(ctx, c)
	}
	return hits, nil
}

// readyAfterCooldown emits SkillReady once the cooldown of c has elapsed.
func (cm *CastManager) readyAfterCooldown(ctx context.Context, c *cast) {
	taskCtx, release := cm.tasks.start(ctx, taskKey{charID: c.caster.ID(), castID: c.def.CastID})
	go func() {
		defer release()
		if sleep(taskCtx, cm.env.Combat.Units(c.def.Cooldown)-time.Since(c.start)) {
			cm.env.Out.Ready(c.caster.ID(), c.def.CastID)
		}
	}()
}
