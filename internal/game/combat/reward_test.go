package combat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/testutil"
	"github.com/udisondev/battlecore/internal/world"
)

// Со ScriptedRand без значений все броски равны нулю: каждый дроп
// выпадает, золото падает в размере 6×level.
func killedMonster(t *testing.T, f *fixture, tpl *model.MonsterTemplate, hitters ...int64) *model.Monster {
	t.Helper()
	mon := testutil.SpawnMonster(f.area, 1, tpl, 15, 15)
	for _, id := range hitters {
		mon.ApplyDamage(id, 1, time.Now())
	}
	require.True(t, mon.ApplyDamage(f.killer.ID(), tpl.MaxHP, time.Now()).Killed)
	return mon
}

func wingTemplate() *model.MonsterTemplate {
	tpl := testutil.MonsterTemplate(1, 100)
	tpl.Drops = []model.DropEntry{{ItemVNum: 1012, Amount: 3, Chance: 5000}}
	return tpl
}

func TestOnKill_WorldDropToOwner(t *testing.T) {
	f := newFixture(t, testutil.NewScriptedRand())
	mon := killedMonster(t, f, wingTemplate(), f.owner.ID())

	rw := NewDistributor(f.env).OnKill(mon, f.killer, f.area)

	assert.Equal(t, f.owner.ID(), rw.OwnerID)
	assert.False(t, rw.Direct)
	assert.Equal(t, int64(30), rw.Gold)

	ground := f.area.GroundItems()
	require.Len(t, ground, 2)
	assert.Equal(t, int16(1012), ground[0].ItemVNum)
	assert.Equal(t, int32(3), ground[0].Amount)
	assert.Equal(t, f.owner.ID(), ground[0].OwnerID)
	assert.Equal(t, model.NewPosition(15, 15), ground[0].Position)
	assert.True(t, ground[1].IsGold())
	assert.Equal(t, int32(30), ground[1].Amount)

	assert.Len(t, f.rec.WithHeader("drop"), 2)
	assert.Empty(t, f.rec.WithHeader("dn"), "no group, no drop notice")
	assert.Empty(t, f.killer.Gifts())
	assert.Zero(t, f.killer.Gold())

	assert.Equal(t, []int64{f.killer.ID()}, rw.Experience)
}

func TestOnKill_NoLedgerOwnerFallsBackToKiller(t *testing.T) {
	f := newFixture(t, testutil.NewScriptedRand())
	mon := killedMonster(t, f, wingTemplate())

	rw := NewDistributor(f.env).OnKill(mon, f.killer, f.area)
	assert.Equal(t, f.killer.ID(), rw.OwnerID)
}

func TestOnKill_AliveMonsterIgnored(t *testing.T) {
	f := newFixture(t, testutil.NewScriptedRand())
	mon := testutil.SpawnMonster(f.area, 1, wingTemplate(), 0, 0)

	rw := NewDistributor(f.env).OnKill(mon, f.killer, f.area)
	assert.Equal(t, Reward{}, rw)
	assert.Empty(t, f.area.GroundItems())
}

func TestOnKill_DirectOnAct4(t *testing.T) {
	f := newFixture(t, testutil.NewScriptedRand(), world.TagAct4)
	mon := killedMonster(t, f, wingTemplate(), f.owner.ID())

	rw := NewDistributor(f.env).OnKill(mon, f.killer, f.area)

	assert.True(t, rw.Direct)
	assert.Empty(t, f.area.GroundItems())
	assert.Equal(t, []model.Gift{{ItemVNum: 1012, Amount: 3}}, f.killer.Gifts())
	assert.Empty(t, f.owner.Gifts(), "direct rewards go to the killer, not the owner")
	assert.Equal(t, int64(30), f.killer.Gold())

	private := f.rec.Private(f.killer.ID())
	assert.Contains(t, private, "say 1 1 10 Acquired: Wing x3")
	assert.Contains(t, private, "say 1 1 10 Acquired 30 gold.")
	assert.Contains(t, private, "gold 30")
	assert.Empty(t, f.rec.WithHeader("gcap"))
}

func TestOnKill_DirectForEliteAndEvent(t *testing.T) {
	for _, cat := range []model.MonsterCategory{model.MonsterElite, model.MonsterEvent} {
		f := newFixture(t, testutil.NewScriptedRand())
		tpl := wingTemplate()
		tpl.Category = cat
		mon := killedMonster(t, f, tpl)

		rw := NewDistributor(f.env).OnKill(mon, f.killer, f.area)
		assert.True(t, rw.Direct)
		assert.Len(t, f.killer.Gifts(), 1)
		assert.Empty(t, f.area.GroundItems())
	}
}

func TestOnKill_GoldCap(t *testing.T) {
	f := newFixture(t, testutil.NewScriptedRand(), world.TagAct4)
	f.killer.SetGold(f.env.Combat.MaxGold - 10)
	mon := killedMonster(t, f, testutil.MonsterTemplate(1, 100))

	NewDistributor(f.env).OnKill(mon, f.killer, f.area)

	assert.Equal(t, f.env.Combat.MaxGold, f.killer.Gold())
	private := f.rec.Private(f.killer.ID())
	assert.Contains(t, private, "gcap")
	assert.Contains(t, private, "msg 0 You cannot carry more gold.")
	assert.Contains(t, private, "gold 1000000000")
}

func TestOnKill_GoldCapFromEmptyPurse(t *testing.T) {
	f := newFixture(t, testutil.NewScriptedRand(), world.TagAct4)
	f.env.Rates.GoldRate = 1e9
	f.killer.SetGold(0)
	mon := killedMonster(t, f, testutil.MonsterTemplate(1, 100))

	rw := NewDistributor(f.env).OnKill(mon, f.killer, f.area)

	assert.Equal(t, f.env.Combat.MaxGold, rw.Gold)
	assert.Equal(t, f.env.Combat.MaxGold, f.killer.Gold())
	private := f.rec.Private(f.killer.ID())
	assert.Contains(t, private, "gcap", "roll over the cap is reported even when the purse lands exactly on it")
	assert.Contains(t, private, "msg 0 You cannot carry more gold.")
}

func TestOnKill_SpecialMonsterGivesNothing(t *testing.T) {
	f := newFixture(t, testutil.NewScriptedRand())
	tpl := wingTemplate()
	tpl.Category = model.MonsterSpecial
	mon := killedMonster(t, f, tpl)

	rw := NewDistributor(f.env).OnKill(mon, f.killer, f.area)

	assert.Empty(t, rw.Items)
	assert.Zero(t, rw.Gold)
	assert.Empty(t, rw.Experience)
	assert.Empty(t, f.area.GroundItems())
	xp, _ := f.killer.Experience()
	assert.Zero(t, xp)
}

func TestOnKill_GroupByOrderRotatesOwner(t *testing.T) {
	f := newFixture(t, testutil.NewScriptedRand())
	g, err := f.groups.CreateGroup(f.owner.ID(), model.SharingByOrder)
	require.NoError(t, err)
	require.NoError(t, f.groups.Join(g.ID(), f.third.ID()))
	mon := killedMonster(t, f, wingTemplate(), f.owner.ID())

	rw := NewDistributor(f.env).OnKill(mon, f.killer, f.area)

	require.Len(t, rw.Items, 2)
	assert.Equal(t, f.third.ID(), rw.Items[0].OwnerID, "wing goes to the next member in rotation")
	assert.Equal(t, f.owner.ID(), rw.Items[1].OwnerID, "gold goes to the one after")

	for _, id := range []int64{f.owner.ID(), f.third.ID()} {
		private := f.rec.Private(id)
		assert.Contains(t, private, "dn Wing 3 Carol Wing x3 is bound to Carol.")
		assert.Contains(t, private, "dn Gold 30 Bob Gold x30 is bound to Bob.")
	}
	assert.Empty(t, f.rec.Private(f.killer.ID()), "killer is not in the owner's group")
}

func TestOnKill_GroupBroadcastKeepsOwner(t *testing.T) {
	f := newFixture(t, testutil.NewScriptedRand())
	g, err := f.groups.CreateGroup(f.owner.ID(), model.SharingBroadcast)
	require.NoError(t, err)
	require.NoError(t, f.groups.Join(g.ID(), f.third.ID()))
	mon := killedMonster(t, f, wingTemplate(), f.owner.ID())

	rw := NewDistributor(f.env).OnKill(mon, f.killer, f.area)

	for _, d := range rw.Items {
		assert.Equal(t, f.owner.ID(), d.OwnerID)
	}
	assert.Contains(t, f.rec.Private(f.third.ID()), "dn Wing 3 - Wing x3 dropped.")
}

func TestOnKill_DropsCappedAtFour(t *testing.T) {
	f := newFixture(t, testutil.NewScriptedRand())
	tpl := testutil.MonsterTemplate(1, 100)
	tpl.Level = 0 // без золота
	for i := range 10 {
		tpl.Drops = append(tpl.Drops, model.DropEntry{ItemVNum: int16(2000 + i), Amount: 1, Chance: 5000})
	}
	mon := killedMonster(t, f, tpl)

	rw := NewDistributor(f.env).OnKill(mon, f.killer, f.area)
	assert.Len(t, rw.Items, 4)
	assert.Len(t, f.area.GroundItems(), 4)
}

func TestOnKill_DeadKillerStillDropsLoot(t *testing.T) {
	f := newFixture(t, testutil.NewScriptedRand())
	mon := killedMonster(t, f, wingTemplate())
	f.killer.SetCurrentHP(0)

	rw := NewDistributor(f.env).OnKill(mon, f.killer, f.area)
	assert.NotEmpty(t, rw.Items)
	assert.Empty(t, rw.Experience)
}

type stubHooks struct {
	gold   float64
	exempt bool
}

func (h stubHooks) AreaGoldMultiplier(int32, []string, float64) float64 { return h.gold }
func (h stubHooks) IsRewardExempt(*model.MonsterTemplate, bool) bool    { return h.exempt }

func TestOnKill_Hooks(t *testing.T) {
	f := newFixture(t, testutil.NewScriptedRand())
	f.env.Hooks = stubHooks{gold: 2, exempt: true}
	mon := killedMonster(t, f, wingTemplate())

	rw := NewDistributor(f.env).OnKill(mon, f.killer, f.area)
	assert.True(t, rw.Direct)
	assert.Equal(t, int64(60), rw.Gold)
	assert.Equal(t, int64(60), f.killer.Gold())
}

func TestOnKill_Act52MultipliesGold(t *testing.T) {
	f := newFixture(t, testutil.NewScriptedRand(), world.TagAct52)
	mon := killedMonster(t, f, testutil.MonsterTemplate(1, 100))

	rw := NewDistributor(f.env).OnKill(mon, f.killer, f.area)
	assert.Equal(t, int64(300), rw.Gold)
}
