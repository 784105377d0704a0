package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/testutil"
)

func TestXPFor(t *testing.T) {
	tpl := &model.MonsterTemplate{XP: 100, JobXP: 20}
	xp, job := XPFor(tpl, 1.5)
	assert.Equal(t, int64(150), xp)
	assert.Equal(t, int64(30), job)
}

func TestDignityFor(t *testing.T) {
	assert.Equal(t, int32(1), DignityFor(30, 40, 0))
	assert.Equal(t, int32(0), DignityFor(30, 30, 0), "monster not above character")
	assert.Equal(t, int32(0), DignityFor(15, 40, 0), "low level characters gain nothing")
	assert.Equal(t, int32(0), DignityFor(30, 40, model.MaxDignity))
}

func TestRewardExperience_Solo(t *testing.T) {
	f := newFixture(t, testutil.NewScriptedRand())
	tpl := testutil.MonsterTemplate(1, 10)
	tpl.Level = 40

	got := RewardExperience(f.env, f.killer, tpl)

	assert.Equal(t, []int64{1}, got)
	xp, job := f.killer.Experience()
	assert.Equal(t, int64(100), xp)
	assert.Equal(t, int64(10), job)
	assert.Equal(t, int32(1), f.killer.Dignity())

	xp, _ = f.owner.Experience()
	assert.Zero(t, xp)
}

func TestRewardExperience_GroupOnSameMap(t *testing.T) {
	f := newFixture(t, testutil.NewScriptedRand())
	g, err := f.groups.CreateGroup(f.killer.ID(), model.SharingBroadcast)
	require.NoError(t, err)
	require.NoError(t, f.groups.Join(g.ID(), f.owner.ID()))
	require.NoError(t, f.groups.Join(g.ID(), f.third.ID()))
	f.third.Place(99, model.NewPosition(0, 0))

	got := RewardExperience(f.env, f.killer, testutil.MonsterTemplate(1, 10))

	assert.ElementsMatch(t, []int64{1, 2}, got)
	for _, c := range []*model.Character{f.killer, f.owner} {
		xp, _ := c.Experience()
		assert.Equal(t, int64(100), xp, c.Name())
	}
	xp, _ := f.third.Experience()
	assert.Zero(t, xp, "member on another map gets nothing")
}

func TestRewardExperience_DeadKiller(t *testing.T) {
	f := newFixture(t, testutil.NewScriptedRand())
	f.killer.SetCurrentHP(0)

	assert.Nil(t, RewardExperience(f.env, f.killer, testutil.MonsterTemplate(1, 10)))
	xp, _ := f.killer.Experience()
	assert.Zero(t, xp)
}
