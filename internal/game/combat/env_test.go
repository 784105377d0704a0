package combat

import (
	"testing"

	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/game/broadcast"
	"github.com/udisondev/battlecore/internal/game/party"
	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/testutil"
	"github.com/udisondev/battlecore/internal/world"
)

// fixture is a small world with one map, a killer and an owner.
type fixture struct {
	env    *Env
	rec    *testutil.Recorder
	world  *world.World
	area   *world.Map
	groups *party.Manager
	killer *model.Character // id 1
	owner  *model.Character // id 2
	third  *model.Character // id 3
}

func newFixture(t *testing.T, rng Rand, tags ...string) *fixture {
	t.Helper()

	killer := testutil.NewSwordsman(1, "Alice")
	owner := testutil.NewSwordsman(2, "Bob")
	third := testutil.NewSwordsman(3, "Carol")
	w, area := testutil.NewTestWorld(tags, killer, owner, third)

	rec := testutil.NewRecorder()
	groups := party.NewManager()
	env := &Env{
		Characters: w,
		Groups:     groups,
		Items:      testutil.ItemNames{1012: "Wing", model.GoldVNum: "Gold"},
		Rates:      config.DefaultRates(),
		Combat:     config.DefaultCombat(),
		Rand:       rng,
		Engine:     NewEngine(rng, config.OverflowClamp),
		Out:        broadcast.New(rec),
		Messages:   testutil.Messages(t),
	}
	return &fixture{env: env, rec: rec, world: w, area: area, groups: groups, killer: killer, owner: owner, third: third}
}
