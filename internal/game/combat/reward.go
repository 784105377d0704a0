package combat

import (
	"log/slog"
	"time"

	"github.com/udisondev/battlecore/internal/gameserver/serverpackets"
	"github.com/udisondev/battlecore/internal/i18n"
	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/world"
)

// Delivery is one item or currency stack handed out for a kill.
type Delivery struct {
	ItemVNum int16
	Amount   int32
	OwnerID  int64
	GroundID int64 // 0 for direct deliveries
}

// Reward summarizes what a kill produced.
type Reward struct {
	OwnerID    int64
	Direct     bool // rewards went straight to the killer
	Items      []Delivery
	Gold       int64
	Experience []int64 // rewarded character ids
}

// Distributor hands out loot, currency and experience on kills.
type Distributor struct {
	env *Env
}

// NewDistributor creates a Distributor over env.
func NewDistributor(env *Env) *Distributor {
	return &Distributor{env: env}
}

// OnKill distributes the rewards of a dead monster. Must be called exactly
// once per kill, by the hit that caused the alive → dead transition.
func (d *Distributor) OnKill(mon *model.Monster, killer *model.Character, area Area) Reward {
	if mon.IsAlive() {
		return Reward{}
	}
	tpl := mon.Template()

	owner, ok := mon.FirstHitter()
	if !ok {
		owner = killer.ID()
	}
	rw := Reward{OwnerID: owner}

	if tpl.Category == model.MonsterSpecial {
		slog.Debug("special monster killed, no rewards", "monster", tpl.VNum, "killer", killer.Name())
		return rw
	}

	k := kill{
		env:    d.env,
		killer: killer,
		area:   area,
		owner:  owner,
		pos:    mon.Position(),
		now:    time.Now(),
		direct: d.isDirect(tpl, area),
	}
	if g, ok := d.env.Groups.GroupOf(owner); ok {
		k.group = g
	}
	rw.Direct = k.direct

	eligible := EligibleDrops(tpl.Drops, area.HasTag)
	for _, drop := range RollDrops(d.env.Rand, eligible, d.env.Rates.DropRate, d.env.Combat.MaxDropsPerKill) {
		rw.Items = append(rw.Items, k.deliverItem(drop.ItemVNum, drop.Amount))
	}

	gold, over := RollGold(d.env.Rand, killer.Level(), tpl.Level, d.env.Rates.GoldRate, d.areaGoldMultiplier(area), d.env.Combat.MaxGold)
	if gold > 0 {
		rw.Gold = gold
		if k.direct {
			k.grantGold(gold, over)
		} else {
			rw.Items = append(rw.Items, k.deliverItem(model.GoldVNum, int32(gold)))
		}
	}

	rw.Experience = RewardExperience(d.env, killer, tpl)
	return rw
}

func (d *Distributor) isDirect(tpl *model.MonsterTemplate, area Area) bool {
	direct := area.HasTag(world.TagAct4) ||
		tpl.Category == model.MonsterElite ||
		tpl.Category == model.MonsterEvent
	if d.env.Hooks != nil {
		direct = d.env.Hooks.IsRewardExempt(tpl, direct)
	}
	return direct
}

func (d *Distributor) areaGoldMultiplier(area Area) float64 {
	m := DefaultAreaGoldMultiplier
	if area.HasTag(world.TagAct52) {
		m = Act52GoldMultiplier
	}
	if d.env.Hooks != nil {
		m = d.env.Hooks.AreaGoldMultiplier(area.ID(), area.Tags(), m)
	}
	return m
}

// kill carries the per-kill delivery context.
type kill struct {
	env    *Env
	killer *model.Character
	area   Area
	group  *model.Group
	owner  int64
	pos    model.Position
	now    time.Time
	direct bool
}

func (k *kill) deliverItem(vnum int16, amount int32) Delivery {
	env := k.env
	name := env.itemName(vnum)

	if k.direct {
		k.killer.GiftAdd(vnum, amount)
		env.Out.Say(k.killer.ID(), serverpackets.SayInfo, env.Messages.Text(i18n.ItemAcquired, name, amount))
		return Delivery{ItemVNum: vnum, Amount: amount, OwnerID: k.killer.ID()}
	}

	owner := k.owner
	if k.group != nil {
		members := k.group.Members()
		switch k.group.Mode() {
		case model.SharingByOrder:
			owner = k.group.NextRecipient()
			recipient := env.characterName(owner)
			env.Out.Members(members, &serverpackets.DropNotice{
				ItemName:  name,
				Amount:    amount,
				Recipient: recipient,
				Text:      env.Messages.Text(i18n.ItemBoundTo, name, amount, recipient),
			})
		default:
			env.Out.Members(members, &serverpackets.DropNotice{
				ItemName: name,
				Amount:   amount,
				Text:     env.Messages.Text(i18n.DroppedItem, name, amount),
			})
		}
	}

	item := k.area.DropItem(model.GroundItem{
		ItemVNum:  vnum,
		Amount:    amount,
		OwnerID:   owner,
		Position:  k.pos,
		DroppedAt: k.now,
	}, env.ItemAutoDestroy())
	env.Out.Map(k.area.ID(), &serverpackets.ItemDropped{Item: item})

	return Delivery{ItemVNum: vnum, Amount: amount, OwnerID: owner, GroundID: item.ID}
}

// rolledOver: сумма уже была срезана при броске, уведомление нужно даже
// если итог ровно в лимите
func (k *kill) grantGold(amount int64, rolledOver bool) {
	env := k.env
	id := k.killer.ID()

	total, capped := k.killer.AddGold(amount, env.Combat.MaxGold)
	if capped || rolledOver {
		env.Out.GoldCap(id)
		env.Out.Msg(id, serverpackets.MsgCentre, env.Messages.Text(i18n.MaxGold))
	}
	env.Out.Say(id, serverpackets.SayInfo, env.Messages.Text(i18n.GoldAcquired, amount))
	env.Out.Gold(id, total)
}
