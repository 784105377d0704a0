package gameserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/battlecore/internal/game/broadcast"
	"github.com/udisondev/battlecore/internal/game/skill"
	"github.com/udisondev/battlecore/internal/gameserver/clientpackets"
	"github.com/udisondev/battlecore/internal/gameserver/packet"
	"github.com/udisondev/battlecore/internal/model"
)

// commandHandler processes one command line.
// A returned error closes the connection; malformed input is not an error.
type commandHandler func(h *Handler, ctx context.Context, client *Client, data []byte) error

// Casts is the part of skill.CastManager the handler drives.
type Casts interface {
	TryCast(ctx context.Context, req skill.Request) skill.Outcome
	TryMultiTarget(ctx context.Context, casterID int64, pairs []skill.MultiTarget) (int, error)
}

// Handler dispatches inbound command lines.
type Handler struct {
	sessions *Sessions
	clients  *ClientManager
	casts    Casts
	out      *broadcast.Broadcaster

	// keyword → handler, built once in NewHandler and never modified
	commands map[string]commandHandler
}

// NewHandler creates a command handler.
func NewHandler(sessions *Sessions, clients *ClientManager, casts Casts, out *broadcast.Broadcaster) *Handler {
	return &Handler{
		sessions: sessions,
		clients:  clients,
		casts:    casts,
		out:      out,
		commands: map[string]commandHandler{
			clientpackets.KeywordLogin:           (*Handler).handleLogin,
			clientpackets.KeywordUseSkill:        (*Handler).handleUseSkill,
			clientpackets.KeywordUseZoneSkill:    (*Handler).handleUseZoneSkill,
			clientpackets.KeywordMultiTargetList: (*Handler).handleMultiTargetList,
		},
	}
}

// HandleLine dispatches one command line. ctx is the session context:
// casts started here are cancelled when it ends.
func (h *Handler) HandleLine(ctx context.Context, client *Client, line []byte) error {
	kw, err := clientpackets.Keyword(line)
	if err != nil {
		slog.Debug("command without keyword dropped", "client", client.IP())
		return nil
	}

	fn, ok := h.commands[kw]
	if !ok {
		slog.Debug("unknown command", "keyword", kw, "client", client.IP())
		return nil
	}

	state := client.State()
	switch {
	case state == ClientStateConnected && kw != clientpackets.KeywordLogin:
		slog.Debug("command before login dropped", "keyword", kw, "client", client.IP())
		return nil
	case state == ClientStateInGame && kw == clientpackets.KeywordLogin:
		slog.Debug("repeated login dropped", "client", client.IP())
		return nil
	case state == ClientStateDisconnected:
		return nil
	}

	if err := fn(h, ctx, client, line); err != nil {
		if errors.Is(err, packet.ErrMalformed) {
			slog.Debug("malformed command dropped", "keyword", kw, "client", client.IP(), "error", err)
			return nil
		}
		return fmt.Errorf("handling %s: %w", kw, err)
	}
	return nil
}

func (h *Handler) handleLogin(ctx context.Context, client *Client, data []byte) error {
	pkt, err := clientpackets.ParseLogin(data)
	if err != nil {
		return err
	}

	if !h.clients.Register(pkt.CharacterID, client) {
		return fmt.Errorf("character %d: %w", pkt.CharacterID, ErrAlreadyOnline)
	}
	c, err := h.sessions.Enter(ctx, pkt.CharacterID)
	if err != nil {
		h.clients.Unregister(pkt.CharacterID, client)
		return err
	}

	client.SetCharacter(c)
	client.SetState(ClientStateInGame)

	h.out.Stat(c.ID(), c.CurrentHP(), c.MaxHP(), c.CurrentMP(), c.MaxMP())
	h.out.Gold(c.ID(), c.Gold())
	return nil
}

func (h *Handler) handleUseSkill(ctx context.Context, client *Client, data []byte) error {
	pkt, err := clientpackets.ParseUseSkill(data)
	if err != nil {
		return err
	}
	c := client.Character()
	// клиент присылает свою клетку, дальность считается от неё
	if pkt.HasPosition {
		c.MoveTo(model.NewPosition(pkt.X, pkt.Y))
	}

	out := h.casts.TryCast(ctx, skill.Request{
		CasterID: c.ID(),
		CastID:   pkt.CastID,
		Kind:     pkt.TargetKind,
		TargetID: pkt.TargetID,
	})
	if out.Err != nil {
		slog.Debug("cast rejected", "caster", c.Name(), "cast_id", pkt.CastID, "target", pkt.TargetID, "reason", out.Err)
	}
	return nil
}

func (h *Handler) handleUseZoneSkill(ctx context.Context, client *Client, data []byte) error {
	pkt, err := clientpackets.ParseUseZoneSkill(data)
	if err != nil {
		return err
	}
	c := client.Character()

	out := h.casts.TryCast(ctx, skill.Request{
		CasterID: c.ID(),
		CastID:   pkt.CastID,
		Ground:   true,
		X:        pkt.X,
		Y:        pkt.Y,
	})
	if out.Err != nil {
		slog.Debug("zone cast rejected", "caster", c.Name(), "cast_id", pkt.CastID, "reason", out.Err)
	}
	return nil
}

func (h *Handler) handleMultiTargetList(ctx context.Context, client *Client, data []byte) error {
	pkt, err := clientpackets.ParseMultiTargetList(data)
	if err != nil {
		return err
	}
	c := client.Character()

	pairs := make([]skill.MultiTarget, len(pkt.Pairs))
	for i, p := range pkt.Pairs {
		pairs[i] = skill.MultiTarget{CastID: p.CastID, MonsterID: p.MonsterID}
	}
	hits, err := h.casts.TryMultiTarget(ctx, c.ID(), pairs)
	if err != nil {
		slog.Debug("multi-target rejected", "caster", c.Name(), "reason", err)
		return nil
	}
	slog.Debug("multi-target resolved", "caster", c.Name(), "pairs", len(pairs), "hits", hits)
	return nil
}

// OnDisconnect releases the session of client: pending casts are cancelled,
// progress is saved and the character leaves the world.
func (h *Handler) OnDisconnect(ctx context.Context, client *Client) {
	c := client.Character()
	if c == nil {
		return
	}
	client.SetCharacter(nil)
	h.clients.Unregister(c.ID(), client)
	h.sessions.Leave(ctx, c)
}
