package gameserver

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/game/broadcast"
	"github.com/udisondev/battlecore/internal/game/combat"
	"github.com/udisondev/battlecore/internal/game/party"
	"github.com/udisondev/battlecore/internal/game/skill"
	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/testutil"
	"github.com/udisondev/battlecore/internal/world"
)

// fakeSource выдаёт мечников с одним скиллом (cast id 1).
type fakeSource struct {
	mu    sync.Mutex
	built map[int64]*model.Character
}

func (s *fakeSource) NewCharacter(id int64) (*model.Character, error) {
	if id > 2 {
		return nil, fmt.Errorf("character %d not found", id)
	}
	c := testutil.NewSwordsman(id, fmt.Sprintf("hero%d", id))
	c.LearnSkill(testutil.SkillDef(1))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.built[id] = c
	return c, nil
}

func (s *fakeSource) last(id int64) *model.Character {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.built[id]
}

type fakeProgress struct {
	mu    sync.Mutex
	saved []int64
}

func (p *fakeProgress) Restore(_ context.Context, c *model.Character, _ time.Time) error {
	c.SetGold(77)
	return nil
}

func (p *fakeProgress) Save(_ context.Context, c *model.Character) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saved = append(p.saved, c.ID())
	return nil
}

func (p *fakeProgress) Saved() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int64(nil), p.saved...)
}

type testServer struct {
	srv      *Server
	world    *world.World
	area     *world.Map
	source   *fakeSource
	progress *fakeProgress
	wg       sync.WaitGroup
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	w, area := testutil.NewTestWorld(nil)
	clients := NewClientManager(w)
	out := broadcast.New(clients)
	rng := testutil.NewScriptedRand()
	env := &combat.Env{
		Characters: w,
		Groups:     party.NewManager(),
		Items:      testutil.ItemNames{},
		Rates:      config.DefaultRates(),
		Combat:     config.DefaultCombat(),
		Rand:       rng,
		Engine:     combat.NewEngine(rng, config.OverflowClamp),
		Out:        out,
		Messages:   testutil.Messages(t),
	}
	casts := skill.NewCastManager(env, w)

	ts := &testServer{
		world:    w,
		area:     area,
		source:   &fakeSource{built: make(map[int64]*model.Character)},
		progress: &fakeProgress{},
	}
	sessions := NewSessions(w, ts.source, ts.progress, casts)
	ts.srv = NewServer(config.DefaultServer(), NewHandler(sessions, clients, casts, out), clients)
	return ts
}

// peer — клиентская сторона соединения.
type peer struct {
	conn  net.Conn
	lines chan string
}

// connect поднимает сессию поверх net.Pipe и читает ответы в фоне.
func (ts *testServer) connect(ctx context.Context) *peer {
	srvSide, cliSide := net.Pipe()
	ts.wg.Go(func() { ts.srv.ServeConn(ctx, srvSide) })

	p := &peer{conn: cliSide, lines: make(chan string, 256)}
	go func() {
		defer close(p.lines)
		sc := bufio.NewScanner(cliSide)
		for sc.Scan() {
			p.lines <- sc.Text()
		}
	}()
	return p
}

func (p *peer) send(t *testing.T, line string) {
	t.Helper()
	_, err := p.conn.Write([]byte(line + "\n"))
	require.NoError(t, err)
}

// next ждёт следующую строку; в пузыре synctest время идёт вперёд само.
func (p *peer) next(t *testing.T) string {
	t.Helper()
	select {
	case l, ok := <-p.lines:
		require.True(t, ok, "connection closed")
		return l
	case <-time.After(time.Minute):
		t.Fatal("no line within a minute")
		return ""
	}
}

// pending возвращает всё, что уже пришло. Вызывать после synctest.Wait.
func (p *peer) pending() []string {
	var out []string
	for {
		select {
		case l, ok := <-p.lines:
			if !ok {
				return out
			}
			out = append(out, l)
		default:
			return out
		}
	}
}

func header(line string) string {
	h, _, _ := strings.Cut(line, " ")
	return h
}

func TestServer_LoginAndCast(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		ts := newTestServer(t)
		testutil.SpawnMonster(ts.area, 7, testutil.MonsterTemplate(1, 10000), 11, 10)

		p := ts.connect(ctx)
		p.send(t, "0 login 1")
		assert.Equal(t, "stat 1000 1000 50 50", p.next(t))
		assert.Equal(t, "gold 77", p.next(t), "restored progress is shown")

		start := time.Now()
		p.send(t, "1 u_s 1 0 7")
		assert.Equal(t, "stat 1000 1000 20 50", p.next(t))
		assert.Equal(t, "ct", header(p.next(t)))

		assert.Equal(t, "su", header(p.next(t)))
		assert.Equal(t, 500*time.Millisecond, time.Since(start))

		assert.Equal(t, "sr 1", p.next(t))
		assert.Equal(t, 2*time.Second, time.Since(start))

		require.NoError(t, p.conn.Close())
		ts.wg.Wait()

		_, online := ts.world.Character(1)
		assert.False(t, online)
		assert.Equal(t, []int64{1}, ts.progress.Saved())
		assert.Zero(t, ts.srv.ClientManager().Count())
	})
}

func TestServer_UseSkillReportedPosition(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		ts := newTestServer(t)
		testutil.SpawnMonster(ts.area, 7, testutil.MonsterTemplate(1, 10000), 30, 10)

		p := ts.connect(ctx)
		p.send(t, "0 login 1")
		p.next(t)
		p.next(t)

		p.send(t, "1 u_s 1 0 7")
		assert.Equal(t, "cancel 2 7", p.next(t), "monster is out of range from the stored cell")

		p.send(t, "2 u_s 1 0 7 28 10")
		assert.Equal(t, "stat 1000 1000 20 50", p.next(t))
		assert.Equal(t, "ct", header(p.next(t)))
		assert.Equal(t, model.NewPosition(28, 10), ts.source.last(1).Position())

		p.conn.Close()
		ts.wg.Wait()
	})
}

func TestServer_DropsCommandsBeforeLogin(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		ts := newTestServer(t)
		testutil.SpawnMonster(ts.area, 7, testutil.MonsterTemplate(1, 10000), 11, 10)

		p := ts.connect(ctx)
		p.send(t, "0 u_s 1 0 7")
		p.send(t, "1 dance")
		p.send(t, "2")
		synctest.Wait()
		assert.Empty(t, p.pending())

		p.send(t, "3 login 1")
		assert.Equal(t, "stat", header(p.next(t)))

		p.conn.Close()
		ts.wg.Wait()
	})
}

func TestServer_MalformedCommandKeepsConnection(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		ts := newTestServer(t)
		testutil.SpawnMonster(ts.area, 7, testutil.MonsterTemplate(1, 10000), 11, 10)

		p := ts.connect(ctx)
		p.send(t, "0 login 1")
		p.next(t)
		p.next(t)

		p.send(t, "1 u_s one 0 7")
		p.send(t, "2 u_as 1")
		p.send(t, "3 mtlist")
		synctest.Wait()
		assert.Empty(t, p.pending())
		assert.Equal(t, int32(50), ts.source.last(1).CurrentMP(), "nothing was charged")

		p.send(t, "4 u_s 1 0 7")
		assert.Equal(t, "stat", header(p.next(t)))

		p.conn.Close()
		ts.wg.Wait()
	})
}

func TestServer_UnknownCharacterClosesConnection(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		ts := newTestServer(t)

		p := ts.connect(ctx)
		p.send(t, "0 login 9")
		ts.wg.Wait()

		_, open := <-p.lines
		assert.False(t, open)
		assert.Zero(t, ts.srv.ClientManager().Count())
	})
}

func TestServer_DuplicateLoginRejected(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		ts := newTestServer(t)

		first := ts.connect(ctx)
		first.send(t, "0 login 1")
		first.next(t)
		first.next(t)

		second := ts.connect(ctx)
		second.send(t, "0 login 1")
		for range second.lines {
		}

		c, ok := ts.world.Character(1)
		require.True(t, ok, "first session stays in world")
		assert.Same(t, ts.source.last(1), c)
		assert.Equal(t, 1, ts.srv.ClientManager().Count())

		first.conn.Close()
		ts.wg.Wait()
	})
}

func TestServer_DisconnectCancelsPendingCast(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		ts := newTestServer(t)
		mon := testutil.SpawnMonster(ts.area, 7, testutil.MonsterTemplate(1, 10000), 11, 10)

		observer := ts.connect(ctx)
		observer.send(t, "0 login 2")
		observer.next(t)
		observer.next(t)

		p := ts.connect(ctx)
		p.send(t, "0 login 1")
		p.next(t)
		p.next(t)
		p.send(t, "1 u_s 1 0 7")
		p.next(t)
		assert.Equal(t, "ct", header(p.next(t)))
		assert.Equal(t, "ct", header(observer.next(t)), "cast begin reaches the map")

		p.conn.Close()
		time.Sleep(time.Second)
		synctest.Wait()

		assert.Empty(t, observer.pending(), "cancelled cast never resolves")
		assert.Equal(t, int32(10000), mon.CurrentHP())
		assert.Equal(t, int32(50), ts.source.last(1).CurrentMP(), "MP refunded")
		_, online := ts.world.Character(1)
		assert.False(t, online)

		observer.conn.Close()
		ts.wg.Wait()
	})
}

func TestServer_ContextCancelClosesSessions(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		ts := newTestServer(t)

		p := ts.connect(ctx)
		p.send(t, "0 login 1")
		p.next(t)
		p.next(t)

		cancel()
		ts.wg.Wait()

		for range p.lines {
		}
		_, online := ts.world.Character(1)
		assert.False(t, online)
		assert.Equal(t, []int64{1}, ts.progress.Saved())
	})
}

func TestServer_Serve(t *testing.T) {
	ts := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- ts.srv.Serve(ctx, ln) }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	_, err = conn.Write([]byte("0 login 2\n"))
	require.NoError(t, err)
	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "stat 1000 1000 50 50\n", line)
	assert.Equal(t, ln.Addr(), ts.srv.Addr())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop")
	}
}
