package gameserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/battlecore/internal/model"
)

const (
	defaultSendQueueSize = 256
	defaultWriteTimeout  = 5 * time.Second
	defaultReadTimeout   = 120 * time.Second
)

// ErrSendQueueFull is returned by Send when a slow client cannot keep up.
var ErrSendQueueFull = errors.New("send queue full")

// Client is one connected player session.
//
// Outbound lines are queued on sendCh and written by writePump, so a slow
// socket never blocks combat goroutines. Queued slices may be shared between
// clients (one encoding per broadcast) and are never modified.
type Client struct {
	conn net.Conn
	ip   string

	state atomic.Int32

	mu        sync.Mutex
	character *model.Character // set after login

	sendCh    chan []byte
	closeCh   chan struct{}
	closeOnce sync.Once

	writeTimeout time.Duration
}

// NewClient creates a client over conn. Non-positive sizes fall back to defaults.
func NewClient(conn net.Conn, sendQueueSize int, writeTimeout time.Duration) *Client {
	if sendQueueSize <= 0 {
		sendQueueSize = defaultSendQueueSize
	}
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	ip := conn.RemoteAddr().String()
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}

	c := &Client{
		conn:         conn,
		ip:           ip,
		sendCh:       make(chan []byte, sendQueueSize),
		closeCh:      make(chan struct{}),
		writeTimeout: writeTimeout,
	}
	c.state.Store(int32(ClientStateConnected))
	return c
}

// Conn returns the underlying connection.
func (c *Client) Conn() net.Conn {
	return c.conn
}

// IP returns the remote host.
func (c *Client) IP() string {
	return c.ip
}

// State returns the connection state.
func (c *Client) State() ClientConnectionState {
	return ClientConnectionState(c.state.Load())
}

// SetState updates the connection state.
func (c *Client) SetState(s ClientConnectionState) {
	c.state.Store(int32(s))
}

// Character returns the logged-in character or nil.
func (c *Client) Character() *model.Character {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.character
}

// SetCharacter binds the session to a character (nil to unbind).
func (c *Client) SetCharacter(ch *model.Character) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.character = ch
}

// writePump drains sendCh into the connection until the client closes.
// When several lines are queued they go out in one writev call.
func (c *Client) writePump() {
	bufs := make(net.Buffers, 0, 64)

	for {
		select {
		case line := <-c.sendCh:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
				slog.Warn("set write deadline failed", "client", c.ip, "error", err)
				c.CloseAsync()
				return
			}

			queued := len(c.sendCh)
			if queued == 0 {
				if _, err := c.conn.Write(line); err != nil {
					slog.Warn("write failed", "client", c.ip, "error", err)
					c.CloseAsync()
					return
				}
				continue
			}

			bufs = bufs[:0]
			bufs = append(bufs, line)
			for range queued {
				bufs = append(bufs, <-c.sendCh)
			}
			// WriteTo сдвигает срез, поэтому работаем с копией заголовка
			batch := bufs
			if _, err := batch.WriteTo(c.conn); err != nil {
				slog.Warn("batch write failed", "client", c.ip, "error", err)
				c.CloseAsync()
				return
			}

		case <-c.closeCh:
			return
		}
	}
}

// Send queues one encoded line. Non-blocking: a full queue disconnects the
// client (slow consumer) and returns ErrSendQueueFull.
func (c *Client) Send(line []byte) error {
	select {
	case <-c.closeCh:
		return net.ErrClosed
	default:
	}

	select {
	case c.sendCh <- line:
		return nil
	default:
		slog.Warn("send queue full, disconnecting slow client", "client", c.ip)
		c.CloseAsync()
		return fmt.Errorf("client %s: %w", c.ip, ErrSendQueueFull)
	}
}

// CloseAsync signals the writePump to stop without blocking.
// Safe to call multiple times.
func (c *Client) CloseAsync() {
	c.closeOnce.Do(func() {
		c.state.Store(int32(ClientStateDisconnected))
		close(c.closeCh)
	})
}

// Close stops the writePump and closes the connection.
func (c *Client) Close() error {
	c.CloseAsync()
	return c.conn.Close()
}

// Done is closed once the client starts shutting down.
func (c *Client) Done() <-chan struct{} {
	return c.closeCh
}
