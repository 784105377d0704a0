package gameserver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/udisondev/battlecore/internal/config"
)

// maxLineSize caps one inbound command line.
const maxLineSize = 4096

// Server accepts client connections and feeds their command lines to the
// Handler. Each connection gets its own session context: closing the
// connection cancels every cast it started.
type Server struct {
	cfg     config.Server
	handler *Handler
	clients *ClientManager

	listener net.Listener
	mu       sync.Mutex
}

// NewServer creates a new Server.
func NewServer(cfg config.Server, handler *Handler, clients *ClientManager) *Server {
	return &Server{cfg: cfg, handler: handler, clients: clients}
}

// Addr returns the address the server is listening on.
// Returns nil if the server hasn't started yet.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ClientManager returns the client manager for this server.
func (s *Server) ClientManager() *ClientManager {
	return s.clients
}

// Run listens on cfg.BindAddress:cfg.Port and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.BindAddress, fmt.Sprint(s.cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln until ctx is done, then waits for
// every connection to finish. Used directly by tests with custom listeners.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	slog.Info("battle server started", "address", ln.Addr())

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				slog.Info("battle server stopped")
				return nil
			}
			slog.Error("failed to accept new connection", "error", err)
			continue
		}

		if tcpConn, ok := conn.(*net.TCPConn); ok {
			if err := tcpConn.SetKeepAlive(true); err != nil {
				slog.Warn("set keepalive failed", "error", err)
			}
			if err := tcpConn.SetKeepAlivePeriod(30 * time.Second); err != nil {
				slog.Warn("set keepalive period failed", "error", err)
			}
		}

		wg.Go(func() {
			s.ServeConn(ctx, conn)
		})
	}
}

// ServeConn runs one client session over conn until the peer disconnects,
// the client is dropped as a slow consumer or ctx is done.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) {
	sessionCtx, cancel := context.WithCancel(ctx)

	client := NewClient(conn, s.cfg.SendQueueSize, s.cfg.WriteTimeout)
	slog.Info("new client connection", "remote", client.IP())

	var pump sync.WaitGroup
	pump.Go(client.writePump)

	// закрытие сокета будит заблокированное чтение
	go func() {
		select {
		case <-sessionCtx.Done():
		case <-client.Done():
		}
		conn.Close()
	}()

	defer func() {
		cancel()
		s.handler.OnDisconnect(ctx, client)
		client.Close()
		pump.Wait()
	}()

	readTimeout := s.cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 256), maxLineSize)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			slog.Warn("set read deadline failed", "client", client.IP(), "error", err)
			return
		}
		if !scanner.Scan() {
			err := scanner.Err()
			switch {
			case err == nil || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe):
				slog.Info("client disconnected", "client", client.IP())
			default:
				slog.Warn("client read failed", "client", client.IP(), "error", err)
			}
			return
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := s.handler.HandleLine(sessionCtx, client, line); err != nil {
			slog.Warn("closing client", "client", client.IP(), "error", err)
			return
		}
	}
}
