// Package tui runs echomaze in a terminal, locally or over SSH via Wish.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/echomaze/internal/config"
	"github.com/vovakirdan/echomaze/internal/core"
	"github.com/vovakirdan/echomaze/internal/levels"
	"github.com/vovakirdan/echomaze/internal/storage"
)

// shutdownGrace bounds how long Serve waits for open sessions on shutdown.
const shutdownGrace = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the host key file, generated on first start when
	// missing. Empty means ~/.echomaze/host_key.
	HostKeyPath string

	// IdleTimeout closes connections without input for this long.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns the defaults used by `echomaze serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer gives every SSH connection its own session: menu, games and
// scoreboard, all sharing one level loader and one scores database.
type SSHServer struct {
	cfg    SSHServerConfig
	game   config.Config
	levels *levels.Loader
	store  *storage.Store
	logger *log.Logger
	srv    *ssh.Server
}

// NewSSHServer creates the server. store may be nil; the server never
// closes it.
func NewSSHServer(cfg SSHServerConfig, game config.Config, loader *levels.Loader, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{
		cfg:    cfg,
		game:   game,
		levels: loader,
		store:  store,
		logger: logger.WithPrefix("ssh"),
	}
	// The last middleware runs first.
	s.srv, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSession),
			activeterm.Middleware(),
			s.logSessions,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}
	return s, nil
}

// hostKeyPath resolves the host key location and makes sure its directory
// exists.
func hostKeyPath(p string) (string, error) {
	if p == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot locate home directory: %w", err)
		}
		p = filepath.Join(home, ".echomaze", "host_key")
	}
	p = config.ExpandPath(p)
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return "", fmt.Errorf("tui: cannot create host key directory: %w", err)
	}
	return p, nil
}

// newSession builds the Bubble Tea program of one connection. activeterm
// has already rejected connections without a PTY.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	logger := s.logger.With("user", sess.User())

	seed := s.game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := Options{
		Config: s.game,
		Runtime: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: s.game.TickRate,
			Seed:     seed,
		},
		Levels: s.levels,
		Store:  s.store,
		// Stderr keeps the bell out of the frames written to stdout.
		Audio:  AudioPlayer(s.game, sess.Stderr()),
		Styler: NewStyler(bubbletea.MakeRenderer(sess)),
		Logger: logger,
	}
	return NewSessionModel(opts, MenuItems(s.levels, s.game, logger)), []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		remote := sess.RemoteAddr().String()
		s.logger.Info("session started", "user", sess.User(), "remote", remote)
		next(sess)
		s.logger.Info("session ended", "user", sess.User(), "remote", remote, "duration", time.Since(start).Round(time.Second))
	}
}

// Serve accepts connections until ctx is done, then shuts down, giving open
// sessions a short grace period.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("listening", "address", s.cfg.Address)

	errc := make(chan error, 1)
	go func() {
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		s.logger.Error("server failed", "err", err)
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
