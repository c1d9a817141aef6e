package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/polyfill/internal/config"
	"github.com/tomz197/polyfill/internal/draw"
	"github.com/tomz197/polyfill/internal/fill"
	"github.com/tomz197/polyfill/internal/viewer"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	logger, err := config.NewLogger("ssh")
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	width, err := config.GetEnvInt("CANVAS_WIDTH", fill.DefaultWidth)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	height, err := config.GetEnvInt("CANVAS_HEIGHT", fill.DefaultHeight)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	// One engine serves every session; Fill keeps no state between calls.
	engine := fill.NewEngine(fill.Options{Width: width, Height: height, Logger: logger})

	// Sessions end when the server shuts down.
	sessCtx, cancelSessions := context.WithCancel(context.Background())
	defer cancelSessions()

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			viewerMiddleware(sessCtx, engine, logger),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for key presses
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")
	cancelSessions()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// viewerMiddleware runs a fill viewer for every SSH session.
func viewerMiddleware(ctx context.Context, engine *fill.Engine, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			logger.Info("new viewer session",
				"user", sess.User(), "term", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			renderer := lipgloss.NewRenderer(sess)
			renderer.SetColorProfile(viewer.ProfileForTerm(pty.Term))

			runCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			go func() {
				select {
				case <-sess.Context().Done():
					cancel()
				case <-runCtx.Done():
				}
			}()

			v := viewer.New(bufio.NewReader(sess), sess, viewer.Options{
				TermSizeFunc: sizeTracker.getSize,
				Engine:       engine,
				Renderer:     renderer,
				Logger:       logger.With("user", sess.User()),
			})
			if err := v.Run(runCtx); err != nil {
				logger.Error("viewer error", "user", sess.User(), "err", err)
			}

			logger.Info("session ended", "user", sess.User())
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
