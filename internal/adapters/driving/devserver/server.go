package devserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
	"github.com/webrig-labs/webrig-cli/internal/core/services"
	"github.com/webrig-labs/webrig-cli/internal/logger"
)

const (
	// PublicEnvPrefix marks dotenv keys safe to expose to the page.
	// Everything else stays server-side so secrets never leak.
	PublicEnvPrefix = "WEBRIG_PUBLIC_"

	// portScanRange is how far above the preferred port the server
	// scans when the preferred one is busy.
	portScanRange = 99

	// shutdownTimeout bounds the graceful drain on exit.
	shutdownTimeout = 5 * time.Second
)

// Config is the resolved dev server configuration: the manifest's
// serve section with command-line overrides already applied.
type Config struct {
	// Host is the interface to bind.
	Host string

	// Port is the preferred listen port.
	Port int

	// Dir is the absolute directory to serve.
	Dir string

	// SPA rewrites extensionless 404s to the root index.html.
	SPA bool

	// LiveReload enables the SSE event stream and snippet injection.
	LiveReload bool

	// OpenBrowser launches the default browser once listening.
	OpenBrowser bool

	// Env holds the loaded dotenv values. Only keys with
	// PublicEnvPrefix are exposed over /__webrig/env.
	Env map[string]string
}

// Server serves a workspace directory for local development.
type Server struct {
	cfg      Config
	app      *fiber.App
	hub      *reloadHub
	registry *prometheus.Registry
	served   atomic.Int64
	resolved bool

	watcher  driven.WorkspaceWatcher
	runStore driven.RunStore
	logOut   io.Writer
}

// New creates a dev server for the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: serve directory %s does not exist", domain.ErrInvalidInput, cfg.Dir)
	}

	s := &Server{
		cfg:      cfg,
		hub:      newReloadHub(),
		registry: prometheus.NewRegistry(),
		logOut:   os.Stdout,
	}
	return s, nil
}

// SetWatcher sets the watcher that feeds live reload events.
func (s *Server) SetWatcher(watcher driven.WorkspaceWatcher) {
	s.watcher = watcher
}

// SetRunStore sets the store the serve session is recorded to.
func (s *Server) SetRunStore(store driven.RunStore) {
	s.runStore = store
}

// SetLogOutput redirects the request log, mainly for tests.
func (s *Server) SetLogOutput(w io.Writer) {
	s.logOut = w
}

// Run starts the server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if !s.resolved {
		if _, err := s.ResolvePort(); err != nil {
			return err
		}
	}
	port := s.cfg.Port

	app, err := s.buildApp()
	if err != nil {
		return err
	}
	s.app = app

	if s.cfg.LiveReload && s.watcher != nil {
		batches, err := s.watcher.Watch(ctx, s.cfg.Dir)
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		go s.forwardReloads(batches)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, port)
	url := fmt.Sprintf("http://%s", addr)
	startedAt := time.Now().UTC()

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()

	if s.cfg.OpenBrowser {
		// Give the listener a moment before pointing a browser at it.
		go func() {
			time.Sleep(150 * time.Millisecond)
			if err := OpenBrowser(url); err != nil {
				logger.Warn("opening browser: %v", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.hub.Close()
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.Warn("shutdown: %v", err)
		}
		<-listenErr
	case err := <-listenErr:
		s.hub.Close()
		runErr = err
	}

	s.recordSession(addr, startedAt)
	return runErr
}

// ResolvePort picks the preferred port or scans upward for a free one.
// Callers that print the address must resolve before Run so the URL
// they show is the one the server binds.
func (s *Server) ResolvePort() (int, error) {
	port, err := services.FindAvailablePort(s.cfg.Host, s.cfg.Port, s.cfg.Port+portScanRange)
	if err != nil {
		return 0, err
	}
	if port != s.cfg.Port {
		logger.Info("port %d is busy, using %d", s.cfg.Port, port)
	}
	s.cfg.Port = port
	s.resolved = true
	return port, nil
}

// Port returns the port the server will bind, after fallback.
func (s *Server) Port() int {
	return s.cfg.Port
}

// buildApp assembles the Fiber app with its middleware chain.
func (s *Server) buildApp() (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "webrig dev server",
	})

	instruments, err := newMetrics(s.registry)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	app.Use(requestID())
	app.Use(requestLogger(s.logOut))
	app.Use(instruments.handler(&s.served))

	app.Get("/__webrig/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/__webrig/env", s.envHandler)
	app.Get("/__webrig/events", s.eventsHandler)

	metricsHandler := fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}),
	)
	app.Get("/__webrig/metrics", func(c *fiber.Ctx) error {
		metricsHandler(c.Context())
		return nil
	})

	app.Get("/*", s.staticHandler)
	return app, nil
}

// envHandler exposes the public subset of the loaded dotenv values.
func (s *Server) envHandler(c *fiber.Ctx) error {
	public := make(map[string]string)
	for key, value := range s.cfg.Env {
		if strings.HasPrefix(key, PublicEnvPrefix) {
			public[key] = value
		}
	}
	return c.JSON(public)
}

// staticHandler serves files from the configured directory, with an
// index default, optional SPA fallback and reload snippet injection.
func (s *Server) staticHandler(c *fiber.Ctx) error {
	requested := c.Path()

	target, err := s.resolveFile(requested)
	if err != nil {
		if s.cfg.SPA && !strings.Contains(filepath.Base(requested), ".") {
			// History-API fallback: client routes resolve to the root
			// document.
			if root, rootErr := s.resolveFile("/"); rootErr == nil {
				return s.sendFile(c, root)
			}
		}
		return c.Status(http.StatusNotFound).SendString("404 not found: " + requested)
	}

	return s.sendFile(c, target)
}

// resolveFile maps a URL path to a file under the served directory.
// Directory paths resolve to their index.html.
func (s *Server) resolveFile(urlPath string) (string, error) {
	cleaned := filepath.Clean("/" + urlPath)
	target := filepath.Join(s.cfg.Dir, filepath.FromSlash(cleaned))

	// Clean("/…") cannot escape, but keep the guard against future
	// refactors of the join above.
	if target != s.cfg.Dir && !strings.HasPrefix(target, s.cfg.Dir+string(os.PathSeparator)) {
		return "", domain.ErrUnsafePath
	}

	info, err := os.Stat(target)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		target = filepath.Join(target, "index.html")
		if _, err := os.Stat(target); err != nil {
			return "", err
		}
	}
	return target, nil
}

// sendFile serves one file, injecting the reload snippet into HTML.
func (s *Server) sendFile(c *fiber.Ctx, path string) error {
	if s.cfg.LiveReload && strings.HasSuffix(path, ".html") {
		content, err := os.ReadFile(path)
		if err != nil {
			return c.Status(http.StatusInternalServerError).SendString(err.Error())
		}
		c.Type("html")
		return c.Send(injectReloadSnippet(content))
	}
	return c.SendFile(path)
}

// forwardReloads turns watcher batches into SSE broadcasts.
func (s *Server) forwardReloads(batches <-chan []string) {
	for batch := range batches {
		sort.Strings(batch)
		logger.Debug("reload: %s", strings.Join(batch, ", "))
		s.hub.Broadcast(encodeReloadEvent(batch))
	}
}

// recordSession stores the serve session in run history. Recording
// failures never surface; history is best effort.
func (s *Server) recordSession(addr string, startedAt time.Time) {
	if s.runStore == nil {
		return
	}
	record := &domain.RunRecord{
		ID:        uuid.NewString(),
		Tool:      domain.ToolDevServer,
		Argv:      []string{addr},
		Trigger:   domain.TriggerManual,
		StartedAt: startedAt,
		EndedAt:   time.Now().UTC(),
		ExitCode:  0,
		Success:   true,
		Detail:    fmt.Sprintf("%d requests served", s.served.Load()),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.runStore.Record(ctx, record); err != nil {
		logger.Warn("recording serve session: %v", err)
	}
	if err := s.runStore.Prune(ctx, services.HistoryRetention); err != nil {
		logger.Warn("pruning run history: %v", err)
	}
}
