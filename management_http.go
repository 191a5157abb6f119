package streamstats

import (
	"context"
	"net"
	"strconv"
	"time"

	fiber "github.com/gofiber/fiber/v3"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/streamstats/internal/sentinel"
)

// ManagementHTTPOption configures the management HTTP server.
type ManagementHTTPOption func(*ManagementHTTPServer)

// ManagementHTTPServer exposes a digest over HTTP for inspection and control.
// It holds the Fiber app and settings.
type ManagementHTTPServer struct {
	addr         string
	app          *fiber.App
	readTimeout  time.Duration
	writeTimeout time.Duration
	authFunc     func(fiber.Ctx) error
	ln           net.Listener
	started      bool
}

// WithMgmtAuth sets an auth function (return error to block).
func WithMgmtAuth(fn func(fiber.Ctx) error) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.authFunc = fn }
}

// WithMgmtReadTimeout sets read timeout.
func WithMgmtReadTimeout(d time.Duration) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.readTimeout = d }
}

// WithMgmtWriteTimeout sets write timeout.
func WithMgmtWriteTimeout(d time.Duration) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.writeTimeout = d }
}

const (
	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 5 * time.Second
)

// NewManagementHTTPServer builds an HTTP server holder (lazy start).
func NewManagementHTTPServer(addr string, opts ...ManagementHTTPOption) *ManagementHTTPServer {
	srv := &ManagementHTTPServer{
		addr:         addr,
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
	}
	for _, opt := range opts { // apply options
		opt(srv)
	}

	srv.app = fiber.New(fiber.Config{
		ReadTimeout:  srv.readTimeout,
		WriteTimeout: srv.writeTimeout,
	})

	return srv
}

// managementDigest is the surface the handlers need; *Digest satisfies it and
// so does any middleware-wrapped Service that also exposes State.
type managementDigest interface {
	Service
	State() DigestState
}

// Start launches the listener (idempotent). The caller provides the digest for
// handler wiring.
func (s *ManagementHTTPServer) Start(ctx context.Context, digest managementDigest) error {
	if s.started { // idempotent
		return nil
	}

	s.mountRoutes(ctx, digest)

	lc := net.ListenConfig{}

	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return ewrap.Wrap(err, "mgmt listen")
	}

	s.ln = ln

	go func() { // serve in background
		serveErr := s.app.Listener(ln)
		if serveErr != nil { // optional server; log hook could be added in future
			_ = serveErr
		}
	}()

	s.started = true

	return nil
}

// Address returns the bound address (useful when passing ":0" for ephemeral port). Empty if not started yet.
func (s *ManagementHTTPServer) Address() string {
	if s.ln == nil {
		return ""
	}

	return s.ln.Addr().String()
}

// Shutdown stops the server.
func (s *ManagementHTTPServer) Shutdown(ctx context.Context) error {
	if !s.started {
		return nil
	}

	ch := make(chan error, 1)

	go func() {
		ch <- s.app.Shutdown()
	}()

	select {
	case <-ctx.Done():
		return sentinel.ErrMgmtHTTPShutdownTimeout
	case err := <-ch:
		return err
	}
}

// mountRoutes registers endpoints onto the Fiber app.
func (s *ManagementHTTPServer) mountRoutes(ctx context.Context, digest managementDigest) {
	useAuth := s.wrapAuth

	s.app.Get("/health", useAuth(func(fiberCtx fiber.Ctx) error { return fiberCtx.SendString("ok") }))

	s.app.Get("/summary", useAuth(func(fiberCtx fiber.Ctx) error {
		if digest.Len() < 2 {
			// The moment statistics are NaN for an empty sample and the
			// sample variance needs two, which JSON cannot represent.
			return fiberCtx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not enough samples"})
		}

		return fiberCtx.JSON(digest.Summary(ctx))
	}))

	s.app.Get("/quantile", useAuth(func(fiberCtx fiber.Ctx) error {
		raw := fiberCtx.Query("p")
		if raw == "" {
			return fiberCtx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing p"})
		}

		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fiberCtx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid p"})
		}

		value, err := digest.Quantile(p)
		if err != nil {
			return fiberCtx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		if digest.Len() == 0 {
			return fiberCtx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "empty sample"})
		}

		return fiberCtx.JSON(fiber.Map{"probability": p, "value": value})
	}))

	s.app.Get("/state", useAuth(func(fiberCtx fiber.Ctx) error {
		if digest.Len() == 0 {
			// The min and max identities are infinite for an empty
			// sample, which JSON cannot represent.
			return fiberCtx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "empty sample"})
		}

		return fiberCtx.JSON(digest.State())
	}))

	s.app.Post("/reset", useAuth(func(fiberCtx fiber.Ctx) error {
		err := digest.Reset(ctx)
		if err != nil {
			return fiberCtx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return fiberCtx.SendString("ok")
	}))
}

// wrapAuth returns an auth-wrapped handler if authFunc provided.
func (s *ManagementHTTPServer) wrapAuth(handler fiber.Handler) fiber.Handler { //nolint:ireturn
	if s.authFunc == nil {
		return handler
	}

	return func(fiberCtx fiber.Ctx) error {
		authErr := s.authFunc(fiberCtx)
		if authErr != nil {
			return authErr
		}

		return handler(fiberCtx)
	}
}
