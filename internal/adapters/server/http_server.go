package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/mikey/phishawk/internal/core"
	"go.uber.org/zap"
)

// ServiceName is reported by the health endpoint
const ServiceName = "PhisHawk Analyzer - Text Analysis"

// Error bodies returned to clients
const (
	errNoData   = "No data provided"
	errInternal = "An internal error occurred during analysis."
)

// Options configures the HTTP server
type Options struct {
	ListenAddress   string
	BodyLimit       int
	CORSOrigins     string
	ShutdownTimeout time.Duration
	// Modules is the list advertised by the health endpoint
	Modules []string
}

// HTTPServer serves the classification API
type HTTPServer struct {
	app      *fiber.App
	analyzer core.EmailAnalyzer
	opts     Options
	logger   *zap.Logger
	addr     string
	errCh    chan error
}

// NewHTTPServer creates a new analysis server and registers its routes
func NewHTTPServer(analyzer core.EmailAnalyzer, opts Options, logger *zap.Logger) *HTTPServer {
	s := &HTTPServer{
		analyzer: analyzer,
		opts:     opts,
		logger:   logger,
		errCh:    make(chan error, 1),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "phishawk-backend",
		BodyLimit:             opts.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(recover.New())
	s.app.Use(securityHeaders)
	s.app.Use(cors.New(cors.Config{AllowOrigins: opts.CORSOrigins}))
	s.app.Use(s.requestLogger)

	s.app.Get("/health", s.health)
	s.app.Post("/analyze_text", s.analyzeText)

	return s
}

// App exposes the underlying fiber app
func (s *HTTPServer) App() *fiber.App {
	return s.app
}

// Start binds the listen address and serves in the background. A bind failure
// is returned directly; a later serve failure is delivered on Err.
func (s *HTTPServer) Start() error {
	ln, err := net.Listen("tcp", s.opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.ListenAddress, err)
	}
	s.addr = ln.Addr().String()
	s.logger.Info("Analysis server started", zap.String("address", s.addr))

	go func() {
		if err := s.app.Listener(ln); err != nil {
			s.logger.Error("HTTP server error", zap.Error(err))
			s.errCh <- err
		}
	}()

	return nil
}

// Err reports a failure of the serving loop after Start succeeded
func (s *HTTPServer) Err() <-chan error {
	return s.errCh
}

// Addr returns the bound address once started
func (s *HTTPServer) Addr() string {
	return s.addr
}

// Stop shuts the server down, waiting for in-flight requests up to the shutdown timeout
func (s *HTTPServer) Stop() error {
	if s.opts.ShutdownTimeout > 0 {
		return s.app.ShutdownWithTimeout(s.opts.ShutdownTimeout)
	}
	return s.app.Shutdown()
}

func (s *HTTPServer) health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "healthy",
		"service": ServiceName,
		"modules": s.opts.Modules,
	})
}

func (s *HTTPServer) analyzeText(c *fiber.Ctx) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &fields); err != nil || len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errNoData})
	}

	var email core.ExtractedEmail
	if err := json.Unmarshal(c.Body(), &email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errNoData})
	}

	report, err := s.analyzer.Analyze(c.UserContext(), email)
	if err != nil {
		s.logger.Error("Analysis failed", zap.String("subject", email.Subject), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": errInternal})
	}

	return c.Status(fiber.StatusOK).JSON(core.AnalysisEnvelope{Status: "success", Data: report})
}

// handleError renders errors escaping handlers, including recovered panics, as JSON
func (s *HTTPServer) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := errInternal

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		if code < fiber.StatusInternalServerError {
			message = fiberErr.Message
		}
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}

func securityHeaders(c *fiber.Ctx) error {
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderXFrameOptions, "DENY")
	c.Set(fiber.HeaderXXSSProtection, "1; mode=block")
	return c.Next()
}

func (s *HTTPServer) requestLogger(c *fiber.Ctx) error {
	startTime := time.Now()
	err := c.Next()
	s.logger.Debug("Request handled",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("latency", time.Since(startTime)))
	return err
}
