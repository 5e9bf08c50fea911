package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	flag "github.com/spf13/pflag"

	report2pdf "github.com/alnah/go-report2pdf"
	"github.com/alnah/go-report2pdf/internal/dateutil"
)

// Server timing.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// renderRequest is the JSON body of POST /render.
type renderRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	FileName string `json:"fileName"`
	Date     string `json:"date"` // overrides the configured date; "auto" accepted
}

// server renders one document per request.
type server struct {
	renderer     Renderer
	settings     *renderSettings
	now          func() time.Time
	logger       *slog.Logger
	maxBodyBytes int64
	timeout      time.Duration
}

// runServe starts the HTTP service and blocks until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeDocumentFlags(&flags.document, cfg)
	mergeLayoutFlags(&flags.layout, cfg)
	mergeLimitFlags(&flags.limits, cfg)
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.maxBodyBytes != 0 {
		cfg.Server.MaxBodyBytes = flags.maxBodyBytes
	}
	if flags.timeout != 0 {
		cfg.Server.TimeoutSeconds = flags.timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose, slog.LevelInfo)
	setMaxProcs(logger)

	srv := &server{
		renderer:     newRenderer(cfg, logger, env.Now),
		settings:     buildSettings(cfg),
		now:          env.Now,
		logger:       logger,
		maxBodyBytes: cfg.Server.MaxBodyBytes,
		timeout:      time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return &listenError{addr: cfg.Server.Addr, err: err}
	}
	return srv.serve(ctx, ln)
}

// serve runs the HTTP server on ln until ctx is canceled, then shuts down
// gracefully, letting in-flight renders finish.
func (s *server) serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(ln)
	}()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// routes builds the HTTP handler.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.With(middleware.AllowContentType("application/json")).Post("/render", s.handleRender)
	return r
}

// logRequests logs one line per request with slog.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": Version})
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req renderRequest
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	settings := *s.settings
	if req.Date != "" {
		settings.date = req.Date
	}
	title := req.Title
	if title == "" {
		title = settings.title
	}
	in, err := settings.input(title, req.Content, req.FileName, s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	res, err := s.renderer.Render(ctx, in)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("render failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		}
		writeError(w, status, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.FileName}))
	h.Set("Content-Length", strconv.Itoa(len(res.PDF)))
	h.Set("X-Page-Count", strconv.Itoa(res.Pages))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PDF)
}

// statusFor maps a render error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, report2pdf.ErrEmptyTitle),
		errors.Is(err, report2pdf.ErrEmptyContent),
		errors.Is(err, report2pdf.ErrInvalidMargin),
		errors.Is(err, report2pdf.ErrInvalidFontSize),
		errors.Is(err, report2pdf.ErrInvalidFontFamily),
		errors.Is(err, report2pdf.ErrInvalidFooterFormat),
		errors.Is(err, dateutil.ErrInvalidDateFormat):
		return http.StatusBadRequest
	case errors.Is(err, report2pdf.ErrLayoutOverflow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
