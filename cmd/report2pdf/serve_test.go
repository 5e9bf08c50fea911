package main

// Notes:
// - Handlers are exercised through httptest against routes(), so middleware
//   (content type, request IDs, recovery) is part of every case.
// - Success cases use the real renderer; error mapping uses a stub so each
//   status code has a deterministic trigger.
// - serve() is tested once on a loopback listener for graceful shutdown.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	report2pdf "github.com/alnah/go-report2pdf"
	"github.com/alnah/go-report2pdf/internal/dateutil"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// errRenderer fails every render with err.
type errRenderer struct{ err error }

func (e errRenderer) Render(context.Context, report2pdf.Input) (*report2pdf.Result, error) {
	return nil, e.err
}

func newTestServer(t *testing.T, r Renderer) *server {
	t.Helper()
	cfg := testConfig()
	if r == nil {
		r = report2pdf.NewRenderer(report2pdf.WithClock(testClock), report2pdf.WithVerification(true))
	}
	return &server{
		renderer:     r,
		settings:     buildSettings(cfg),
		now:          testClock,
		logger:       slog.New(slog.DiscardHandler),
		maxBodyBytes: 4096,
		timeout:      30 * time.Second,
	}
}

func postRender(t *testing.T, h http.Handler, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func renderBody(t *testing.T, req renderRequest) string {
	t.Helper()
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestHealth
// ---------------------------------------------------------------------------

func TestServer_Health(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil).routes()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "ok" || body["version"] != Version {
		t.Errorf("body = %v", body)
	}
}

// ---------------------------------------------------------------------------
// TestRender - Success
// ---------------------------------------------------------------------------

func TestServer_Render(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil).routes()
	rec := postRender(t, h, "application/json", renderBody(t, renderRequest{
		Title:   "Relatório de Avaliação",
		Content: sampleText,
		Date:    "auto:iso",
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("X-Page-Count"); got != "1" {
		t.Errorf("X-Page-Count = %q, want 1", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "Relatorio_de_Avaliacao.pdf") {
		t.Errorf("Content-Disposition = %q", got)
	}
	if got := rec.Header().Get("Content-Length"); got != fmt.Sprint(rec.Body.Len()) {
		t.Errorf("Content-Length = %q, body is %d bytes", got, rec.Body.Len())
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body is not a PDF")
	}
}

func TestServer_Render_Deterministic(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil).routes()
	body := renderBody(t, renderRequest{Title: "Same", Content: sampleText})

	first := postRender(t, h, "application/json", body)
	second := postRender(t, h, "application/json", body)
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("identical requests produced different PDFs")
	}
}

// ---------------------------------------------------------------------------
// TestRender - Request errors
// ---------------------------------------------------------------------------

func TestServer_Render_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
	}{
		{name: "malformed json", contentType: "application/json", body: `{"title":`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", contentType: "application/json", body: `{"title":"T","content":"x","pages":3}`, wantStatus: http.StatusBadRequest},
		{name: "body too large", contentType: "application/json", body: `{"title":"T","content":"` + strings.Repeat("a", 5000) + `"}`, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "wrong content type", contentType: "text/plain", body: `{"title":"T","content":"x"}`, wantStatus: http.StatusUnsupportedMediaType},
		{name: "empty content", contentType: "application/json", body: `{"title":"T","content":"  \n "}`, wantStatus: http.StatusBadRequest},
		{name: "missing title", contentType: "application/json", body: `{"content":"text"}`, wantStatus: http.StatusBadRequest},
		{name: "bad date", contentType: "application/json", body: `{"title":"T","content":"x","date":"auto:[oops"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newTestServer(t, nil).routes()
			rec := postRender(t, h, tt.contentType, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %q)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestServer_Render_ErrorBody(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, errRenderer{err: report2pdf.ErrLayoutOverflow}).routes()
	rec := postRender(t, h, "application/json", `{"title":"T","content":"x"}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["error"] == "" {
		t.Error("error body is empty")
	}
}

func TestServer_Render_PageCap(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, report2pdf.NewRenderer(report2pdf.WithMaxPages(1)))
	rec := postRender(t, s.routes(), "application/json", renderBody(t, renderRequest{
		Title:   "Long",
		Content: strings.Repeat("Line of text.\n", 60),
	}))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// TestStatusFor
// ---------------------------------------------------------------------------

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "empty title", err: report2pdf.ErrEmptyTitle, want: http.StatusBadRequest},
		{name: "empty content", err: report2pdf.ErrEmptyContent, want: http.StatusBadRequest},
		{name: "margin", err: fmt.Errorf("page: %w", report2pdf.ErrInvalidMargin), want: http.StatusBadRequest},
		{name: "font size", err: report2pdf.ErrInvalidFontSize, want: http.StatusBadRequest},
		{name: "font family", err: report2pdf.ErrInvalidFontFamily, want: http.StatusBadRequest},
		{name: "footer", err: report2pdf.ErrInvalidFooterFormat, want: http.StatusBadRequest},
		{name: "date", err: dateutil.ErrInvalidDateFormat, want: http.StatusBadRequest},
		{name: "overflow", err: fmt.Errorf("line 3: %w", report2pdf.ErrLayoutOverflow), want: http.StatusUnprocessableEntity},
		{name: "deadline", err: context.DeadlineExceeded, want: http.StatusGatewayTimeout},
		{name: "canceled", err: context.Canceled, want: http.StatusServiceUnavailable},
		{name: "generation", err: report2pdf.ErrPDFGeneration, want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestServe - Lifecycle
// ---------------------------------------------------------------------------

func TestServer_Serve_Shutdown(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	s := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve() = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve() did not return after cancel")
	}
}

func TestRunServe_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "positional argument", args: []string{"extra"}, wantCode: ExitUsage},
		{name: "bad timeout", args: []string{"--timeout", "-5"}, wantCode: ExitUsage},
		{name: "bad address", args: []string{"--addr", "127.0.0.1:99999"}, wantCode: ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, _ := testEnv(t, nil)
			err := runServe(context.Background(), tt.args, env)
			if err == nil {
				t.Fatal("runServe() expected error, got nil")
			}
			if got := exitCodeFor(err); got != tt.wantCode {
				t.Errorf("exitCodeFor(%v) = %d, want %d", err, got, tt.wantCode)
			}
		})
	}
}
