package security

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestBodyLimitRejectsOversizedPayload(t *testing.T) {
	handler := BodyLimit{Max: 16}.Middleware(okHandler())

	small := httptest.NewRecorder()
	handler.ServeHTTP(small, httptest.NewRequest(http.MethodPost, "/receipts/process", strings.NewReader(`{"a":1}`)))
	if small.Code != http.StatusOK {
		t.Fatalf("small body: expected 200, got %d", small.Code)
	}

	big := httptest.NewRecorder()
	handler.ServeHTTP(big, httptest.NewRequest(http.MethodPost, "/receipts/process", strings.NewReader(strings.Repeat("x", 64))))
	if big.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("large body: expected 413, got %d", big.Code)
	}
}

func TestBodyLimitDisabled(t *testing.T) {
	handler := BodyLimit{}.Middleware(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/receipts/process", strings.NewReader(strings.Repeat("x", 1<<16))))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with no limit configured, got %d", rec.Code)
	}
}

func TestHeadersMiddleware(t *testing.T) {
	handler := Headers{Enable: true, EnableHSTS: true}.Middleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "https://example.com/receipts/abc/points", nil)
	req.TLS = &tls.ConnectionState{}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	headers := rec.Result().Header
	if got := headers.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff, got %q", got)
	}
	if headers.Get("Strict-Transport-Security") == "" {
		t.Fatal("expected hsts header over tls")
	}
}

func TestHeadersDisabled(t *testing.T) {
	handler := Headers{}.Middleware(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Content-Type-Options") != "" {
		t.Fatal("disabled middleware must not set headers")
	}
}
