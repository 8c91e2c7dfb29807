package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/accidentdash/internal/app/features/health"
	userstore "github.com/dalemusser/accidentdash/internal/app/store/users"
	"github.com/dalemusser/accidentdash/internal/testutil"
	"go.uber.org/zap"
)

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("disk I/O error") }

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestServe_OK(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := health.NewHandler(userstore.New(db), zap.NewNop())

	rec := httptest.NewRecorder()
	h.Serve(rec, testutil.NewRequest("GET", "/health"))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	body := decode(t, rec)
	if body["status"] != "ok" || body["database"] != "connected" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestServe_DatabaseDown(t *testing.T) {
	h := health.NewHandler(failingPinger{}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Serve(rec, testutil.NewRequest("GET", "/health"))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	body := decode(t, rec)
	if body["status"] != "error" || body["database"] != "disconnected" {
		t.Errorf("unexpected body: %v", body)
	}
	if body["error"] == "" {
		t.Error("expected error detail")
	}
}
