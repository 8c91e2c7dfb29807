package dashboard_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/accidentdash/internal/app/features/dashboard"
	"github.com/dalemusser/accidentdash/internal/app/system/auth"
	"github.com/dalemusser/accidentdash/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*dashboard.Handler, *testutil.RenderRecorder) {
	t.Helper()
	rr := &testutil.RenderRecorder{}
	h := dashboard.NewHandler(zap.NewNop())
	h.Render = rr.Render
	return h, rr
}

func TestServeDashboard_ShowsProfile(t *testing.T) {
	h, rr := newTestHandler(t)

	req := testutil.NewRequest("GET", "/dashboard")
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID:        4,
		Name:      "Ann",
		Email:     "a@x.com",
		CreatedAt: time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
	})
	rec := httptest.NewRecorder()
	h.ServeDashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if rr.Name != "dashboard" {
		t.Errorf("template: got %q, want %q", rr.Name, "dashboard")
	}
	if got := testutil.Field(t, rr.Data, "Name"); got != "Ann" {
		t.Errorf("Name: got %q", got)
	}
	if got := testutil.Field(t, rr.Data, "Email"); got != "a@x.com" {
		t.Errorf("Email: got %q", got)
	}
	if got := testutil.Field(t, rr.Data, "MemberSince"); got != "March 5, 2024" {
		t.Errorf("MemberSince: got %q", got)
	}
}

func TestServeDashboard_NoUser_RedirectsToLogin(t *testing.T) {
	h, rr := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeDashboard(rec, testutil.NewRequest("GET", "/dashboard"))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location: got %q, want %q", loc, "/login")
	}
	if rr.Calls != 0 {
		t.Error("nothing should be rendered without a user")
	}
}

func TestRoutes_RequireSignedIn(t *testing.T) {
	h, _ := newTestHandler(t)
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	router := dashboard.Routes(h, sm)
	req := testutil.NewRequest("GET", "/")
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login") {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}
