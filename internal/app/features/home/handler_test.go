package home_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dalemusser/accidentdash/internal/analytics/dataset"
	uierrors "github.com/dalemusser/accidentdash/internal/app/features/errors"
	"github.com/dalemusser/accidentdash/internal/app/features/home"
	"github.com/dalemusser/accidentdash/internal/app/system/viewdata"
	"github.com/dalemusser/accidentdash/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, dir string) (*home.Handler, *testutil.RenderRecorder) {
	t.Helper()
	logger := zap.NewNop()
	rr := &testutil.RenderRecorder{}

	errLog := uierrors.NewErrorLogger(logger)
	errLog.Render = rr.Render

	files := home.Files{
		Accidents: filepath.Join(dir, "main.csv"),
		Districts: filepath.Join(dir, "dis-no.csv"),
	}
	h := home.NewHandler(dataset.NewLoader(0, 0, logger), files, errLog, logger)
	h.Render = rr.Render
	return h, rr
}

func TestServeRoot_RendersThreeCharts(t *testing.T) {
	h, rr := newTestHandler(t, testutil.DataDir(t))

	rec := httptest.NewRecorder()
	h.ServeRoot(rec, testutil.NewRequest("GET", "/"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if rr.Name != "home" {
		t.Fatalf("template: got %q, want %q", rr.Name, "home")
	}

	charts, ok := testutil.Field(t, rr.Data, "Charts").([]viewdata.ChartVM)
	if !ok {
		t.Fatalf("Charts has unexpected type %T", testutil.Field(t, rr.Data, "Charts"))
	}
	if len(charts) != 3 {
		t.Fatalf("expected 3 charts, got %d", len(charts))
	}
	wantTitles := []string{"Accident Location Distribution", "Total Accidents per District", "Accidents by Road Type"}
	for i, c := range charts {
		if c.Title != wantTitles[i] {
			t.Errorf("chart %d title: got %q, want %q", i, c.Title, wantTitles[i])
		}
		if !strings.HasPrefix(string(c.Src), "data:image/png;base64,") {
			t.Errorf("chart %d is not an inline PNG", i)
		}
	}
}

func TestServeRoot_SignedInUserVisible(t *testing.T) {
	h, rr := newTestHandler(t, testutil.DataDir(t))

	req := testutil.WithUser(testutil.NewRequest("GET", "/"), testutil.DefaultUser())
	h.ServeRoot(httptest.NewRecorder(), req)

	if got := testutil.Field(t, rr.Data, "IsLoggedIn"); got != true {
		t.Errorf("IsLoggedIn: got %v, want true", got)
	}
}

func TestServeRoot_MissingDataset(t *testing.T) {
	h, rr := newTestHandler(t, t.TempDir())

	rec := httptest.NewRecorder()
	h.ServeRoot(rec, testutil.NewRequest("GET", "/"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if rr.Name != "error_page" {
		t.Errorf("template: got %q, want %q", rr.Name, "error_page")
	}
	if got := testutil.Field(t, rr.Data, "Message"); got != "The accident dataset is not available." {
		t.Errorf("Message: got %q", got)
	}
}

func TestServeRoot_MissingColumn(t *testing.T) {
	dir := testutil.DataDir(t)
	testutil.WriteFile(t, dir, "main.csv", "Accident_Location\nHighway\n")
	h, rr := newTestHandler(t, dir)

	rec := httptest.NewRecorder()
	h.ServeRoot(rec, testutil.NewRequest("GET", "/"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if got := testutil.Field(t, rr.Data, "Message"); got != "The accident dataset could not be read." {
		t.Errorf("Message: got %q", got)
	}
}

func TestServeRoot_BadDistrictTotal(t *testing.T) {
	dir := testutil.DataDir(t)
	testutil.WriteFile(t, dir, "dis-no.csv", "DISTRICTNAME,TotalAccidents\nBagalkot,many\n")
	h, rr := newTestHandler(t, dir)

	rec := httptest.NewRecorder()
	h.ServeRoot(rec, testutil.NewRequest("GET", "/"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if rr.Name != "error_page" {
		t.Errorf("template: got %q, want %q", rr.Name, "error_page")
	}
}
