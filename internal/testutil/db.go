package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dalemusser/accidentdash/internal/app/store/db"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// SetupTestDB opens a migrated SQLite database in a temp directory. The
// handle is closed when the test finishes.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	ctx, cancel := TestContext()
	defer cancel()
	if err := db.Migrate(ctx, d, zap.NewNop()); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return d
}

// TestContext returns a context with a generous timeout for test setup.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
