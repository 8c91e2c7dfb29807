package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	userstore "github.com/dalemusser/accidentdash/internal/app/store/users"
	"github.com/dalemusser/accidentdash/internal/domain/models"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// Sample datasets shaped like the production files.
const (
	AccidentsCSV = "Accident_Location,Road_Type\n" +
		"Highway,National Highway\n" +
		"Urban,City Road\n" +
		"Highway,National Highway\n" +
		"Rural,Village Road\n" +
		"Urban,City Road\n" +
		"Highway,State Highway\n" +
		"Rural,Village Road\n" +
		"Highway,National Highway\n" +
		"Urban,City Road\n" +
		"Rural,Village Road\n" +
		"Highway,State Highway\n"

	DistrictsCSV = "DISTRICTNAME,TotalAccidents\n" +
		"Bagalkot,120\n" +
		"Ballari,95\n" +
		"Belagavi,210\n"

	ClusterCSV = "Accident_Spot,Accident_Location,Main_Cause,Severity,Road_Type\n" +
		"Junction,Urban,Over Speeding,Fatal,City Road\n" +
		"Curve,Rural,Drunken Driving,Minor,Village Road\n" +
		"Bridge,Highway,Weather,Grievous,National Highway\n" +
		"Junction,Urban,Over Speeding,Fatal,City Road\n" +
		"Curve,Rural,Drunken Driving,Minor,Village Road\n" +
		"Bridge,Highway,Weather,Grievous,National Highway\n"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db    *sqlx.DB
	t     *testing.T
	users *userstore.Store
}

// NewFixtures creates a new Fixtures instance for the given test database.
// Passwords are hashed at the minimum bcrypt cost to keep tests fast.
func NewFixtures(t *testing.T, db *sqlx.DB) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t, users: userstore.New(db).WithCost(bcrypt.MinCost)}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *sqlx.DB {
	return f.db
}

// Users returns the fast-hashing store the fixtures write through.
func (f *Fixtures) Users() *userstore.Store {
	return f.users
}

// CreateUser registers a user and fails the test on error.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, password string) models.User {
	f.t.Helper()
	u, err := f.users.Create(ctx, name, email, password)
	if err != nil {
		f.t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

// WriteFile writes body to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

// DataDir writes the sample datasets under their default names
// (main.csv, dis-no.csv, black.csv) into a temp dir and returns it.
func DataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	WriteFile(t, dir, "main.csv", AccidentsCSV)
	WriteFile(t, dir, "dis-no.csv", DistrictsCSV)
	WriteFile(t, dir, "black.csv", ClusterCSV)
	return dir
}
