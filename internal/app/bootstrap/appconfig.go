// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"path/filepath"
	"time"

	"github.com/dalemusser/accidentdash/internal/analytics/cluster"
	"github.com/dalemusser/accidentdash/internal/app/system/ratelimit"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration, which covers ports, TLS,
// logging and request limits.
type AppConfig struct {
	// SQLite database file holding registered users
	DBPath string

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: accidentdash-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Datasets, resolved relative to DataDir
	DataDir       string
	AccidentsFile string // main.csv: Accident_Location, Road_Type
	DistrictsFile string // dis-no.csv: DISTRICTNAME, TotalAccidents
	ClusterFile   string // black.csv: columns clustered on /plot

	// k-means settings for /plot
	ClusterK       int
	ClusterSeed    int
	ClusterMaxIter int

	// Sign-in throttling; a limit of 0 turns that check off
	LoginIPLimit     int
	LoginIPWindow    time.Duration
	LoginEmailLimit  int
	LoginEmailWindow time.Duration

	// Parsed-dataset cache; size 0 disables it
	DatasetCacheSize int
	DatasetCacheTTL  time.Duration
}

// DataPath joins name onto DataDir unless name is already absolute.
func (c AppConfig) DataPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// ClusterOptions returns the k-means options for /plot.
func (c AppConfig) ClusterOptions() cluster.Options {
	return cluster.Options{
		K:       c.ClusterK,
		Seed:    uint64(c.ClusterSeed),
		MaxIter: c.ClusterMaxIter,
	}
}

// LoginLimits returns the sign-in throttle settings.
func (c AppConfig) LoginLimits() ratelimit.LoginConfig {
	return ratelimit.LoginConfig{
		IPLimit:     c.LoginIPLimit,
		IPWindow:    c.LoginIPWindow,
		EmailLimit:  c.LoginEmailLimit,
		EmailWindow: c.LoginEmailWindow,
	}
}
