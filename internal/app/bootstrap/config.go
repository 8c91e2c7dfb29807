// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

const devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for the dashboard.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: db_path, session_name, etc.
//   - Environment variables: ACCIDENTDASH_DB_PATH, ACCIDENTDASH_SESSION_NAME, etc.
//   - Command-line flags: --db_path, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "db_path", Default: "accidentdash.db", Desc: "SQLite database file for registered users"},
	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "accidentdash-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime (e.g., 24h, 30m)"},

	// Datasets
	{Name: "data_dir", Default: "data", Desc: "Directory holding the accident CSV files"},
	{Name: "accidents_file", Default: "main.csv", Desc: "Accident records with Accident_Location and Road_Type"},
	{Name: "districts_file", Default: "dis-no.csv", Desc: "Per-district totals with DISTRICTNAME and TotalAccidents"},
	{Name: "cluster_file", Default: "black.csv", Desc: "Records clustered on /plot"},

	// Clustering
	{Name: "cluster_k", Default: 3, Desc: "Number of k-means clusters"},
	{Name: "cluster_seed", Default: 42, Desc: "Seed for k-means centroid selection"},
	{Name: "cluster_max_iter", Default: 300, Desc: "Maximum k-means iterations"},

	// Sign-in throttling
	{Name: "login_ip_limit", Default: 10, Desc: "Login attempts per client IP per window (0 disables)"},
	{Name: "login_ip_window", Default: "1m", Desc: "Window for the per-IP login limit"},
	{Name: "login_email_limit", Default: 5, Desc: "Login attempts per email per window (0 disables)"},
	{Name: "login_email_window", Default: "5m", Desc: "Window for the per-email login limit"},

	// Dataset cache
	{Name: "dataset_cache_size", Default: 0, Desc: "Parsed datasets to keep in memory (0 disables caching)"},
	{Name: "dataset_cache_ttl", Default: "1m", Desc: "How long a cached dataset stays valid"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, ACCIDENTDASH_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ACCIDENTDASH", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		DBPath: appValues.String("db_path"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		DataDir:       appValues.String("data_dir"),
		AccidentsFile: appValues.String("accidents_file"),
		DistrictsFile: appValues.String("districts_file"),
		ClusterFile:   appValues.String("cluster_file"),

		ClusterK:       appValues.Int("cluster_k"),
		ClusterSeed:    appValues.Int("cluster_seed"),
		ClusterMaxIter: appValues.Int("cluster_max_iter"),

		LoginIPLimit:     appValues.Int("login_ip_limit"),
		LoginIPWindow:    appValues.Duration("login_ip_window", time.Minute),
		LoginEmailLimit:  appValues.Int("login_email_limit"),
		LoginEmailWindow: appValues.Duration("login_email_window", 5*time.Minute),

		DatasetCacheSize: appValues.Int("dataset_cache_size"),
		DatasetCacheTTL:  appValues.Duration("dataset_cache_ttl", time.Minute),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	var errs []error
	if appCfg.DBPath == "" {
		errs = append(errs, errors.New("db_path must not be empty"))
	}
	if appCfg.SessionKey == "" {
		errs = append(errs, errors.New("session_key must not be empty"))
	}
	if appCfg.SessionName == "" {
		errs = append(errs, errors.New("session_name must not be empty"))
	}
	if appCfg.ClusterK < 1 {
		errs = append(errs, fmt.Errorf("cluster_k must be at least 1, got %d", appCfg.ClusterK))
	}
	if appCfg.ClusterMaxIter < 1 {
		errs = append(errs, fmt.Errorf("cluster_max_iter must be at least 1, got %d", appCfg.ClusterMaxIter))
	}
	if appCfg.ClusterSeed < 0 {
		errs = append(errs, fmt.Errorf("cluster_seed must not be negative, got %d", appCfg.ClusterSeed))
	}
	if appCfg.LoginIPLimit < 0 || appCfg.LoginEmailLimit < 0 {
		errs = append(errs, errors.New("login_ip_limit and login_email_limit must not be negative"))
	}
	if appCfg.DatasetCacheSize < 0 {
		errs = append(errs, fmt.Errorf("dataset_cache_size must not be negative, got %d", appCfg.DatasetCacheSize))
	}
	if err := errors.Join(errs...); err != nil {
		logger.Error("invalid app config", zap.Error(err))
		return err
	}

	if coreCfg != nil && coreCfg.Env == "prod" && appCfg.SessionKey == devSessionKey {
		logger.Warn("using the development session key in production; set ACCIDENTDASH_SESSION_KEY")
	}
	return nil
}
