// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"os"

	"github.com/dalemusser/accidentdash/internal/app/resources"
	userstore "github.com/dalemusser/accidentdash/internal/app/store/users"
	"github.com/dalemusser/accidentdash/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if n := timeouts.ConfigureFromEnv(); n > 0 {
		cur := timeouts.Current()
		logger.Info("timeouts overridden from environment",
			zap.Duration("ping", cur.Ping),
			zap.Duration("short", cur.Short),
			zap.Duration("render", cur.Render))
	}

	checkDatasets(appCfg, logger)

	users, err := userstore.New(deps.SQL).Count(ctx)
	if err != nil {
		return err
	}
	logger.Info("startup complete", zap.Int64("registered_users", users))
	return nil
}

// checkDatasets warns about missing CSV files. The pages that need them
// report the problem per request, so this is not fatal.
func checkDatasets(appCfg AppConfig, logger *zap.Logger) {
	for _, name := range []string{appCfg.AccidentsFile, appCfg.DistrictsFile, appCfg.ClusterFile} {
		p := appCfg.DataPath(name)
		if _, err := os.Stat(p); err != nil {
			logger.Warn("dataset file not readable", zap.String("path", p), zap.Error(err))
		}
	}
}
