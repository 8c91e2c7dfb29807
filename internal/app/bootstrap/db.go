// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/accidentdash/internal/app/store/db"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB opens the SQLite database named by db_path.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	d, err := db.Open(appCfg.DBPath)
	if err != nil {
		logger.Error("sqlite open failed", zap.String("path", appCfg.DBPath), zap.Error(err))
		return DBDeps{}, err
	}
	logger.Info("sqlite connected", zap.String("path", appCfg.DBPath))
	return DBDeps{SQL: d}, nil
}

// EnsureSchema applies pending migrations.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return db.Migrate(ctx, deps.SQL, logger)
}
