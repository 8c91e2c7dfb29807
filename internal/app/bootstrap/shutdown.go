// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown closes the database handle.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.SQL != nil {
		logger.Info("closing sqlite database")
		if err := deps.SQL.Close(); err != nil {
			logger.Error("sqlite close failed", zap.Error(err))
			return err
		}
	}
	return nil
}
