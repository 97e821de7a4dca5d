// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/recordhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. When a
// seed file is configured its departments, sections and users are created.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SeedFile == "" {
		return nil
	}

	seed, err := loadSeed(appCfg.SeedFile)
	if err != nil {
		logger.Error("seed file rejected", zap.String("path", appCfg.SeedFile), zap.Error(err))
		return err
	}

	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Long(), logger, "apply seed")
	defer cancel()

	res, err := applySeed(ctx, deps.RecordHubMongoDatabase, seed, logger)
	if err != nil {
		logger.Error("seed failed", zap.Error(err))
		return err
	}
	logger.Info("seed applied",
		zap.String("path", appCfg.SeedFile),
		zap.Int("departments_created", res.Departments),
		zap.Int("sections_created", res.Sections),
		zap.Int("users_created", res.Users))
	return nil
}
