// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/recordhub/internal/app/system/auditlog"
	"github.com/dalemusser/recordhub/internal/app/system/paging"
	"github.com/dalemusser/recordhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for RecordHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, page_size, etc.
//   - Environment variables: RECORDHUB_MONGO_URI, RECORDHUB_PAGE_SIZE, etc.
//   - Command-line flags: --mongo_uri, --page_size, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "recordhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "page_size", Default: paging.DefaultPageSize, Desc: "Records per page for POST /records/page/{page}"},

	// Audit logging settings
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_record", Default: "all", Desc: "Record event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	{Name: "write_rate_limit", Default: 120, Desc: "Write requests per client IP per minute (0 disables)"},
	{Name: "trust_proxy_headers", Default: false, Desc: "Take the client IP from X-Forwarded-For/X-Real-IP (only behind a trusted proxy)"},
	{Name: "seed_file", Default: "", Desc: "YAML file with departments, sections and users to create at startup"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, RECORDHUB_* for app) and
// command-line flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "RECORDHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		PageSize: appValues.Int("page_size"),

		AuditLogAdmin:  appValues.String("audit_log_admin"),
		AuditLogRecord: appValues.String("audit_log_record"),

		WriteRateLimit:    appValues.Int("write_rate_limit"),
		TrustProxyHeaders: appValues.Bool("trust_proxy_headers"),
		SeedFile:          appValues.String("seed_file"),
	}

	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("store timeouts overridden from environment", zap.Int("count", n))
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI format is checked here to catch configuration errors
// before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	if appCfg.PageSize < 1 || appCfg.PageSize > paging.MaxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d, got %d", paging.MaxPageSize, appCfg.PageSize)
	}
	if appCfg.WriteRateLimit < 0 {
		return fmt.Errorf("write_rate_limit must not be negative")
	}
	for key, v := range map[string]string{
		"audit_log_admin":  appCfg.AuditLogAdmin,
		"audit_log_record": appCfg.AuditLogRecord,
	} {
		if !auditlog.ValidSetting(v) {
			return fmt.Errorf("%s must be one of all, db, log, off; got %q", key, v)
		}
	}
	return nil
}
