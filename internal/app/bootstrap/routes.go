// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	auditlogfeature "github.com/dalemusser/recordhub/internal/app/features/auditlog"
	departmentsfeature "github.com/dalemusser/recordhub/internal/app/features/departments"
	errorsfeature "github.com/dalemusser/recordhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/recordhub/internal/app/features/health"
	recordsfeature "github.com/dalemusser/recordhub/internal/app/features/records"
	tagsfeature "github.com/dalemusser/recordhub/internal/app/features/tags"
	usersfeature "github.com/dalemusser/recordhub/internal/app/features/users"
	"github.com/dalemusser/recordhub/internal/app/store/audit"
	"github.com/dalemusser/recordhub/internal/app/system/auditlog"
	"github.com/dalemusser/recordhub/internal/app/system/middleware"
	"github.com/dalemusser/recordhub/internal/app/system/ratelimit"
	"github.com/dalemusser/recordhub/internal/app/system/txn"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/logging"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// Every route answers JSON. /health sits outside the write limiter so
// health checks are never throttled.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.RecordHubMongoDatabase

	errLog := errorsfeature.NewErrorLogger(logger)
	runner := txn.New(db, logger)
	auditLogger := auditlog.New(audit.New(db), logger, auditlog.Config{
		Admin:  appCfg.AuditLogAdmin,
		Record: appCfg.AuditLogRecord,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if appCfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Recovery(logger))
	r.Use(logging.RequestLogger(logger))
	r.NotFound(errLog.NotFound)
	r.MethodNotAllowed(errLog.MethodNotAllowed)

	healthHandler := healthfeature.NewHandler(deps.RecordHubMongoClient, runner, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Group(func(api chi.Router) {
		if appCfg.WriteRateLimit > 0 {
			api.Use(ratelimit.New(appCfg.WriteRateLimit, time.Minute).WriteMiddleware)
		}

		// Records
		recordsHandler := recordsfeature.NewHandler(db, runner, errLog, auditLogger, appCfg.PageSize, logger)
		api.Mount("/records", recordsfeature.Routes(recordsHandler))
		api.Mount("/count", recordsfeature.CountRoutes(recordsHandler))

		// Departments and sections
		deptHandler := departmentsfeature.NewHandler(db, errLog, auditLogger, logger)
		api.Mount("/departments", departmentsfeature.Routes(deptHandler))
		api.Mount("/department", departmentsfeature.LookupRoutes(deptHandler))

		// Users
		usersHandler := usersfeature.NewHandler(db, errLog, auditLogger, logger)
		api.Mount("/users", usersfeature.Routes(usersHandler))
		api.Mount("/user", usersfeature.LookupRoutes(usersHandler))

		// Tags
		tagsHandler := tagsfeature.NewHandler(db, errLog, auditLogger, logger)
		api.Mount("/tag", tagsfeature.Routes(tagsHandler))
		api.Mount("/tags", tagsfeature.ListRoutes(tagsHandler))

		// Audit trail
		auditHandler := auditlogfeature.NewHandler(db, errLog, logger)
		api.Mount("/audit", auditlogfeature.Routes(auditHandler))
	})

	return r, nil
}
