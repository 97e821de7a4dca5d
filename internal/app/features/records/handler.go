// internal/app/features/records/handler.go
package records

import (
	uierrors "github.com/dalemusser/recordhub/internal/app/features/errors"
	"github.com/dalemusser/recordhub/internal/app/system/auditlog"
	"github.com/dalemusser/recordhub/internal/app/system/paging"
	"github.com/dalemusser/recordhub/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Records.
type Handler struct {
	DB       *mongo.Database
	Txn      *txn.Runner
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Log      *zap.Logger

	// PageSize is the number of records per page for POST /records/page/{page}.
	PageSize int
}

// NewHandler constructs a new Records handler.
func NewHandler(db *mongo.Database, runner *txn.Runner, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, pageSize int, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Txn:      runner,
		ErrLog:   errLog,
		AuditLog: audit,
		Log:      logger,
		PageSize: paging.ClampSize(pageSize),
	}
}
