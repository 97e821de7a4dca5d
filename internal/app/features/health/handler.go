package health

import (
	"context"
	"net/http"

	"github.com/dalemusser/recordhub/internal/app/features/shared/jsonio"
	"github.com/dalemusser/recordhub/internal/app/system/timeouts"
	"github.com/dalemusser/recordhub/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client *mongo.Client
	Txn    *txn.Runner
	Log    *zap.Logger
}

// NewHandler constructs a health Handler with the Mongo client and logger.
// runner may be nil.
func NewHandler(client *mongo.Client, runner *txn.Runner, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Txn:    runner,
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status       string `json:"status"`
	Database     string `json:"database"`
	Transactions *bool  `json:"transactions,omitempty"`
	Message      string `json:"message,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "transactions":true }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		jsonio.Write(w, http.StatusServiceUnavailable, resp)
		return
	}

	// "false" once a write found the server cannot run transactions.
	if h.Txn != nil {
		supported := h.Txn.Supported()
		resp.Transactions = &supported
	}

	jsonio.OK(w, resp)
}
