// Package txn runs multi-collection writes in a MongoDB transaction.
//
// Standalone servers do not support transactions. When the server reports
// that, Run executes the function without one and remembers the outcome so
// later calls skip the attempt.
package txn

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Runner executes functions transactionally against one database.
type Runner struct {
	client      *mongo.Client
	log         *zap.Logger
	unsupported atomic.Bool
}

// New returns a Runner bound to db's client.
func New(db *mongo.Database, log *zap.Logger) *Runner {
	return &Runner{client: db.Client(), log: log}
}

// Run calls fn inside a transaction. fn must use the context it is given so
// its operations join the session.
func (r *Runner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.unsupported.Load() {
		return fn(ctx)
	}

	sess, err := r.client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			r.markUnsupported(err)
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		r.markUnsupported(err)
		return fn(ctx)
	}
	return err
}

// Supported reports whether Run still attempts transactions.
func (r *Runner) Supported() bool { return !r.unsupported.Load() }

func (r *Runner) markUnsupported(err error) {
	if r.unsupported.CompareAndSwap(false, true) && r.log != nil {
		r.log.Warn("transactions not supported by server; running writes without a transaction",
			zap.Error(err))
	}
}

// IsNotSupported reports whether err means the deployment cannot run
// transactions (standalone server, no sessions).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
	}
	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "transaction") && strings.Contains(s, "replica set"):
		return true
	case strings.Contains(s, "transaction") && strings.Contains(s, "session"):
		return true
	case strings.Contains(s, "session") && strings.Contains(s, "not supported"):
		return true
	case strings.Contains(s, "illegal operation"):
		return true
	}
	return false
}
