package utils

import (
	"time"

	"github.com/iov-one/escrowd"
)

// Logging writes one entry per processed transaction with its path and
// duration. Failures are logged as errors, deliveries as info and checks
// as debug.
type Logging struct{}

var _ weave.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logResult(ctx, tx, time.Since(start), msg, err, true)
	return res, err
}

func (Logging) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logResult(ctx, tx, time.Since(start), msg, err, false)
	return res, err
}

// logResult always writes an entry, even when msg is empty.
func logResult(ctx weave.Context, tx weave.Tx, took time.Duration, msg string, err error, check bool) {
	logger := weave.GetLogger(ctx).With(
		"path", weave.GetPath(tx),
		"duration", took/time.Microsecond,
	)
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case check:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
