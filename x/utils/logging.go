package utils

import (
	"time"

	"github.com/iov-one/dex"
)

// Logging writes one log entry per processed tx with its path and duration.
// Failures are logged as errors, successful checks as debug and successful
// deliveries as info.
type Logging struct{}

var _ dex.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx dex.Context, store dex.KVStore, tx dex.Tx, next dex.Checker) (*dex.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logResult(ctx, tx, time.Since(start), msg, err, true)
	return res, err
}

func (Logging) Deliver(ctx dex.Context, store dex.KVStore, tx dex.Tx, next dex.Deliverer) (*dex.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logResult(ctx, tx, time.Since(start), msg, err, false)
	return res, err
}

func logResult(ctx dex.Context, tx dex.Tx, took time.Duration, msg string, err error, check bool) {
	logger := dex.GetLogger(ctx).With(
		"path", dex.GetPath(tx),
		"duration", took/time.Microsecond,
	)
	switch {
	case err != nil:
		logger.With("err", err).Error(msg)
	case check:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
