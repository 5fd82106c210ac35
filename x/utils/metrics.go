package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "dex"

// Metrics is a decorator counting processed transactions and measuring
// their duration, labeled by phase, message path and ABCI result code.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ dex.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator and registers its collectors.
func NewMetrics(reg prometheus.Registerer) (Metrics, error) {
	m := Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "tx_total",
			Help:      "Number of processed transactions.",
		}, []string{"phase", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "tx_duration_seconds",
			Help:      "Time spent processing a transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"phase", "path"}),
	}
	for _, c := range []prometheus.Collector{m.txs, m.duration} {
		if err := reg.Register(c); err != nil {
			return Metrics{}, errors.Wrap(errors.ErrState, err.Error())
		}
	}
	return m, nil
}

// Check measures the checked transaction
func (m Metrics) Check(ctx dex.Context, store dex.KVStore, tx dex.Tx, next dex.Checker) (*dex.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", tx, start, err)
	return res, err
}

// Deliver measures the delivered transaction
func (m Metrics) Deliver(ctx dex.Context, store dex.KVStore, tx dex.Tx, next dex.Deliverer) (*dex.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", tx, start, err)
	return res, err
}

func (m Metrics) observe(phase string, tx dex.Tx, start time.Time, err error) {
	path := dex.GetPath(tx)
	code, _ := errors.ABCIInfo(err, false)
	m.txs.WithLabelValues(phase, path, strconv.FormatUint(uint64(code), 10)).Inc()
	m.duration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}
