package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/dex"
	"github.com/iov-one/dex/dextest"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestRecovery(t *testing.T) {
	h := &dextest.Handler{Panic: "boom"}
	r := NewRecovery()

	ctx := context.Background()
	s := store.MemStore()

	// Panic handler panics. Test the test tool.
	assert.Panics(t, func() { h.Check(ctx, s, nil) })
	assert.Panics(t, func() { h.Deliver(ctx, s, nil) })

	_, err := r.Check(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))

	_, err = r.Deliver(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewTMLogger(log.NewSyncWriter(&buf))
	ctx := dex.WithLogger(context.Background(), logger)
	tx := &dextest.Tx{Msg: &dextest.Msg{RoutePath: "offer/make"}}

	ok := &dextest.Handler{DeliverResult: dex.DeliverResult{Log: "all good"}}
	_, err := NewLogging().Deliver(ctx, store.MemStore(), tx, ok)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "all good")
	assert.Contains(t, buf.String(), "path=offer/make")

	buf.Reset()
	bad := &dextest.Handler{DeliverErr: errors.ErrAmount}
	_, err = NewLogging().Deliver(ctx, store.MemStore(), tx, bad)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "E[")
	assert.Contains(t, buf.String(), "invalid amount")
}

func TestActionTagger(t *testing.T) {
	tx := &dextest.Tx{Msg: &dextest.Msg{RoutePath: "offer/take"}}
	res, err := NewActionTagger().Deliver(context.Background(), store.MemStore(), tx, &dextest.Handler{})
	require.NoError(t, err)
	require.Len(t, res.Tags, 1)
	assert.Equal(t, []byte(ActionKey), res.Tags[0].Key)
	assert.Equal(t, []byte("offer/take"), res.Tags[0].Value)

	_, err = NewActionTagger().Deliver(context.Background(), store.MemStore(), tx, &dextest.Handler{DeliverErr: errors.ErrHuman})
	assert.True(t, errors.ErrHuman.Is(err))
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	ctx := context.Background()
	tx := &dextest.Tx{Msg: &dextest.Msg{RoutePath: "offer/make"}}
	_, err = m.Deliver(ctx, store.MemStore(), tx, &dextest.Handler{})
	require.NoError(t, err)
	_, err = m.Deliver(ctx, store.MemStore(), tx, &dextest.Handler{DeliverErr: errors.ErrAmount})
	require.Error(t, err)
	_, err = m.Check(ctx, store.MemStore(), tx, &dextest.Handler{})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.txs.WithLabelValues("deliver", "offer/make", "0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.txs.WithLabelValues("deliver", "offer/make", "13")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.txs.WithLabelValues("check", "offer/make", "0")))

	// collectors can be registered only once
	_, err = NewMetrics(reg)
	assert.True(t, errors.ErrState.Is(err))
}
