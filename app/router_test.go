package app

import (
	"context"
	"testing"

	"github.com/iov-one/dex"
	"github.com/iov-one/dex/dextest"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()
	mk := &dextest.Handler{DeliverResult: dex.DeliverResult{Data: []byte("made")}}
	take := &dextest.Handler{DeliverErr: errors.ErrState}
	r.Handle(&dextest.Msg{RoutePath: "offer/make"}, mk)
	r.Handle(&dextest.Msg{RoutePath: "offer/take"}, take)

	db := store.MemStore()
	ctx := context.Background()

	res, err := r.Deliver(ctx, db, &dextest.Tx{Msg: &dextest.Msg{RoutePath: "offer/make"}})
	require.NoError(t, err)
	assert.Equal(t, []byte("made"), res.Data)
	assert.Equal(t, 1, mk.DeliverCallCount())

	_, err = r.Deliver(ctx, db, &dextest.Tx{Msg: &dextest.Msg{RoutePath: "offer/take"}})
	assert.True(t, errors.ErrState.Is(err), "got %+v", err)

	_, err = r.Check(ctx, db, &dextest.Tx{Msg: &dextest.Msg{RoutePath: "offer/cancel"}})
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)

	_, err = r.Check(ctx, db, &dextest.Tx{})
	assert.True(t, errors.ErrMsg.Is(err), "got %+v", err)
}

func TestRouterRejectsBadRoutes(t *testing.T) {
	r := NewRouter()
	r.Handle(&dextest.Msg{RoutePath: "offer/make"}, &dextest.Handler{})

	assert.Panics(t, func() {
		r.Handle(&dextest.Msg{RoutePath: "offer/make"}, &dextest.Handler{})
	})
	assert.Panics(t, func() {
		r.Handle(&dextest.Msg{RoutePath: "offer make"}, &dextest.Handler{})
	})
}
