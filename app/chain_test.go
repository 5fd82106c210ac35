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

func TestChainDecorators(t *testing.T) {
	outer := &dextest.Decorator{}
	inner := &dextest.Decorator{}
	var none *dextest.Decorator
	h := &dextest.Handler{}

	stack := ChainDecorators(outer, none).Chain(nil, inner).WithHandler(h)
	db := store.MemStore()
	tx := &dextest.Tx{Msg: &dextest.Msg{RoutePath: "any"}}

	_, err := stack.Check(context.Background(), db, tx)
	require.NoError(t, err)
	_, err = stack.Deliver(context.Background(), db, tx)
	require.NoError(t, err)

	assert.Equal(t, 2, outer.CallCount())
	assert.Equal(t, 2, inner.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainStopsOnDecoratorError(t *testing.T) {
	failing := &dextest.Decorator{DeliverErr: errors.ErrUnauthorized}
	after := &dextest.Decorator{}
	h := &dextest.Handler{}

	stack := ChainDecorators(failing, after).WithHandler(h)
	_, err := stack.Deliver(context.Background(), store.MemStore(), &dextest.Tx{})
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)
	assert.Equal(t, 0, after.CallCount())
	assert.Equal(t, 0, h.CallCount())
}

func TestChainInitializers(t *testing.T) {
	var calls []string
	record := func(name string, err error) dex.Initializer {
		return initFunc(func(dex.Options, dex.KVStore) error {
			calls = append(calls, name)
			return err
		})
	}

	init := ChainInitializers(record("a", nil), record("b", errors.ErrInput), record("c", nil))
	err := init.FromGenesis(dex.Options{}, store.MemStore())
	assert.True(t, errors.ErrInput.Is(err), "got %+v", err)
	assert.Equal(t, []string{"a", "b"}, calls)
}

type initFunc func(dex.Options, dex.KVStore) error

func (f initFunc) FromGenesis(opts dex.Options, db dex.KVStore) error {
	return f(opts, db)
}
