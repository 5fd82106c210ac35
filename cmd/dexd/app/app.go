/*
Package app links together all the various components
to construct the dex application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/dex"
	"github.com/iov-one/dex/app"
	"github.com/iov-one/dex/commands/server"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/store/iavl"
	"github.com/iov-one/dex/x"
	"github.com/iov-one/dex/x/offer"
	"github.com/iov-one/dex/x/rent"
	"github.com/iov-one/dex/x/sigs"
	"github.com/iov-one/dex/x/token"
	"github.com/iov-one/dex/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Name is returned by abci Info
const Name = "dex"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery
func Chain(metrics utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, a failed message still increments the sequence
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching the offer and token messages
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	deposits := rent.NewController()
	tokens := token.NewController(deposits)
	token.RegisterRoutes(r, authFn, tokens)
	offer.RegisterRoutes(r, authFn, tokens, deposits)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/offers", "/mints", "/holdings", "/rent" and "/auth"
func QueryRouter() dex.QueryRouter {
	r := dex.NewQueryRouter()
	r.RegisterAll(
		offer.RegisterQuery,
		token.RegisterQuery,
		rent.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(reg prometheus.Registerer) (dex.Handler, error) {
	metrics, err := utils.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	authFn := Authenticator()
	return Chain(metrics).WithHandler(Router(authFn)), nil
}

// Application constructs a basic ABCI application with
// the given arguments.
func Application(name string, h dex.Handler, tx dex.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path. An empty path gives a memory store.
func CommitKVStore(dbPath string) (dex.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}
	// leveldb adds the ".db" suffix itself
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	stack, err := Stack(options.Registry)
	if err != nil {
		return nil, err
	}
	dbPath := filepath.Join(options.Home, "dex.db")
	application, err := Application(Name, stack, TxDecoder, dbPath, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())
	application.WithLogger(options.Logger)
	return application, nil
}
