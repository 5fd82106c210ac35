package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp is the state half of an ABCI application: genesis, queries,
// block boundaries and commits. BaseApp embeds it and adds transactions.
//
// Steps that take no user input (Info, InitChain, Commit) panic on error,
// tendermint cannot recover from a broken store anyway.
type StoreApp struct {
	name   string
	logger log.Logger
	store  *CommitStore

	initializer dex.Initializer
	queryRouter dex.QueryRouter

	// chainID is empty until InitChain stored it
	chainID string

	// baseContext lives as long as the app, blockContext is rebuilt on
	// every BeginBlock
	baseContext  dex.Context
	blockContext dex.Context
}

// NewStoreApp loads the committed state of kv. It panics if the state cannot
// be read.
func NewStoreApp(name string, kv dex.CommitKVStore, qr dex.QueryRouter, ctx dex.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(kv),
		queryRouter: qr,
		baseContext: ctx,
	}
	s.WithLogger(log.NewNopLogger())

	if s.chainID = mustLoadChainID(s.DeliverStore()); s.chainID != "" {
		s.baseContext = dex.WithChainID(s.baseContext, s.chainID)
	}
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockContext = dex.WithHeight(s.baseContext, info.Version)
	return s
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets the initializer run by InitChain.
func (s *StoreApp) WithInit(init dex.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger of the app and of every handler context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseContext = dex.WithLogger(s.baseContext, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext is the context of the current block.
func (s *StoreApp) BlockContext() dex.Context {
	return s.blockContext
}

func (s *StoreApp) DeliverStore() dex.CacheableKVStore {
	return s.store.DeliverStore()
}

func (s *StoreApp) CheckStore() dex.CacheableKVStore {
	return s.store.CheckStore()
}

// loadGenesis runs once per chain. Restarts skip InitChain.
func (s *StoreApp) loadGenesis(raw []byte, chainID string) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %s", s.chainID)
	}
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrState, "app_state missing in genesis, run init first")
	}
	var opts dex.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = dex.WithChainID(s.baseContext, chainID)

	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(opts, s.DeliverStore())
}

// Info reports the last committed height and hash.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("info", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          dex.Version,
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

func (s *StoreApp) SetOption(req abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// Query reads committed state. Path names a registered handler such as
// "/offers", optionally followed by "?prefix" to match every key starting
// with Data instead of Data itself.
//
// Key and Value of the response are both a ResultSet of the same length.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, dex.KeyQueryMod
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "query path %s", req.Path))
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return queryError(err)
	}
	db := s.store.committed.CacheWrap()
	defer db.Discard()

	models, err := qh.Query(db, mod, req.Data)
	if err != nil {
		return queryError(err)
	}
	res := abci.ResponseQuery{Height: info.Version}
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return queryError(err)
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return queryError(err)
	}
	return res
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}

// Commit persists the state of the block.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("commit", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// InitChain loads the app_state of the genesis file.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.AppStateBytes, req.ChainId); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock sets height and time of the block context.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := dex.WithHeight(s.baseContext, req.Header.GetHeight())
	s.blockContext = dex.WithBlockTime(ctx, req.Header.GetTime())
	return abci.ResponseBeginBlock{}
}

func (s *StoreApp) EndBlock(req abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
