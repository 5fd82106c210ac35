package app

import (
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
)

// CommitStore keeps two cache layers over the committed state. CheckTx and
// DeliverTx each write to their own layer, Commit persists the deliver
// layer and starts both over.
type CommitStore struct {
	committed dex.CommitKVStore
	deliver   dex.KVCacheWrap
	check     dex.KVCacheWrap
}

// NewCommitStore loads the latest version of kv. It panics if loading fails.
func NewCommitStore(kv dex.CommitKVStore) *CommitStore {
	if err := kv.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: kv}
	cs.reset()
	return cs
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the last committed version and hash.
func (cs *CommitStore) CommitInfo() (dex.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit writes the deliver layer, drops the check layer and commits.
func (cs *CommitStore) Commit() (dex.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return dex.CommitID{}, err
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, err
	}
	cs.reset()
	return id, nil
}

func (cs *CommitStore) CheckStore() dex.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() dex.CacheableKVStore {
	return cs.deliver
}

// chainIDKey lives outside of every bucket, "_dx:" is reserved for the app
var chainIDKey = []byte("_dx:chainID")

func mustLoadChainID(kv dex.ReadOnlyKVStore) string {
	v, err := kv.Get(chainIDKey)
	if err != nil {
		panic(err)
	}
	return string(v)
}

// saveChainID stores chainID. It can be set only once.
func saveChainID(kv dex.KVStore, chainID string) error {
	if !dex.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	switch exists, err := kv.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case exists:
		return errors.Wrap(errors.ErrUnauthorized, "chain id is set at genesis only")
	}
	return errors.Wrap(kv.Set(chainIDKey, []byte(chainID)), "save chain id")
}
