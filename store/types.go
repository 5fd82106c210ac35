/*
Package store provides implementations of the dex store interfaces.

The core piece is BTreeCacheWrap: a scratch-pad of uncommitted writes layered
over any readable store. Writes are visible to every read and iteration done
through the wrap, and reach the parent only on Write. Discard drops them. This
is what makes a transaction an all or nothing unit of work.
*/
package store

import (
	"github.com/iov-one/dex"
)

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = dex.ReadOnlyKVStore
type SetDeleter = dex.SetDeleter
type KVStore = dex.KVStore
type Batch = dex.Batch
type Iterator = dex.Iterator
type CacheableKVStore = dex.CacheableKVStore
type KVCacheWrap = dex.KVCacheWrap
type CommitKVStore = dex.CommitKVStore
type CommitID = dex.CommitID
type Model = dex.Model
