package store

import (
	"bytes"

	"github.com/google/btree"
)

// MemStore returns an empty in-memory store without persistence.
func MemStore() CacheableKVStore {
	var base EmptyKVStore
	return NewBTreeCacheWrap(base, base.NewBatch(), nil)
}

// ShowOpser lists the operations recorded by a store.
type ShowOpser interface {
	ShowOps() []Op
}

// LogableStore returns a memory store together with the log of every write
// performed on it.
func LogableStore() (CacheableKVStore, ShowOpser) {
	var base EmptyKVStore
	batch := NewNonAtomicBatch(base)
	return NewBTreeCacheWrap(base, batch, nil), batch
}

// BTreeCacheWrap keeps pending writes in a btree over a read only parent.
// Reads see the pending writes first. Write flushes them through batch.
type BTreeCacheWrap struct {
	tree   *btree.BTree
	free   *btree.FreeList
	parent ReadOnlyKVStore
	batch  Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap wraps parent. Every write goes to batch as well and
// reaches the parent on Write. Nested wraps share free, a nil free creates
// a new list.
func NewBTreeCacheWrap(parent ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		tree:   btree.NewWithFreeList(2, free),
		free:   free,
		parent: parent,
		batch:  batch,
	}
}

// CacheWrap stacks another layer on top of this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes all pending writes to the parent and empties the layer.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all pending writes.
func (b BTreeCacheWrap) Discard() {
	for b.tree.DeleteMin() != nil {
	}
	if nb, ok := b.batch.(*NonAtomicBatch); ok {
		nb.ops = nil
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.tree.ReplaceOrInsert(entry{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.tree.ReplaceOrInsert(entry{key: key, deleted: true})
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := b.pending(key); ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return b.parent.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	if e, ok := b.pending(key); ok {
		return !e.deleted, nil
	}
	return b.parent.Has(key)
}

func (b BTreeCacheWrap) pending(key []byte) (entry, bool) {
	item := b.tree.Get(entry{key: key})
	if item == nil {
		return entry{}, false
	}
	return item.(entry), true
}

// Iterator visits [start, end) in ascending order, merging pending writes
// with the parent.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newCacheIterator(b.snapshot(start, end), parent, false), nil
}

// ReverseIterator visits [start, end) in descending order, merging pending
// writes with the parent.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	entries := b.snapshot(start, end)
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return newCacheIterator(entries, parent, true), nil
}

// snapshot copies the pending entries of [start, end) in ascending order.
// A nil bound is open.
func (b BTreeCacheWrap) snapshot(start, end []byte) []entry {
	var entries []entry
	collect := func(i btree.Item) bool {
		entries = append(entries, i.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		b.tree.Ascend(collect)
	case start == nil:
		b.tree.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		b.tree.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		b.tree.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	return entries
}

// entry is a pending write. A deleted entry hides the parent value.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}

// EmptyKVStore holds nothing and ignores writes.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }
func (EmptyKVStore) Set(key, value []byte) error { return nil }
func (EmptyKVStore) Delete(key []byte) error { return nil }
func (e EmptyKVStore) NewBatch() Batch { return NewNonAtomicBatch(e) }
func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}
func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}
