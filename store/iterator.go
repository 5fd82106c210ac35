package store

import (
	"bytes"

	"github.com/iov-one/dex/errors"
)

// SliceIterator wraps an Iterator over a slice of models
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator creates a new Iterator over this slice
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{
		data: data,
	}
}

// Next returns the next key value pair or ErrIteratorDone.
func (s *SliceIterator) Next() (key, value []byte, err error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.ErrIteratorDone
	}
	m := s.data[s.idx]
	s.idx++
	return m.Key, m.Value, nil
}

// Release is a noop
func (s *SliceIterator) Release() {}

// cacheIterator merges a snapshot of cached items with the iterator of the
// backing store. Cached items shadow parent entries with the same key and
// deleted items hide them.
type cacheIterator struct {
	items   []entry
	parent  Iterator
	reverse bool

	// one element look ahead on the parent
	pkey, pvalue []byte
	pready       bool
	pdone        bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(items []entry, parent Iterator, reverse bool) *cacheIterator {
	return &cacheIterator{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
}

func (c *cacheIterator) fillParent() error {
	if c.pready || c.pdone {
		return nil
	}
	k, v, err := c.parent.Next()
	if err != nil {
		if errors.ErrIteratorDone.Is(err) {
			c.pdone = true
			return nil
		}
		return err
	}
	c.pkey, c.pvalue, c.pready = k, v, true
	return nil
}

// Next returns the next visible key value pair in iteration order.
func (c *cacheIterator) Next() (key, value []byte, err error) {
	for {
		if err := c.fillParent(); err != nil {
			return nil, nil, err
		}
		if len(c.items) == 0 && !c.pready {
			return nil, nil, errors.ErrIteratorDone
		}

		useCache := len(c.items) > 0
		if useCache && c.pready {
			cmp := bytes.Compare(c.items[0].key, c.pkey)
			if c.reverse {
				cmp = -cmp
			}
			switch {
			case cmp > 0:
				useCache = false
			case cmp == 0:
				// cached value shadows the parent
				c.pready = false
			}
		}

		if !useCache {
			c.pready = false
			return c.pkey, c.pvalue, nil
		}

		e := c.items[0]
		c.items = c.items[1:]
		if !e.deleted {
			return e.key, e.value, nil
		}
	}
}

// Release releases the parent iterator.
func (c *cacheIterator) Release() {
	c.parent.Release()
	c.items = nil
}
