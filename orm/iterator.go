package orm

import (
	"bytes"

	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
)

// ModelIterator walks over models of a single bucket.
// CONTRACT: No writes may happen within a domain while an iterator exists over it.
type ModelIterator interface {
	// LoadNext moves the iterator to the next key in the database and
	// loads the value into dest. Returned key has the bucket prefix
	// stripped. ErrIteratorDone is returned when there is nothing left.
	LoadNext(dest Model) (key []byte, err error)

	// Release releases the Iterator.
	Release()
}

type modelIterator struct {
	// this is the raw KVStoreIterator
	iterator dex.Iterator
	// this is the bucketPrefix to strip from each key
	bucketPrefix []byte
}

var _ ModelIterator = (*modelIterator)(nil)

func (i *modelIterator) LoadNext(dest Model) ([]byte, error) {
	key, value, err := i.iterator.Next()
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(key, i.bucketPrefix) {
		return nil, errors.Wrapf(errors.ErrDatabase, "key %X outside of bucket", key)
	}
	if err := dest.Unmarshal(value); err != nil {
		return nil, errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return key[len(i.bucketPrefix):], nil
}

func (i *modelIterator) Release() {
	i.iterator.Release()
}
