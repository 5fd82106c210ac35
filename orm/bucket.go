/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* Models are stored under a primary key, which may be composite.
* Easy queries for one and iteration over a key prefix.
*/
package orm

import (
	"regexp"

	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	dex.Persistent
	Validate() error
}

// ModelBucket is a prefixed subspace of the DB holding one kind of model.
type ModelBucket struct {
	name   string
	prefix []byte
}

var _ dex.QueryHandler = ModelBucket{}

// NewModelBucket creates a bucket to store models. Name is used as the db
// prefix and must be 3 to 10 lowercase letters or underscore.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic("Illegal bucket: " + name)
	}
	return ModelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the name of the bucket
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix.
// A new slice is allocated so consecutive calls never share memory.
func (b ModelBucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Has returns true if a model is stored under given key.
func (b ModelBucket) Has(db dex.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// One loads the model stored under given key into dest.
// This method returns ErrNotFound if the entity does not exist in the
// database.
func (b ModelBucket) One(db dex.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return nil
}

// Put saves given model in the database, overwriting any previous value.
func (b ModelBucket) Put(db dex.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	if raw == nil {
		raw = []byte{}
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (b ModelBucket) Delete(db dex.KVStore, key []byte) error {
	ok, err := b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "no %s entry", b.name)
	}
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// PrefixScan returns an iterator over all models whose key starts with
// prefix. An empty prefix iterates over the whole bucket.
func (b ModelBucket) PrefixScan(db dex.ReadOnlyKVStore, prefix []byte, reverse bool) (ModelIterator, error) {
	start, end := prefixRange(b.DBKey(prefix))
	var (
		it  dex.Iterator
		err error
	)
	if reverse {
		it, err = db.ReverseIterator(start, end)
	} else {
		it, err = db.Iterator(start, end)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &modelIterator{iterator: it, bucketPrefix: b.prefix}, nil
}

// Register registers this bucket as a query handler under /name.
// An empty name uses the bucket name.
func (b ModelBucket) Register(name string, r dex.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query handles queries from the QueryRouter.
// Returned keys contain the bucket prefix.
func (b ModelBucket) Query(db dex.ReadOnlyKVStore, mod string, data []byte) ([]dex.Model, error) {
	switch mod {
	case dex.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []dex.Model{{Key: key, Value: value}}, nil
	case dex.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
