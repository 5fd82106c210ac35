package app

import (
	"github.com/iov-one/dex"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...dex.Initializer) dex.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []dex.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts dex.Options, kv dex.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
