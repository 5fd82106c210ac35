package server

import (
	"testing"

	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

// requireKey fails unless the app_state holds the key
type requireKey string

func (k requireKey) FromGenesis(opts dex.Options, db dex.KVStore) error {
	if _, ok := opts[string(k)]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no %q", string(k))
	}
	return db.Set([]byte(k), []byte("ok"))
}

func TestValidateGenesis(t *testing.T) {
	valid := newHome(t, `{"offer": {}}`)
	invalid := newHome(t, `{"token": {}}`)

	require.NoError(t, ValidateGenesis(requireKey("offer"), []string{GenesisPath(valid)}))

	err := ValidateGenesis(requireKey("offer"), []string{GenesisPath(valid), GenesisPath(invalid)})
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)

	err = ValidateGenesis(requireKey("offer"), []string{"/does/not/exist.json"})
	assert.True(t, errors.ErrInput.Is(err), "got %+v", err)
}

func TestValidateCmdUsesHomeGenesis(t *testing.T) {
	home := newHome(t, `{"offer": {}}`)
	cmd := ValidateCmd(requireKey("offer"), log.NewNopLogger(), &home)
	require.NoError(t, cmd.RunE(cmd, nil))

	other := newHome(t, `{}`)
	err := cmd.RunE(cmd, []string{GenesisPath(other)})
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
}
