package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/dex"
	"github.com/iov-one/dex/codec"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Fee uint64 `json:"fee"`
}

func (c *testConfig) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.PutUint64(1, c.Fee)
	return e.Data(), nil
}

func (c *testConfig) Unmarshal(raw []byte) error {
	*c = testConfig{}
	d := codec.NewDecoder(raw)
	for d.More() {
		field, err := d.Field()
		if err != nil {
			return err
		}
		if field == 1 {
			c.Fee, err = d.ReadUint64()
		} else {
			err = d.Skip()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *testConfig) Validate() error {
	if c.Fee > 1000 {
		return errors.Wrap(errors.ErrInput, "fee too high")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        testConfig
		WantSaveErr *errors.Error
	}{
		"simple":          {Conf: testConfig{Fee: 12}},
		"zero value":      {Conf: testConfig{}},
		"invalid is rejected": {Conf: testConfig{Fee: 5000}, WantSaveErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			err := Save(db, "mypkg", &tc.Conf)
			if tc.WantSaveErr != nil {
				require.True(t, tc.WantSaveErr.Is(err), "got %+v", err)
				var got testConfig
				require.True(t, errors.ErrNotFound.Is(Load(db, "mypkg", &got)))
				return
			}
			require.NoError(t, err)

			var got testConfig
			require.NoError(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Conf, got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	var got testConfig
	err := Load(store.MemStore(), "nothere", &got)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestInitConfig(t *testing.T) {
	genesis := `{"conf": {"mypkg": {"fee": 42}}}`
	var opts dex.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	require.NoError(t, InitConfig(db, opts, "mypkg", &testConfig{}))

	var got testConfig
	require.NoError(t, Load(db, "mypkg", &got))
	assert.Equal(t, uint64(42), got.Fee)

	err := InitConfig(db, opts, "otherpkg", &testConfig{})
	assert.True(t, errors.ErrNotFound.Is(err))
}
