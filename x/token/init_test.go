package token

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/dex"
	"github.com/iov-one/dex/dextest"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		amount   string
		decimals uint8
		want     uint64
		wantErr  *errors.Error
	}{
		"whole":           {amount: "12", decimals: 2, want: 1200},
		"fraction":        {amount: "12.5", decimals: 6, want: 12500000},
		"no decimals":     {amount: "7", decimals: 0, want: 7},
		"too precise":     {amount: "0.001", decimals: 2, wantErr: errors.ErrAmount},
		"negative":        {amount: "-1", decimals: 2, wantErr: errors.ErrAmount},
		"garbage":         {amount: "ten", decimals: 2, wantErr: errors.ErrAmount},
		"above uint64":    {amount: "18446744073709551616", decimals: 0, wantErr: errors.ErrOverflow},
		"max uint64":      {amount: "18446744073709551615", decimals: 0, want: 18446744073709551615},
		"trailing zeroes": {amount: "1.500", decimals: 1, want: 15},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAmount(tc.amount, tc.decimals)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	assert.Equal(t, "12.5", FormatAmount(12500000, 6))
	assert.Equal(t, "7", FormatAmount(7, 0))
}

func TestGenesis(t *testing.T) {
	alice := dextest.SequenceKey(t, 1)
	mintA := dextest.SequenceKey(t, 0xA)
	mintB := dextest.SequenceKey(t, 0xB)

	genesis := fmt.Sprintf(`{
		"conf": {"token": {"holding_deposit": 5}},
		"token": {
			"mints": [
				{"address": %q, "decimals": 6},
				{"address": %q, "decimals": 0}
			],
			"holdings": [
				{"owner": %q, "mint": %q, "amount": "12.5"}
			]
		}
	}`, mintA, mintB, alice, mintA)
	var opts dex.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	conf, err := loadConf(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), conf.HoldingDeposit)

	ctrl := NewController(nil)
	m, err := ctrl.Mint(db, mintA)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), m.Decimals)
	assert.Equal(t, uint64(12500000), m.Supply)

	addr, err := AssociatedAddress(alice, mintA)
	require.NoError(t, err)
	h, err := ctrl.Holding(db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(12500000), h.Amount)
	assert.Equal(t, uint64(0), h.Deposit)

	m, err = ctrl.Mint(db, mintB)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), m.Supply)
}

func TestGenesisErrors(t *testing.T) {
	alice := dextest.SequenceKey(t, 1)
	mintA := dextest.SequenceKey(t, 0xA)

	cases := map[string]struct {
		token   string
		wantErr *errors.Error
	}{
		"unknown mint": {
			token:   fmt.Sprintf(`{"holdings": [{"owner": %q, "mint": %q, "amount": "1"}]}`, alice, mintA),
			wantErr: errors.ErrNotFound,
		},
		"duplicate mint": {
			token:   fmt.Sprintf(`{"mints": [{"address": %q}, {"address": %q}]}`, mintA, mintA),
			wantErr: errors.ErrDuplicate,
		},
		"too many decimals": {
			token:   fmt.Sprintf(`{"mints": [{"address": %q, "decimals": 19}]}`, mintA),
			wantErr: errors.ErrInput,
		},
		"bad amount": {
			token: fmt.Sprintf(`{"mints": [{"address": %q, "decimals": 1}],
				"holdings": [{"owner": %q, "mint": %q, "amount": "1.25"}]}`, mintA, alice, mintA),
			wantErr: errors.ErrAmount,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			genesis := `{"conf": {"token": {"holding_deposit": 1}}, "token": ` + tc.token + `}`
			var opts dex.Options
			require.NoError(t, json.Unmarshal([]byte(genesis), &opts))
			err := Initializer{}.FromGenesis(opts, store.MemStore())
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}
