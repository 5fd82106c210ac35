package x_test

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/dextest"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/x"
	"github.com/stretchr/testify/assert"
)

func TestAuth(t *testing.T) {
	a := dextest.SequenceKey(t, 1)
	b := dextest.SequenceKey(t, 2)
	c := dextest.SequenceKey(t, 3)

	ctx1 := &dextest.CtxAuth{Key: "foo"}
	ctx2 := &dextest.CtxAuth{Key: "bar"}

	cases := map[string]struct {
		ctx          dex.Context
		auth         x.Authenticator
		mainSigner   solana.PublicKey
		wantInCtx    solana.PublicKey
		wantNotInCtx solana.PublicKey
		wantAll      []solana.PublicKey
	}{
		"empty context": {
			ctx:          context.Background(),
			auth:         &dextest.Auth{},
			wantNotInCtx: b,
		},
		"signer a": {
			ctx:          context.Background(),
			auth:         &dextest.Auth{Signer: a},
			mainSigner:   a,
			wantInCtx:    a,
			wantNotInCtx: b,
			wantAll:      []solana.PublicKey{a},
		},
		"chained signers": {
			ctx: context.Background(),
			auth: x.ChainAuth(
				&dextest.Auth{Signer: b},
				&dextest.Auth{Signer: a}),
			mainSigner:   b,
			wantInCtx:    a,
			wantNotInCtx: c,
			wantAll:      []solana.PublicKey{b, a},
		},
		"ctxAuth checks what is set by same key": {
			ctx:          ctx1.SetSigners(context.Background(), a, b),
			auth:         ctx1,
			mainSigner:   a,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []solana.PublicKey{a, b},
		},
		"ctxAuth with different key sees nothing": {
			ctx:          ctx1.SetSigners(context.Background(), a, b),
			auth:         ctx2,
			wantNotInCtx: a,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			main, ok := x.MainSigner(tc.ctx, tc.auth)
			assert.Equal(t, !tc.mainSigner.IsZero(), ok)
			assert.Equal(t, tc.mainSigner, main)
			if !tc.wantInCtx.IsZero() {
				assert.True(t, tc.auth.HasSigner(tc.ctx, tc.wantInCtx))
			}
			assert.False(t, tc.auth.HasSigner(tc.ctx, tc.wantNotInCtx))
			assert.Equal(t, tc.wantAll, tc.auth.GetSigners(tc.ctx))
			assert.True(t, x.HasAllSigners(tc.ctx, tc.auth, tc.wantAll))
		})
	}
}

func TestKeyFromBytes(t *testing.T) {
	want := dextest.SequenceKey(t, 7)
	got, err := x.KeyFromBytes(want[:])
	assert.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = x.KeyFromBytes([]byte("short"))
	assert.True(t, errors.ErrInput.Is(err))

	assert.True(t, errors.ErrEmpty.Is(x.ValidateKey("owner", solana.PublicKey{})))
	assert.NoError(t, x.ValidateKey("owner", want))
}
