package dex_test

import (
	"testing"

	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
	"github.com/stretchr/testify/assert"
)

func TestDeliverOrError(t *testing.T) {
	res := dex.DeliverOrError(&dex.DeliverResult{Data: []byte("key"), Log: "ok"}, nil, false)
	assert.Equal(t, errors.SuccessABCICode, res.Code)
	assert.Equal(t, []byte("key"), res.Data)

	res = dex.DeliverOrError(nil, errors.Wrap(errors.ErrInsufficientAmount, "vault"), false)
	assert.Equal(t, errors.ErrInsufficientAmount.ABCICode(), res.Code)
	assert.Contains(t, res.Log, "cannot deliver tx")
}

func TestCheckOrError(t *testing.T) {
	res := dex.CheckOrError(&dex.CheckResult{GasAllocated: 300}, nil, false)
	assert.Equal(t, errors.SuccessABCICode, res.Code)
	assert.Equal(t, int64(300), res.GasWanted)

	res = dex.CheckOrError(nil, errors.ErrUnauthorized, false)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)
	assert.Contains(t, res.Log, "cannot check tx")
}
