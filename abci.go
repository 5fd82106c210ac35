package dex

import (
	"github.com/iov-one/dex/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// DeliverOrError builds the DeliverTx response. A non nil err wins over
// the result.
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return result.ToABCI()
}

// CheckOrError builds the CheckTx response. A non nil err wins over the
// result.
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return result.ToABCI()
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    d.Tags,
		GasUsed: d.GasUsed,
	}
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverTxError maps err to its registered code. Unregistered errors are
// reported as internal unless debug is set.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := failure("cannot deliver tx: ", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// CheckTxError is the CheckTx version of DeliverTxError.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := failure("cannot check tx: ", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

func failure(prefix string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, prefix + log
}
