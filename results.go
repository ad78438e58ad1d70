package weave

import (
	"github.com/iov-one/escrowd/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// CheckResult is the outcome of a successful check.
type CheckResult struct {
	// Data is returned to the client as is.
	Data []byte
	Log  string
	// GasAllocated is how much work the transaction may perform.
	GasAllocated int64
	// GasPayment is how much work the transaction paid for, for example
	// by verifying signatures.
	GasPayment int64
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverResult is the outcome of a successfully delivered transaction.
// Failures are always reported as errors.
type DeliverResult struct {
	// Data is a machine readable result, for example the address of a
	// created escrow.
	Data []byte
	Log  string
	// Tags are indexed by tendermint and let clients search for
	// transactions that touched a given escrow or factory.
	Tags    []common.KVPair
	GasUsed int64
}

// AddTag appends a new index tag.
func (d *DeliverResult) AddTag(key, value []byte) {
	d.Tags = append(d.Tags, common.KVPair{Key: key, Value: value})
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    d.Tags,
		GasUsed: d.GasUsed,
	}
}

// CheckOrError builds the ABCI response for a check. Error details are
// hidden unless debug is set.
func CheckOrError(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return res.ToABCI()
}

// DeliverOrError builds the ABCI response for a delivery. Error details are
// hidden unless debug is set.
func DeliverOrError(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return res.ToABCI()
}

func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = "cannot check tx: " + log
	}
	return abci.ResponseCheckTx{Code: code, Log: log}
}

func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = "cannot deliver tx: " + log
	}
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// ParseDeliverOrError reverses DeliverOrError. A failed delivery is returned
// as an error that matches the registered error of its code.
func ParseDeliverOrError(res abci.ResponseDeliverTx) (*DeliverResult, error) {
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return &DeliverResult{
		Data:    res.Data,
		Log:     res.Log,
		Tags:    res.Tags,
		GasUsed: res.GasUsed,
	}, nil
}
