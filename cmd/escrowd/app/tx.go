package escrowd

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x/cash"
	"github.com/iov-one/escrowd/x/escrow"
	"github.com/iov-one/escrowd/x/factory"
	"github.com/iov-one/escrowd/x/sigs"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*weave.Msg)(nil), nil)
	cdc.RegisterConcrete(&cash.SendMsg{}, "cash/send", nil)
	cdc.RegisterConcrete(&sigs.BumpSequenceMsg{}, "sigs/bump_sequence", nil)
	cdc.RegisterConcrete(&escrow.CreateMsg{}, "escrow/create", nil)
	cdc.RegisterConcrete(&escrow.DepositMsg{}, "escrow/deposit", nil)
	cdc.RegisterConcrete(&escrow.ReleaseMsg{}, "escrow/release", nil)
	cdc.RegisterConcrete(&escrow.RefundMsg{}, "escrow/refund", nil)
	cdc.RegisterConcrete(&factory.CreateMsg{}, "factory/create", nil)
	cdc.RegisterConcrete(&factory.DeployMsg{}, "factory/deploy", nil)
	cdc.RegisterConcrete(&factory.UpdateConfigurationMsg{}, "factory/update_configuration", nil)
}

// Tx is the transaction format of the escrow node. It carries exactly one
// message together with the signatures authorizing it.
type Tx struct {
	Msg        weave.Msg            `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

// make sure tx fulfills all interfaces
var _ weave.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (weave.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(tx)
}

func (tx *Tx) Unmarshal(bz []byte) error {
	if err := cdc.UnmarshalBinaryBare(bz, tx); err != nil {
		return errors.Wrap(errors.ErrInvalidMsg, err.Error())
	}
	return nil
}

// GetMsg returns the single message of this transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "transaction message")
	}
	return tx.Msg, nil
}

// GetSignatures returns the signatures attached to this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	signatures := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = signatures
	return bz, err
}
