package factory

import (
	"encoding/binary"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

// EntropySource provides the salt that makes deployments unique.
type EntropySource interface {
	Entropy(ctx weave.Context) ([]byte, error)
}

// BlockHeight uses the current block height as entropy. Two deployments
// with the same arguments in a single block get the same salt.
type BlockHeight struct{}

var _ EntropySource = BlockHeight{}

// Entropy returns the block height as 8 bytes, little endian.
func (BlockHeight) Entropy(ctx weave.Context) ([]byte, error) {
	height, ok := weave.GetHeight(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "block height not in context")
	}
	salt := make([]byte, 8)
	binary.LittleEndian.PutUint64(salt, uint64(height))
	return salt, nil
}
