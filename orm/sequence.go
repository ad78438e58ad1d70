package orm

import (
	"encoding/binary"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

// Sequence is a persistent counter stored under "_s.<bucket>:<name>".
// Values start at one. Their 8 byte encoding sorts like the numbers, so
// they make good primary keys.
type Sequence struct {
	key []byte
}

func NewSequence(bucket, name string) Sequence {
	return Sequence{key: []byte("_s." + bucket + ":" + name)}
}

// NextVal increments the counter and returns its encoded value.
func (s Sequence) NextVal(db weave.KVStore) ([]byte, error) {
	n, err := s.NextInt(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(n), nil
}

// NextInt increments the counter and returns its value.
func (s Sequence) NextInt(db weave.KVStore) (int64, error) {
	n, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	n++
	if err := db.Set(s.key, EncodeSequence(n)); err != nil {
		return 0, errors.Wrap(err, "save sequence")
	}
	return n, nil
}

// Latest returns the last value handed out, zero if none was.
func (s Sequence) Latest(db weave.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.key)
	if err != nil {
		return 0, err
	}
	return DecodeSequence(raw)
}

// EncodeSequence returns the 8 byte big endian form of n.
func EncodeSequence(n int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(n))
	return raw
}

// DecodeSequence reads a nil value as zero.
func DecodeSequence(raw []byte) (int64, error) {
	switch len(raw) {
	case 0:
		return 0, nil
	case 8:
		return int64(binary.BigEndian.Uint64(raw)), nil
	default:
		return 0, errors.Wrapf(errors.ErrInvalidInput, "sequence must be 8 bytes, got %d", len(raw))
	}
}
