package weavetest

import (
	"bytes"
	"testing"

	"github.com/iov-one/escrowd/errors"
)

func TestSequenceID(t *testing.T) {
	numToEnc := map[uint64][]byte{
		1:      []byte{0, 0, 0, 0, 0, 0, 0, 1},
		2:      []byte{0, 0, 0, 0, 0, 0, 0, 2},
		123:    []byte{0, 0, 0, 0, 0, 0, 0, 123},
		123123: []byte{0, 0, 0, 0, 0, 1, 224, 243},
	}
	for id, want := range numToEnc {
		got := SequenceID(id)
		if !bytes.Equal(want, got) {
			t.Fatalf("id=%d, want %d got %d", id, want, got)
		}
	}
}

func TestMsgValidate(t *testing.T) {
	m := Msg{RoutePath: "test/msg"}
	if err := m.Validate(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	m.ValidErr = errors.ErrInvalidInput
	if err := m.Validate(); !errors.ErrInvalidInput.Is(err) {
		t.Fatalf("unexpected error: %s", err)
	}

	tx := Tx{Msg: &m}
	msg, err := tx.GetMsg()
	if err != nil {
		t.Fatalf("cannot get message: %s", err)
	}
	if got := msg.Path(); got != "test/msg" {
		t.Fatalf("unexpected path: %q", got)
	}
}
