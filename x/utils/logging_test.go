package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/weavetest"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewTMLogger(log.NewSyncWriter(&buf))
	ctx := weave.WithLogger(context.Background(), logger)
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/deposit"}}

	l := NewLogging()
	if _, err := l.Deliver(ctx, db, tx, &weavetest.Handler{}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(buf.String(), "escrow/deposit") {
		t.Fatalf("path not logged: %q", buf.String())
	}

	buf.Reset()
	h := &weavetest.Handler{DeliverErr: errors.ErrUnauthorized}
	if _, err := l.Deliver(ctx, db, tx, h); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(buf.String(), "unauthorized") {
		t.Fatalf("error not logged: %q", buf.String())
	}
}
