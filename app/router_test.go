package app

import (
	"context"
	"testing"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/weavetest"
	"github.com/iov-one/escrowd/weavetest/assert"
)

func TestRouterSuccess(t *testing.T) {
	var (
		ctx = context.Background()
		db  = store.MemStore()
		rt  = NewRouter()
		h   weavetest.Handler
	)
	rt.Handle("test/good", &h)

	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/good"}}
	if _, err := rt.Check(ctx, db, tx); err != nil {
		t.Fatalf("check failed: %s", err)
	}
	if _, err := rt.Deliver(ctx, db, tx); err != nil {
		t.Fatalf("deliver failed: %s", err)
	}
	assert.Equal(t, 1, h.CheckCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestRouterHandlerError(t *testing.T) {
	rt := NewRouter()
	h := weavetest.Handler{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrInvalidAmount,
	}
	rt.Handle("test/bad", &h)

	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/bad"}}
	_, err := rt.Check(context.Background(), store.MemStore(), tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = rt.Deliver(context.Background(), store.MemStore(), tx)
	assert.IsErr(t, errors.ErrInvalidAmount, err)
}

func TestRouterNoHandler(t *testing.T) {
	rt := NewRouter()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/missing"}}

	_, err := rt.Check(context.Background(), store.MemStore(), tx)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = rt.Deliver(context.Background(), store.MemStore(), tx)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRouterMessageLoadError(t *testing.T) {
	rt := NewRouter()
	tx := &weavetest.Tx{Err: errors.ErrInvalidMsg}

	_, err := rt.Deliver(context.Background(), store.MemStore(), tx)
	assert.IsErr(t, errors.ErrInvalidMsg, err)
}

func TestRouterRegistration(t *testing.T) {
	rt := NewRouter()
	var h weavetest.Handler
	rt.Handle("escrow/create", &h)

	assert.Panics(t, func() { rt.Handle("escrow/create", &h) })
	assert.Panics(t, func() { rt.Handle("l:7", &h) })
	assert.Panics(t, func() { rt.Handle("", &h) })
}
