package escrow

import (
	"context"
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/app"
	"github.com/iov-one/escrowd/coin"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/weavetest"
	"github.com/iov-one/escrowd/weavetest/assert"
	"github.com/iov-one/escrowd/x/cash"
)

func TestHandlers(t *testing.T) {
	depositor := weavetest.NewCondition()
	beneficiary := weavetest.NewCondition()
	arbiter := weavetest.NewCondition()
	stranger := weavetest.NewCondition()

	db := store.MemStore()
	bank := cash.NewController(cash.NewBucket())
	assert.Nil(t, bank.IssueCoins(db, depositor.Address(), 500))
	auth := &weavetest.CtxAuth{Key: "auth"}

	rt := app.NewRouter()
	RegisterRoutes(rt, auth, bank)

	run := func(t *testing.T, signer weave.Condition, msg weave.Msg) (*weave.DeliverResult, error) {
		t.Helper()
		ctx := context.Background()
		if signer != nil {
			ctx = auth.SetConditions(ctx, signer)
		}
		tx := &weavetest.Tx{Msg: msg}

		cache := db.CacheWrap()
		_, checkErr := rt.Check(ctx, cache, tx)
		cache.Discard()

		res, err := rt.Deliver(ctx, db, tx)
		if err == nil {
			assert.Nil(t, checkErr)
		}
		return res, err
	}

	res, err := run(t, depositor, &CreateMsg{
		Metadata:    &weave.Metadata{Schema: 1},
		Beneficiary: beneficiary.Address(),
		Arbiter:     arbiter.Address(),
	})
	assert.Nil(t, err)
	escrowAddr := weave.Address(res.Data)
	assert.Nil(t, escrowAddr.Validate())
	assert.Equal(t, []byte(TagKey), res.Tags[0].Key)
	assert.Equal(t, []byte(escrowAddr.String()), res.Tags[0].Value)

	ctrl := NewController(NewBucket(), bank)
	status := func() (coin.Amount, bool) {
		e, err := ctrl.Load(db, escrowAddr)
		assert.Nil(t, err)
		return e.Status()
	}

	_, err = run(t, nil, &CreateMsg{
		Metadata:    &weave.Metadata{Schema: 1},
		Beneficiary: beneficiary.Address(),
		Arbiter:     arbiter.Address(),
	})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	deposit := func(amount coin.Amount) *DepositMsg {
		return &DepositMsg{Metadata: &weave.Metadata{Schema: 1}, Escrow: escrowAddr, Amount: amount}
	}
	_, err = run(t, depositor, deposit(100))
	assert.Nil(t, err)
	_, err = run(t, depositor, deposit(50))
	assert.Nil(t, err)
	_, err = run(t, stranger, deposit(50))
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = run(t, depositor, deposit(0))
	assert.IsErr(t, errors.ErrInvalidAmount, err)

	deposited, released := status()
	assert.Equal(t, coin.Amount(150), deposited)
	assert.Equal(t, false, released)

	release := &ReleaseMsg{Metadata: &weave.Metadata{Schema: 1}, Escrow: escrowAddr}
	refund := &RefundMsg{Metadata: &weave.Metadata{Schema: 1}, Escrow: escrowAddr}

	_, err = run(t, depositor, release)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = run(t, beneficiary, refund)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = run(t, arbiter, release)
	assert.Nil(t, err)
	got, err := bank.Balance(db, beneficiary.Address())
	assert.Nil(t, err)
	assert.Equal(t, coin.Amount(150), got)

	deposited, released = status()
	assert.Equal(t, coin.Amount(150), deposited)
	assert.Equal(t, true, released)

	_, err = run(t, arbiter, release)
	assert.IsErr(t, ErrAlreadyReleased, err)
	_, err = run(t, arbiter, refund)
	assert.IsErr(t, ErrAlreadyReleased, err)

	_, err = run(t, arbiter, &ReleaseMsg{Metadata: &weave.Metadata{Schema: 1}, Escrow: weavetest.RandomAddr(t)})
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestCreateHandlerUsesDistinctAddresses(t *testing.T) {
	signer := weavetest.NewCondition()
	db := store.MemStore()
	rt := app.NewRouter()
	RegisterRoutes(rt, &weavetest.Auth{Signer: signer}, cash.NewController(cash.NewBucket()))

	msg := &CreateMsg{
		Metadata:    &weave.Metadata{Schema: 1},
		Beneficiary: weavetest.RandomAddr(t),
		Arbiter:     weavetest.RandomAddr(t),
	}
	tx := &weavetest.Tx{Msg: msg}
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		res, err := rt.Deliver(context.Background(), db, tx)
		assert.Nil(t, err)
		addr := weave.Address(res.Data).String()
		if seen[addr] {
			t.Fatalf("address %s used twice", addr)
		}
		seen[addr] = true
	}
}

func TestMsgValidate(t *testing.T) {
	addr := weavetest.RandomAddr(t)
	cases := map[string]struct {
		Msg     weave.Msg
		WantErr *errors.Error
	}{
		"valid create": {
			Msg: &CreateMsg{Metadata: &weave.Metadata{Schema: 1}, Beneficiary: addr, Arbiter: addr},
		},
		"create without arbiter": {
			Msg:     &CreateMsg{Metadata: &weave.Metadata{Schema: 1}, Beneficiary: addr},
			WantErr: errors.ErrInvalidInput,
		},
		"create without metadata": {
			Msg:     &CreateMsg{Beneficiary: addr, Arbiter: addr},
			WantErr: errors.ErrEmpty,
		},
		"zero deposit is checked by the controller": {
			Msg: &DepositMsg{Metadata: &weave.Metadata{Schema: 1}, Escrow: addr},
		},
		"deposit without escrow": {
			Msg:     &DepositMsg{Metadata: &weave.Metadata{Schema: 1}, Amount: 1},
			WantErr: errors.ErrInvalidInput,
		},
		"valid release": {
			Msg: &ReleaseMsg{Metadata: &weave.Metadata{Schema: 1}, Escrow: addr},
		},
		"refund with short address": {
			Msg:     &RefundMsg{Metadata: &weave.Metadata{Schema: 1}, Escrow: addr[:10]},
			WantErr: errors.ErrInvalidInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.WantErr, tc.Msg.Validate())
		})
	}
}

func TestCheckRequiresRole(t *testing.T) {
	depositor := weavetest.NewCondition()
	arbiter := weavetest.NewCondition()
	stranger := weavetest.NewCondition()

	db := store.MemStore()
	bank := cash.NewController(cash.NewBucket())
	e, err := NewController(NewBucket(), bank).Create(db, depositor.Address(), weavetest.RandomAddr(t), arbiter.Address(), InstanceAddress([]byte("check")))
	assert.Nil(t, err)

	cases := map[string]struct {
		Signer  weave.Condition
		Msg     weave.Msg
		WantErr *errors.Error
	}{
		"depositor can deposit": {
			Signer:  depositor,
			Msg:     &DepositMsg{Metadata: &weave.Metadata{Schema: 1}, Escrow: e.Address, Amount: 5},
			WantErr: nil,
		},
		"stranger cannot deposit": {
			Signer:  stranger,
			Msg:     &DepositMsg{Metadata: &weave.Metadata{Schema: 1}, Escrow: e.Address, Amount: 5},
			WantErr: errors.ErrUnauthorized,
		},
		"arbiter can release": {
			Signer:  arbiter,
			Msg:     &ReleaseMsg{Metadata: &weave.Metadata{Schema: 1}, Escrow: e.Address},
			WantErr: nil,
		},
		"depositor cannot release": {
			Signer:  depositor,
			Msg:     &ReleaseMsg{Metadata: &weave.Metadata{Schema: 1}, Escrow: e.Address},
			WantErr: errors.ErrUnauthorized,
		},
		"depositor cannot refund": {
			Signer:  depositor,
			Msg:     &RefundMsg{Metadata: &weave.Metadata{Schema: 1}, Escrow: e.Address},
			WantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			rt := app.NewRouter()
			RegisterRoutes(rt, &weavetest.Auth{Signer: tc.Signer}, bank)

			cache := db.CacheWrap()
			defer cache.Discard()
			_, err := rt.Check(context.Background(), cache, &weavetest.Tx{Msg: tc.Msg})
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
