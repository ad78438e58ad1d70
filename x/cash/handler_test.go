package cash

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
)

func TestSendHandler(t *testing.T) {
	owner := weavetest.NewCondition()
	stranger := weavetest.NewCondition()
	dest := weavetest.RandomAddr(t)

	cases := map[string]struct {
		Signer         weave.Condition
		Msg            weave.Msg
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error
		WantDest       coin.Amount
	}{
		"owner can send": {
			Signer: owner,
			Msg: &SendMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Source:      owner.Address(),
				Destination: dest,
				Amount:      40,
			},
			WantDest: 40,
		},
		"stranger cannot send": {
			Signer: stranger,
			Msg: &SendMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Source:      owner.Address(),
				Destination: dest,
				Amount:      40,
			},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"zero amount is rejected": {
			Signer: owner,
			Msg: &SendMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Source:      owner.Address(),
				Destination: dest,
			},
			WantCheckErr:   errors.ErrInvalidAmount,
			WantDeliverErr: errors.ErrInvalidAmount,
		},
		"check does not verify funds": {
			Signer: owner,
			Msg: &SendMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Source:      owner.Address(),
				Destination: dest,
				Amount:      1000,
			},
			WantDeliverErr: errors.ErrInsufficientAmount,
		},
		"wrong message type": {
			Signer:         owner,
			Msg:            &weavetest.Msg{RoutePath: pathSendMsg},
			WantCheckErr:   errors.ErrInvalidType,
			WantDeliverErr: errors.ErrInvalidType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())
			assert.Nil(t, ctrl.IssueCoins(db, owner.Address(), 100))

			rt := app.NewRouter()
			RegisterRoutes(rt, &weavetest.Auth{Signer: tc.Signer}, ctrl)

			tx := &weavetest.Tx{Msg: tc.Msg}
			ctx := context.Background()

			cache := db.CacheWrap()
			_, err := rt.Check(ctx, cache, tx)
			assert.IsErr(t, tc.WantCheckErr, err)
			cache.Discard()

			_, err = rt.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.WantDeliverErr, err)

			got, err := ctrl.Balance(db, dest)
			assert.Nil(t, err)
			assert.Equal(t, tc.WantDest, got)
		})
	}
}

func TestSendMsgValidate(t *testing.T) {
	cases := map[string]struct {
		Msg     *SendMsg
		WantErr *errors.Error
	}{
		"valid": {
			Msg: &SendMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Source:      weavetest.RandomAddr(t),
				Destination: weavetest.RandomAddr(t),
				Amount:      1,
				Memo:        "thanks",
			},
		},
		"missing metadata": {
			Msg: &SendMsg{
				Source:      weavetest.RandomAddr(t),
				Destination: weavetest.RandomAddr(t),
				Amount:      1,
			},
			WantErr: errors.ErrEmpty,
		},
		"missing source": {
			Msg: &SendMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Destination: weavetest.RandomAddr(t),
				Amount:      1,
			},
			WantErr: errors.ErrInvalidInput,
		},
		"memo too long": {
			Msg: &SendMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Source:      weavetest.RandomAddr(t),
				Destination: weavetest.RandomAddr(t),
				Amount:      1,
				Memo:        string(make([]byte, maxMemoSize+1)),
			},
			WantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.WantErr, tc.Msg.Validate())
		})
	}
}
