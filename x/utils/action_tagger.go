package utils

import (
	"github.com/iov-one/escrowd"
)

// ActionKey is the tag key under which the message path is indexed.
const ActionKey = "action"

// ActionTagger tags every delivered transaction with the path of its
// message, so that clients can subscribe to, for example, all escrow
// releases.
type ActionTagger struct{}

var _ weave.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver fails before calling next if the message cannot be loaded.
func (ActionTagger) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.AddTag([]byte(ActionKey), []byte(msg.Path()))
	return res, nil
}
