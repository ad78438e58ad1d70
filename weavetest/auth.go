package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/escrowd"
)

// Auth is a static x.Authenticator mock.
//
// Signer, when set, is the main signer and always comes first. Signers are
// returned after it in the declared order.
type Auth struct {
	Signer  weave.Condition
	Signers []weave.Condition
}

func (a *Auth) GetConditions(weave.Context) []weave.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	conds := make([]weave.Condition, 0, len(a.Signers)+1)
	conds = append(conds, a.Signer)
	return append(conds, a.Signers...)
}

func (a *Auth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth is an x.Authenticator mock that reads the conditions stored in the
// context under Key. Use SetConditions to declare who signed.
type CtxAuth struct {
	Key string
}

// SetConditions returns a context in which given conditions are
// authenticated. The first one is the main signer.
func (a *CtxAuth) SetConditions(ctx weave.Context, conds ...weave.Condition) weave.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx weave.Context) []weave.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]weave.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []weave.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []weave.Condition, addr weave.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
