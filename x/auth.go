package x

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

// Authenticator reports who authorized the current transaction. Handlers
// receive one in their constructor instead of reading x/sigs directly.
type Authenticator interface {
	// GetConditions returns all satisfied conditions, main signer first.
	GetConditions(weave.Context) []weave.Condition
	HasAddress(weave.Context, weave.Address) bool
}

// MultiAuth accepts whatever any of its authenticators accepts.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth(nil)

func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

// GetConditions concatenates the conditions in authenticator order.
func (m MultiAuth) GetConditions(ctx weave.Context) []weave.Condition {
	var all []weave.Condition
	for _, a := range m {
		all = append(all, a.GetConditions(ctx)...)
	}
	return all
}

func (m MultiAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns nil for an unsigned transaction.
func MainSigner(ctx weave.Context, auth Authenticator) weave.Condition {
	if conds := auth.GetConditions(ctx); len(conds) != 0 {
		return conds[0]
	}
	return nil
}

// RequireSigner returns the address of the main signer or ErrUnauthorized
// if the transaction was not signed.
func RequireSigner(ctx weave.Context, auth Authenticator) (weave.Address, error) {
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return signer.Address(), nil
}

// ActingAs resolves who performs an action that is reserved for role.
// When role signed the transaction role is returned, so that an additional
// signature does not shadow it. Otherwise the main signer is returned and the
// role check is left to the caller. The result is nil for an unsigned
// transaction.
func ActingAs(ctx weave.Context, auth Authenticator, role weave.Address) weave.Address {
	if len(role) != 0 && auth.HasAddress(ctx, role) {
		return role
	}
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil
	}
	return signer.Address()
}
