package weave

import (
	"encoding/json"

	"github.com/iov-one/escrowd/errors"
)

// Handler processes the messages of a single route, for example escrow
// creation or a factory deployment.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction without executing it. Changes made to the
// store are discarded.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps the handler stack with a concern shared by all routes,
// such as signature verification or savepoints. It must call next to
// continue processing.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds handlers to message paths.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the app_state section of the genesis file, keyed by extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the section stored under key into obj. A missing
// section is not an error and leaves obj unchanged.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
