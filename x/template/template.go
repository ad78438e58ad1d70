/*
Package template is the code-template registry. A template is identified by
the content hash of its descriptor and instantiates new contract instances,
such as escrows, on behalf of another extension.
*/
package template

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/coin"
	"github.com/iov-one/escrowd/errors"
)

// HashLength is the size of a template content hash.
const HashLength = sha256.Size

// Hash is the content hash identifying a template.
type Hash []byte

// NewHash returns the content hash of the given template descriptor.
func NewHash(descriptor string) Hash {
	h := sha256.Sum256([]byte(descriptor))
	return h[:]
}

// Equals returns true if both hashes are the same.
func (h Hash) Equals(o Hash) bool {
	return bytes.Equal(h, o)
}

// Validate returns an error if the hash is not of the sha256 size.
func (h Hash) Validate() error {
	if len(h) != HashLength {
		return errors.Wrapf(errors.ErrInvalidInput, "template hash must be %d bytes, got %d", HashLength, len(h))
	}
	return nil
}

func (h Hash) String() string {
	return strings.ToUpper(hex.EncodeToString(h))
}

// MarshalJSON encodes the hash as a hex string.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex encoded hash.
func (h *Hash) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "template hash must be a string")
	}
	val, err := hex.DecodeString(s)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "cannot decode hex")
	}
	*h = val
	return h.Validate()
}

// Request describes a single instantiation.
type Request struct {
	// Creator is the caller that asked for the new instance.
	Creator weave.Address
	// Funder is the account the endowment is taken from.
	Funder weave.Address
	// Seed is the salt the instance identity is derived from.
	Seed []byte
	// Endowment is the initial balance of the new instance.
	Endowment coin.Amount

	// Beneficiary and Arbiter are the escrow template arguments.
	Beneficiary weave.Address
	Arbiter     weave.Address
}

// Validate checks the fields common to all templates.
func (r Request) Validate() error {
	if err := r.Creator.Validate(); err != nil {
		return errors.Field("Creator", err, "invalid address")
	}
	if err := r.Funder.Validate(); err != nil {
		return errors.Field("Funder", err, "invalid address")
	}
	if len(r.Seed) == 0 {
		return errors.Field("Seed", errors.ErrEmpty, "required")
	}
	return nil
}

// Instantiator brings up a new instance and returns its identity.
type Instantiator interface {
	Instantiate(ctx weave.Context, db weave.KVStore, req Request) (weave.Address, error)
}

// InstantiatorFunc is an adapter to use ordinary functions as Instantiator.
type InstantiatorFunc func(weave.Context, weave.KVStore, Request) (weave.Address, error)

// Instantiate calls f(ctx, db, req).
func (f InstantiatorFunc) Instantiate(ctx weave.Context, db weave.KVStore, req Request) (weave.Address, error) {
	return f(ctx, db, req)
}

// Registry maps template hashes to their instantiators. Templates are
// registered once when the application is built and never change later.
type Registry struct {
	templates map[string]Instantiator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]Instantiator)}
}

// Register adds the template with given descriptor and returns its hash.
// Registering the same descriptor twice is a programming error and panics.
func (r *Registry) Register(descriptor string, inst Instantiator) Hash {
	h := NewHash(descriptor)
	if _, ok := r.templates[string(h)]; ok {
		panic(fmt.Sprintf("template %q already registered", descriptor))
	}
	r.templates[string(h)] = inst
	return h
}

// Has returns true if a template with given hash is registered.
func (r *Registry) Has(h Hash) bool {
	_, ok := r.templates[string(h)]
	return ok
}

// Hashes returns the hashes of all registered templates in a stable order.
func (r *Registry) Hashes() []Hash {
	hashes := make([]Hash, 0, len(r.templates))
	for k := range r.templates {
		hashes = append(hashes, Hash(k))
	}
	sort.Slice(hashes, func(i, j int) bool {
		return bytes.Compare(hashes[i], hashes[j]) < 0
	})
	return hashes
}

// Instantiate creates a new instance using the template with given hash.
func (r *Registry) Instantiate(ctx weave.Context, db weave.KVStore, h Hash, req Request) (weave.Address, error) {
	inst, ok := r.templates[string(h)]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "template %s", h)
	}
	if err := req.Validate(); err != nil {
		return nil, errors.Wrap(err, "request")
	}
	return inst.Instantiate(ctx, db, req)
}
