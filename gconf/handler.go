package gconf

import (
	"reflect"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x"
)

// OwnedConfig is a configuration that only its owner may change.
type OwnedConfig interface {
	Configuration
	GetOwner() weave.Address
}

// UpdateConfigurationHandler applies a patch to the configuration of a
// package. The message must carry the patch in a field named Patch, of the
// same type as the configuration. Zero fields of the patch keep the
// current value.
type UpdateConfigurationHandler struct {
	pkg       string
	confType  reflect.Type
	auth      x.Authenticator
	initAdmin func(weave.ReadOnlyKVStore) (weave.Address, error)
}

var _ weave.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a handler for the configuration of
// pkg, of the type of conf. Updates must be signed by the configuration
// owner.
//
// A configuration that was not created at genesis has no owner. If
// initAdmin is not nil, the address it returns may create it.
func NewUpdateConfigurationHandler(
	pkg string,
	conf OwnedConfig,
	auth x.Authenticator,
	initAdmin func(weave.ReadOnlyKVStore) (weave.Address, error),
) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:       pkg,
		confType:  reflect.TypeOf(conf).Elem(),
		auth:      auth,
		initAdmin: initAdmin,
	}
}

func (h UpdateConfigurationHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	if err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) update(ctx weave.Context, db weave.KVStore, tx weave.Tx) error {
	conf := reflect.New(h.confType).Interface().(OwnedConfig)
	if err := h.authorize(ctx, db, conf); err != nil {
		return err
	}
	p, err := patchOf(tx)
	if err != nil {
		return errors.Wrap(err, "patch")
	}
	if reflect.TypeOf(p) != reflect.TypeOf(conf) {
		return errors.Wrapf(errors.ErrInvalidMsg, "patch %T does not match configuration %T", p, conf)
	}
	applyPatch(reflect.ValueOf(conf).Elem(), reflect.ValueOf(p).Elem())
	return Save(db, h.pkg, conf)
}

// authorize loads the current configuration into conf and checks the
// signer may change it.
func (h UpdateConfigurationHandler) authorize(ctx weave.Context, db weave.KVStore, conf OwnedConfig) error {
	err := Load(db, h.pkg, conf)
	switch {
	case err == nil:
		owner := conf.GetOwner()
		if owner == nil || !h.auth.HasAddress(ctx, owner) {
			return errors.Wrap(errors.ErrUnauthorized, "configuration owner signature required")
		}
		return nil
	case !errors.ErrNotFound.Is(err):
		return errors.Wrap(err, "load configuration")
	case h.initAdmin == nil:
		return errors.Wrap(errors.ErrUnauthorized, "configuration does not exist")
	}
	admin, err := h.initAdmin(db)
	if err != nil {
		return errors.Wrap(err, "init admin")
	}
	if !h.auth.HasAddress(ctx, admin) {
		return errors.Wrap(errors.ErrUnauthorized, "init admin signature required")
	}
	return nil
}

// applyPatch copies every non zero field of patch into conf.
func applyPatch(conf, patch reflect.Value) {
	for i := 0; i < patch.NumField(); i++ {
		f := patch.Field(i)
		if reflect.DeepEqual(f.Interface(), reflect.Zero(f.Type()).Interface()) {
			continue
		}
		conf.Field(i).Set(f)
	}
}

// patchOf returns the Patch field of the validated message of tx.
func patchOf(tx weave.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "unsupported message %T", msg)
	}
	field := v.Elem().FieldByName("Patch")
	switch {
	case !field.IsValid():
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "%T has no Patch field", msg)
	case field.Kind() != reflect.Ptr:
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "%T Patch is not a pointer", msg)
	case field.IsNil():
		return nil, errors.Wrap(errors.ErrEmpty, "patch")
	}
	p, ok := field.Interface().(OwnedConfig)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "%s is not a configuration", field.Type())
	}
	return p, nil
}
