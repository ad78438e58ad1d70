package gconf

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

// ReadStore is the part of weave.ReadOnlyKVStore Load needs.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of weave.KVStore Save needs.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration is the model of a package configuration.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

// Key returns the database key of the configuration of pkg.
func Key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save writes the configuration of pkg. Invalid configurations are
// rejected.
func Save(db Store, pkg string, conf ValidMarshaler) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "configuration %s", pkg)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal configuration %s", pkg)
	}
	return db.Set(Key(pkg), raw)
}

// Load reads the configuration of pkg into dst. It fails with ErrNotFound
// if none was saved.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	raw, err := db.Get(Key(pkg))
	switch {
	case err != nil:
		return err
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "configuration %s", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal configuration %s", pkg)
	}
	return nil
}

// InitConfig saves the genesis configuration of pkg, found under
// "conf"."<pkg>". A missing section is an error.
func InitConfig(db Store, opts weave.Options, pkg string, conf Configuration) error {
	var all weave.Options
	if err := opts.ReadOptions("conf", &all); err != nil {
		return errors.Wrap(err, "conf")
	}
	if _, ok := all[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no genesis configuration for %s", pkg)
	}
	if err := all.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "conf %s", pkg)
	}
	return Save(db, pkg, conf)
}
