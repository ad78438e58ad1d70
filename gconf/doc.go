// Package gconf keeps the configuration of an extension in the database.
//
// Each package has a single configuration record stored under
// "_c:<package>". It is created from the "conf" section of the genesis
// file and later changed only by its owner through an update message. An
// extension that cannot load its configuration returns the error instead
// of falling back to defaults.
package gconf
