/*
Package factory implements escrow factories. A factory deterministically
instantiates new escrows from a single code template and keeps the ordered,
append-only list of everything it deployed.

Every factory is an independent record with its own deployment sequence.
The template a factory can be created for must be listed in the "factory"
package configuration.
*/
package factory
