/*
Package utils holds the decorators that every transaction of the escrow node
passes through: panic recovery, logging, the savepoint that makes a
transaction all-or-nothing and the action tagger.
*/
package utils
