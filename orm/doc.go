// Package orm maps typed models onto the key value store.
//
// The key space is split into buckets, each holding one model type under
// its own prefix. A bucket can keep secondary indexes and counters, and
// can expose both to ABCI queries. Escrows, factories and deployment
// records each live in their own bucket.
package orm
