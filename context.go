package weave

import (
	"context"
	"fmt"
	"regexp"

	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block information of the transaction that is
// processed. Use the helpers below to set and read it.
type Context = context.Context

type ctxKey int

const (
	heightKey ctxKey = iota
	chainIDKey
	loggerKey
)

// DefaultLogger is returned for a context without a logger.
var DefaultLogger = log.NewNopLogger()

var chainIDRx = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`)

// IsValidChainID returns true for identifiers of 6 to 20 characters made of
// letters, digits, dashes and underscores.
func IsValidChainID(id string) bool {
	return chainIDRx.MatchString(id)
}

// WithHeight panics if the height is already set. Salted deployments derive
// their addresses from it, so it must not change within a block.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("block height already set")
	}
	return context.WithValue(ctx, heightKey, height)
}

// GetHeight returns false if the height was never set.
func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

// WithChainID panics if the chain ID is already set or is not valid.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(chainIDKey) != nil {
		panic("chain ID already set")
	}
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain ID: %q", chainID))
	}
	return context.WithValue(ctx, chainIDKey, chainID)
}

// GetChainID panics if the chain ID was never set. Every transaction is
// processed with one, so a missing chain ID is a programming error.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey).(string)
	if !ok {
		panic("chain ID not set")
	}
	return id
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithLogInfo attaches keyvals to every message logged with the returned
// context.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
