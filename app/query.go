package app

import (
	"strings"

	"github.com/iov-one/escrowd/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Query serves the registered query handlers from the last committed
// state.
//
// The path selects the handler, for example "/escrows" or
// "/escrows/arbiter", optionally followed by "?prefix" to match all keys
// starting with Data instead of the exact key. Height must be zero or the
// last committed height.
//
// Key and Value of the response are serialized ResultSets of equal
// length, holding zero or more matching models.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}

	handler := s.queryRouter.Handler(path)
	if handler == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "unexpected query path: %v", req.Path))
	}

	last, err := s.store.CommitInfo()
	if err != nil {
		return queryError(err)
	}
	if req.Height != 0 && req.Height != last.Version {
		return queryError(errors.Wrapf(errors.ErrInvalidInput, "height %d is not available", req.Height))
	}

	models, err := handler.Query(s.store.QueryStore(), mod, req.Data)
	if err != nil {
		return queryError(err)
	}
	keys, values := SplitModels(models)
	res := abci.ResponseQuery{Height: last.Version}
	if res.Key, err = keys.Marshal(); err != nil {
		return queryError(err)
	}
	if res.Value, err = values.Marshal(); err != nil {
		return queryError(err)
	}
	return res
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}
