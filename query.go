package weave

import "fmt"

// Query mods select how the query data is matched against stored keys.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single key value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers queries registered under a single path.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister registers all query handlers of an extension.
type QueryRegister func(QueryRouter)

// QueryRouter dispatches a query to the handler registered for its path.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

func (r QueryRouter) RegisterAll(registers ...QueryRegister) {
	for _, register := range registers {
		register(r)
	}
}

// Register panics if path is already taken.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q is already registered", path))
	}
	r.routes[path] = h
}

// Handler returns nil if nothing is registered under path.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
