package dex

import (
	"fmt"
	"strings"
)

// Query modifiers, the part of the query path after "?"
const (
	// KeyQueryMod loads the single value stored under the key
	KeyQueryMod = ""
	// PrefixQueryMod loads every value whose key starts with the data
	PrefixQueryMod = "prefix"
)

// Model is one key value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair returns the model of key and value.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler serves the queries of one path.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds the handlers of one extension.
type QueryRegister func(QueryRouter)

// QueryRouter dispatches a query path such as "/offers" to its handler.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls every register with this router.
func (r QueryRouter) RegisterAll(registers ...QueryRegister) {
	for _, register := range registers {
		register(r)
	}
}

// Register binds h to path. It panics on a path without the leading slash
// or one that is already bound.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if !strings.HasPrefix(path, "/") {
		panic(fmt.Sprintf("query path %q must start with /", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the handler bound to path, or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
