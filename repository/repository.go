// Package repository caches function descriptions per system.
//
// Looking up a function module's parameters is a round trip to the
// backend, so descriptions are kept in an LRU keyed by system id and
// function name. Cached functions are sealed on first use and shared by
// every connection to the same system.
package repository

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/wippyai/nwrfc/errors"
	"github.com/wippyai/nwrfc/rfc"
)

// DefaultSize is the capacity used when New is given a non-positive size
const DefaultSize = 256

// Describer fetches a function description from a backend
type Describer interface {
	DescribeFunction(ctx context.Context, name string) (*rfc.Function, error)
}

type key struct {
	system string
	name   string
}

// Repository is a size bounded function description cache, safe for
// concurrent use.
type Repository struct {
	cache *lru.Cache[key, *rfc.Function]
}

// New creates a repository holding at most size descriptions
func New(size int) *Repository {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New[key, *rfc.Function](size)
	if err != nil {
		panic(err)
	}
	return &Repository{cache: c}
}

func keyOf(system, name string) key {
	return key{
		system: strings.ToUpper(strings.TrimSpace(system)),
		name:   strings.ToUpper(strings.TrimSpace(name)),
	}
}

// Lookup returns the cached description of name on system, asking d on a miss.
// Failed lookups are not cached.
func (r *Repository) Lookup(ctx context.Context, d Describer, system, name string) (*rfc.Function, error) {
	k := keyOf(system, name)
	if k.name == "" {
		return nil, errors.InvalidInput(errors.PhaseSchema, "function name is required")
	}
	if fn, ok := r.cache.Get(k); ok {
		return fn, nil
	}

	fn, err := d.DescribeFunction(ctx, k.name)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseSchema, "function", k.name)
	}
	// another goroutine may have won the race; keep the first copy
	if prev, ok, _ := r.cache.PeekOrAdd(k, fn); ok {
		return prev, nil
	}
	return fn, nil
}

// Add stores fn for system, replacing any cached description
func (r *Repository) Add(system string, fn *rfc.Function) {
	r.cache.Add(keyOf(system, fn.Name()), fn)
}

// Remove drops the description of name on system
func (r *Repository) Remove(system, name string) bool {
	return r.cache.Remove(keyOf(system, name))
}

// Purge empties the cache
func (r *Repository) Purge() {
	r.cache.Purge()
}

// Len returns the number of cached descriptions
func (r *Repository) Len() int {
	return r.cache.Len()
}
