// Package latest coordinates period-scoped fetches so that only the most
// recent request for a key can publish its result. A fetch for
// (employee, month, year) that is superseded by a newer fetch for the same
// key has its context cancelled and its token invalidated, giving
// last-request-wins ordering instead of letting a stale response land after
// a fresh one.
package latest

import (
	"context"
	"sync"
)

type entry struct {
	gen    uint64
	cancel context.CancelFunc
}

type Group struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewGroup() *Group {
	return &Group{entries: make(map[string]*entry)}
}

// Token identifies one generation of fetch for a key.
type Token struct {
	group *Group
	key   string
	gen   uint64
}

// Begin registers a new fetch for key, cancelling any in-flight fetch for
// the same key. The returned context is cancelled when a newer Begin for the
// key occurs or when the parent is done.
func (g *Group) Begin(parent context.Context, key string) (context.Context, Token) {
	ctx, cancel := context.WithCancel(parent)

	g.mu.Lock()
	defer g.mu.Unlock()

	current := g.entries[key]
	if current != nil && current.cancel != nil {
		current.cancel()
	}
	var gen uint64 = 1
	if current != nil {
		gen = current.gen + 1
	}
	g.entries[key] = &entry{gen: gen, cancel: cancel}

	return ctx, Token{group: g, key: key, gen: gen}
}

// Valid reports whether the token still belongs to the newest fetch for its
// key; a false result means the caller must discard its response.
func (t Token) Valid() bool {
	if t.group == nil {
		return false
	}
	t.group.mu.Lock()
	defer t.group.mu.Unlock()
	current := t.group.entries[t.key]
	return current != nil && current.gen == t.gen
}

// Done releases bookkeeping for the key if the token is still the newest.
func (t Token) Done() {
	if t.group == nil {
		return
	}
	t.group.mu.Lock()
	defer t.group.mu.Unlock()
	current := t.group.entries[t.key]
	if current != nil && current.gen == t.gen {
		if current.cancel != nil {
			current.cancel()
		}
		delete(t.group.entries, t.key)
	}
}
