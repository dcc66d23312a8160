package latest

import (
	"context"
	"testing"
)

func TestNewerBeginSupersedesOlder(t *testing.T) {
	g := NewGroup()

	ctx1, tok1 := begin(t, g, "k")
	if !tok1.Valid() {
		t.Fatal("first token must start valid")
	}

	_, tok2 := begin(t, g, "k")

	if tok1.Valid() {
		t.Fatal("superseded token must be invalid")
	}
	select {
	case <-ctx1.Done():
	default:
		t.Fatal("superseded context must be cancelled")
	}
	if !tok2.Valid() {
		t.Fatal("newest token must be valid")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	g := NewGroup()

	_, tokA := begin(t, g, "a")
	_, tokB := begin(t, g, "b")

	if !tokA.Valid() || !tokB.Valid() {
		t.Fatal("fetches for different keys must not supersede each other")
	}
}

func TestDoneReleasesKey(t *testing.T) {
	g := NewGroup()

	_, tok := begin(t, g, "k")
	tok.Done()
	if tok.Valid() {
		t.Fatal("token must be invalid after Done")
	}

	// A fresh Begin after Done starts a new generation cleanly.
	_, tok2 := begin(t, g, "k")
	if !tok2.Valid() {
		t.Fatal("new fetch after Done must be valid")
	}
}

func TestDoneFromOldTokenKeepsNewest(t *testing.T) {
	g := NewGroup()

	_, tok1 := begin(t, g, "k")
	_, tok2 := begin(t, g, "k")

	tok1.Done()
	if !tok2.Valid() {
		t.Fatal("Done on a stale token must not release the newest fetch")
	}
}

func TestParentCancelPropagates(t *testing.T) {
	g := NewGroup()

	parent, cancel := context.WithCancel(context.Background())
	ctx, _ := g.Begin(parent, "k")
	cancel()

	select {
	case <-ctx.Done():
	default:
		t.Fatal("child context must follow parent cancellation")
	}
}

func begin(t *testing.T, g *Group, key string) (context.Context, Token) {
	t.Helper()
	return g.Begin(context.Background(), key)
}
