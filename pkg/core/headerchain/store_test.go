package headerchain

import (
	"errors"
	"testing"

	"github.com/hashlink/hlkd/pkg/core/types"
)

// newTestStore opens an in-memory badger store.
func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := NewBadgerStore("")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreHeaderRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	store := newTestStore(t)

	g := e.Genesis()
	b1 := e.ChildOf(g)
	digest := e.HeaderDigest(b1)

	if err := store.SaveHeader(digest, b1); err != nil {
		t.Fatalf("SaveHeader failed: %v", err)
	}

	byDigest, err := store.HeaderByDigest(digest)
	if err != nil {
		t.Fatalf("HeaderByDigest failed: %v", err)
	}
	if byDigest != b1 {
		t.Errorf("HeaderByDigest = %+v, want %+v", byDigest, b1)
	}

	byHeight, err := store.HeaderByHeight(1)
	if err != nil {
		t.Fatalf("HeaderByHeight failed: %v", err)
	}
	if byHeight != b1 {
		t.Errorf("HeaderByHeight = %+v, want %+v", byHeight, b1)
	}
}

func TestStoreMissingHeader(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.HeaderByDigest(types.Digest{0x01}); !errors.Is(err, ErrHeaderNotFoundInStore) {
		t.Errorf("HeaderByDigest error = %v, want ErrHeaderNotFoundInStore", err)
	}
	if _, err := store.HeaderByHeight(3); !errors.Is(err, ErrHeaderNotFoundInStore) {
		t.Errorf("HeaderByHeight error = %v, want ErrHeaderNotFoundInStore", err)
	}
	if _, err := store.Head(); !errors.Is(err, ErrHeaderNotFoundInStore) {
		t.Errorf("Head error = %v, want ErrHeaderNotFoundInStore", err)
	}
}

func TestStoreHead(t *testing.T) {
	e := newTestEngine(t)
	store := newTestStore(t)

	digest := e.HeaderDigest(e.Genesis())
	if err := store.SaveHead(digest); err != nil {
		t.Fatalf("SaveHead failed: %v", err)
	}
	head, err := store.Head()
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	if head != digest {
		t.Errorf("Head = %s, want %s", head, digest)
	}
}

func TestPersistAndLoadChain(t *testing.T) {
	e := newTestEngine(t)
	store := newTestStore(t)

	chain := NewChain(e)
	if _, err := chain.InitGenesis(); err != nil {
		t.Fatalf("InitGenesis failed: %v", err)
	}
	if _, err := chain.Extend(4); err != nil {
		t.Fatalf("Extend failed: %v", err)
	}
	if err := PersistHeaders(e, store, chain.Headers()); err != nil {
		t.Fatalf("PersistHeaders failed: %v", err)
	}

	loaded, err := LoadChain(e, store)
	if err != nil {
		t.Fatalf("LoadChain failed: %v", err)
	}
	if loaded.Height() != 4 {
		t.Errorf("loaded chain height = %d, want 4", loaded.Height())
	}
	if loaded.Len() != 5 {
		t.Errorf("loaded chain length = %d, want 5", loaded.Len())
	}
	if !loaded.VerifyAll() {
		t.Error("loaded chain should verify end-to-end")
	}

	want := chain.Headers()
	got := loaded.Headers()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("header %d: loaded %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadChainFromEmptyStore(t *testing.T) {
	e := newTestEngine(t)
	store := newTestStore(t)

	chain, err := LoadChain(e, store)
	if err != nil {
		t.Fatalf("LoadChain on empty store failed: %v", err)
	}
	if chain.Len() != 0 {
		t.Errorf("chain length = %d, want 0", chain.Len())
	}
}

func TestLoadChainRejectsTamperedStore(t *testing.T) {
	e := newTestEngine(t)
	store := newTestStore(t)

	g := e.Genesis()
	if err := PersistHeaders(e, store, []types.Header{g}); err != nil {
		t.Fatalf("persist genesis: %v", err)
	}

	// Hand-construct a header whose parent digest does not match genesis.
	bogus := types.Header{Parent: types.Digest{0xBE, 0xEF}, Height: 1}
	if err := store.SaveHeader(e.HeaderDigest(bogus), bogus); err != nil {
		t.Fatalf("save bogus header: %v", err)
	}
	if err := store.SaveHead(e.HeaderDigest(bogus)); err != nil {
		t.Fatalf("save head: %v", err)
	}

	if _, err := LoadChain(e, store); !errors.Is(err, ErrParentMismatch) {
		t.Errorf("LoadChain error = %v, want ErrParentMismatch", err)
	}
}

func TestLoadChainRejectsNonGenesisRoot(t *testing.T) {
	e := newTestEngine(t)
	store := newTestStore(t)

	// A height-0 header with a non-sentinel parent is not genesis.
	bogus := types.Header{Parent: types.Digest{0x01}, Height: 0}
	if err := store.SaveHeader(e.HeaderDigest(bogus), bogus); err != nil {
		t.Fatalf("save bogus header: %v", err)
	}
	if err := store.SaveHead(e.HeaderDigest(bogus)); err != nil {
		t.Fatalf("save head: %v", err)
	}

	if _, err := LoadChain(e, store); err == nil {
		t.Error("LoadChain should reject a store whose root is not genesis")
	}
}
