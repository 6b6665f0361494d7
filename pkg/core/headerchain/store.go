package headerchain

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/hashlink/hlkd/pkg/core/types"
)

var ErrHeaderNotFoundInStore = errors.New("header not found in store")

// HeaderStore is the persistence collaborator for a header chain. The store
// handles its own concurrency; append-only, single-writer use is the caller's
// discipline.
type HeaderStore interface {
	SaveHeader(digest types.Digest, header types.Header) error
	HeaderByDigest(digest types.Digest) (types.Header, error)
	HeaderByHeight(height uint64) (types.Header, error)
	SaveHead(digest types.Digest) error
	Head() (types.Digest, error)
	Close() error
}

// BadgerStore implements HeaderStore using BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

var _ HeaderStore = (*BadgerStore)(nil)

// NewBadgerStore creates or opens a BadgerDB store at the given path.
// If path is empty, it opens an in-memory store (for testing).
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	// Reduce logging noise; the caller logs store activity.
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Keys:
// Header by digest: "header:digest:<hex>" -> deterministic header encoding
// Height index:     "header:height:<n>"   -> digest
// Head:             "chain:head"          -> digest

func digestKey(d types.Digest) []byte {
	return []byte(fmt.Sprintf("header:digest:%x", d))
}

func heightKey(height uint64) []byte {
	return []byte(fmt.Sprintf("header:height:%d", height))
}

var headKey = []byte("chain:head")

// SaveHeader persists a header under its digest and indexes it by height.
// The digest is supplied by the caller because the store does not hold the
// hashing capability.
func (s *BadgerStore) SaveHeader(digest types.Digest, header types.Header) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(digestKey(digest), header.Encode()); err != nil {
			return err
		}
		return txn.Set(heightKey(header.Height), digest.Bytes())
	})
}

// HeaderByDigest loads the header stored under the given digest.
func (s *BadgerStore) HeaderByDigest(digest types.Digest) (types.Header, error) {
	var header types.Header
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(digestKey(digest))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrHeaderNotFoundInStore
			}
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := types.DecodeHeader(val)
			if err != nil {
				return err
			}
			header = decoded
			return nil
		})
	})
	if err != nil {
		return types.Header{}, err
	}
	return header, nil
}

// HeaderByHeight resolves the height index, then loads the header by digest.
func (s *BadgerStore) HeaderByHeight(height uint64) (types.Header, error) {
	var digest types.Digest
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(heightKey(height))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrHeaderNotFoundInStore
			}
			return err
		}
		return item.Value(func(val []byte) error {
			copy(digest[:], val)
			return nil
		})
	})
	if err != nil {
		return types.Header{}, err
	}

	return s.HeaderByDigest(digest)
}

// SaveHead records the digest of the chain tip.
func (s *BadgerStore) SaveHead(digest types.Digest) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(headKey, digest.Bytes())
	})
}

// Head returns the digest of the chain tip, or ErrHeaderNotFoundInStore if
// the store has never been initialized.
func (s *BadgerStore) Head() (types.Digest, error) {
	var digest types.Digest
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(headKey)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrHeaderNotFoundInStore
			}
			return err
		}
		return item.Value(func(val []byte) error {
			copy(digest[:], val)
			return nil
		})
	})
	return digest, err
}
