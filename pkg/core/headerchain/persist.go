package headerchain

import (
	"errors"
	"fmt"

	"github.com/hashlink/hlkd/pkg/core/types"
)

// LoadChain rebuilds an in-memory Chain from a store by walking the height
// index from genesis to the recorded head. Every loaded link is re-validated
// on Append, so a tampered store surfaces as an error here rather than as a
// silently accepted chain. A store with no head yields an empty chain.
func LoadChain(engine *Engine, store HeaderStore) (*Chain, error) {
	chain := NewChain(engine)

	headDigest, err := store.Head()
	if err != nil {
		if errors.Is(err, ErrHeaderNotFoundInStore) {
			return chain, nil
		}
		return nil, err
	}

	head, err := store.HeaderByDigest(headDigest)
	if err != nil {
		return nil, fmt.Errorf("load head header: %w", err)
	}

	for height := uint64(0); height <= head.Height; height++ {
		header, err := store.HeaderByHeight(height)
		if err != nil {
			return nil, fmt.Errorf("load header at height %d: %w", height, err)
		}
		if height == 0 {
			if !header.IsGenesis() {
				return nil, fmt.Errorf("stored header at height 0 is not genesis")
			}
			if _, err := chain.InitGenesis(); err != nil {
				return nil, err
			}
			// The derived genesis and the stored one must agree.
			stored := engine.HeaderDigest(header)
			derived := engine.HeaderDigest(engine.Genesis())
			if stored != derived {
				return nil, fmt.Errorf("stored genesis does not match derived genesis")
			}
			continue
		}
		if err := chain.Append(header); err != nil {
			return nil, fmt.Errorf("append header at height %d: %w", height, err)
		}
	}

	return chain, nil
}

// PersistHeaders writes the given headers to the store and advances the
// recorded head to the last of them.
func PersistHeaders(engine *Engine, store HeaderStore, headers []types.Header) error {
	if len(headers) == 0 {
		return nil
	}
	for _, h := range headers {
		if err := store.SaveHeader(engine.HeaderDigest(h), h); err != nil {
			return err
		}
	}
	return store.SaveHead(engine.HeaderDigest(headers[len(headers)-1]))
}
