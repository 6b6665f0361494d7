package headerchain

import (
	"errors"
	"sync"

	"github.com/hashlink/hlkd/pkg/core/types"
)

var (
	ErrChainAlreadyInitialized = errors.New("chain is already initialized with genesis")
	ErrChainNotInitialized     = errors.New("chain not initialized: no genesis header")
	ErrHeaderNotFound          = errors.New("header not found")
)

// Chain owns an ordered sequence of headers extending from genesis. Headers
// are held by value and never shared between chains. The core operations are
// pure; the Chain adds the lock discipline an owning collection needs when
// multiple goroutines read and append.
type Chain struct {
	mu       sync.RWMutex
	headers  []types.Header
	byDigest map[types.Digest]uint64
	engine   *Engine
}

// NewChain creates a new empty chain driven by the given engine.
func NewChain(engine *Engine) *Chain {
	return &Chain{
		byDigest: make(map[types.Digest]uint64),
		engine:   engine,
	}
}

// Engine returns the engine driving this chain.
func (c *Chain) Engine() *Engine {
	return c.engine
}

// InitGenesis derives and adds the genesis header to the chain.
func (c *Chain) InitGenesis() (types.Header, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.headers) > 0 {
		return types.Header{}, ErrChainAlreadyInitialized
	}

	genesis := c.engine.Genesis()
	c.appendLocked(genesis)
	return genesis, nil
}

// Append validates header as the next link after the current tip and adds it.
func (c *Chain) Append(header types.Header) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.headers) == 0 {
		return ErrChainNotInitialized
	}

	tip := c.headers[len(c.headers)-1]
	if err := c.engine.checkLink(tip, header); err != nil {
		return err
	}

	c.appendLocked(header)
	return nil
}

// Extend derives and appends n children of the current tip, returning the
// headers it added.
func (c *Chain) Extend(n int) ([]types.Header, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.headers) == 0 {
		return nil, ErrChainNotInitialized
	}
	if n <= 0 {
		return nil, nil
	}

	added := make([]types.Header, 0, n)
	for i := 0; i < n; i++ {
		child := c.engine.ChildOf(c.headers[len(c.headers)-1])
		c.appendLocked(child)
		added = append(added, child)
	}
	return added, nil
}

// appendLocked adds a header assuming c.mu is held and the link is valid.
func (c *Chain) appendLocked(header types.Header) {
	c.headers = append(c.headers, header)
	c.byDigest[c.engine.HeaderDigest(header)] = header.Height
}

// Tip returns the current tip header. ok is false for an empty chain.
func (c *Chain) Tip() (tip types.Header, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.headers) == 0 {
		return types.Header{}, false
	}
	return c.headers[len(c.headers)-1], true
}

// Height returns the height of the current tip. Returns 0 for empty chains.
func (c *Chain) Height() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.headers) == 0 {
		return 0
	}
	return c.headers[len(c.headers)-1].Height
}

// Len returns the number of headers in the chain, genesis included.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.headers)
}

// HeaderByHeight returns the header at the given height.
func (c *Chain) HeaderByHeight(height uint64) (types.Header, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if height >= uint64(len(c.headers)) {
		return types.Header{}, ErrHeaderNotFound
	}
	return c.headers[height], nil
}

// HeaderByDigest returns the header whose digest is d.
func (c *Chain) HeaderByDigest(d types.Digest) (types.Header, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	height, ok := c.byDigest[d]
	if !ok {
		return types.Header{}, ErrHeaderNotFound
	}
	return c.headers[height], nil
}

// Headers returns a copy of the full header sequence, genesis first.
func (c *Chain) Headers() []types.Header {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]types.Header, len(c.headers))
	copy(out, c.headers)
	return out
}

// VerifyAll replays the whole owned sequence through Verify from genesis.
// An empty chain and a lone genesis are both valid.
func (c *Chain) VerifyAll() bool {
	headers := c.Headers()
	if len(headers) == 0 {
		return true
	}
	return c.engine.Verify(headers[0], headers[1:])
}
