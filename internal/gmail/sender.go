package gmail

import "sync"

// Identity is the cached sender identity used to compose outbound mail.
type Identity struct {
	Name      string
	Address   string
	Signature string // raw HTML as configured upstream
}

// SenderCache memoizes the sender identity for the life of the process. It
// is constructed once at startup and passed into every send and draft
// operation. A failed fetch yields an empty identity and is retried on the
// next call; a successful fetch sticks until Invalidate.
type SenderCache struct {
	mu       sync.Mutex
	fetched  bool
	identity Identity
}

// NewSenderCache returns an empty cache.
func NewSenderCache() *SenderCache {
	return &SenderCache{}
}

// Get returns the cached identity, calling fetch on first use. Fetch errors
// degrade to an empty identity so outbound mail still goes out without a
// name or signature.
func (c *SenderCache) Get(fetch func() (Identity, error)) Identity {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fetched {
		return c.identity
	}

	identity, err := fetch()
	if err != nil {
		return Identity{}
	}

	c.identity = identity
	c.fetched = true
	return identity
}

// Invalidate drops the cached identity so the next Get fetches again.
func (c *SenderCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetched = false
	c.identity = Identity{}
}
