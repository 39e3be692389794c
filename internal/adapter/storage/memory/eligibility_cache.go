package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type pairKey struct {
	customer uuid.UUID
	merchant uuid.UUID
}

type cachedDecision struct {
	eligible  bool
	expiresAt time.Time
}

// EligibilityCache implements ports.EligibilityCache with a TTL map.
type EligibilityCache struct {
	mu      sync.Mutex
	entries map[pairKey]cachedDecision
	now     func() time.Time
}

func NewEligibilityCache() *EligibilityCache {
	return &EligibilityCache{
		entries: make(map[pairKey]cachedDecision),
		now:     time.Now,
	}
}

// WithClock replaces the time source (tests).
func (c *EligibilityCache) WithClock(now func() time.Time) *EligibilityCache {
	c.now = now
	return c
}

func (c *EligibilityCache) Get(_ context.Context, customerID, merchantID uuid.UUID) (bool, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := pairKey{customerID, merchantID}
	d, ok := c.entries[k]
	if !ok {
		return false, false, nil
	}
	if !c.now().Before(d.expiresAt) {
		delete(c.entries, k)
		return false, false, nil
	}
	return d.eligible, true, nil
}

func (c *EligibilityCache) Set(_ context.Context, customerID, merchantID uuid.UUID, eligible bool, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[pairKey{customerID, merchantID}] = cachedDecision{
		eligible:  eligible,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

func (c *EligibilityCache) Invalidate(_ context.Context, customerID, merchantID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, pairKey{customerID, merchantID})
	return nil
}

func (c *EligibilityCache) InvalidateCustomer(_ context.Context, customerID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.customer == customerID {
			delete(c.entries, k)
		}
	}
	return nil
}
