package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const (
	eligibleValue = "1"
	blockedValue  = "0"
	scanBatchSize = 100
)

// EligibilityCache implements ports.EligibilityCache using Redis.
// One key per (customer, merchant) pair holds "1" (eligible) or "0" (blocked).
type EligibilityCache struct {
	client goredis.UniversalClient
	prefix string
}

// NewEligibilityCache creates a new Redis-backed eligibility cache.
func NewEligibilityCache(client goredis.UniversalClient) *EligibilityCache {
	return &EligibilityCache{
		client: client,
		prefix: "eligibility:",
	}
}

func (c *EligibilityCache) key(customerID, merchantID uuid.UUID) string {
	return c.prefix + customerID.String() + ":" + merchantID.String()
}

// Get returns the cached decision. found is false on a miss.
func (c *EligibilityCache) Get(ctx context.Context, customerID, merchantID uuid.UUID) (bool, bool, error) {
	val, err := c.client.Get(ctx, c.key(customerID, merchantID)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("redis eligibility get: %w", err)
	}
	switch val {
	case eligibleValue:
		return true, true, nil
	case blockedValue:
		return false, true, nil
	default:
		// Unknown payloads count as a miss so the ledger is consulted.
		return false, false, nil
	}
}

// Set stores a decision with TTL.
func (c *EligibilityCache) Set(ctx context.Context, customerID, merchantID uuid.UUID, eligible bool, ttl time.Duration) error {
	val := blockedValue
	if eligible {
		val = eligibleValue
	}
	if err := c.client.Set(ctx, c.key(customerID, merchantID), val, ttl).Err(); err != nil {
		return fmt.Errorf("redis eligibility set: %w", err)
	}
	return nil
}

// Invalidate drops the decision for one pair.
func (c *EligibilityCache) Invalidate(ctx context.Context, customerID, merchantID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(customerID, merchantID)).Err(); err != nil {
		return fmt.Errorf("redis eligibility invalidate: %w", err)
	}
	return nil
}

// InvalidateCustomer drops every cached decision for the customer.
func (c *EligibilityCache) InvalidateCustomer(ctx context.Context, customerID uuid.UUID) error {
	pattern := c.prefix + customerID.String() + ":*"

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis eligibility scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis eligibility invalidate customer: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
