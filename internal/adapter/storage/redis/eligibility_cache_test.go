package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibilityCache_SetAndGet(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewEligibilityCache(client)
	ctx := context.Background()
	customer, x, y := uuid.New(), uuid.New(), uuid.New()

	_, found, err := cache.Get(ctx, customer, x)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, customer, x, false, time.Minute))
	require.NoError(t, cache.Set(ctx, customer, y, true, time.Minute))

	eligible, found, err := cache.Get(ctx, customer, x)
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, eligible)

	eligible, found, err = cache.Get(ctx, customer, y)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, eligible)

	val, err := s.Get("eligibility:" + customer.String() + ":" + x.String())
	require.NoError(t, err)
	assert.Equal(t, "0", val)
}

func TestEligibilityCache_TTLExpiry(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewEligibilityCache(client)
	ctx := context.Background()
	customer, merchant := uuid.New(), uuid.New()

	require.NoError(t, cache.Set(ctx, customer, merchant, true, 5*time.Minute))
	s.FastForward(5*time.Minute + time.Second)

	_, found, err := cache.Get(ctx, customer, merchant)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEligibilityCache_UnknownValueIsMiss(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewEligibilityCache(client)
	customer, merchant := uuid.New(), uuid.New()

	require.NoError(t, s.Set("eligibility:"+customer.String()+":"+merchant.String(), "yes"))

	_, found, err := cache.Get(context.Background(), customer, merchant)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEligibilityCache_Invalidate(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewEligibilityCache(client)
	ctx := context.Background()
	customer, x, y := uuid.New(), uuid.New(), uuid.New()

	require.NoError(t, cache.Set(ctx, customer, x, true, time.Minute))
	require.NoError(t, cache.Set(ctx, customer, y, true, time.Minute))

	require.NoError(t, cache.Invalidate(ctx, customer, x))

	_, found, err := cache.Get(ctx, customer, x)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = cache.Get(ctx, customer, y)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestEligibilityCache_InvalidateCustomer(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewEligibilityCache(client)
	ctx := context.Background()
	customer, other := uuid.New(), uuid.New()

	// More keys than one SCAN batch.
	for i := 0; i < scanBatchSize+25; i++ {
		require.NoError(t, cache.Set(ctx, customer, uuid.New(), true, time.Minute))
	}
	otherMerchant := uuid.New()
	require.NoError(t, cache.Set(ctx, other, otherMerchant, false, time.Minute))

	require.NoError(t, cache.InvalidateCustomer(ctx, customer))

	for _, k := range s.Keys() {
		assert.NotContains(t, k, customer.String())
	}
	_, found, err := cache.Get(ctx, other, otherMerchant)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestEligibilityCache_Unavailable(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewEligibilityCache(client)
	s.Close()
	customer, merchant := uuid.New(), uuid.New()

	_, _, err := cache.Get(context.Background(), customer, merchant)
	assert.Error(t, err)
	assert.Error(t, cache.Set(context.Background(), customer, merchant, true, time.Minute))
	assert.Error(t, cache.Invalidate(context.Background(), customer, merchant))
	assert.Error(t, cache.InvalidateCustomer(context.Background(), customer))
}
