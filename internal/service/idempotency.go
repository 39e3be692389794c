package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"
	"points-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const defaultIdempotencyTTL = 24 * time.Hour

// idempotencyGuard is the two-layer replay check shared by the mutating
// services: Redis first, then the idempotency_logs table.
type idempotencyGuard struct {
	repo  ports.IdempotencyRepository
	cache ports.IdempotencyCache
	ttl   time.Duration
	log   zerolog.Logger
}

func newIdempotencyGuard(repo ports.IdempotencyRepository, cache ports.IdempotencyCache, ttl time.Duration, log zerolog.Logger) *idempotencyGuard {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &idempotencyGuard{repo: repo, cache: cache, ttl: ttl, log: log}
}

// lookup returns the stored response for key, or nil. An empty key disables
// the check.
func (g *idempotencyGuard) lookup(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	// Layer 1: Redis idempotency check
	if g.cache != nil {
		cached, err := g.cache.Get(ctx, key)
		if err != nil {
			g.log.Warn().Err(err).Str("key", key).Msg("redis idempotency check failed, falling through to DB")
		}
		if cached != nil {
			return cached, nil
		}
	}

	// Layer 2: DB idempotency check
	idempLog, err := g.repo.Get(ctx, key)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("db idempotency check: %w", err))
	}
	if idempLog != nil {
		return idempLog.ResponseJSON, nil
	}
	return nil, nil
}

// record writes the response inside tx. It returns
// ports.ErrDuplicateIdempotencyKey unchanged when another unit won the race.
func (g *idempotencyGuard) record(ctx context.Context, tx pgx.Tx, key string, entryID uuid.UUID, resp any) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	respJSON, err := json.Marshal(resp)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("marshal response: %w", err))
	}
	err = g.repo.Create(ctx, tx, &domain.IdempotencyLog{
		Key:          key,
		EntryID:      entryID,
		ResponseJSON: respJSON,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return respJSON, nil
}

// remember caches a committed response (best-effort).
func (g *idempotencyGuard) remember(ctx context.Context, key string, respJSON []byte) {
	if key == "" || g.cache == nil || respJSON == nil {
		return
	}
	if err := g.cache.Set(ctx, key, respJSON, g.ttl); err != nil {
		g.log.Warn().Err(err).Str("key", key).Msg("failed to cache idempotency in redis")
	}
}

// replay decodes a stored response into out.
func replay[T any](data []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached response: %w", err))
	}
	return &out, nil
}

// replayAfterConflict loads the response stored by the unit that won an
// idempotency race.
func replayAfterConflict[T any](ctx context.Context, g *idempotencyGuard, key string) (*T, error) {
	stored, err := g.repo.Get(ctx, key)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("db idempotency reload: %w", err))
	}
	if stored == nil {
		return nil, apperror.InternalError(fmt.Errorf("idempotency key %q conflicted but no log found", key))
	}
	return replay[T](stored.ResponseJSON)
}
