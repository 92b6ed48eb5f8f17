package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/openvault/digibank/internal/core/domain"
	portsrepo "github.com/openvault/digibank/internal/core/ports/repositories"
	"github.com/openvault/digibank/internal/middleware"
)

const holdingKeyPrefix = "holding:"

// CachedHoldingRepository decorates a holding repository with a Redis read
// cache for single-holding lookups. Locked reads and list reads always go to
// the database; every balance mutation drops the cached copy so a cache hit
// is never staler than ttl.
type CachedHoldingRepository struct {
	portsrepo.HoldingRepositoryWithTx

	client *redis.Client
	ttl    time.Duration
}

// NewCachedHoldingRepository wraps inner with a Redis read cache.
func NewCachedHoldingRepository(inner portsrepo.HoldingRepositoryWithTx, client *redis.Client, ttl time.Duration) *CachedHoldingRepository {
	return &CachedHoldingRepository{
		HoldingRepositoryWithTx: inner,
		client:                  client,
		ttl:                     ttl,
	}
}

// FindHoldingByID serves from Redis when possible, falling back to the
// database and populating the cache on a miss. Cache failures degrade to a
// plain database read.
func (r *CachedHoldingRepository) FindHoldingByID(ctx context.Context, holdingID string) (*domain.Holding, error) {
	key := holdingKeyPrefix + holdingID

	cached, err := r.client.Get(ctx, key).Result()
	if err == nil {
		var holding domain.Holding
		if jsonErr := json.Unmarshal([]byte(cached), &holding); jsonErr == nil {
			return &holding, nil
		}
		// Unreadable payload, drop it and fall through to the database.
		r.client.Del(ctx, key)
	} else if err != redis.Nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Holding cache read failed",
			slog.String("holding_id", holdingID),
			slog.String("error", err.Error()),
		)
	}

	holding, err := r.HoldingRepositoryWithTx.FindHoldingByID(ctx, holdingID)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(holding); jsonErr == nil {
		if setErr := r.client.Set(ctx, key, payload, r.ttl).Err(); setErr != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Holding cache write failed",
				slog.String("holding_id", holdingID),
				slog.String("error", setErr.Error()),
			)
		}
	}
	return holding, nil
}

// SaveHolding writes through and drops any cached copy.
func (r *CachedHoldingRepository) SaveHolding(ctx context.Context, holding domain.Holding) error {
	if err := r.HoldingRepositoryWithTx.SaveHolding(ctx, holding); err != nil {
		return err
	}
	r.invalidate(ctx, holding.HoldingID)
	return nil
}

// AdjustBalanceInTx mutates through the inner store and drops the cached
// copy. The invalidation runs before commit, which is safe: the worst case
// is one extra database read.
func (r *CachedHoldingRepository) AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, holdingID string, delta decimal.Decimal, expectedVersion int64, userID string) (*domain.Holding, error) {
	holding, err := r.HoldingRepositoryWithTx.AdjustBalanceInTx(ctx, tx, holdingID, delta, expectedVersion, userID)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, holdingID)
	return holding, nil
}

// DeleteHoldingInTx deletes through the inner store and drops the cached copy.
func (r *CachedHoldingRepository) DeleteHoldingInTx(ctx context.Context, tx pgx.Tx, holdingID string) error {
	if err := r.HoldingRepositoryWithTx.DeleteHoldingInTx(ctx, tx, holdingID); err != nil {
		return err
	}
	r.invalidate(ctx, holdingID)
	return nil
}

func (r *CachedHoldingRepository) invalidate(ctx context.Context, holdingID string) {
	if err := r.client.Del(ctx, holdingKeyPrefix+holdingID).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Holding cache invalidation failed",
			slog.String("holding_id", holdingID),
			slog.String("error", err.Error()),
		)
	}
}

var _ portsrepo.HoldingRepositoryWithTx = (*CachedHoldingRepository)(nil)
