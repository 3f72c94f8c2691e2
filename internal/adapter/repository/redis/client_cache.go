package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/salesledger/internal/domain"
	"github.com/iho/salesledger/internal/usecase"
)

// CacheStats receives cache hit/miss observations. metrics.Metrics
// implements it.
type CacheStats interface {
	CacheHit(hit bool)
}

// CachedClientRepository is a read-through cache in front of a
// ClientRepository. Only single-client lookups are cached; sale aggregates
// never go through here.
type CachedClientRepository struct {
	next   usecase.ClientRepository
	cache  usecase.Cache
	stats  CacheStats
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedClientRepository creates a new CachedClientRepository. stats may
// be nil.
func NewCachedClientRepository(next usecase.ClientRepository, cache usecase.Cache, ttl time.Duration, stats CacheStats, logger zerolog.Logger) *CachedClientRepository {
	return &CachedClientRepository{
		next:   next,
		cache:  cache,
		stats:  stats,
		ttl:    ttl,
		logger: logger,
	}
}

func clientKey(id string) string {
	return "client:" + id
}

// Create creates the client and primes the cache.
func (r *CachedClientRepository) Create(ctx context.Context, client *domain.Client) error {
	if err := r.next.Create(ctx, client); err != nil {
		return err
	}

	r.store(ctx, client)
	return nil
}

// GetByID serves from cache, falling back to the wrapped repository.
// Cache failures are logged and never fail the lookup.
func (r *CachedClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	raw, err := r.cache.Get(ctx, clientKey(id))
	if err != nil {
		r.logger.Warn().Err(err).Str("client_id", id).Msg("client cache read failed")
	}
	if len(raw) > 0 {
		var client domain.Client
		if err := json.Unmarshal(raw, &client); err == nil {
			r.observe(true)
			return &client, nil
		}
		_ = r.cache.Delete(ctx, clientKey(id))
	}
	r.observe(false)

	client, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.store(ctx, client)
	return client, nil
}

// List is passed through uncached.
func (r *CachedClientRepository) List(ctx context.Context, limit, offset int) ([]*domain.Client, error) {
	return r.next.List(ctx, limit, offset)
}

func (r *CachedClientRepository) observe(hit bool) {
	if r.stats != nil {
		r.stats.CacheHit(hit)
	}
}

func (r *CachedClientRepository) store(ctx context.Context, client *domain.Client) {
	raw, err := json.Marshal(client)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, clientKey(client.ID), raw, r.ttl); err != nil {
		r.logger.Warn().Err(err).Str("client_id", client.ID).Msg("client cache write failed")
	}
}
