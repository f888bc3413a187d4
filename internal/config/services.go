package config

import (
	"context"
	"fmt"

	"github.com/iwvelando/rental-analysis/internal/rates"
	"github.com/iwvelando/rental-analysis/internal/store"
	"github.com/iwvelando/rental-analysis/pkg/constants"
)

// NewStore builds the configured key-value store. The returned close
// function releases any connection and is never nil.
func (c CacheConfig) NewStore(ctx context.Context) (store.Store, func() error, error) {
	switch c.Backend {
	case "", constants.CacheBackendMemory:
		return store.NewMemoryStore(), func() error { return nil }, nil
	case constants.CacheBackendRedis:
		if c.Address == "" {
			return nil, nil, fmt.Errorf("cache backend %s requires an address", c.Backend)
		}
		rs := store.NewRedisStore(store.RedisOptions{
			Address:   c.Address,
			Password:  c.Password,
			DB:        c.DB,
			KeyPrefix: c.KeyPrefix,
		})
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", c.Address, err)
		}
		return rs, rs.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", c.Backend)
	}
}

// ProviderConfig converts the rates block into provider settings.
func (r RatesConfig) ProviderConfig() rates.Config {
	fallbacks := rates.DefaultFallbacks()
	if r.Fallbacks.FifteenYear > 0 {
		fallbacks[constants.Series15Year] = r.Fallbacks.FifteenYear
	}
	if r.Fallbacks.ThirtyYear > 0 {
		fallbacks[constants.Series30Year] = r.Fallbacks.ThirtyYear
	}
	return rates.Config{
		ProxyURL:  r.ProxyURL,
		Timeout:   r.Timeout,
		CacheTTL:  r.CacheTTL,
		Fallbacks: fallbacks,
	}
}
