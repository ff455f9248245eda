// Package cache decora el ReferenceResolver con redis para no releer datos maestros
// en cada contabilización.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

var _ inventory.ReferenceResolver = (*ReferenceCache)(nil)

const keyPrefix = "stock-ledger:ref:"

// NewClient abre el cliente redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// ReferenceCache guarda materiales y ubicaciones resueltos como JSON con TTL.
// Los "no encontrado" no se guardan y un fallo de redis degrada al resolver interno.
type ReferenceCache struct {
	client redis.Cmdable
	next   inventory.ReferenceResolver
	ttl    time.Duration
	log    *logger.Logger
}

// NewReferenceCache envuelve next. ttl <= 0 usa 5 minutos.
func NewReferenceCache(client redis.Cmdable, next inventory.ReferenceResolver, ttl time.Duration, log *logger.Logger) *ReferenceCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReferenceCache{client: client, next: next, ttl: ttl, log: log}
}

func (c *ReferenceCache) ResolveMaterial(ctx context.Context, materialID string) (*entity.Material, error) {
	return cached(ctx, c, "material:"+materialID, func() (*entity.Material, error) {
		return c.next.ResolveMaterial(ctx, materialID)
	})
}

func (c *ReferenceCache) ResolveLocation(ctx context.Context, locationID string) (*entity.Location, error) {
	return cached(ctx, c, "location:"+locationID, func() (*entity.Location, error) {
		return c.next.ResolveLocation(ctx, locationID)
	})
}

func cached[T any](ctx context.Context, c *ReferenceCache, key string, load func() (*T, error)) (*T, error) {
	full := keyPrefix + key
	raw, err := c.client.Get(ctx, full).Bytes()
	switch {
	case err == nil:
		var v T
		if jsonErr := json.Unmarshal(raw, &v); jsonErr == nil {
			return &v, nil
		}
		c.log.Warn().Str("key", full).Msg("entrada de cache ilegible, se recarga")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", full).Msg("redis no disponible, se consulta el origen")
	}

	v, err := load()
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(v); err == nil {
		if err := c.client.Set(ctx, full, raw, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", full).Msg("no se pudo guardar en cache")
		}
	}
	return v, nil
}
