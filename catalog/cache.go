package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"marketcart/models"
)

const productKeyPrefix = "product:"

// Cache is a read-through redis cache in front of a catalog Source, used for
// read-only product views. Entries may lag stock by up to the TTL, so cart
// stock checks read the Source directly. Redis failures fall back to the
// source.
type Cache struct {
	rdb    *redis.Client
	source Source
	ttl    time.Duration
	log    logrus.FieldLogger
}

func NewCache(rdb *redis.Client, source Source, ttl time.Duration, log logrus.FieldLogger) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{
		rdb:    rdb,
		source: source,
		ttl:    ttl,
		log:    log.WithField("component", "catalog_cache"),
	}
}

func productKey(id string) string {
	return productKeyPrefix + id
}

func (c *Cache) FindByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	cached, missing := c.readCached(ctx, ids)
	if len(missing) == 0 {
		return cached, nil
	}

	fetched, err := c.source.FindByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	c.store(ctx, fetched)

	byID := make(map[string]models.Product, len(cached)+len(fetched))
	for _, p := range cached {
		byID[p.ID] = p
	}
	for _, p := range fetched {
		byID[p.ID] = p
	}
	out := make([]models.Product, 0, len(byID))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *Cache) FindOneValidForDisplay(ctx context.Context, productID string) (models.Product, bool, error) {
	return findValidForDisplay(ctx, c, productID)
}

// Invalidate drops cached entries, e.g. after a stock change event.
func (c *Cache) Invalidate(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, productKey(id))
	}
	return errors.Wrap(c.rdb.Del(ctx, keys...).Err(), "invalidate products")
}

func (c *Cache) readCached(ctx context.Context, ids []string) ([]models.Product, []string) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, productKey(id))
	}

	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		c.log.WithError(err).Warn("product cache read failed")
		return nil, ids
	}

	var hits []models.Product
	var missing []string
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			missing = append(missing, ids[i])
			continue
		}
		var p models.Product
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			c.log.WithError(err).WithField("productId", ids[i]).Warn("drop undecodable cached product")
			missing = append(missing, ids[i])
			continue
		}
		hits = append(hits, p)
	}
	return hits, missing
}

func (c *Cache) store(ctx context.Context, products []models.Product) {
	if len(products) == 0 {
		return
	}
	pipe := c.rdb.Pipeline()
	for _, p := range products {
		payload, err := json.Marshal(p)
		if err != nil {
			c.log.WithError(err).WithField("productId", p.ID).Warn("cannot encode product for cache")
			continue
		}
		pipe.Set(ctx, productKey(p.ID), payload, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.WithError(err).Warn("product cache write failed")
	}
}
