package ynab

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// CachedSource wraps a Source with a Redis read-through cache. Budget data
// moves slowly, so repeated rebuilds within the TTL skip the upstream
// fetch entirely.
type CachedSource struct {
	upstream Source
	client   *redis.Client
	ttl      time.Duration
	budgetID string
}

// NewCachedSource creates a caching wrapper around a source
func NewCachedSource(upstream Source, addr, budgetID string, ttl time.Duration) *CachedSource {
	return &CachedSource{
		upstream: upstream,
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		ttl:      ttl,
		budgetID: budgetID,
	}
}

func (c *CachedSource) Accounts(ctx context.Context) ([]AccountRecord, error) {
	var accounts []AccountRecord
	err := c.fetch(ctx, c.key("accounts"), &accounts, func() (any, error) {
		return c.upstream.Accounts(ctx)
	})
	return accounts, err
}

func (c *CachedSource) Categories(ctx context.Context) ([]CategoryRecord, error) {
	var categories []CategoryRecord
	err := c.fetch(ctx, c.key("categories"), &categories, func() (any, error) {
		return c.upstream.Categories(ctx)
	})
	return categories, err
}

func (c *CachedSource) Transactions(ctx context.Context, since time.Time) ([]TransactionRecord, error) {
	var transactions []TransactionRecord
	key := c.key("transactions:" + since.Format("2006-01-02"))
	err := c.fetch(ctx, key, &transactions, func() (any, error) {
		return c.upstream.Transactions(ctx, since)
	})
	return transactions, err
}

// Invalidate drops every cached entry for this budget
func (c *CachedSource) Invalidate(ctx context.Context) error {
	pattern := c.key("*")
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	return nil
}

func (c *CachedSource) key(suffix string) string {
	return fmt.Sprintf("ynab:%s:%s", c.budgetID, suffix)
}

// fetch reads the key from Redis, falling back to the loader and caching
// its result. Cache failures degrade to upstream fetches rather than
// failing the call.
func (c *CachedSource) fetch(ctx context.Context, key string, dest any, load func() (any, error)) error {
	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		if unmarshalErr := json.Unmarshal([]byte(cached), dest); unmarshalErr == nil {
			log.WithField("key", key).Debug("Cache hit")
			return nil
		}
		// Unparseable entry: treat as a miss and overwrite below.
	} else if err != redis.Nil {
		log.WithFields(log.Fields{
			"key":   key,
			"error": err,
		}).Warn("Cache read failed, fetching upstream")
	}

	value, err := load()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry for %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.WithFields(log.Fields{
			"key":   key,
			"error": err,
		}).Warn("Cache write failed")
	}

	return json.Unmarshal(payload, dest)
}
