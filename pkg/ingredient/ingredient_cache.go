package ingredient

import (
	"Foodgram-Backend/domain"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	searchKeyPrefix = "ingredients:search:"
	searchTTL       = 10 * time.Minute
)

// SearchCache stores ingredient search results keyed by the lower-cased prefix.
type SearchCache interface {
	Get(ctx context.Context, prefix string) ([]domain.Ingredient, bool, error)
	Set(ctx context.Context, prefix string, ingredients []domain.Ingredient) error
	Flush(ctx context.Context) error
}

type redisSearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSearchCache returns a redis-backed cache, or a no-op one when client is nil.
func NewSearchCache(client *redis.Client) SearchCache {
	if client == nil {
		return noopSearchCache{}
	}
	return &redisSearchCache{client: client, ttl: searchTTL}
}

func searchKey(prefix string) string {
	return searchKeyPrefix + strings.ToLower(prefix)
}

func (c *redisSearchCache) Get(ctx context.Context, prefix string) ([]domain.Ingredient, bool, error) {
	raw, err := c.client.Get(ctx, searchKey(prefix)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var ingredients []domain.Ingredient
	if err := json.Unmarshal(raw, &ingredients); err != nil {
		return nil, false, err
	}
	return ingredients, true, nil
}

func (c *redisSearchCache) Set(ctx context.Context, prefix string, ingredients []domain.Ingredient) error {
	raw, err := json.Marshal(ingredients)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(prefix), raw, c.ttl).Err()
}

func (c *redisSearchCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, searchKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

type noopSearchCache struct{}

func (noopSearchCache) Get(context.Context, string) ([]domain.Ingredient, bool, error) {
	return nil, false, nil
}
func (noopSearchCache) Set(context.Context, string, []domain.Ingredient) error { return nil }
func (noopSearchCache) Flush(context.Context) error                            { return nil }
