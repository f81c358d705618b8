// Package cache keeps whole result sets (the book catalogue, mostly) out of Postgres
// between requests. Values are stored as JSON.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key names shared between the services that read and the seeder that invalidates.
const (
	KeyAllBooks = "books:all"
	KeyAllPages = "pages:all"
)

// Cache is a JSON value cache. Get reports a miss with found=false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (found bool, err error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// Redis stores entries in Redis under an optional prefix.
type Redis struct {
	client    redis.Cmdable
	keyPrefix string
	ttl       time.Duration
}

type Option func(*Redis)

// WithKeyPrefix namespaces every key as "<prefix>:<key>".
func WithKeyPrefix(prefix string) Option {
	return func(r *Redis) { r.keyPrefix = prefix }
}

// WithTTL sets entry expiry; zero keeps entries until deleted.
func WithTTL(ttl time.Duration) Option {
	return func(r *Redis) { r.ttl = ttl }
}

func NewRedis(client redis.Cmdable, opts ...Option) *Redis {
	r := &Redis{client: client}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewRedisFromURL dials lazily; the first command surfaces connection problems.
func NewRedisFromURL(url string, opts ...Option) (*Redis, *redis.Client, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(options)
	return NewRedis(client, opts...), client, nil
}

func (r *Redis) key(k string) string {
	if r.keyPrefix == "" {
		return k
	}
	return r.keyPrefix + ":" + k
}

func (r *Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.client.Set(ctx, r.key(key), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Noop never stores anything; every Get is a miss.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, any) error         { return nil }
func (Noop) Delete(context.Context, ...string) error        { return nil }

// LookupObserver is told about every successful Get.
type LookupObserver interface {
	ObserveCacheLookup(key string, hit bool)
}

// Observed reports hits and misses of the wrapped cache to an observer.
type Observed struct {
	Cache
	obs LookupObserver
}

func NewObserved(c Cache, obs LookupObserver) *Observed {
	return &Observed{Cache: c, obs: obs}
}

func (o *Observed) Get(ctx context.Context, key string, dst any) (bool, error) {
	found, err := o.Cache.Get(ctx, key, dst)
	if err == nil {
		o.obs.ObserveCacheLookup(key, found)
	}
	return found, err
}

var (
	_ Cache = (*Redis)(nil)
	_ Cache = Noop{}
	_ Cache = (*Observed)(nil)
)
