// Package cache is a small JSON value cache with Redis and in-process
// backends.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON-encoded values. A zero ttl means no expiry.
type Cache interface {
	// Get decodes the value at key into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix drops every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	// Update decodes the value at key into dst and stores what fn returns,
	// atomically with respect to other Updates of key. An error from fn
	// aborts without writing and is returned as is.
	Update(ctx context.Context, key string, dst any, ttl time.Duration, fn UpdateFunc) error
}

// UpdateFunc computes the new value of a key. found reports whether dst
// holds the current value.
type UpdateFunc func(found bool) (any, error)

// ErrContended is returned by Redis.Update when concurrent writers kept
// invalidating the transaction.
var ErrContended = errors.New("cache key contended")

const updateRetries = 10

// Redis is a Cache over go-redis. Keys are namespaced with prefix.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := r.client.Set(ctx, r.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.prefix + k
	}
	return r.client.Del(ctx, full...).Err()
}

// globEscaper quotes the SCAN MATCH metacharacters.
var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func matchPrefix(prefix string) string {
	return globEscaper.Replace(prefix) + "*"
}

func (r *Redis) DeletePrefix(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, matchPrefix(r.prefix+prefix), 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return r.client.Del(ctx, batch...).Err()
	}
	return nil
}

// Update runs fn inside a WATCH transaction and retries while another client
// modifies key in between.
func (r *Redis) Update(ctx context.Context, key string, dst any, ttl time.Duration, fn UpdateFunc) error {
	full := r.prefix + key
	txf := func(tx *redis.Tx) error {
		found := true
		data, err := tx.Get(ctx, full).Bytes()
		switch {
		case err == redis.Nil:
			found = false
		case err != nil:
			return fmt.Errorf("cache get %s: %w", key, err)
		default:
			if err := json.Unmarshal(data, dst); err != nil {
				return fmt.Errorf("cache decode %s: %w", key, err)
			}
		}

		v, err := fn(found)
		if err != nil {
			return err
		}
		enc, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("cache encode %s: %w", key, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, full, enc, ttl)
			return nil
		})
		return err
	}

	for range updateRetries {
		err := r.client.Watch(ctx, txf, full)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return ErrContended
}

type entry struct {
	data    []byte
	expires time.Time
}

// Memory is an in-process Cache for single-node deployments and tests.
type Memory struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]entry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	e, ok := m.lookup(key)
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.data, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// lookup returns the live entry at key. m.mu must be held.
func (m *Memory) lookup(key string) (entry, bool) {
	e, ok := m.items[key]
	if ok && !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.items, key)
		return entry{}, false
	}
	return e, ok
}

func (m *Memory) encode(key string, v any, ttl time.Duration) (entry, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return entry{}, fmt.Errorf("cache encode %s: %w", key, err)
	}
	e := entry{data: data}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	return e, nil
}

func (m *Memory) Set(_ context.Context, key string, v any, ttl time.Duration) error {
	e, err := m.encode(key, v, ttl)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items[key] = e
	m.mu.Unlock()
	return nil
}

// Update holds the cache lock across the read, fn and the write. fn must not
// call back into m.
func (m *Memory) Update(_ context.Context, key string, dst any, ttl time.Duration, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, found := m.lookup(key)
	if found {
		if err := json.Unmarshal(cur.data, dst); err != nil {
			return fmt.Errorf("cache decode %s: %w", key, err)
		}
	}
	v, err := fn(found)
	if err != nil {
		return err
	}
	e, err := m.encode(key, v, ttl)
	if err != nil {
		return err
	}
	m.items[key] = e
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *Memory) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			delete(m.items, k)
		}
	}
	return nil
}
