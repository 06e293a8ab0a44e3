// Package cache keeps resource bytes in memory between reads of the same
// source file.
package cache

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/tidwall/btree"
)

const (
	shardCount     = 256
	defaultMaxSize = 10000
)

type CacheEntry struct {
	Value      []byte
	Expiry     time.Time
	Frequency  uint32 // For LFU eviction
	LastAccess int64  // For LRU eviction
}

type Shard struct {
	items    btree.Map[string, CacheEntry]
	lock     sync.Mutex
	maxItems int
}

type Cache struct {
	shards  [shardCount]*Shard
	maxSize int
}

func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}

	perShard := maxSize / shardCount
	if perShard < 1 {
		perShard = 1
	}

	cache := &Cache{
		maxSize: maxSize,
	}
	for i := 0; i < shardCount; i++ {
		cache.shards[i] = &Shard{maxItems: perShard}
	}

	return cache
}

// Get returns the value stored under key. Expired entries are dropped and
// reported as missing.
func (c *Cache) Get(key string) ([]byte, bool) {
	shard := c.shards[c.shardIndex(key)]
	shard.lock.Lock()
	defer shard.lock.Unlock()

	entry, ok := shard.items.Get(key)
	if !ok {
		return nil, false
	}

	now := time.Now()
	if !entry.Expiry.IsZero() && now.After(entry.Expiry) {
		shard.items.Delete(key)
		return nil, false
	}

	entry.Frequency++
	entry.LastAccess = now.UnixNano()
	shard.items.Set(key, entry)

	return entry.Value, true
}

// Set stores value under key. A zero expiry never expires.
func (c *Cache) Set(key string, value []byte, expiry time.Time) {
	shard := c.shards[c.shardIndex(key)]
	shard.lock.Lock()
	defer shard.lock.Unlock()

	entry := CacheEntry{
		Value:      value,
		Expiry:     expiry,
		Frequency:  1,
		LastAccess: time.Now().UnixNano(),
	}

	if _, exists := shard.items.Get(key); !exists && shard.items.Len() >= shard.maxItems {
		c.evict(shard)
	}

	shard.items.Set(key, entry)
}

func (c *Cache) Delete(key string) {
	shard := c.shards[c.shardIndex(key)]
	shard.lock.Lock()
	shard.items.Delete(key)
	shard.lock.Unlock()
}

// Len counts entries across all shards, expired ones included.
func (c *Cache) Len() int {
	n := 0
	for _, shard := range c.shards {
		shard.lock.Lock()
		n += shard.items.Len()
		shard.lock.Unlock()
	}
	return n
}

func (c *Cache) shardIndex(key string) uint64 {
	return xxhash.Sum64String(key) % shardCount
}

// evict drops expired, stale and single-use entries. When none qualify the
// least frequently used entry goes so the shard never exceeds its limit.
func (c *Cache) evict(shard *Shard) {
	now := time.Now()
	nowNano := now.UnixNano()

	var (
		toDelete []string
		lfuKey   string
		lfuFreq  uint32
		found    bool
	)

	shard.items.Scan(func(key string, entry CacheEntry) bool {
		if nowNano-entry.LastAccess > int64(time.Hour) ||
			entry.Frequency == 1 ||
			(!entry.Expiry.IsZero() && now.After(entry.Expiry)) {
			toDelete = append(toDelete, key)
		}
		if !found || entry.Frequency < lfuFreq {
			lfuKey, lfuFreq, found = key, entry.Frequency, true
		}
		return true
	})

	if len(toDelete) == 0 && found {
		toDelete = append(toDelete, lfuKey)
	}
	for _, key := range toDelete {
		shard.items.Delete(key)
	}
}

// Clear removes all items from cache
func (c *Cache) Clear() {
	for i := 0; i < shardCount; i++ {
		shard := c.shards[i]
		shard.lock.Lock()
		shard.items = btree.Map[string, CacheEntry]{}
		shard.lock.Unlock()
	}
}
