// Package coalescer collapses concurrent loads of the same key into one call.
package coalescer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ErrPanicked is returned to callers that waited on a load whose function
// panicked. The panic itself propagates in the goroutine that ran it.
var ErrPanicked = errors.New("coalesced call panicked")

const shardCount = 32 // Balance between memory usage and lock contention

type Call struct {
	wg  sync.WaitGroup
	val []byte
	err error
}

type Shard struct {
	sync.RWMutex
	calls map[string]*Call
}

type Coalescer struct {
	shards [shardCount]Shard
}

func NewCoalescer() *Coalescer {
	c := &Coalescer{}
	for i := range c.shards {
		c.shards[i].calls = make(map[string]*Call)
	}
	return c
}

func (c *Coalescer) getShard(key string) *Shard {
	return &c.shards[xxhash.Sum64String(key)%shardCount]
}

// Do coalesces multiple requests for the same key into a single operation.
// Callers arriving while fn runs share its result.
func (c *Coalescer) Do(key string, fn func() ([]byte, error)) ([]byte, error) {
	shard := c.getShard(key)

	// Fast path with read lock
	shard.RLock()
	if call, ok := shard.calls[key]; ok {
		shard.RUnlock()
		call.wg.Wait()
		return call.val, call.err
	}
	shard.RUnlock()

	shard.Lock()
	if call, ok := shard.calls[key]; ok {
		shard.Unlock()
		call.wg.Wait()
		return call.val, call.err
	}

	call := &Call{}
	call.wg.Add(1)
	shard.calls[key] = call
	shard.Unlock()

	normalReturn := false
	defer func() {
		if !normalReturn {
			call.val, call.err = nil, fmt.Errorf("%w: %s", ErrPanicked, key)
		}
		shard.Lock()
		delete(shard.calls, key)
		shard.Unlock()
		call.wg.Done()
	}()

	call.val, call.err = fn()
	normalReturn = true
	return call.val, call.err
}
