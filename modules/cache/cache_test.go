package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := NewCache(0)

	c.Set("/site/content/about.html", []byte("about"), time.Time{})
	v, ok := c.Get("/site/content/about.html")
	require.True(t, ok)
	assert.Equal(t, "about", string(v))

	_, ok = c.Get("/site/content/404.html")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestExpiry(t *testing.T) {
	c := NewCache(0)
	c.Set("old", []byte("x"), time.Now().Add(-time.Second))

	_, ok := c.Get("old")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestDeleteAndClear(t *testing.T) {
	c := NewCache(0)
	for i := 0; i < 10; i++ {
		c.Set(fmt.Sprintf("k%d", i), []byte{byte(i)}, time.Time{})
	}
	c.Delete("k3")
	_, ok := c.Get("k3")
	assert.False(t, ok)
	assert.Equal(t, 9, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestEvictionBoundsShard(t *testing.T) {
	// One slot per shard.
	c := NewCache(shardCount)
	for i := 0; i < 5000; i++ {
		c.Set(fmt.Sprintf("k%d", i), []byte("v"), time.Time{})
	}
	assert.LessOrEqual(t, c.Len(), shardCount)
}

func TestConcurrentAccess(t *testing.T) {
	c := NewCache(0)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%50)
				c.Set(key, []byte{byte(g)}, time.Time{})
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()
	assert.Equal(t, 50, c.Len())
}
