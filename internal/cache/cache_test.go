package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ddmin/internal/configuration"
	"ddmin/internal/outcome"
)

func testCacheImplementations[T comparable]() map[string]Cache[T] {
	return map[string]Cache[T]{
		"HashCache": NewHashCache[T](),
		"TreeCache": NewTreeCache[T](),
	}
}

func TestCacheMissThenHit(t *testing.T) {
	for name, c := range testCacheImplementations[byte]() {
		t.Run(name, func(t *testing.T) {
			cfg := configuration.New([]byte("abc"))
			_, ok := c.Get(cfg)
			assert.False(t, ok)

			c.Put(cfg, outcome.Fail)
			o, ok := c.Get(cfg)
			assert.True(t, ok)
			assert.Equal(t, outcome.Fail, o)
		})
	}
}

func TestCacheDistinguishesConfigurations(t *testing.T) {
	for name, c := range testCacheImplementations[byte]() {
		t.Run(name, func(t *testing.T) {
			a := configuration.New([]byte("ab"))
			b := configuration.New([]byte("abc"))
			c.Put(a, outcome.Pass)
			c.Put(b, outcome.Fail)

			oa, ok := c.Get(a)
			assert.True(t, ok)
			assert.Equal(t, outcome.Pass, oa)

			ob, ok := c.Get(b)
			assert.True(t, ok)
			assert.Equal(t, outcome.Fail, ob)
		})
	}
}

func TestCacheCachesUnresolved(t *testing.T) {
	for name, c := range testCacheImplementations[int]() {
		t.Run(name, func(t *testing.T) {
			cfg := configuration.New([]int{1, 2, 3})
			c.Put(cfg, outcome.Unresolved)
			o, ok := c.Get(cfg)
			assert.True(t, ok)
			assert.Equal(t, outcome.Unresolved, o)
		})
	}
}

func TestEmptyConfigurationIsCacheable(t *testing.T) {
	for name, c := range testCacheImplementations[byte]() {
		t.Run(name, func(t *testing.T) {
			var empty configuration.Configuration[byte]
			_, ok := c.Get(empty)
			assert.False(t, ok)
			c.Put(empty, outcome.Pass)
			o, ok := c.Get(empty)
			assert.True(t, ok)
			assert.Equal(t, outcome.Pass, o)
		})
	}
}
