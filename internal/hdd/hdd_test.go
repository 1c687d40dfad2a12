package hdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ddmin/internal/cache"
	"ddmin/internal/configuration"
	"ddmin/internal/ddmin"
	"ddmin/internal/outcome"
	"ddmin/internal/parsetree"
)

func digitsOracle(cfg configuration.Configuration[byte]) outcome.Outcome {
	s := string(cfg.Elements())
	for _, d := range "0123456789" {
		found := false
		for _, r := range s {
			if r == d {
				found = true
				break
			}
		}
		if !found {
			return outcome.Pass
		}
	}
	return outcome.Fail
}

// identityParser builds the trivial tree: a single root with one leaf
// per element of cfg, at depth 1. Reducing over this tree with any
// inner algorithm must behave exactly like running that algorithm
// directly on cfg.
type identityParser struct{}

func (identityParser) Parse(cfg configuration.Configuration[byte]) (*parsetree.Tree[byte], error) {
	b := parsetree.NewBuilder[byte]()
	root := b.Reserve(0)
	children := make([]int, 0, cfg.Len())
	for i := 0; i < cfg.Len(); i++ {
		leaf := b.Reserve(1)
		b.Set(leaf, configuration.New([]byte{cfg.At(i)}), nil)
		children = append(children, leaf)
	}
	b.Set(root, cfg, children)
	return b.Tree(), nil
}

func TestHDDTrivialTreeMatchesDirectDDMin(t *testing.T) {
	input := configuration.New([]byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz1234567890ABCDEFGHI"))

	h := New[byte]()
	result, err := h.Run(input, identityParser{}, ddmin.New[int](), digitsOracle, nil)
	require.NoError(t, err)
	assert.Equal(t, "1234567890", string(result.Elements()))

	direct := ddmin.New[byte]().Run(input, digitsOracle, nil)
	assert.True(t, result.Equal(direct))
}

func TestHDDPreservesFail(t *testing.T) {
	input := configuration.New([]byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz1234567890ABCDEFGHI"))

	h := New[byte]()
	result, err := h.Run(input, identityParser{}, ddmin.New[int](), digitsOracle, nil)
	require.NoError(t, err)
	assert.Equal(t, outcome.Fail, digitsOracle(result))
}

func TestHDDSharedCacheSuppressesRepeatOracleCalls(t *testing.T) {
	input := configuration.New([]byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz1234567890ABCDEFGHI"))
	shared := cache.NewHashCache[byte]()

	h := New[byte]()
	first, err := h.Run(input, identityParser{}, ddmin.New[int](), digitsOracle, shared)
	require.NoError(t, err)

	calls := 0
	counting := func(cfg configuration.Configuration[byte]) outcome.Outcome {
		calls++
		return digitsOracle(cfg)
	}
	second, err := h.Run(input, identityParser{}, ddmin.New[int](), counting, shared)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, 0, calls, "second run sharing the cache should not invoke the oracle")
}

func TestHDDAlreadyMinimalInputIsKept(t *testing.T) {
	input := configuration.New([]byte("1234567890"))

	h := New[byte]()
	result, err := h.Run(input, identityParser{}, ddmin.New[int](), digitsOracle, nil)
	require.NoError(t, err)
	assert.Equal(t, "1234567890", string(result.Elements()))
}
