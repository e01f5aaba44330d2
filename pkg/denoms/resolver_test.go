package denoms

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingLookup struct {
	calls   int
	results map[string]string
}

func (c *countingLookup) BaseDenom(ctx context.Context, hash string) (string, error) {
	c.calls++
	if base, ok := c.results[hash]; ok {
		return base, nil
	}
	return "", os.ErrNotExist
}

func setup(t *testing.T) (*Resolver, *countingLookup, string) {
	path := filepath.Join(t.TempDir(), "denoms.json")
	lookup := &countingLookup{results: map[string]string{
		"27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2": "uatom",
		"DEADBEEF": "ucustom",
	}}
	resolver := NewResolver(NewStore(path), lookup, 6, zap.NewNop())
	return resolver, lookup, path
}

func Test_Resolver(t *testing.T) {
	ctx := context.Background()

	t.Run("Should resolve native denoms without touching the lookup", func(t *testing.T) {
		resolver, lookup, _ := setup(t)
		d := resolver.Resolve(ctx, "uatom")
		assert.Equal(t, "ATOM", d.Symbol)
		assert.Equal(t, int32(6), d.Decimals)
		assert.Equal(t, 0, lookup.calls)
	})

	t.Run("Should resolve a bridge hash once and serve repeats from the cache", func(t *testing.T) {
		resolver, lookup, _ := setup(t)
		hash := "ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2"

		first := resolver.Resolve(ctx, hash)
		assert.Equal(t, "ATOM", first.Symbol)
		assert.Equal(t, 1, lookup.calls)

		second := resolver.Resolve(ctx, hash)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, lookup.calls)
	})

	t.Run("Should apply the micro denom convention to unknown base denoms", func(t *testing.T) {
		resolver, _, _ := setup(t)
		d := resolver.Resolve(ctx, "ibc/DEADBEEF")
		assert.Equal(t, "CUSTOM", d.Symbol)
		assert.Equal(t, int32(6), d.Decimals)
	})

	t.Run("Should cache the Unknown sentinel after a failed lookup", func(t *testing.T) {
		resolver, lookup, _ := setup(t)

		d := resolver.Resolve(ctx, "ibc/FFFF")
		assert.Equal(t, Unknown, d)
		assert.Equal(t, 1, lookup.calls)

		d = resolver.Resolve(ctx, "ibc/FFFF")
		assert.Equal(t, Unknown, d)
		assert.Equal(t, 1, lookup.calls)
	})

	t.Run("Should persist resolutions across resolver instances", func(t *testing.T) {
		resolver, lookup, path := setup(t)
		hash := "ibc/DEADBEEF"
		resolver.Resolve(ctx, hash)
		assert.Equal(t, 1, lookup.calls)

		fresh := NewResolver(NewStore(path), lookup, 6, zap.NewNop())
		d := fresh.Resolve(ctx, hash)
		assert.Equal(t, "CUSTOM", d.Symbol)
		assert.Equal(t, 1, lookup.calls)
	})

	t.Run("Should resolve the empty string to Unknown", func(t *testing.T) {
		resolver, lookup, _ := setup(t)
		assert.Equal(t, Unknown, resolver.Resolve(ctx, ""))
		assert.Equal(t, 0, lookup.calls)
	})

	t.Run("Should use the configured precision for unresolved decimals", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "denoms.json")
		lookup := &countingLookup{results: map[string]string{"DEADBEEF": "ucustom"}}
		resolver := NewResolver(NewStore(path), lookup, 18, zap.NewNop())

		d := resolver.Resolve(ctx, "ibc/DEADBEEF")
		assert.Equal(t, int32(18), d.Decimals)
	})
}
