package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphlayout/layered/config"
	"github.com/graphlayout/layered/core"
	"github.com/graphlayout/layered/internal/cache"
)

func TestNullCacheAlwaysMisses(t *testing.T) {
	t.Parallel()

	c := cache.NewNullCache()
	defer c.Close()

	out, hit := c.Get(context.Background(), "key")
	assert.False(t, hit)
	assert.Nil(t, out)

	c.Set(context.Background(), "key", &core.OutputGraph{})
	_, hit = c.Get(context.Background(), "key")
	assert.False(t, hit)
}

func TestKeyIsDeterministicAndSensitiveToInputs(t *testing.T) {
	t.Parallel()

	g := &core.InputGraph{Directed: true, Nodes: []core.InputNode{{ID: "a"}}}
	cfg := config.Default()

	k1 := cache.Key(g, cfg)
	k2 := cache.Key(g, cfg)
	assert.Equal(t, k1, k2)

	cfg2 := cfg
	cfg2.RankSep = cfg.RankSep + 1
	assert.NotEqual(t, k1, cache.Key(g, cfg2))

	g2 := &core.InputGraph{Directed: true, Nodes: []core.InputNode{{ID: "b"}}}
	assert.NotEqual(t, k1, cache.Key(g2, cfg))
}
