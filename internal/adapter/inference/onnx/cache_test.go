package onnx

import (
	"fmt"
	"testing"

	"github.com/knights-analytics/hugot/pipelines"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroShotCache_CapacityBound(t *testing.T) {
	cache := newZeroShotCache(2)

	assert.True(t, cache.put([]string{"technology"}, &pipelines.ZeroShotClassificationPipeline{}))
	assert.True(t, cache.put([]string{"business"}, &pipelines.ZeroShotClassificationPipeline{}))
	assert.Equal(t, 2, cache.len())

	// At capacity: novel label sets are refused and stay uncached
	assert.False(t, cache.put([]string{"sports"}, &pipelines.ZeroShotClassificationPipeline{}))
	assert.Equal(t, 2, cache.len())

	_, ok := cache.get([]string{"sports"})
	assert.False(t, ok)

	// Cached sets remain retrievable
	_, ok = cache.get([]string{"technology"})
	assert.True(t, ok)
}

func TestZeroShotCache_StaysBoundedUnderChurn(t *testing.T) {
	cache := newZeroShotCache(maxZeroShotPipelines)

	for i := 0; i < maxZeroShotPipelines*10; i++ {
		cache.put([]string{fmt.Sprintf("label-%d", i)}, &pipelines.ZeroShotClassificationPipeline{})
	}

	assert.Equal(t, maxZeroShotPipelines, cache.len())
}

func TestZeroShotCache_LabelOrderInsensitive(t *testing.T) {
	cache := newZeroShotCache(4)
	pipeline := &pipelines.ZeroShotClassificationPipeline{}

	require.True(t, cache.put([]string{"science", "health", "business"}, pipeline))

	got, ok := cache.get([]string{"business", "science", "health"})
	require.True(t, ok)
	assert.Same(t, pipeline, got)
	assert.Equal(t, 1, cache.len())
}
