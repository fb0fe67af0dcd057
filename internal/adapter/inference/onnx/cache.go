package onnx

import (
	"sort"
	"strings"

	"github.com/knights-analytics/hugot/pipelines"
)

// maxZeroShotPipelines bounds how many zero-shot pipelines stay alive.
// Candidate labels are client-supplied, so an unbounded cache would grow one
// pipeline per novel label set for the life of the process. Past the cap a
// request gets a throwaway pipeline that is destroyed after use.
const maxZeroShotPipelines = 8

// zeroShotCache maps canonical label-set keys to built pipelines, holding at
// most capacity entries. Callers own locking.
type zeroShotCache struct {
	capacity int
	entries  map[string]*pipelines.ZeroShotClassificationPipeline
}

func newZeroShotCache(capacity int) *zeroShotCache {
	return &zeroShotCache{
		capacity: capacity,
		entries:  make(map[string]*pipelines.ZeroShotClassificationPipeline, capacity),
	}
}

// labelKey canonicalizes a label set so ordering differences do not fragment
// the cache. Scores are computed per label, so two requests naming the same
// set in different order can share a pipeline.
func labelKey(labels []string) string {
	sorted := append([]string(nil), labels...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x1f")
}

func (c *zeroShotCache) get(labels []string) (*pipelines.ZeroShotClassificationPipeline, bool) {
	pipeline, ok := c.entries[labelKey(labels)]
	return pipeline, ok
}

// put retains the pipeline unless the cache is full. A false return means the
// caller must treat the pipeline as ephemeral and destroy it after use.
func (c *zeroShotCache) put(labels []string, pipeline *pipelines.ZeroShotClassificationPipeline) bool {
	if len(c.entries) >= c.capacity {
		return false
	}
	c.entries[labelKey(labels)] = pipeline
	return true
}

func (c *zeroShotCache) len() int {
	return len(c.entries)
}
