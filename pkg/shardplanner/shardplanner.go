package shardplanner

import (
	"container/heap"
	"math"
	"sort"

	"github.com/LambdaTest/axon/config"
	"github.com/LambdaTest/axon/pkg/bucketheap"
	"github.com/LambdaTest/axon/pkg/core"
	"github.com/LambdaTest/axon/pkg/lumber"
)

type shardPlanner struct {
	logger              lumber.Logger
	defaultSpecDuration int64
	maxGroupDuration    int64
}

// New returns a new ShardPlanner.
func New(cfg *config.Config, logger lumber.Logger) core.ShardPlanner {
	return &shardPlanner{
		logger:              logger,
		defaultSpecDuration: cfg.Shard.DefaultSpecDuration,
		maxGroupDuration:    cfg.Shard.MaxGroupDuration,
	}
}

func (s *shardPlanner) Plan(specs []*core.DiscoveredSpec, numShards int, metrics core.TestMetrics) *core.ShardPlan {
	// min 1 shard will be planned
	if numShards < 1 {
		numShards = 1
	}
	enriched := s.enrich(specs, metrics)
	items := s.buildPackingItems(enriched)
	buckets := s.packItems(items, numShards)
	return s.finalize(buckets, enriched)
}

// enrich attaches a duration to every spec, recorded metrics first, the
// configured default otherwise.
func (s *shardPlanner) enrich(specs []*core.DiscoveredSpec, metrics core.TestMetrics) []*core.SpecWithDuration {
	enriched := make([]*core.SpecWithDuration, 0, len(specs))
	for _, spec := range specs {
		duration, ok := metrics[spec.Path]
		if !ok {
			duration = s.defaultSpecDuration
		}
		enriched = append(enriched, &core.SpecWithDuration{DiscoveredSpec: spec, Duration: duration})
	}
	return enriched
}

// buildPackingItems turns capability groups into indivisible items and wraps
// every standard spec as an item of its own. A spec listing several
// capabilities is filed under the first one.
func (s *shardPlanner) buildPackingItems(enriched []*core.SpecWithDuration) []*core.PackingItem {
	groups := map[string][]*core.SpecWithDuration{}
	order := []string{}
	standard := []*core.SpecWithDuration{}
	for _, spec := range enriched {
		if len(spec.Capabilities) == 0 {
			standard = append(standard, spec)
			continue
		}
		capability := spec.Capabilities[0]
		if _, ok := groups[capability]; !ok {
			order = append(order, capability)
		}
		groups[capability] = append(groups[capability], spec)
	}
	items := []*core.PackingItem{}
	for _, capability := range order {
		items = append(items, s.splitGroup(capability, groups[capability])...)
	}
	for _, spec := range standard {
		items = append(items, &core.PackingItem{Specs: []string{spec.Path}, Duration: spec.Duration})
	}
	return items
}

// splitGroup keeps a capability group whole while it fits under the max group
// duration, otherwise divides it into consecutive duration-balanced
// subgroups. A single spec larger than the cap stays whole.
func (s *shardPlanner) splitGroup(capability string, members []*core.SpecWithDuration) []*core.PackingItem {
	sorted := append([]*core.SpecWithDuration{}, members...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Duration > sorted[j].Duration })
	var total int64
	for _, spec := range sorted {
		total += spec.Duration
	}
	if total <= s.maxGroupDuration || len(sorted) == 1 {
		return []*core.PackingItem{groupItem(capability, sorted, total)}
	}
	numSubGroups := math.Ceil(float64(total) / float64(s.maxGroupDuration))
	target := float64(total) / numSubGroups
	items := []*core.PackingItem{}
	current := []*core.SpecWithDuration{}
	var currentDuration int64
	for _, spec := range sorted {
		if len(current) > 0 && float64(currentDuration+spec.Duration) > target {
			items = append(items, groupItem(capability, current, currentDuration))
			current = []*core.SpecWithDuration{}
			currentDuration = 0
		}
		current = append(current, spec)
		currentDuration += spec.Duration
	}
	if len(current) > 0 {
		items = append(items, groupItem(capability, current, currentDuration))
	}
	s.logger.Debugf("capability %s group of %dms split into %d subgroups", capability, total, len(items))
	return items
}

func groupItem(capability string, members []*core.SpecWithDuration, duration int64) *core.PackingItem {
	specs := make([]string, 0, len(members))
	for _, member := range members {
		specs = append(specs, member.Path)
	}
	return &core.PackingItem{Capability: capability, Specs: specs, Duration: duration}
}

// packItems assigns items to buckets longest first, each one to the bucket
// with the least accumulated test time.
func (s *shardPlanner) packItems(items []*core.PackingItem, numShards int) []*core.ShardBucket {
	sorted := append([]*core.PackingItem{}, items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Duration > sorted[j].Duration })
	shardHeap := make(bucketheap.Heap, numShards)
	for i := 0; i < numShards; i++ {
		shardHeap[i] = &core.ShardBucket{Index: i, Capabilities: map[string]struct{}{}}
	}
	// initialize heap
	heap.Init(&shardHeap)
	for _, item := range sorted {
		shardHeap.AssignHead(item)
	}
	return shardHeap
}

// finalize drops empty buckets, renumbers the remainder densely from 1 and
// counts fixtures, one per capability plus one shared fixture when the shard
// also carries standard specs.
func (s *shardPlanner) finalize(buckets []*core.ShardBucket, enriched []*core.SpecWithDuration) *core.ShardPlan {
	// restore creation order before renumbering, the heap permuted the slice
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Index < buckets[j].Index })
	shards := make([]*core.ShardAssignment, 0, len(buckets))
	for _, bucket := range buckets {
		if len(bucket.Specs) == 0 {
			continue
		}
		capabilities := make([]string, 0, len(bucket.Capabilities))
		for capability := range bucket.Capabilities {
			capabilities = append(capabilities, capability)
		}
		sort.Strings(capabilities)
		fixtureCount := len(capabilities)
		if bucket.HasStandardSpecs {
			fixtureCount++
		}
		shards = append(shards, &core.ShardAssignment{
			Shard:        len(shards) + 1,
			Specs:        bucket.Specs,
			TestTime:     bucket.TestTime,
			Capabilities: capabilities,
			FixtureCount: fixtureCount,
		})
	}
	var totalTestTime int64
	for _, spec := range enriched {
		totalTestTime += spec.Duration
	}
	s.logger.Debugf("planned %d shards for %d specs, total test time %dms", len(shards), len(enriched), totalTestTime)
	return &core.ShardPlan{Shards: shards, TotalTestTime: totalTestTime}
}
