package bucketheap

import (
	"container/heap"

	"github.com/LambdaTest/axon/pkg/core"
)

// Heap is a min-heap of shard buckets keyed on accumulated test time.
type Heap []*core.ShardBucket

// Len returns the length of the heap
func (h Heap) Len() int {
	return len(h)
}

func (h Heap) Less(i, j int) bool {
	if h[i].TestTime != h[j].TestTime {
		return h[i].TestTime < h[j].TestTime
	}
	// ties go to the earliest bucket so assignment stays deterministic
	return h[i].Index < h[j].Index
}

// Swap swaps the values of two buckets
func (h Heap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// Push adds a new bucket to the heap
func (h *Heap) Push(x interface{}) {
	item := x.(*core.ShardBucket)
	*h = append(*h, item)
}

// Pop removes the top bucket from the heap
func (h *Heap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil // avoid memory leak
	*h = old[0 : n-1]
	return x
}

// AssignHead assigns a packing item to the head bucket, the one with the
// least accumulated test time.
func (h *Heap) AssignHead(item *core.PackingItem) {
	bucket := (*h)[0]
	bucket.Specs = append(bucket.Specs, item.Specs...)
	bucket.TestTime += item.Duration
	if item.Capability != "" {
		bucket.Capabilities[item.Capability] = struct{}{}
	} else {
		bucket.HasStandardSpecs = true
	}
	// heapify after updating the bucket
	heap.Fix(h, 0)
}
