// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package hjc

import (
	"slices"

	"github.com/gammazero/deque"
)

// groupByTransformation partitions jobs into contiguous runs that share a
// transformation identity: a stable sort by [Transformation.Compare] followed
// by a single linear scan that starts a new group at each identity boundary.
// Stability preserves the partition's relative job order within each group,
// which keeps aggregate naming and constituent order deterministic.
func groupByTransformation(jobs []*Job) [][]*Job {
	sorted := slices.Clone(jobs)
	slices.SortStableFunc(sorted, func(a, b *Job) int {
		return a.Transformation.Compare(b.Transformation)
	})

	var groups [][]*Job
	var group []*Job
	for _, j := range sorted {
		if len(group) > 0 && j.Transformation.Compare(group[0].Transformation) != 0 {
			groups = append(groups, group)
			group = nil
		}
		group = append(group, j)
	}
	if len(group) > 0 {
		groups = append(groups, group)
	}
	return groups
}

// siteBuckets splits one transformation group by execution site, preserving
// both the order in which sites first appear and the job order within each
// site. Buckets are deques because chunking consumes them front to back.
type siteBuckets struct {
	sites  []string
	bySite map[string]*deque.Deque[*Job]
}

func bucketBySite(jobs []*Job) *siteBuckets {
	b := &siteBuckets{
		bySite: make(map[string]*deque.Deque[*Job]),
	}
	for _, j := range jobs {
		q, ok := b.bySite[j.Site]
		if !ok {
			q = &deque.Deque[*Job]{}
			b.bySite[j.Site] = q
			b.sites = append(b.sites, j.Site)
		}
		q.PushBack(j)
	}
	return b
}

// popChunk removes and returns up to n jobs from the front of the bucket.
func popChunk(q *deque.Deque[*Job], n int) []*Job {
	if n > q.Len() {
		n = q.Len()
	}
	chunk := make([]*Job, n)
	for i := range chunk {
		chunk[i] = q.PopFront()
	}
	return chunk
}
