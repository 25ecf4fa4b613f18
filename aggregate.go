// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package hjc

import "github.com/google/uuid"

// An AggregatedJob is a synthetic job standing in for a merged chunk of
// original jobs. Its embedded [Job] is what enters the graph: the name is the
// partition-qualified identity assigned by the clusterer and the logical ID is
// freshly generated. Constituents records the original jobs in merge order;
// it is bookkeeping, not ownership — the constituents remain graph members
// until finalization removes them.
type AggregatedJob struct {
	Job
	Constituents []*Job
}

// NewAggregatedJob assembles an aggregate for the given constituents. The
// execution site is taken from the first constituent, since a chunk is by
// construction scheduled on a single site.
func NewAggregatedJob(name string, tx Transformation, constituents []*Job) *AggregatedJob {
	a := &AggregatedJob{
		Job: Job{
			Name:           name,
			LogicalID:      uuid.NewString(),
			Transformation: tx,
		},
		Constituents: constituents,
	}
	if len(constituents) > 0 {
		a.Site = constituents[0].Site
	}
	return a
}

// ConstituentNames returns the names of the constituent jobs in merge order.
func (a *AggregatedJob) ConstituentNames() []string {
	names := make([]string, len(a.Constituents))
	for i, j := range a.Constituents {
		names[i] = j.Name
	}
	return names
}
