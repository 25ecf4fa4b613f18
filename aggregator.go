// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package hjc

import (
	"fmt"
	"maps"
)

// An Aggregator builds aggregate jobs from chunks of original jobs. It is the
// engine's pluggable extension point: the engine decides which jobs merge and
// in what chunk sizes, while the Aggregator decides what the merged job
// actually is on the caller's infrastructure.
//
// Implementations must be deterministic for a given input chunk, and must not
// mutate the jobs they are given. They are invoked synchronously from the
// clustering path.
type Aggregator interface {
	// Eligible reports whether this aggregator can merge jobs of the sample's
	// transformation on the given site. An ineligible combination skips
	// merging for that bucket only; it is not an error.
	Eligible(site string, sample *Job) bool

	// Construct builds one aggregate job from the ordered chunk. The id is
	// the graph-unique name the aggregate must carry. Fails with an error
	// wrapping [ErrAggregation] if the chunk cannot be merged.
	Construct(jobs []*Job, tx Transformation, id string) (*AggregatedJob, error)

	// Name is a short display name for the merge kind, used in audit text.
	Name() string
}

// An AggregatorFactory selects the Aggregator variant for a bucket, keyed on
// the bucket's representative job. The engine calls it once per bucket.
type AggregatorFactory interface {
	LoadInstance(sample *Job) Aggregator
}

// AggregatorRegistry is an [AggregatorFactory] that dispatches on
// transformation identity, falling back to a default aggregator for
// transformations with no registered variant.
type AggregatorRegistry struct {
	fallback         Aggregator
	byTransformation map[string]Aggregator
}

// NewAggregatorRegistry returns a registry with the given default aggregator.
func NewAggregatorRegistry(fallback Aggregator) *AggregatorRegistry {
	if fallback == nil {
		panic("fallback aggregator must be non-nil")
	}
	return &AggregatorRegistry{
		fallback:         fallback,
		byTransformation: make(map[string]Aggregator),
	}
}

// Register installs an aggregator for a specific transformation identity,
// replacing any previous registration.
func (r *AggregatorRegistry) Register(tx Transformation, a Aggregator) {
	r.byTransformation[tx.String()] = a
}

// LoadInstance implements [AggregatorFactory].
func (r *AggregatorRegistry) LoadInstance(sample *Job) Aggregator {
	if a, ok := r.byTransformation[sample.Transformation.String()]; ok {
		return a
	}
	return r.fallback
}

// SerialAggregator is the built-in [Aggregator]: the aggregate stands for
// running its constituents sequentially on the bucket's site. The aggregate
// inherits the profile of its first constituent, which carries the collapse
// and bundle settings the whole bucket was sized with.
type SerialAggregator struct {
	disabled map[string]struct{}
}

// NewSerialAggregator returns a serial aggregator. Sites listed in
// disabledSites are reported ineligible, modelling sites whose catalog has no
// entry for the merge wrapper.
func NewSerialAggregator(disabledSites ...string) *SerialAggregator {
	a := &SerialAggregator{}
	if len(disabledSites) > 0 {
		a.disabled = make(map[string]struct{}, len(disabledSites))
		for _, s := range disabledSites {
			a.disabled[s] = struct{}{}
		}
	}
	return a
}

// Eligible implements [Aggregator].
func (a *SerialAggregator) Eligible(site string, _ *Job) bool {
	_, off := a.disabled[site]
	return !off
}

// Construct implements [Aggregator].
func (a *SerialAggregator) Construct(jobs []*Job, tx Transformation, id string) (*AggregatedJob, error) {
	if len(jobs) == 0 {
		return nil, fmt.Errorf("construct %s from empty chunk: %w", id, ErrAggregation)
	}
	site := jobs[0].Site
	for _, j := range jobs[1:] {
		if j.Site != site {
			return nil, fmt.Errorf("construct %s: constituents span sites %q and %q: %w", id, site, j.Site, ErrAggregation)
		}
	}
	fat := NewAggregatedJob(id, tx, jobs)
	if p := jobs[0].Profile; p != nil {
		fat.Profile = maps.Clone(p)
	}
	return fat, nil
}

// Name implements [Aggregator].
func (a *SerialAggregator) Name() string {
	return "serial"
}
