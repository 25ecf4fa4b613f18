// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package hjc

type constError string

func (e constError) Error() string {
	return string(e)
}

// ErrUnknownJob indicates that a partition referenced a job identity that does
// not resolve to any job known to the clusterer. The partition set and the
// graph have diverged upstream; the clustering run cannot continue.
const ErrUnknownJob = constError("unknown job in partition")

// ErrGraphDesync indicates that a job recorded in the replacement ledger could
// not be removed from the graph during finalization. The ledger and the graph
// have diverged; the clustering run cannot continue.
const ErrGraphDesync = constError("replaced job missing from graph")

// ErrBadProfileValue indicates that a profile or site-default setting that
// must be a non-negative integer did not parse as one.
const ErrBadProfileValue = constError("profile value is not a non-negative integer")

// ErrInvalidBundle indicates a bundle profile value that cannot produce a
// usable collapse factor for its bucket: zero, or larger than the number of
// jobs being bundled.
const ErrInvalidBundle = constError("bundle value invalid for bucket size")

// ErrFinalized is returned by [Clusterer.DetermineClusters] and
// [Clusterer.Finalize] once the session has been finalized.
const ErrFinalized = constError("clusterer already finalized")

// ErrAudit wraps audit sink failures. Audit errors are surfaced to the caller
// but do not roll back graph mutations already applied.
const ErrAudit = constError("audit recording failed")

// ErrDuplicateJob is returned by [Graph.AddJob] when a job with the same name
// is already present.
const ErrDuplicateJob = constError("job name already in graph")

// ErrAggregation indicates that an [Aggregator] could not construct an
// aggregate job from an otherwise eligible chunk.
const ErrAggregation = constError("aggregate construction failed")

// ErrCycle is returned by [LevelPartitions] when the graph's relations contain
// a cycle and therefore admit no level decomposition.
const ErrCycle = constError("dependency graph contains a cycle")
