// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package hjc provides horizontal clustering of workflow jobs: it merges many
// small independent jobs that invoke the same transformation on the same
// execution site into fewer, larger aggregate jobs before submission. This
// reduces the per-job scheduling overhead paid on distributed execution
// resources, where queueing a job often costs more than running it.
//
// The engine operates on one dependency-free partition of a workflow graph at
// a time. Within a partition it groups jobs by transformation identity, then
// by execution site, and sizes the merges for each group using a two-key
// policy: a "bundle" profile value requests a target number of aggregate jobs,
// while a "collapse" profile value requests a fixed chunk size. Site-wide
// defaults and a built-in no-merge fallback complete the precedence chain. The
// actual aggregate jobs are built by a pluggable [Aggregator] so that callers
// control what a merged job looks like on their infrastructure.
//
// Because merging invalidates graph edges that referenced the original jobs,
// the engine defers all edge surgery to a single finalization step: each
// partition pass records original-to-aggregate replacements in a ledger, and
// [Clusterer.Finalize] rewrites the graph once, removing replaced jobs,
// redirecting every affected relation to its aggregate, and dropping the
// duplicate relations the merge produces.
//
// A [Clusterer] is a single-use, single-threaded session. Feed it partitions
// in dependency order via [Clusterer.DetermineClusters], then call
// [Clusterer.Finalize] exactly once.
package hjc
