// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package hjc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// A Clusterer is one horizontal clustering session over one dependency graph.
// It owns the session's mutable state: the replacement ledger, the job index,
// and the target graph, which it mutates in place.
//
// A Clusterer is single-use and single-threaded. Feed it partitions strictly
// sequentially, in an order consistent with the graph's dependency structure
// (the engine does not verify inter-partition ordering), then call [Clusterer.Finalize]
// exactly once. It is not safe for concurrent use.
type Clusterer struct {
	graph     *Graph
	logger    *zap.Logger
	factory   AggregatorFactory
	auditor   Auditor
	defaults  SiteDefaults
	ledger    *ReplacementLedger
	byLogical map[string]*Job
	finalized bool
}

// An Option configures a [Clusterer].
type Option func(*Clusterer)

// WithSiteDefaults configures per-site default collapse values from a string
// of the form "site1=v1,site2=v2,...". See [ParseSiteDefaults] for the token
// rules.
func WithSiteDefaults(s string) Option {
	return func(c *Clusterer) {
		c.defaults = ParseSiteDefaults(s)
	}
}

// WithAggregatorFactory replaces the default factory, which returns a
// [SerialAggregator] for every bucket.
func WithAggregatorFactory(f AggregatorFactory) Option {
	return func(c *Clusterer) {
		c.factory = f
	}
}

// WithAuditor installs an audit sink for merge events. The default records
// nothing.
func WithAuditor(a Auditor) Option {
	return func(c *Clusterer) {
		c.auditor = a
	}
}

// WithLogger installs a logger for per-bucket decisions. The default is a
// no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Clusterer) {
		c.logger = l
	}
}

// NewClusterer creates a clustering session over graph. The graph reference
// is retained and mutated in place; [Clusterer.Finalize] returns the same
// reference. The job index is built here, so every job a partition will
// reference must already be in the graph.
func NewClusterer(graph *Graph, opts ...Option) *Clusterer {
	c := &Clusterer{
		graph:   graph,
		logger:  zap.NewNop(),
		factory: NewAggregatorRegistry(NewSerialAggregator()),
		auditor: NopAuditor{},
		ledger:  NewReplacementLedger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.byLogical = make(map[string]*Job, graph.Len())
	for _, j := range graph.jobs {
		c.byLogical[j.LogicalID] = j
	}
	return c
}

// Description returns a short human-readable name for this clustering
// technique.
func (c *Clusterer) Description() string {
	return "horizontal clustering"
}

// DetermineClusters clusters one partition: it groups the partition's jobs by
// transformation identity and execution site, sizes the merges per bucket,
// builds aggregate jobs through the configured [AggregatorFactory], inserts
// them into the graph, and records the replacements in the session ledger.
// Original jobs are not removed here; [Clusterer.Finalize] applies the ledger to the
// graph once all partitions have been processed.
//
// A partition member that does not resolve to a known job fails with
// [ErrUnknownJob] and aborts the run. Audit sink failures are collected and
// returned wrapped in [ErrAudit] after the partition has been fully
// processed; the graph mutations stand.
func (c *Clusterer) DetermineClusters(partition Partition) error {
	if c.finalized {
		return ErrFinalized
	}

	jobs := make([]*Job, 0, len(partition.JobIDs))
	for _, id := range partition.JobIDs {
		j, ok := c.byLogical[id]
		if !ok {
			return fmt.Errorf("partition %s: job %q: %w", partition.ID, id, ErrUnknownJob)
		}
		jobs = append(jobs, j)
	}
	c.logger.Debug("collapsing jobs in partition",
		zap.String("partition", partition.ID),
		zap.Int("jobs", len(jobs)))

	// The aggregate id counter is shared across all groups and buckets of
	// this partition and never reused.
	nextID := 1
	var auditErrs []error
	for _, group := range groupByTransformation(jobs) {
		if err := c.collapseGroup(group, partition.ID, &nextID, &auditErrs); err != nil {
			return err
		}
	}
	if len(auditErrs) > 0 {
		return fmt.Errorf("partition %s: %w: %w", partition.ID, ErrAudit, errors.Join(auditErrs...))
	}
	return nil
}

// collapseGroup clusters one run of same-transformation jobs, bucket by
// bucket. Recoverable conditions (singleton buckets, ineligible sites,
// no-merge factors) skip the bucket; resolver and construction failures are
// fatal and abort the run.
func (c *Clusterer) collapseGroup(group []*Job, partitionID string, nextID *int, auditErrs *[]error) error {
	tx := group[0].Transformation
	logger := c.logger.With(
		zap.String("transformation", tx.String()),
		zap.String("partition", partitionID))
	logger.Debug("collapsing group", zap.Int("jobs", len(group)))

	buckets := bucketBySite(group)
	for _, site := range buckets.sites {
		bucket := buckets.bySite[site]
		size := bucket.Len()
		if size <= 1 {
			logger.Debug("no collapsing for site: single job", zap.String("site", site))
			continue
		}

		sample := bucket.Front()
		aggregator := c.factory.LoadInstance(sample)
		if !aggregator.Eligible(site, sample) {
			logger.Debug("no collapsing for site: aggregator not eligible",
				zap.String("site", site),
				zap.String("aggregator", aggregator.Name()))
			continue
		}

		factor, err := ResolveCollapseFactor(site, sample, size, c.defaults)
		if err != nil {
			return fmt.Errorf("partition %s, transformation %s: %w", partitionID, tx, err)
		}
		if factor.singleton() {
			logger.Debug("no collapsing for site: collapse factor is (1,0)",
				zap.String("site", site))
			continue
		}
		logger.Debug("collapsing jobs at site",
			zap.String("site", site),
			zap.Int("size", factor.Size),
			zap.Int("remainder", factor.Remainder))

		if factor.Size >= size {
			// The whole bucket becomes a single aggregate.
			if err := c.aggregate(popChunk(bucket, size), tx, aggregator, partitionID, nextID, auditErrs); err != nil {
				return err
			}
			continue
		}

		remainder := factor.Remainder
		for bucket.Len() > 0 {
			chunk := factor.Size
			if remainder > 0 {
				chunk++
				remainder--
			}
			if chunk <= 1 {
				// Merging single jobs has no benefit; the unconsumed tail of
				// the bucket stays unclustered.
				break
			}
			if err := c.aggregate(popChunk(bucket, chunk), tx, aggregator, partitionID, nextID, auditErrs); err != nil {
				return err
			}
		}
	}
	return nil
}

// aggregate builds one aggregate job from chunk, inserts it into the graph,
// records the replacements, and emits the audit event.
func (c *Clusterer) aggregate(chunk []*Job, tx Transformation, aggregator Aggregator, partitionID string, nextID *int, auditErrs *[]error) error {
	id := constructID(partitionID, *nextID)
	fat, err := aggregator.Construct(chunk, tx, id)
	if err != nil {
		return fmt.Errorf("partition %s, transformation %s: %w", partitionID, tx, err)
	}
	*nextID++

	c.ledger.Record(chunk, fat.Name)
	if err := c.graph.AddJob(&fat.Job); err != nil {
		return fmt.Errorf("partition %s: insert aggregate: %w", partitionID, err)
	}
	names := fat.ConstituentNames()
	c.logger.Debug("created aggregate job",
		zap.String("aggregate", fat.Name),
		zap.String("aggregator", aggregator.Name()),
		zap.Strings("constituents", names))

	if err := c.auditor.RecordClustering(fat.Name, names); err != nil {
		*auditErrs = append(*auditErrs, fmt.Errorf("aggregate %s: %w", fat.Name, err))
	}
	return nil
}

// Finalize applies the session ledger to the graph: replaced jobs are
// removed, relations are redirected to the aggregates that absorbed their
// endpoints, and duplicate relations are dropped. It returns the same graph
// reference the session was created with.
//
// Finalize must be called exactly once, after the last partition. Subsequent
// calls, and any later DetermineClusters call, fail with [ErrFinalized]. A
// ledger entry whose job is missing from the graph fails with
// [ErrGraphDesync]; the graph must then be considered unusable.
func (c *Clusterer) Finalize() (*Graph, error) {
	if c.finalized {
		return nil, ErrFinalized
	}
	c.finalized = true
	if err := rewrite(c.graph, c.ledger, c.logger); err != nil {
		return nil, err
	}
	return c.graph, nil
}

// constructID builds the graph-unique name of an aggregate job from the
// partition id and the per-partition counter.
func constructID(partitionID string, id int) string {
	var sb strings.Builder
	sb.WriteString("P")
	sb.WriteString(partitionID)
	sb.WriteString("_ID")
	sb.WriteString(strconv.Itoa(id))
	return sb.String()
}
