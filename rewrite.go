// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package hjc

import (
	"fmt"

	"go.uber.org/zap"
)

// rewrite applies a replacement ledger to the graph. It removes every
// replaced job, substitutes relation endpoints with their aggregates, and
// deduplicates relations preserving first-seen order.
//
// Endpoint substitution is single-hop: a name must map directly to its final
// replacement. That holds because the ledger guarantees no key is ever also a
// value. Relations whose endpoints both collapse into the same aggregate
// become self-referential and are kept as degenerate edges.
func rewrite(g *Graph, ledger *ReplacementLedger, logger *zap.Logger) error {
	for _, name := range ledger.replaced() {
		aggregate, _ := ledger.Replacement(name)
		logger.Debug("replacing job",
			zap.String("job", name),
			zap.String("aggregate", aggregate))
		if !g.RemoveJob(name) {
			return fmt.Errorf("remove job %q: %w", name, ErrGraphDesync)
		}
	}
	logger.Debug("all clustered jobs removed from the workflow",
		zap.Int("replaced", ledger.Len()))

	merged := make([]Relation, 0, len(g.relations))
	seen := make(map[Relation]struct{}, len(g.relations))
	for _, rel := range g.relations {
		if v, ok := ledger.Replacement(rel.Parent); ok {
			rel.Parent = v
		}
		if v, ok := ledger.Replacement(rel.Child); ok {
			rel.Child = v
		}
		if _, dup := seen[rel]; dup {
			continue
		}
		seen[rel] = struct{}{}
		merged = append(merged, rel)
	}
	g.relations = merged
	return nil
}
