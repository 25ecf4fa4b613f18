// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package hjc

import (
	"cmp"
	"fmt"
	"strconv"

	"github.com/addrummond/heap"
)

// A Partition is a set of jobs, referenced by logical ID, that have no
// dependency among themselves and are therefore eligible to be clustered
// together. Partitions are produced upstream (or by [LevelPartitions]) and
// consumed exactly once by [Clusterer.DetermineClusters].
//
// Partition IDs qualify the names of the aggregate jobs built from the
// partition, so they must be unique across a clustering run.
type Partition struct {
	ID     string
	JobIDs []string
}

type levelNode struct {
	level int
	name  string
}

func (a *levelNode) Cmp(b *levelNode) int {
	return cmp.Or(
		cmp.Compare(a.level, b.level),
		cmp.Compare(a.name, b.name),
	)
}

// LevelPartitions decomposes the graph into dependency-free levels: a job's
// level is one more than the maximum level of its parents, and each level
// becomes one partition, in dependency order. Output is deterministic — jobs
// within a partition are ordered by name — so that downstream aggregate
// naming is reproducible for a given graph.
//
// Fails with [ErrCycle] if the relations do not form a DAG, and with
// [ErrUnknownJob] if a relation endpoint names a job not in the graph.
func LevelPartitions(g *Graph) ([]Partition, error) {
	indegree := make(map[string]int, g.Len())
	children := make(map[string][]string)
	for _, j := range g.jobs {
		indegree[j.Name] = 0
	}
	for _, rel := range g.relations {
		if _, ok := indegree[rel.Parent]; !ok {
			return nil, fmt.Errorf("relation %s -> %s: parent: %w", rel.Parent, rel.Child, ErrUnknownJob)
		}
		if _, ok := indegree[rel.Child]; !ok {
			return nil, fmt.Errorf("relation %s -> %s: child: %w", rel.Parent, rel.Child, ErrUnknownJob)
		}
		indegree[rel.Child]++
		children[rel.Parent] = append(children[rel.Parent], rel.Child)
	}

	level := make(map[string]int, g.Len())
	var ready heap.Heap[levelNode, heap.Min]
	for _, j := range g.jobs {
		if indegree[j.Name] == 0 {
			level[j.Name] = 1
			heap.PushOrderable(&ready, levelNode{level: 1, name: j.Name})
		}
	}

	// The heap pops in (level, name) order, so a job is popped only after
	// every job of lower levels, by which point its own level is final.
	var partitions []Partition
	processed := 0
	for {
		node, ok := heap.PopOrderable(&ready)
		if !ok {
			break
		}
		processed++
		if len(partitions) < node.level {
			partitions = append(partitions, Partition{ID: strconv.Itoa(node.level)})
		}
		p := &partitions[node.level-1]
		j := g.byName[node.name]
		p.JobIDs = append(p.JobIDs, j.LogicalID)

		for _, child := range children[node.name] {
			if l := node.level + 1; l > level[child] {
				level[child] = l
			}
			indegree[child]--
			if indegree[child] == 0 {
				heap.PushOrderable(&ready, levelNode{level: level[child], name: child})
			}
		}
	}
	if processed != g.Len() {
		return nil, fmt.Errorf("%d of %d jobs unreachable from roots: %w", g.Len()-processed, g.Len(), ErrCycle)
	}
	return partitions, nil
}
