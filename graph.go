// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package hjc

import (
	"fmt"
	"slices"
)

// A Relation is a directed edge of the dependency graph, identifying parent
// and child jobs by name. Two relations are equal iff both endpoints are
// equal; that equality is what relation deduplication operates on.
type Relation struct {
	Parent string
	Child  string
}

// A Graph is a mutable workflow dependency graph: a set of jobs with unique
// names plus the relations between them. Job membership changes during
// clustering (aggregate jobs are inserted as they are built, replaced jobs are
// removed at finalization), so the graph is held by reference and mutated in
// place.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	jobs      []*Job
	byName    map[string]*Job
	relations []Relation
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		byName: make(map[string]*Job),
	}
}

// AddJob inserts a job into the graph. It fails with [ErrDuplicateJob] if a
// job with the same name is already present.
func (g *Graph) AddJob(j *Job) error {
	if _, ok := g.byName[j.Name]; ok {
		return fmt.Errorf("add job %q: %w", j.Name, ErrDuplicateJob)
	}
	g.byName[j.Name] = j
	g.jobs = append(g.jobs, j)
	return nil
}

// RemoveJob removes the named job, reporting whether it was present.
// Relations that reference the job are not touched; graph-wide edge
// consistency is restored by [Clusterer.Finalize].
func (g *Graph) RemoveJob(name string) bool {
	j, ok := g.byName[name]
	if !ok {
		return false
	}
	delete(g.byName, name)
	g.jobs = slices.DeleteFunc(g.jobs, func(x *Job) bool { return x == j })
	return true
}

// Job returns the named job and whether it is present.
func (g *Graph) Job(name string) (*Job, bool) {
	j, ok := g.byName[name]
	return j, ok
}

// Jobs returns the jobs currently in the graph in insertion order. The
// returned slice is a copy; the jobs themselves are shared.
func (g *Graph) Jobs() []*Job {
	return slices.Clone(g.jobs)
}

// Len returns the number of jobs currently in the graph.
func (g *Graph) Len() int {
	return len(g.jobs)
}

// AddRelation appends a parent-child edge. Endpoints are not validated here:
// workflow ingestion may add relations before the jobs they mention, and
// clustering restores consistency at finalization.
func (g *Graph) AddRelation(parent, child string) {
	g.relations = append(g.relations, Relation{Parent: parent, Child: child})
}

// Relations returns a copy of the graph's current edge list in order.
func (g *Graph) Relations() []Relation {
	return slices.Clone(g.relations)
}
