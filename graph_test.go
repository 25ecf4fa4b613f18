// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package hjc_test

import (
	"testing"

	hjc "github.com/petenewcomb/hjc-go"
	"github.com/stretchr/testify/require"
)

func TestGraphJobMembership(t *testing.T) {
	chk := require.New(t)
	g := hjc.NewGraph()
	tx := hjc.Transformation{Name: "tx"}

	a := hjc.NewJob("a", tx, "siteA")
	b := hjc.NewJob("b", tx, "siteB")
	chk.NoError(g.AddJob(a))
	chk.NoError(g.AddJob(b))
	chk.Equal(2, g.Len())

	// Names are identities: a second "a" is rejected even as a new object.
	err := g.AddJob(hjc.NewJob("a", tx, "siteB"))
	chk.ErrorIs(err, hjc.ErrDuplicateJob)

	got, ok := g.Job("a")
	chk.True(ok)
	chk.Same(a, got)

	chk.Equal([]*hjc.Job{a, b}, g.Jobs())

	chk.True(g.RemoveJob("a"))
	chk.False(g.RemoveJob("a"))
	chk.Equal(1, g.Len())
	_, ok = g.Job("a")
	chk.False(ok)
	chk.Equal([]*hjc.Job{b}, g.Jobs())
}

func TestGraphRelations(t *testing.T) {
	chk := require.New(t)
	g := hjc.NewGraph()

	g.AddRelation("a", "b")
	g.AddRelation("a", "c")
	g.AddRelation("a", "b") // duplicates are legal until finalization

	rels := g.Relations()
	chk.Equal([]hjc.Relation{
		{Parent: "a", Child: "b"},
		{Parent: "a", Child: "c"},
		{Parent: "a", Child: "b"},
	}, rels)

	// The returned slice is a copy.
	rels[0].Parent = "mutated"
	chk.Equal("a", g.Relations()[0].Parent)
}
