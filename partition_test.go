// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package hjc_test

import (
	"testing"

	hjc "github.com/petenewcomb/hjc-go"
	"github.com/stretchr/testify/require"
)

func TestLevelPartitions(t *testing.T) {
	chk := require.New(t)
	g := hjc.NewGraph()
	tx := hjc.Transformation{Name: "tx"}

	// Diamond with a trailing node:
	//
	//	a -> b -> d -> e
	//	a -> c -> d
	jobs := make(map[string]*hjc.Job, 5)
	for _, name := range []string{"e", "d", "c", "b", "a"} {
		jobs[name] = hjc.NewJob(name, tx, "siteA")
		chk.NoError(g.AddJob(jobs[name]))
	}
	g.AddRelation("a", "b")
	g.AddRelation("a", "c")
	g.AddRelation("b", "d")
	g.AddRelation("c", "d")
	g.AddRelation("d", "e")

	partitions, err := hjc.LevelPartitions(g)
	chk.NoError(err)
	chk.Len(partitions, 4)

	chk.Equal("1", partitions[0].ID)
	chk.Equal([]string{jobs["a"].LogicalID}, partitions[0].JobIDs)
	chk.Equal("2", partitions[1].ID)
	chk.Equal([]string{jobs["b"].LogicalID, jobs["c"].LogicalID}, partitions[1].JobIDs)
	chk.Equal("3", partitions[2].ID)
	chk.Equal([]string{jobs["d"].LogicalID}, partitions[2].JobIDs)
	chk.Equal("4", partitions[3].ID)
	chk.Equal([]string{jobs["e"].LogicalID}, partitions[3].JobIDs)
}

func TestLevelPartitionsCycle(t *testing.T) {
	chk := require.New(t)
	g := hjc.NewGraph()
	tx := hjc.Transformation{Name: "tx"}
	chk.NoError(g.AddJob(hjc.NewJob("a", tx, "siteA")))
	chk.NoError(g.AddJob(hjc.NewJob("b", tx, "siteA")))
	chk.NoError(g.AddJob(hjc.NewJob("c", tx, "siteA")))
	g.AddRelation("a", "b")
	g.AddRelation("b", "c")
	g.AddRelation("c", "b")

	_, err := hjc.LevelPartitions(g)
	chk.ErrorIs(err, hjc.ErrCycle)
}

func TestLevelPartitionsUnknownEndpoint(t *testing.T) {
	chk := require.New(t)
	g := hjc.NewGraph()
	chk.NoError(g.AddJob(hjc.NewJob("a", hjc.Transformation{Name: "tx"}, "siteA")))
	g.AddRelation("a", "ghost")

	_, err := hjc.LevelPartitions(g)
	chk.ErrorIs(err, hjc.ErrUnknownJob)
}
