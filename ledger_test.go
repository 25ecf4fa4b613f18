// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package hjc_test

import (
	"testing"

	hjc "github.com/petenewcomb/hjc-go"
	"github.com/stretchr/testify/require"
)

func namedJobs(names ...string) []*hjc.Job {
	tx := hjc.Transformation{Name: "tx"}
	jobs := make([]*hjc.Job, len(names))
	for i, n := range names {
		jobs[i] = hjc.NewJob(n, tx, "siteA")
	}
	return jobs
}

func TestReplacementLedgerRecord(t *testing.T) {
	chk := require.New(t)
	l := hjc.NewReplacementLedger()

	l.Record(namedJobs("a", "b"), "P1_ID1")
	l.Record(namedJobs("c"), "P1_ID2")
	chk.Equal(3, l.Len())

	v, ok := l.Replacement("a")
	chk.True(ok)
	chk.Equal("P1_ID1", v)
	v, ok = l.Replacement("c")
	chk.True(ok)
	chk.Equal("P1_ID2", v)

	_, ok = l.Replacement("P1_ID1")
	chk.False(ok)
	_, ok = l.Replacement("z")
	chk.False(ok)
}

func TestReplacementLedgerRejectsCorruption(t *testing.T) {
	chk := require.New(t)

	// A job may be replaced at most once.
	l := hjc.NewReplacementLedger()
	l.Record(namedJobs("a"), "P1_ID1")
	chk.Panics(func() {
		l.Record(namedJobs("a"), "P1_ID2")
	})

	// No key may ever also be a value: an aggregate must not be replaced...
	l = hjc.NewReplacementLedger()
	l.Record(namedJobs("a"), "P1_ID1")
	chk.Panics(func() {
		l.Record(namedJobs("P1_ID1"), "P1_ID2")
	})

	// ...and a replaced job's name must never reappear as an aggregate.
	l = hjc.NewReplacementLedger()
	l.Record(namedJobs("a"), "P1_ID1")
	chk.Panics(func() {
		l.Record(namedJobs("b"), "a")
	})
}
