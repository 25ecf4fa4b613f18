// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package hjc

// A ReplacementLedger accumulates original-job-name to aggregate-job-name
// entries over a clustering run. It is many-to-one and defers all graph
// surgery: replaced jobs stay in the graph until [Clusterer.Finalize] applies
// the ledger.
//
// Two structural invariants hold by construction and are asserted on every
// Record call: a job is replaced at most once, and no key is ever also a
// value. The second is what lets finalization substitute relation endpoints
// in a single hop. Violating either means the engine itself is corrupt, so
// Record panics rather than returning an error.
type ReplacementLedger struct {
	order       []string
	replacement map[string]string
	aggregates  map[string]struct{}
}

// NewReplacementLedger returns an empty ledger.
func NewReplacementLedger() *ReplacementLedger {
	return &ReplacementLedger{
		replacement: make(map[string]string),
		aggregates:  make(map[string]struct{}),
	}
}

// Record registers every job in jobs as replaced by the named aggregate.
func (l *ReplacementLedger) Record(jobs []*Job, aggregate string) {
	if _, ok := l.replacement[aggregate]; ok {
		panic("hjc: aggregate " + aggregate + " was itself already replaced")
	}
	for _, j := range jobs {
		if _, ok := l.replacement[j.Name]; ok {
			panic("hjc: job " + j.Name + " replaced twice")
		}
		if _, ok := l.aggregates[j.Name]; ok {
			panic("hjc: aggregate " + j.Name + " recorded as a constituent")
		}
		l.replacement[j.Name] = aggregate
		l.order = append(l.order, j.Name)
	}
	l.aggregates[aggregate] = struct{}{}
}

// Replacement returns the aggregate name that replaced the named job, if any.
func (l *ReplacementLedger) Replacement(name string) (string, bool) {
	v, ok := l.replacement[name]
	return v, ok
}

// Len returns the number of replaced jobs.
func (l *ReplacementLedger) Len() int {
	return len(l.order)
}

// replaced returns the replaced job names in recording order.
func (l *ReplacementLedger) replaced() []string {
	return l.order
}
