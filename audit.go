// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package hjc

// An Auditor records each merge event for traceability: which aggregate was
// created and which original jobs it absorbed, in merge order. It is called
// synchronously after each successful aggregate construction.
//
// Audit failures never abort clustering or roll back graph mutations; the
// engine finishes the partition and then surfaces them wrapped in [ErrAudit].
type Auditor interface {
	RecordClustering(aggregate string, constituents []string) error
}

// NopAuditor is the default [Auditor]; it records nothing.
type NopAuditor struct{}

// RecordClustering implements [Auditor].
func (NopAuditor) RecordClustering(string, []string) error {
	return nil
}

// AuditorFunc adapts a function to the [Auditor] interface.
type AuditorFunc func(aggregate string, constituents []string) error

// RecordClustering implements [Auditor].
func (f AuditorFunc) RecordClustering(aggregate string, constituents []string) error {
	return f(aggregate, constituents)
}
