// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package sim provides a way to generate simulated workflows for testing the
// clustering engine. It generates a plan for each workflow, which it models
// as a directed acyclic graph of jobs arranged in levels: every job in a
// level depends only on jobs in earlier levels, so each level is a valid
// clustering partition. Jobs are assigned transformations, sites, and
// collapse/bundle profiles cohort by cohort, and each cohort knows the chunk
// sizes the engine should produce for it, giving tests an independent
// expectation to check engine output against. New plans are generated
// according to a set of configuration parameters that determine the size and
// complexity of the graph.
package sim
