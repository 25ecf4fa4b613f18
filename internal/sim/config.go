// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import "pgregory.net/rapid"

var DefaultConfig = Config{
	LevelCount:          IntRangeConfig{Min: 1, Max: 4},
	JobsPerLevel:        IntRangeConfig{Min: 1, Max: 12},
	TransformationCount: IntRangeConfig{Min: 1, Max: 3},
	SiteCount:           IntRangeConfig{Min: 1, Max: 3},
	MaxParentCount:      3,

	SiteDefaultProbability:  0.4,
	DisabledSiteProbability: 0.2,
	MalformedTokenCount:     IntRangeConfig{Min: 0, Max: 2},
}

type Config struct {
	LevelCount          IntRangeConfig
	JobsPerLevel        IntRangeConfig
	TransformationCount IntRangeConfig
	SiteCount           IntRangeConfig
	MaxParentCount      int

	// SiteDefaultProbability is the chance that a site gets a default
	// collapse value in the configuration string.
	SiteDefaultProbability float64

	// DisabledSiteProbability is the chance that a site is reported
	// ineligible by the plan's aggregator.
	DisabledSiteProbability float64

	// MalformedTokenCount controls how many junk tokens are mixed into the
	// site-defaults configuration string.
	MalformedTokenCount IntRangeConfig
}

type IntRangeConfig struct {
	Min int
	Max int
}

func (c IntRangeConfig) Draw(t *rapid.T, label string) int {
	return rapid.IntRange(c.Min, c.Max).Draw(t, label)
}
