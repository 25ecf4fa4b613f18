// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/petenewcomb/hjc-go"
	"pgregory.net/rapid"
)

// A Plan is one generated workflow: its jobs arranged in levels, the
// relations between them, the level partitions, the site-defaults
// configuration string, and the per-cohort expectations.
type Plan struct {
	Sites         []string
	DisabledSites []string
	SiteDefaults  string
	Jobs          []*hjc.Job
	Relations     []hjc.Relation
	Partitions    []hjc.Partition
	Cohorts       []*Cohort
}

// A Cohort is the set of jobs of one partition that share a transformation
// and a site — exactly one clustering bucket. Jobs are in partition order.
type Cohort struct {
	Partition      string
	Transformation hjc.Transformation
	Site           string
	Jobs           []*hjc.Job

	profile     profileKind
	value       int
	defaultSize int
	hasDefault  bool
	disabled    bool
}

type profileKind int

const (
	profileNone profileKind = iota
	profileCollapse
	profileBundle
)

// NewPlan generates a workflow plan.
func NewPlan(t *rapid.T, config *Config) *Plan {
	plan := &Plan{}

	txCount := config.TransformationCount.Draw(t, "txCount")
	transformations := make([]hjc.Transformation, txCount)
	for i := range transformations {
		transformations[i] = hjc.Transformation{
			Namespace: "sim",
			Name:      fmt.Sprintf("tx%d", i),
			Version:   "1.0",
		}
	}

	siteCount := config.SiteCount.Draw(t, "siteCount")
	defaults := make(map[string]int, siteCount)
	var tokens []string
	for i := range siteCount {
		site := fmt.Sprintf("site%d", i)
		plan.Sites = append(plan.Sites, site)
		if rapid.Float64Range(0, 1).Draw(t, site+".defaultP") < config.SiteDefaultProbability {
			v := rapid.IntRange(0, 4).Draw(t, site+".default")
			defaults[site] = v
			tokens = append(tokens, site+"="+strconv.Itoa(v))
		}
		if rapid.Float64Range(0, 1).Draw(t, site+".disabledP") < config.DisabledSiteProbability {
			plan.DisabledSites = append(plan.DisabledSites, site)
		}
	}
	for i := range config.MalformedTokenCount.Draw(t, "malformedTokens") {
		// Tokens without '=' or with '=' first are skipped by the parser.
		tokens = append(tokens, rapid.SampledFrom([]string{"junk", "=9", " "}).Draw(t, fmt.Sprintf("malformed%d", i)))
	}
	plan.SiteDefaults = strings.Join(tokens, ",")

	disabled := make(map[string]bool, len(plan.DisabledSites))
	for _, s := range plan.DisabledSites {
		disabled[s] = true
	}

	levelCount := config.LevelCount.Draw(t, "levelCount")
	cohorts := make(map[string]*Cohort)
	var previousLevel []*hjc.Job
	seq := 0
	for level := 1; level <= levelCount; level++ {
		partitionID := strconv.Itoa(level)
		partition := hjc.Partition{ID: partitionID}

		jobCount := config.JobsPerLevel.Draw(t, fmt.Sprintf("level%d.jobs", level))
		levelJobs := make([]*hjc.Job, 0, jobCount)
		for range jobCount {
			tx := transformations[rapid.IntRange(0, txCount-1).Draw(t, "tx")]
			site := plan.Sites[rapid.IntRange(0, siteCount-1).Draw(t, "site")]
			job := hjc.NewJob(fmt.Sprintf("j%03d", seq), tx, site)
			seq++

			plan.Jobs = append(plan.Jobs, job)
			levelJobs = append(levelJobs, job)
			partition.JobIDs = append(partition.JobIDs, job.LogicalID)

			key := partitionID + "\x00" + tx.String() + "\x00" + site
			cohort, ok := cohorts[key]
			if !ok {
				cohort = &Cohort{
					Partition:      partitionID,
					Transformation: tx,
					Site:           site,
					disabled:       disabled[site],
				}
				if v, ok := defaults[site]; ok {
					cohort.defaultSize = v
					cohort.hasDefault = true
				}
				cohorts[key] = cohort
				plan.Cohorts = append(plan.Cohorts, cohort)
			}
			cohort.Jobs = append(cohort.Jobs, job)

			// Every non-root job gets one parent in the previous level, so
			// its level is exactly this one. Extra parents from any earlier
			// level (including duplicates) only reinforce that.
			if level > 1 {
				parent := rapid.SampledFrom(previousLevel).Draw(t, "parent")
				plan.Relations = append(plan.Relations, hjc.Relation{Parent: parent.Name, Child: job.Name})
				for range rapid.IntRange(0, config.MaxParentCount-1).Draw(t, "extraParents") {
					extra := rapid.SampledFrom(plan.Jobs[:len(plan.Jobs)-len(levelJobs)]).Draw(t, "extraParent")
					plan.Relations = append(plan.Relations, hjc.Relation{Parent: extra.Name, Child: job.Name})
				}
			}
		}
		plan.Partitions = append(plan.Partitions, partition)
		previousLevel = levelJobs
	}

	// Assign profiles cohort by cohort so the bucket's representative job
	// speaks for the whole bucket.
	for _, cohort := range plan.Cohorts {
		size := len(cohort.Jobs)
		label := "cohort." + cohort.Partition + "." + cohort.Transformation.String() + "." + cohort.Site
		cohort.profile = profileKind(rapid.IntRange(0, 2).Draw(t, label+".kind"))
		var profile hjc.Profile
		switch cohort.profile {
		case profileCollapse:
			cohort.value = rapid.IntRange(0, size+2).Draw(t, label+".collapse")
			profile = hjc.Profile{hjc.ProfileCollapse: strconv.Itoa(cohort.value)}
		case profileBundle:
			cohort.value = rapid.IntRange(1, size).Draw(t, label+".bundle")
			profile = hjc.Profile{hjc.ProfileBundle: strconv.Itoa(cohort.value)}
		}
		if profile != nil {
			for _, j := range cohort.Jobs {
				j.Profile = profile
			}
		}
	}

	return plan
}

// Build assembles a fresh graph from the plan. Each call returns a new graph
// over the same job objects, so a plan can be clustered more than once.
func (p *Plan) Build(t *rapid.T) *hjc.Graph {
	g := hjc.NewGraph()
	for _, j := range p.Jobs {
		if err := g.AddJob(j); err != nil {
			t.Fatalf("building plan graph: %v", err)
		}
	}
	for _, rel := range p.Relations {
		g.AddRelation(rel.Parent, rel.Child)
	}
	return g
}

// ExpectedChunkSizes returns the chunk sizes the engine should aggregate this
// cohort into, in consumption order. A nil result means the cohort must be
// left untouched.
func (c *Cohort) ExpectedChunkSizes() []int {
	size := len(c.Jobs)
	if size <= 1 || c.disabled {
		return nil
	}
	return ChunkSizes(size, c.factor(size))
}

// ExpectedReplacements returns how many of the cohort's jobs the engine
// should absorb into aggregates.
func (c *Cohort) ExpectedReplacements() int {
	n := 0
	for _, chunk := range c.ExpectedChunkSizes() {
		n += chunk
	}
	return n
}

func (c *Cohort) factor(size int) hjc.CollapseFactor {
	switch c.profile {
	case profileBundle:
		return hjc.CollapseFactor{Size: size / c.value, Remainder: size % c.value}
	case profileCollapse:
		return hjc.CollapseFactor{Size: c.value}
	}
	if c.hasDefault {
		return hjc.CollapseFactor{Size: c.defaultSize}
	}
	return hjc.CollapseFactor{Size: 1}
}

// ChunkSizes spells out the clustering policy for one bucket as data: given
// the bucket size and a collapse factor, it returns the sizes of the chunks
// that become aggregates. Remainder chunks of Size+1 come first; a computed
// chunk size of one or less stops consumption, leaving the tail unclustered.
func ChunkSizes(size int, factor hjc.CollapseFactor) []int {
	if factor.Size == 1 && factor.Remainder == 0 {
		return nil
	}
	if factor.Size >= size {
		return []int{size}
	}
	var chunks []int
	remainder := factor.Remainder
	left := size
	for left > 0 {
		chunk := factor.Size
		if remainder > 0 {
			chunk++
			remainder--
		}
		if chunk <= 1 {
			break
		}
		chunk = min(chunk, left)
		chunks = append(chunks, chunk)
		left -= chunk
	}
	return chunks
}
