// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package hjc

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// A Transformation identifies the logical program a job invokes. It is the
// primary grouping key for horizontal clustering: only jobs that refer to the
// same transformation triple are candidates for merging with one another.
type Transformation struct {
	Namespace string
	Name      string
	Version   string
}

// String returns the canonical form of the transformation identity,
// namespace::name:version, omitting an empty namespace or version.
func (t Transformation) String() string {
	var sb strings.Builder
	if t.Namespace != "" {
		sb.WriteString(t.Namespace)
		sb.WriteString("::")
	}
	sb.WriteString(t.Name)
	if t.Version != "" {
		sb.WriteString(":")
		sb.WriteString(t.Version)
	}
	return sb.String()
}

// Compare imposes a total order on transformation identities. It never fails,
// regardless of input: identities are compared field by field as plain
// strings.
func (t Transformation) Compare(o Transformation) int {
	return cmp.Or(
		cmp.Compare(t.Namespace, o.Namespace),
		cmp.Compare(t.Name, o.Name),
		cmp.Compare(t.Version, o.Version),
	)
}

// Profile keys consulted by the collapse factor resolver.
const (
	// ProfileBundle requests a target number of aggregate jobs for a
	// transformation/site bucket. It takes precedence over ProfileCollapse.
	ProfileBundle = "bundle"

	// ProfileCollapse requests a fixed number of jobs per aggregate.
	ProfileCollapse = "collapse"
)

// A Profile is a set of named settings attached to a job. Values are kept as
// strings and interpreted where they are consumed, so a malformed value
// surfaces only when something actually depends on it.
type Profile map[string]string

// Lookup returns the raw value for key and whether it is present. A nil
// profile has no entries.
func (p Profile) Lookup(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// intValue parses the value for key as a non-negative integer. The boolean
// reports presence; an error means the value was present but malformed.
func (p Profile) intValue(key string) (int, bool, error) {
	raw, ok := p[key]
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, true, &profileValueError{key: key, raw: raw}
	}
	return n, true, nil
}

type profileValueError struct {
	key string
	raw string
}

func (e *profileValueError) Error() string {
	return "profile " + strconv.Quote(e.key) + " = " + strconv.Quote(e.raw) + ": " + ErrBadProfileValue.Error()
}

func (e *profileValueError) Unwrap() error {
	return ErrBadProfileValue
}

// A Job is a node of the dependency graph: a single invocation of a
// transformation, already assigned to an execution site by an upstream site
// selector.
//
// Name must be unique within a [Graph]; it is the identity that relations
// reference. LogicalID is the stable identity partitions reference, assigned
// when the workflow description is read and never changed by clustering.
type Job struct {
	Name           string
	LogicalID      string
	Transformation Transformation
	Site           string
	Profile        Profile
}

// NewJob creates a job with a freshly generated logical ID. Callers that
// ingest workflows with pre-assigned logical IDs can populate the struct
// directly instead.
func NewJob(name string, tx Transformation, site string) *Job {
	return &Job{
		Name:           name,
		LogicalID:      uuid.NewString(),
		Transformation: tx,
		Site:           site,
	}
}
