// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package hjc

import (
	"fmt"
	"strconv"
	"strings"
)

// defaultCollapseFactor is used when neither job profile nor site defaults
// say otherwise. A chunk size of one means no merging.
const defaultCollapseFactor = 1

// A CollapseFactor describes how a bucket of same-transformation, same-site
// jobs is chunked into aggregates: Remainder chunks of Size+1 jobs, followed
// by chunks of Size jobs, consumed in bucket order.
type CollapseFactor struct {
	Size      int
	Remainder int
}

// singleton reports whether the factor would only ever produce chunks of one
// job, i.e. that merging is pointless.
func (f CollapseFactor) singleton() bool {
	return f.Size == 1 && f.Remainder == 0
}

// SiteDefaults maps execution sites to default collapse values, retaining the
// order in which sites first appeared in the configuration string. Values are
// kept as raw strings and validated when a bucket on that site is actually
// resolved, matching how job profiles are handled.
type SiteDefaults struct {
	sites  []string
	values map[string]string
}

// ParseSiteDefaults parses a configuration string of the form
// "site1=v1,site2=v2,...". Malformed tokens — no '=', or '=' in the first
// position — are skipped, not fatal. Keys and values are trimmed. A later
// entry for a site already seen overrides the earlier value in place.
func ParseSiteDefaults(s string) SiteDefaults {
	d := SiteDefaults{values: make(map[string]string)}
	for tok := range strings.SplitSeq(s, ",") {
		pos := strings.Index(tok, "=")
		if pos <= 0 {
			continue
		}
		site := strings.TrimSpace(tok[:pos])
		if site == "" {
			continue
		}
		if _, ok := d.values[site]; !ok {
			d.sites = append(d.sites, site)
		}
		d.values[site] = strings.TrimSpace(tok[pos+1:])
	}
	return d
}

// Lookup returns the raw default collapse value configured for site.
func (d SiteDefaults) Lookup(site string) (string, bool) {
	v, ok := d.values[site]
	return v, ok
}

// Len returns the number of sites with a configured default.
func (d SiteDefaults) Len() int {
	return len(d.sites)
}

// ResolveCollapseFactor computes the collapse factor for a bucket of size
// jobs scheduled on site, taking the bucket's representative job for its
// profile values. Precedence, highest first:
//
//  1. bundle profile value B: size/B chunks with size%B of them one larger
//  2. collapse profile value C: chunks of C
//  3. configured site default: chunks of that value
//  4. no merging
//
// A bundle value of zero or exceeding the bucket size fails with
// [ErrInvalidBundle] rather than silently producing zero-size chunks. Any
// non-integer or negative value fails with [ErrBadProfileValue].
func ResolveCollapseFactor(site string, sample *Job, size int, defaults SiteDefaults) (CollapseFactor, error) {
	if b, ok, err := sample.Profile.intValue(ProfileBundle); ok {
		if err != nil {
			return CollapseFactor{}, err
		}
		if b == 0 || b > size {
			return CollapseFactor{}, fmt.Errorf("bundle %d for bucket of %d jobs on site %q: %w", b, size, site, ErrInvalidBundle)
		}
		return CollapseFactor{Size: size / b, Remainder: size % b}, nil
	}

	if c, ok, err := sample.Profile.intValue(ProfileCollapse); ok {
		if err != nil {
			return CollapseFactor{}, err
		}
		return CollapseFactor{Size: c}, nil
	}

	if raw, ok := defaults.Lookup(site); ok {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return CollapseFactor{}, fmt.Errorf("site default for %q = %q: %w", site, raw, ErrBadProfileValue)
		}
		return CollapseFactor{Size: v}, nil
	}

	return CollapseFactor{Size: defaultCollapseFactor}, nil
}
