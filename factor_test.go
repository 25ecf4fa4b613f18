// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package hjc_test

import (
	"testing"

	hjc "github.com/petenewcomb/hjc-go"
	"github.com/stretchr/testify/require"
)

func profiledJob(profile hjc.Profile) *hjc.Job {
	j := hjc.NewJob("sample", hjc.Transformation{Namespace: "test", Name: "tx", Version: "1.0"}, "siteA")
	j.Profile = profile
	return j
}

func TestResolveCollapseFactorPrecedence(t *testing.T) {
	defaults := hjc.ParseSiteDefaults("siteA=4,siteB=2")

	for _, tc := range []struct {
		name    string
		profile hjc.Profile
		site    string
		size    int
		want    hjc.CollapseFactor
	}{
		{
			name:    "bundle distributes remainder",
			profile: hjc.Profile{hjc.ProfileBundle: "3"},
			site:    "siteA",
			size:    7,
			want:    hjc.CollapseFactor{Size: 2, Remainder: 1},
		},
		{
			name:    "bundle overrides collapse",
			profile: hjc.Profile{hjc.ProfileBundle: "2", hjc.ProfileCollapse: "5"},
			site:    "siteA",
			size:    10,
			want:    hjc.CollapseFactor{Size: 5, Remainder: 0},
		},
		{
			name:    "bundle equal to size degenerates to no merging",
			profile: hjc.Profile{hjc.ProfileBundle: "7"},
			site:    "siteA",
			size:    7,
			want:    hjc.CollapseFactor{Size: 1, Remainder: 0},
		},
		{
			name:    "collapse overrides site default",
			profile: hjc.Profile{hjc.ProfileCollapse: "3"},
			site:    "siteA",
			size:    10,
			want:    hjc.CollapseFactor{Size: 3, Remainder: 0},
		},
		{
			name: "site default applies without profile",
			site: "siteA",
			size: 10,
			want: hjc.CollapseFactor{Size: 4, Remainder: 0},
		},
		{
			name: "no merging without profile or default",
			site: "siteC",
			size: 10,
			want: hjc.CollapseFactor{Size: 1, Remainder: 0},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			chk := require.New(t)
			got, err := hjc.ResolveCollapseFactor(tc.site, profiledJob(tc.profile), tc.size, defaults)
			chk.NoError(err)
			chk.Equal(tc.want, got)
		})
	}
}

func TestResolveCollapseFactorErrors(t *testing.T) {
	defaults := hjc.ParseSiteDefaults("siteA=4,badsite=oops")

	for _, tc := range []struct {
		name    string
		profile hjc.Profile
		site    string
		size    int
		want    error
	}{
		{
			name:    "bundle of zero",
			profile: hjc.Profile{hjc.ProfileBundle: "0"},
			site:    "siteA",
			size:    5,
			want:    hjc.ErrInvalidBundle,
		},
		{
			name:    "bundle larger than bucket",
			profile: hjc.Profile{hjc.ProfileBundle: "6"},
			site:    "siteA",
			size:    5,
			want:    hjc.ErrInvalidBundle,
		},
		{
			name:    "bundle not an integer",
			profile: hjc.Profile{hjc.ProfileBundle: "three"},
			site:    "siteA",
			size:    5,
			want:    hjc.ErrBadProfileValue,
		},
		{
			name:    "negative collapse",
			profile: hjc.Profile{hjc.ProfileCollapse: "-2"},
			site:    "siteA",
			size:    5,
			want:    hjc.ErrBadProfileValue,
		},
		{
			name: "malformed site default value",
			site: "badsite",
			size: 5,
			want: hjc.ErrBadProfileValue,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			chk := require.New(t)
			_, err := hjc.ResolveCollapseFactor(tc.site, profiledJob(tc.profile), tc.size, defaults)
			chk.ErrorIs(err, tc.want)
		})
	}
}

func TestParseSiteDefaults(t *testing.T) {
	chk := require.New(t)

	d := hjc.ParseSiteDefaults(" siteA = 3 ,junk,=9,siteB=2,siteA=5,, siteC =")
	chk.Equal(3, d.Len())

	v, ok := d.Lookup("siteA")
	chk.True(ok)
	chk.Equal("5", v) // later entry overrides

	v, ok = d.Lookup("siteB")
	chk.True(ok)
	chk.Equal("2", v)

	// An empty value is kept by the parser; it fails only when a bucket on
	// that site is resolved.
	v, ok = d.Lookup("siteC")
	chk.True(ok)
	chk.Equal("", v)

	_, ok = d.Lookup("junk")
	chk.False(ok)

	chk.Equal(0, hjc.ParseSiteDefaults("").Len())
}
