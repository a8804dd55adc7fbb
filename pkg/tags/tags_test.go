package tags

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/srcstash/srcstash/pkg/errors"
	"github.com/srcstash/srcstash/pkg/locator"
	"github.com/srcstash/srcstash/pkg/tags/mocks"
)

func TestMatchTag(t *testing.T) {
	tests := []struct {
		name        string
		tags        []string
		version     string
		packageName string
		expected    string
		ok          bool
	}{
		{
			name:        "v-prefixed beats plain version",
			tags:        []string{"1.2.0", "v1.2.0", "pkg@1.2.0"},
			version:     "1.2.0",
			packageName: "pkg",
			expected:    "v1.2.0",
			ok:          true,
		},
		{
			name:        "plain version when no v-prefix",
			tags:        []string{"1.2.0", "pkg@1.2.0"},
			version:     "1.2.0",
			packageName: "pkg",
			expected:    "1.2.0",
			ok:          true,
		},
		{
			name:        "name-at-version convention",
			tags:        []string{"pkg@1.2.0", "other@1.2.0"},
			version:     "1.2.0",
			packageName: "pkg",
			expected:    "pkg@1.2.0",
			ok:          true,
		},
		{
			name:        "scoped name tag",
			tags:        []string{"@babel/core@7.23.0"},
			version:     "7.23.0",
			packageName: "@babel/core",
			expected:    "@babel/core@7.23.0",
			ok:          true,
		},
		{
			name:        "unscoped fallback for scoped packages",
			tags:        []string{"core@7.23.0"},
			version:     "7.23.0",
			packageName: "@babel/core",
			expected:    "core@7.23.0",
			ok:          true,
		},
		{
			name:        "unscoped convention not applied to unscoped names",
			tags:        []string{"lodash@4.17.21"},
			version:     "4.17.21",
			packageName: "lodash",
			expected:    "lodash@4.17.21",
			ok:          true,
		},
		{
			name:        "substring fallback",
			tags:        []string{"release-1.2.0-rc"},
			version:     "1.2.0",
			packageName: "pkg",
			expected:    "release-1.2.0-rc",
			ok:          true,
		},
		{
			name:        "substring is literal so dots are not wildcards",
			tags:        []string{"1x2x0"},
			version:     "1.2.0",
			packageName: "pkg",
			ok:          false,
		},
		{
			name:        "first substring match wins",
			tags:        []string{"build-1.2.0-alpha", "release-1.2.0"},
			version:     "1.2.0",
			packageName: "pkg",
			expected:    "build-1.2.0-alpha",
			ok:          true,
		},
		{
			name:        "no tags",
			tags:        nil,
			version:     "1.2.0",
			packageName: "pkg",
			ok:          false,
		},
		{
			name:        "no match at all",
			tags:        []string{"v2.0.0", "v3.0.0"},
			version:     "1.2.0",
			packageName: "pkg",
			ok:          false,
		},
		{
			name:        "empty version never matches",
			tags:        []string{"v1.0.0"},
			version:     "",
			packageName: "pkg",
			ok:          false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, ok := matchTag(tt.tags, tt.version, tt.packageName)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, tag)
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	desc := locator.Descriptor{Host: locator.HostGitHub, Owner: "lodash", Repo: "lodash"}

	ctrl := gomock.NewController(t)
	lister := mocks.NewMockLister(ctrl)
	lister.EXPECT().
		ListRemoteTags(gomock.Any(), "https://github.com/lodash/lodash.git").
		Return([]string{"4.17.20", "4.17.21"}, nil)

	tag, ok := NewResolver(lister).Resolve(context.Background(), desc, "4.17.21", "lodash")
	require.True(t, ok)
	assert.Equal(t, "4.17.21", tag)
}

func TestResolver_Resolve_ListingFailureDegrades(t *testing.T) {
	desc := locator.Descriptor{Host: locator.HostGitHub, Owner: "o", Repo: "private"}

	ctrl := gomock.NewController(t)
	lister := mocks.NewMockLister(ctrl)
	lister.EXPECT().
		ListRemoteTags(gomock.Any(), gomock.Any()).
		Return(nil, errors.ErrGitFailed)

	tag, ok := NewResolver(lister).Resolve(context.Background(), desc, "1.0.0", "pkg")
	assert.False(t, ok, "a failed listing must degrade, not error")
	assert.Empty(t, tag)
}

func TestResolver_Resolve_EmptyListingDegrades(t *testing.T) {
	desc := locator.Descriptor{Host: locator.HostGitHub, Owner: "o", Repo: "r"}

	ctrl := gomock.NewController(t)
	lister := mocks.NewMockLister(ctrl)
	lister.EXPECT().
		ListRemoteTags(gomock.Any(), gomock.Any()).
		Return([]string{}, nil)

	_, ok := NewResolver(lister).Resolve(context.Background(), desc, "1.0.0", "pkg")
	assert.False(t, ok)
}
