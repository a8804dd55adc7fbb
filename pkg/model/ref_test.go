package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcstash/srcstash/pkg/errors"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Ref
		wantError bool
	}{
		{
			name:     "unscoped reference",
			input:    "lodash@4.17.21",
			expected: Ref{Name: "lodash", Version: "4.17.21"},
		},
		{
			name:     "scoped reference splits on last at-sign",
			input:    "@babel/core@7.23.0",
			expected: Ref{Name: "@babel/core", Version: "7.23.0"},
		},
		{
			name:     "version with prerelease suffix",
			input:    "left-pad@1.3.0-rc.1",
			expected: Ref{Name: "left-pad", Version: "1.3.0-rc.1"},
		},
		{
			name:      "missing version",
			input:     "lodash",
			wantError: true,
		},
		{
			name:      "scoped name without version",
			input:     "@babel/core",
			wantError: true,
		},
		{
			name:      "bare scope prefix only",
			input:     "@scope",
			wantError: true,
		},
		{
			name:      "empty version half",
			input:     "lodash@",
			wantError: true,
		},
		{
			name:      "empty string",
			input:     "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseRef(tt.input)
			if tt.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, errors.ErrInvalidRef)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ref)
		})
	}
}

func TestRef_String_RoundTrip(t *testing.T) {
	for _, input := range []string{"lodash@4.17.21", "@babel/core@7.23.0"} {
		ref, err := ParseRef(input)
		require.NoError(t, err)
		assert.Equal(t, input, ref.String())
	}
}

func TestRef_Scope(t *testing.T) {
	tests := []struct {
		name          string
		ref           Ref
		expectedScope string
		expectedLeaf  string
	}{
		{
			name:          "unscoped name",
			ref:           Ref{Name: "lodash", Version: "1.0.0"},
			expectedScope: "",
			expectedLeaf:  "lodash",
		},
		{
			name:          "scoped name",
			ref:           Ref{Name: "@babel/core", Version: "1.0.0"},
			expectedScope: "@babel",
			expectedLeaf:  "core",
		},
		{
			name:          "at-sign without slash is not a scope",
			ref:           Ref{Name: "@weird", Version: "1.0.0"},
			expectedScope: "",
			expectedLeaf:  "@weird",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, leaf := tt.ref.Scope()
			assert.Equal(t, tt.expectedScope, scope)
			assert.Equal(t, tt.expectedLeaf, leaf)
			assert.Equal(t, tt.expectedScope != "", tt.ref.Scoped())
		})
	}
}
