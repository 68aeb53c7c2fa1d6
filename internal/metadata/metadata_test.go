package metadata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestStatic_Lookup(t *testing.T) {
	lookup := NewStatic(map[string]Database{
		"fixtures": {
			Title:   "Fixtures",
			Source:  "City open data",
			License: "CC-BY",
			Tables: map[string]Table{
				"dogs": {Title: "Dogs", Description: "Licensed dogs"},
				"cats": {Title: "Cats", License: "ODbL"},
			},
		},
	})

	tests := []struct {
		name     string
		database string
		table    *string
		want     Entry
	}{
		{
			name:     "database",
			database: "fixtures",
			want:     Entry{Title: "Fixtures", Source: "City open data", License: "CC-BY"},
		},
		{
			name:     "table inherits source and license",
			database: "fixtures",
			table:    strPtr("dogs"),
			want:     Entry{Title: "Dogs", Description: "Licensed dogs", Source: "City open data", License: "CC-BY"},
		},
		{
			name:     "table overrides license",
			database: "fixtures",
			table:    strPtr("cats"),
			want:     Entry{Title: "Cats", Source: "City open data", License: "ODbL"},
		},
		{
			name:     "unknown table",
			database: "fixtures",
			table:    strPtr("birds"),
		},
		{
			name:     "unknown database",
			database: "nope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lookup.Lookup(context.Background(), tt.database, tt.table)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatic_LookupCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStatic(nil).Lookup(ctx, "fixtures", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEntry_IsZero(t *testing.T) {
	assert.True(t, Entry{}.IsZero())
	assert.False(t, Entry{Title: "x"}.IsZero())
}
