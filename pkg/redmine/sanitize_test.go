package redmine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

func TestSanitizeData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      redmine.JSON
		permitted redmine.Permitted
		want      redmine.JSON
	}{
		{
			name:      "empty whitelist keeps data",
			data:      redmine.JSON{"a": 1, "b": 2},
			permitted: redmine.Permit(),
			want:      redmine.JSON{"a": 1, "b": 2},
		},
		{
			name:      "drops unknown fields",
			data:      redmine.JSON{"a": 1, "b": 2, "c": 3},
			permitted: redmine.Permit("a", "b"),
			want:      redmine.JSON{"a": 1, "b": 2},
		},
		{
			name:      "drops nil values",
			data:      redmine.JSON{"a": nil, "b": "kept"},
			permitted: redmine.Permit("a", "b"),
			want:      redmine.JSON{"b": "kept"},
		},
		{
			name:      "nil data",
			data:      nil,
			permitted: redmine.Permit("a"),
			want:      redmine.JSON{},
		},
		{
			name: "nested fields",
			data: redmine.JSON{
				"parent": redmine.JSON{"title": "Index", "id": 9},
				"text":   "body",
			},
			permitted: redmine.Permit("parent.title", "text"),
			want: redmine.JSON{
				"parent": redmine.JSON{"title": "Index"},
				"text":   "body",
			},
		},
		{
			name:      "nested field on a scalar is dropped",
			data:      redmine.JSON{"parent": "Index"},
			permitted: redmine.Permit("parent.title"),
			want:      redmine.JSON{},
		},
		{
			name:      "empty nested result is dropped",
			data:      redmine.JSON{"parent": redmine.JSON{"id": 9}},
			permitted: redmine.Permit("parent.title"),
			want:      redmine.JSON{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, redmine.SanitizeData(tt.data, tt.permitted))
		})
	}
}

func TestPermitted(t *testing.T) {
	t.Parallel()

	base := redmine.Permit("subject", "parent.title")
	extended := base.With("notes", "parent.id")

	assert.True(t, extended.Allows("notes"))
	assert.False(t, base.Allows("notes"))

	assert.Equal(t,
		redmine.JSON{"parent": redmine.JSON{"title": "x"}},
		redmine.SanitizeData(redmine.JSON{"parent": redmine.JSON{"title": "x", "id": 1}}, base))
	assert.Equal(t,
		redmine.JSON{"parent": redmine.JSON{"title": "x", "id": 1}},
		redmine.SanitizeData(redmine.JSON{"parent": redmine.JSON{"title": "x", "id": 1}}, extended))
}
