package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	tasks := []Task{
		{ID: "a", Priority: PriorityCritical, Type: "bug", Status: "open"},
		{ID: "b", Priority: PriorityLow, Type: "feature", Status: "open"},
		{ID: "c", Type: "feature", Status: "in_progress"},
		{ID: "d", Priority: PriorityHigh, Type: "chore"},
	}
	ids := func(ts []Task) []string {
		var out []string
		for _, t := range ts {
			out = append(out, t.ID)
		}
		return out
	}

	cases := []struct {
		expr string
		want []string
	}{
		{"priority>=high", []string{"a", "d"}},
		{"priority<=medium", []string{"b", "c"}},
		{"priority=medium", []string{"c"}},
		{"type=feature", []string{"b", "c"}},
		{"status=open", []string{"a", "b"}},
		{"type=epic", nil},
	}
	for _, tc := range cases {
		t.Run("Should filter by "+tc.expr, func(t *testing.T) {
			got, err := Filter(tasks, tc.expr)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(got))
		})
	}

	t.Run("Should reject bad expressions", func(t *testing.T) {
		for _, expr := range []string{"label=x", "priority>=urgent", "priority~high", "priority="} {
			_, err := Filter(tasks, expr)
			assert.Error(t, err, expr)
		}
	})
}
