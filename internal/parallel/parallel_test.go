package parallel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshharrison/taskflow/internal/cpm"
	"github.com/joshharrison/taskflow/internal/graph"
	"github.com/joshharrison/taskflow/internal/logging"
	"github.com/joshharrison/taskflow/internal/task"
)

func analyze(t *testing.T, tasks []task.Task) *cpm.Result {
	t.Helper()
	g, err := graph.Build(tasks, logging.Nop())
	require.NoError(t, err)
	return cpm.Analyze(g)
}

func human(name string) task.ResourceRequirement {
	return task.ResourceRequirement{ID: "res-" + name, Name: name, Type: task.ResourceHuman, Quantity: 1}
}

func notParallel() *task.Metadata {
	f := false
	return &task.Metadata{Parallelizable: &f}
}

func TestGroup(t *testing.T) {
	t.Run("Should group two independent tasks", func(t *testing.T) {
		tasks := []task.Task{{ID: "a"}, {ID: "b"}}
		groups := Group(tasks, analyze(t, tasks))
		assert.Equal(t, [][]string{{"a", "b"}}, groups)
	})

	t.Run("Should drop singleton waves", func(t *testing.T) {
		tasks := []task.Task{{ID: "a"}, {ID: "b", Dependencies: []string{"a"}}}
		assert.Empty(t, Group(tasks, analyze(t, tasks)))
	})

	t.Run("Should group by wave", func(t *testing.T) {
		//     A
		//   / | \
		//  B  C  D
		tasks := []task.Task{
			{ID: "a"},
			{ID: "b", Dependencies: []string{"a"}},
			{ID: "c", Dependencies: []string{"a"}},
			{ID: "d", Dependencies: []string{"a"}},
		}
		assert.Equal(t, [][]string{{"b", "c", "d"}}, Group(tasks, analyze(t, tasks)))
	})

	t.Run("Should exclude tasks marked not parallelizable", func(t *testing.T) {
		tasks := []task.Task{{ID: "a"}, {ID: "b", Metadata: notParallel()}, {ID: "c"}}
		assert.Equal(t, [][]string{{"a", "c"}}, Group(tasks, analyze(t, tasks)))
	})

	t.Run("Should exclude tasks sharing a human resource", func(t *testing.T) {
		tasks := []task.Task{
			{ID: "a", ResourceRequirements: []task.ResourceRequirement{human("alice")}},
			{ID: "b", ResourceRequirements: []task.ResourceRequirement{human("alice")}},
			{ID: "c", ResourceRequirements: []task.ResourceRequirement{human("bob")}},
		}
		assert.Equal(t, [][]string{{"a", "c"}}, Group(tasks, analyze(t, tasks)))
	})

	t.Run("Should allow shared equipment", func(t *testing.T) {
		rig := task.ResourceRequirement{ID: "rig", Name: "rig", Type: "equipment", Quantity: 1}
		tasks := []task.Task{
			{ID: "a", ResourceRequirements: []task.ResourceRequirement{rig}},
			{ID: "b", ResourceRequirements: []task.ResourceRequirement{rig}},
		}
		assert.Equal(t, [][]string{{"a", "b"}}, Group(tasks, analyze(t, tasks)))
	})

	t.Run("Should drop a wave left with one admitted task", func(t *testing.T) {
		tasks := []task.Task{
			{ID: "a", ResourceRequirements: []task.ResourceRequirement{human("alice")}},
			{ID: "b", ResourceRequirements: []task.ResourceRequirement{human("alice")}},
		}
		assert.Empty(t, Group(tasks, analyze(t, tasks)))
	})
}

func TestWaves(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", EstimatedHours: task.Hours(2)},
		{ID: "b", EstimatedHours: task.Hours(3)},
		{ID: "c", EstimatedHours: task.Hours(1), Dependencies: []string{"a"}},
	}
	waves := Waves(tasks, analyze(t, tasks))
	require.Len(t, waves, 2)
	assert.Equal(t, 0.0, waves[0].Start)
	assert.Equal(t, []string{"a", "b"}, waves[0].TaskIDs)
	assert.Equal(t, 2.0, waves[1].Start)
	assert.Equal(t, []string{"c"}, waves[1].TaskIDs)
}
