package task

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestDuration(t *testing.T) {
	t.Run("Should prefer timeInfo estimated duration", func(t *testing.T) {
		tk := Task{ID: "a", EstimatedHours: Hours(4), TimeInfo: &TimeInfo{EstimatedDuration: Hours(6)}}
		assert.Equal(t, 6.0, tk.Duration())
	})
	t.Run("Should fall back to estimated hours", func(t *testing.T) {
		tk := Task{ID: "a", EstimatedHours: Hours(4)}
		assert.Equal(t, 4.0, tk.Duration())
	})
	t.Run("Should default to eight hours", func(t *testing.T) {
		tk := Task{ID: "a"}
		assert.Equal(t, DefaultDuration, tk.Duration())
	})
	t.Run("Should keep an explicit zero", func(t *testing.T) {
		assert.Equal(t, 0.0, (&Task{ID: "m", EstimatedHours: Hours(0)}).Duration())
		tk := Task{ID: "m", EstimatedHours: Hours(5), TimeInfo: &TimeInfo{EstimatedDuration: Hours(0)}}
		assert.Equal(t, 0.0, tk.Duration())
	})
}

func TestPriorityWeight(t *testing.T) {
	assert.Equal(t, 4, PriorityCritical.Weight())
	assert.Equal(t, 3, PriorityHigh.Weight())
	assert.Equal(t, 2, PriorityMedium.Weight())
	assert.Equal(t, 2, Priority("").Weight())
	assert.Equal(t, 1, PriorityLow.Weight())
	assert.False(t, Priority("urgent").Valid())
}

func TestMetadataHelpers(t *testing.T) {
	t.Run("Should treat missing parallelizable as true", func(t *testing.T) {
		tk := Task{ID: "a"}
		assert.True(t, tk.Parallelizable())
		assert.False(t, tk.SkipsReview())
	})
	t.Run("Should honour explicit flags", func(t *testing.T) {
		tk := Task{ID: "a", Metadata: &Metadata{Parallelizable: boolPtr(false), RequiresReview: boolPtr(false)}}
		assert.False(t, tk.Parallelizable())
		assert.True(t, tk.SkipsReview())
	})
	t.Run("Should list only human resources", func(t *testing.T) {
		tk := Task{ID: "a", ResourceRequirements: []ResourceRequirement{
			{ID: "r1", Name: "alice", Type: ResourceHuman, Quantity: 1},
			{ID: "r2", Name: "ci", Type: "equipment", Quantity: 1},
		}}
		assert.Equal(t, []string{"alice"}, tk.HumanResources())
	})
}

func TestClone(t *testing.T) {
	orig := Task{
		ID:           "a",
		Dependencies: []string{"x"},
		Metadata:     &Metadata{Parallelizable: boolPtr(true)},
		TimeInfo:     &TimeInfo{EstimatedDuration: Hours(3)},
	}
	c := orig.Clone()
	c.Dependencies[0] = "y"
	*c.Metadata.Parallelizable = false
	*c.TimeInfo.EstimatedDuration = 9

	assert.Equal(t, "x", orig.Dependencies[0])
	assert.True(t, *orig.Metadata.Parallelizable)
	assert.Equal(t, 3.0, *orig.TimeInfo.EstimatedDuration)
}

func TestValidate(t *testing.T) {
	t.Run("Should accept well-formed tasks", func(t *testing.T) {
		tasks := []Task{
			{ID: "a", EstimatedHours: Hours(8), Priority: PriorityHigh},
			{ID: "b", Dependencies: []string{"a"}, DependencyRelations: []Dependency{
				{PredecessorID: "a", SuccessorID: "b", Type: StartToStart, Lag: -2},
			}},
		}
		require.NoError(t, Validate(tasks))
	})

	cases := []struct {
		name  string
		tasks []Task
		field string
	}{
		{"missing id", []Task{{Name: "x"}}, "id"},
		{"duplicate id", []Task{{ID: "a"}, {ID: "a"}}, "id"},
		{"NaN hours", []Task{{ID: "a", EstimatedHours: Hours(math.NaN())}}, "estimatedHours"},
		{"negative hours", []Task{{ID: "a", EstimatedHours: Hours(-1)}}, "estimatedHours"},
		{"negative duration override", []Task{{ID: "a", TimeInfo: &TimeInfo{EstimatedDuration: Hours(-3)}}}, "timeInfo.estimatedDuration"},
		{"unknown priority", []Task{{ID: "a", Priority: "urgent"}}, "priority"},
		{"complexity out of range", []Task{{ID: "a", Metadata: &Metadata{Complexity: 11}}}, "orchestrationMetadata.complexity"},
		{"unknown dependency type", []Task{{ID: "a", DependencyRelations: []Dependency{{PredecessorID: "b", SuccessorID: "a", Type: "AFTER"}}}}, "dependencyRelations.type"},
		{"infinite lag", []Task{{ID: "a", DependencyRelations: []Dependency{{PredecessorID: "b", SuccessorID: "a", Type: FinishToStart, Lag: math.Inf(1)}}}}, "dependencyRelations.lag"},
		{"negative quantity", []Task{{ID: "a", ResourceRequirements: []ResourceRequirement{{ID: "r", Quantity: -1}}}}, "resourceRequirements.quantity"},
		{"NaN availability", []Task{{ID: "a", ResourceRequirements: []ResourceRequirement{{ID: "r", Quantity: 1, Availability: math.NaN()}}}}, "resourceRequirements.availability"},
	}
	for _, tc := range cases {
		t.Run("Should reject "+tc.name, func(t *testing.T) {
			err := Validate(tc.tasks)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTaskData))
			var invalid *InvalidTaskDataError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tc.field, invalid.Field)
		})
	}
}
