package graph

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/joshharrison/taskflow/internal/logging"
	"github.com/joshharrison/taskflow/internal/task"
)

func buildGraph(t *testing.T, tasks []task.Task) *Graph {
	t.Helper()
	g, err := Build(tasks, logging.Nop())
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return g
}

func ids(g *Graph, idx []int) []string {
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = g.ID(n)
	}
	return out
}

func TestBuild_SimpleDAG(t *testing.T) {
	// A -> B -> D
	// A -> C -> D
	tasks := []task.Task{
		{ID: "a"},
		{ID: "b", Dependencies: []string{"a"}},
		{ID: "c", Dependencies: []string{"a"}},
		{ID: "d", Dependencies: []string{"b", "c"}},
	}
	g := buildGraph(t, tasks)

	if g.Len() != 4 {
		t.Errorf("expected 4 tasks, got %d", g.Len())
	}
	if roots := ids(g, g.Roots()); len(roots) != 1 || roots[0] != "a" {
		t.Errorf("expected roots=[a], got %v", roots)
	}
	if leaves := ids(g, g.Leaves()); len(leaves) != 1 || leaves[0] != "d" {
		t.Errorf("expected leaves=[d], got %v", leaves)
	}
	a, _ := g.Index("a")
	if g.OutDegree(a) != 2 {
		t.Errorf("expected a to have out-degree 2, got %d", g.OutDegree(a))
	}
	d, _ := g.Index("d")
	if got := ids(g, g.Predecessors(d)); len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("expected d predecessors [b c], got %v", got)
	}
}

func TestBuild_LegacyDependenciesAreFinishToStart(t *testing.T) {
	g := buildGraph(t, []task.Task{{ID: "a"}, {ID: "b", Dependencies: []string{"a"}}})
	if len(g.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(g.Edges))
	}
	e := g.Edges[0]
	if e.Type != task.FinishToStart || e.Lag != 0 {
		t.Errorf("expected FINISH_TO_START lag 0, got %s lag %v", e.Type, e.Lag)
	}
}

func TestBuild_TypedRelations(t *testing.T) {
	tasks := []task.Task{
		{ID: "a"},
		{ID: "b", DependencyRelations: []task.Dependency{
			{ID: "d1", PredecessorID: "a", SuccessorID: "b", Type: task.StartToStart, Lag: 2},
		}},
	}
	g := buildGraph(t, tasks)
	if len(g.Edges) != 1 || g.Edges[0].Type != task.StartToStart || g.Edges[0].Lag != 2 {
		t.Errorf("unexpected edges %+v", g.Edges)
	}
}

func TestBuild_DuplicateEdgesCollapsed(t *testing.T) {
	tasks := []task.Task{
		{ID: "a"},
		{ID: "b", Dependencies: []string{"a", "a"}, DependencyRelations: []task.Dependency{
			{PredecessorID: "a", SuccessorID: "b", Type: task.FinishToStart},
		}},
	}
	g := buildGraph(t, tasks)
	if len(g.Edges) != 1 {
		t.Errorf("expected duplicate edges to collapse to 1, got %d", len(g.Edges))
	}
}

func TestBuild_SingleTask(t *testing.T) {
	g := buildGraph(t, []task.Task{{ID: "x"}})
	if g.Len() != 1 {
		t.Errorf("expected 1 task, got %d", g.Len())
	}
	if roots := ids(g, g.Roots()); len(roots) != 1 || roots[0] != "x" {
		t.Errorf("expected roots=[x], got %v", roots)
	}
	if leaves := ids(g, g.Leaves()); len(leaves) != 1 || leaves[0] != "x" {
		t.Errorf("expected leaves=[x], got %v", leaves)
	}
}

func TestBuild_CycleDetection(t *testing.T) {
	// A -> B -> C -> A
	tasks := []task.Task{
		{ID: "a", Dependencies: []string{"c"}},
		{ID: "b", Dependencies: []string{"a"}},
		{ID: "c", Dependencies: []string{"b"}},
	}
	_, err := Build(tasks, logging.Nop())
	if err == nil {
		t.Fatal("expected cycle error, got nil")
	}
	if !errors.Is(err, ErrCycle) {
		t.Errorf("expected ErrCycle, got %v", err)
	}
	var ce *CycleError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CycleError, got %T", err)
	}
	if ce.TaskID != "a" && ce.TaskID != "b" && ce.TaskID != "c" {
		t.Errorf("cycle should name a task in the cycle, got %q", ce.TaskID)
	}
	t.Logf("cycle error (expected): %v", err)
}

func TestBuild_TwoNodeCycle(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", Dependencies: []string{"b"}},
		{ID: "b", Dependencies: []string{"a"}},
	}
	_, err := Build(tasks, logging.Nop())
	var ce *CycleError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CycleError, got %v", err)
	}
	if ce.TaskID != "a" && ce.TaskID != "b" {
		t.Errorf("expected cycle at a or b, got %q", ce.TaskID)
	}
	if len(ce.Path) != 3 || ce.Path[0] != ce.Path[2] {
		t.Errorf("expected closed path of length 3, got %v", ce.Path)
	}
}

func TestBuild_SelfLoopIsCycle(t *testing.T) {
	_, err := Build([]task.Task{{ID: "a", Dependencies: []string{"a"}}}, logging.Nop())
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected cycle error for self loop, got %v", err)
	}
}

func TestBuild_DanglingDepsSkipped(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&logging.Config{Level: logging.WarnLevel, Output: &buf})
	tasks := []task.Task{
		{ID: "a", Dependencies: []string{"z"}},
		{ID: "b", DependencyRelations: []task.Dependency{
			{PredecessorID: "a", SuccessorID: "ghost", Type: task.FinishToStart},
		}},
	}

	g, err := Build(tasks, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Edges) != 0 {
		t.Errorf("expected no edges, got %v", g.Edges)
	}
	if len(g.Skipped) != 2 {
		t.Errorf("expected 2 skipped deps, got %d", len(g.Skipped))
	}
	if !strings.Contains(buf.String(), "unknown task") {
		t.Errorf("expected a warning to be logged, got %q", buf.String())
	}
}

func TestDetectCycle_NoCycle(t *testing.T) {
	g := buildGraph(t, []task.Task{{ID: "a"}, {ID: "b", Dependencies: []string{"a"}}})
	if cycle := g.DetectCycle(); cycle != nil {
		t.Errorf("expected no cycle, got %v", cycle)
	}
}

func TestBuild_Empty(t *testing.T) {
	g, err := Build(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 0 {
		t.Errorf("expected 0 tasks, got %d", g.Len())
	}
}

func TestBuild_LinearChain(t *testing.T) {
	// A -> B -> C -> D -> E
	tasks := []task.Task{
		{ID: "a"},
		{ID: "b", Dependencies: []string{"a"}},
		{ID: "c", Dependencies: []string{"b"}},
		{ID: "d", Dependencies: []string{"c"}},
		{ID: "e", Dependencies: []string{"d"}},
	}
	g := buildGraph(t, tasks)
	if roots := ids(g, g.Roots()); len(roots) != 1 || roots[0] != "a" {
		t.Errorf("expected roots=[a], got %v", roots)
	}
	if leaves := ids(g, g.Leaves()); len(leaves) != 1 || leaves[0] != "e" {
		t.Errorf("expected leaves=[e], got %v", leaves)
	}
}
