package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/joshharrison/taskflow/internal/config"
	"github.com/joshharrison/taskflow/internal/engine"
	"github.com/joshharrison/taskflow/internal/preset"
	"github.com/joshharrison/taskflow/internal/task"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func makeResult(t *testing.T) *engine.Result {
	t.Helper()
	dev := task.ResourceRequirement{ID: "dev-1", Name: "dev", Type: task.ResourceHuman, Quantity: 1, Availability: 1}
	tasks := []task.Task{
		{ID: "a", Name: "Task A", EstimatedHours: task.Hours(4), Priority: task.PriorityHigh, ResourceRequirements: []task.ResourceRequirement{dev}},
		{ID: "b", Name: "Task B", EstimatedHours: task.Hours(2)},
		{ID: "c", Name: "Task C", EstimatedHours: task.Hours(4), Dependencies: []string{"a", "b"}, ResourceRequirements: []task.ResourceRequirement{dev}},
	}
	res, err := engine.New(config.DefaultEngine()).Orchestrate(context.Background(), tasks)
	if err != nil {
		t.Fatalf("orchestrate: %v", err)
	}
	return res
}

func TestPrintPlan(t *testing.T) {
	rpt := New(makeResult(t), "plan.yaml")

	var buf bytes.Buffer
	rpt.PrintPlan(&buf)
	out := buf.String()

	for _, want := range []string{
		"Taskflow Schedule",
		"plan.yaml",
		"CRITICAL_PATH",
		"Duration:  8 hours",
		"a → c",
		"Task A",
		"Parallel groups",
		"1. [a] [b]",
		"dev-1",
		"200%",
		"resource-overallocation-risk",
		"contingency-resource-overallocation-risk",
		"Recommendations",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrintGantt(t *testing.T) {
	rpt := New(makeResult(t), "")

	var buf bytes.Buffer
	rpt.PrintGantt(&buf, 8)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 bars, got %d lines:\n%s", len(lines), buf.String())
	}
	// 8 hours over 8 columns: a spans 4, b spans 2 then 2 float, c starts at 4.
	if !strings.Contains(lines[1], "a │████    │") {
		t.Errorf("unexpected bar for a: %q", lines[1])
	}
	if !strings.Contains(lines[2], "b │██··    │") {
		t.Errorf("unexpected bar for b: %q", lines[2])
	}
	if !strings.Contains(lines[3], "c │    ████│") {
		t.Errorf("unexpected bar for c: %q", lines[3])
	}
}

func TestPrintASCII(t *testing.T) {
	rpt := New(makeResult(t), "")

	var buf bytes.Buffer
	rpt.PrintASCII(&buf)
	out := buf.String()

	if !strings.Contains(out, "Wave 1 at 0h") || !strings.Contains(out, "Wave 2 at 4h") {
		t.Errorf("expected two waves, got:\n%s", out)
	}
	if strings.Count(out, "└──→ c") != 2 {
		t.Errorf("expected both a and b to point at c, got:\n%s", out)
	}
}

func TestWriteDOT(t *testing.T) {
	rpt := New(makeResult(t), "")

	var buf bytes.Buffer
	rpt.WriteDOT(&buf)
	out := buf.String()

	if !strings.HasPrefix(out, "digraph taskflow {") {
		t.Errorf("expected digraph header, got:\n%s", out)
	}
	if !strings.Contains(out, `"a" -> "c" [color=red, penwidth=2];`) {
		t.Errorf("expected critical edge a -> c, got:\n%s", out)
	}
	if !strings.Contains(out, `"b" -> "c";`) {
		t.Errorf("expected plain edge b -> c, got:\n%s", out)
	}
	if !strings.Contains(out, `label="a\nTask A\n4h", style="rounded,bold", color=red`) {
		t.Errorf("expected critical node a, got:\n%s", out)
	}
}

func TestJSON(t *testing.T) {
	rpt := New(makeResult(t), "")
	data, err := rpt.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"tasks", "criticalPath", "totalDuration", "parallelGroups", "resourceUtilization", "riskAssessment", "recommendations", "schedule", "metadata"} {
		if _, ok := parsed[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if parsed["totalDuration"] != 8.0 {
		t.Errorf("totalDuration = %v, want 8", parsed["totalDuration"])
	}
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	PrintStats(&buf, engine.Stats{TotalTasks: 3, CriticalTasks: 2, ParallelGroups: 1, AverageFloat: 0.6666, LongestPath: 8})
	out := buf.String()
	if !strings.Contains(out, "Average float:   0.67 hours") {
		t.Errorf("unexpected stats output:\n%s", out)
	}
	if !strings.Contains(out, "Longest path:    8 hours") {
		t.Errorf("unexpected stats output:\n%s", out)
	}
}

func TestPrintPresets(t *testing.T) {
	var buf bytes.Buffer
	PrintPresets(&buf, preset.All(), preset.Research)
	out := buf.String()
	if strings.Count(out, "★") != 1 {
		t.Errorf("expected one recommended marker, got:\n%s", out)
	}
	if !strings.Contains(out, "★ RESEARCH") {
		t.Errorf("expected RESEARCH to be marked, got:\n%s", out)
	}
	if !strings.Contains(out, "buffer=50%") {
		t.Errorf("expected critical chain buffer, got:\n%s", out)
	}
}

func TestFormatHours(t *testing.T) {
	cases := map[float64]string{0: "0", 8: "8", 2.5: "2.5", 1.25: "1.25", 100: "100", -0.001: "0"}
	for in, want := range cases {
		if got := formatHours(in); got != want {
			t.Errorf("formatHours(%v) = %q, want %q", in, got, want)
		}
	}
}
