// Package reporter renders orchestration results for terminals and tools.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/joshharrison/taskflow/internal/cpm"
	"github.com/joshharrison/taskflow/internal/engine"
	"github.com/joshharrison/taskflow/internal/preset"
	"github.com/joshharrison/taskflow/internal/task"
	"github.com/joshharrison/taskflow/internal/ui"
)

// DefaultGanttWidth is the bar area width in columns.
const DefaultGanttWidth = 60

// Reporter renders a single orchestration result.
type Reporter struct {
	Result *engine.Result
	Source string // file or source the tasks came from

	tasks map[string]*task.Task
}

// New creates a new Reporter.
func New(res *engine.Result, source string) *Reporter {
	r := &Reporter{Result: res, Source: source, tasks: make(map[string]*task.Task, len(res.Tasks))}
	for i := range res.Tasks {
		r.tasks[res.Tasks[i].ID] = &res.Tasks[i]
	}
	return r
}

func (r *Reporter) title(id string) string {
	t, ok := r.tasks[id]
	if !ok || t.Name == "" {
		return id
	}
	return t.Name
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// PrintPlan writes the schedule in the configured task order followed by
// parallel groups, resources, risks and recommendations.
func (r *Reporter) PrintPlan(w io.Writer) {
	res := r.Result

	fmt.Fprintf(w, "🎯 %s", ui.BoldCyan("Taskflow Schedule"))
	if r.Source != "" {
		fmt.Fprintf(w, " %s", ui.Dim(r.Source))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.Cyan("═════════════════"))
	fmt.Fprintf(w, "Run:       %s\n", ui.Dim(res.Metadata.ID))
	fmt.Fprintf(w, "Strategy:  %s", ui.Bold(res.Metadata.Strategy))
	if res.Metadata.Preset != "" {
		fmt.Fprintf(w, " %s", ui.Dim("("+res.Metadata.Preset+")"))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Tasks:     %s\n", ui.Bold(len(res.Tasks)))
	fmt.Fprintf(w, "Duration:  %s hours\n", ui.Bold(formatHours(res.TotalDuration)))
	if len(res.CriticalPath) > 0 {
		fmt.Fprintf(w, "⚡ Critical path: %s\n", ui.BoldYellow(strings.Join(res.CriticalPath, " → ")))
	}
	fmt.Fprintln(w)

	schedule := make(map[string]cpm.Node, len(res.Schedule))
	for _, n := range res.Schedule {
		schedule[n.TaskID] = n
	}
	fmt.Fprintf(w, "  %s %-12s %-36s %8s %8s %8s  %s\n", " ", "ID", "TASK", "START", "FINISH", "FLOAT", "PRIORITY")
	for i := range res.Tasks {
		t := &res.Tasks[i]
		n := schedule[t.ID]
		fmt.Fprintf(w, "  %s %-12s %-36s %8s %8s %8s  %s\n",
			ui.CriticalMark(n.IsCritical), t.ID, truncate(r.title(t.ID), 36),
			formatHours(n.ES), formatHours(n.EF), formatHours(n.TotalFloat), ui.Priority(t.Priority))
	}

	if len(res.ParallelGroups) > 0 {
		fmt.Fprintf(w, "\n🌊 %s\n", ui.BoldWhite("Parallel groups"))
		for i, g := range res.ParallelGroups {
			ids := make([]string, len(g))
			for j, id := range g {
				ids[j] = ui.TaskTag(id)
			}
			fmt.Fprintf(w, "  %d. %s\n", i+1, strings.Join(ids, " "))
		}
	}

	if len(res.ResourceUtilization) > 0 {
		fmt.Fprintf(w, "\n👥 %s\n", ui.BoldWhite("Resources"))
		for _, u := range res.ResourceUtilization {
			fmt.Fprintf(w, "  %-16s %6s  %s/%s  %s\n",
				u.ResourceID, ui.Utilization(u.UtilizationRate),
				formatHours(u.AllocatedCapacity), formatHours(u.TotalCapacity),
				ui.Dim(strings.Join(u.TaskIDs, ", ")))
		}
	}

	if ra := res.RiskAssessment; len(ra.RiskFactors) > 0 {
		fmt.Fprintf(w, "\n⚠️  %s %s\n", ui.BoldWhite("Risk"), ui.RiskLevel(ra.OverallRiskLevel))
		for _, f := range ra.RiskFactors {
			fmt.Fprintf(w, "  %s %-30s %s\n", ui.RiskLevel(f.RiskScore), f.ID, ui.Dim(string(f.Category)))
		}
		for _, p := range ra.ContingencyPlans {
			fmt.Fprintf(w, "  %s %s: %s\n", ui.Yellow("↳"), p.ID, strings.Join(p.TriggerConditions, "; "))
		}
	}

	if len(res.Recommendations) > 0 {
		fmt.Fprintf(w, "\n💡 %s\n", ui.BoldWhite("Recommendations"))
		for _, rec := range res.Recommendations {
			fmt.Fprintf(w, "  • %s\n", rec)
		}
	}
}

// PrintGantt draws one bar per task in topological order. Solid blocks span
// the earliest schedule; dots show float up to the latest finish.
func (r *Reporter) PrintGantt(w io.Writer, width int) {
	if width <= 0 {
		width = DefaultGanttWidth
	}
	res := r.Result
	fmt.Fprintf(w, "📊 %s %s\n", ui.BoldCyan("Gantt"), ui.Dim(fmt.Sprintf("(%s hours)", formatHours(res.TotalDuration))))
	if len(res.Schedule) == 0 {
		return
	}

	// Leads can pull a start below zero; shift so every bar fits.
	lo, hi := 0.0, res.TotalDuration
	idWidth := 0
	for _, n := range res.Schedule {
		lo = math.Min(lo, n.ES)
		hi = math.Max(hi, n.LF)
		idWidth = max(idWidth, len(n.TaskID))
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	col := func(h float64) int {
		c := int(math.Round((h - lo) / span * float64(width)))
		return min(max(c, 0), width)
	}

	for _, n := range res.Schedule {
		start, end, late := col(n.ES), col(n.EF), col(n.LF)
		if end == start && n.Duration > 0 {
			end = min(start+1, width)
		}
		late = max(late, end)

		bar := strings.Repeat("█", end-start)
		if n.IsCritical {
			bar = ui.BoldRed(bar)
		} else {
			bar = ui.Cyan(bar)
		}
		fmt.Fprintf(w, "  %-*s │%s%s%s%s│ %s\n",
			idWidth, n.TaskID,
			strings.Repeat(" ", start), bar,
			ui.Dim(strings.Repeat("·", late-end)),
			strings.Repeat(" ", width-late),
			ui.Dim(formatHours(n.ES)+"–"+formatHours(n.EF)))
	}
}

// PrintASCII lists tasks grouped by earliest start with their successors.
func (r *Reporter) PrintASCII(w io.Writer) {
	fmt.Fprintf(w, "🔗 %s\n", ui.BoldCyan("Task Dependency Graph"))
	fmt.Fprintln(w, ui.Cyan("═══════════════════════"))
	fmt.Fprintln(w)

	for i, wave := range waves(r.Result.Schedule) {
		fmt.Fprintf(w, "%s 🌊 Wave %d at %sh %s\n", ui.Cyan("──"), i+1, formatHours(wave[0].ES), ui.Cyan("──────────────────────────"))
		for _, n := range wave {
			fmt.Fprintf(w, "  %s [%s] %s\n", ui.CriticalMark(n.IsCritical), ui.BoldMagenta(n.TaskID), r.title(n.TaskID))
			for _, succ := range n.Successors {
				fmt.Fprintf(w, "      %s %s\n", ui.Dim("└──→"), ui.Magenta(succ))
			}
		}
		fmt.Fprintln(w)
	}
}

// waves groups schedule nodes by earliest start, keeping topological order
// within a wave.
func waves(nodes []cpm.Node) [][]cpm.Node {
	sorted := append([]cpm.Node(nil), nodes...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ES < sorted[j].ES })

	var out [][]cpm.Node
	for _, n := range sorted {
		if k := len(out); k > 0 && out[k-1][0].ES == n.ES {
			out[k-1] = append(out[k-1], n)
			continue
		}
		out = append(out, []cpm.Node{n})
	}
	return out
}

// WriteDOT writes the dependency graph in Graphviz format. Critical tasks
// and edges between them are drawn in red.
func (r *Reporter) WriteDOT(w io.Writer) {
	fmt.Fprintln(w, "digraph taskflow {")
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  node [shape=box, style=rounded];")
	fmt.Fprintln(w)

	critical := make(map[string]bool)
	for _, n := range r.Result.Schedule {
		critical[n.TaskID] = n.IsCritical
		label := fmt.Sprintf("%s\\n%s\\n%sh", n.TaskID, strings.ReplaceAll(r.title(n.TaskID), `"`, `\"`), formatHours(n.Duration))
		attrs := fmt.Sprintf(`label="%s"`, label)
		if n.IsCritical {
			attrs += `, style="rounded,bold", color=red`
		}
		fmt.Fprintf(w, "  %q [%s];\n", n.TaskID, attrs)
	}

	fmt.Fprintln(w)

	for _, n := range r.Result.Schedule {
		for _, to := range n.Successors {
			style := ""
			if critical[n.TaskID] && critical[to] {
				style = ` [color=red, penwidth=2]`
			}
			fmt.Fprintf(w, "  %q -> %q%s;\n", n.TaskID, to, style)
		}
	}

	fmt.Fprintln(w, "}")
}

// JSON returns the result as indented JSON.
func (r *Reporter) JSON() ([]byte, error) {
	return json.MarshalIndent(r.Result, "", "  ")
}

// PrintStats writes engine stats.
func PrintStats(w io.Writer, s engine.Stats) {
	fmt.Fprintf(w, "📈 %s\n", ui.BoldCyan("Orchestration Stats"))
	fmt.Fprintln(w, ui.Cyan("═══════════════════"))
	fmt.Fprintf(w, "Tasks:           %d\n", s.TotalTasks)
	fmt.Fprintf(w, "Critical tasks:  %d\n", s.CriticalTasks)
	fmt.Fprintf(w, "Parallel groups: %d\n", s.ParallelGroups)
	fmt.Fprintf(w, "Average float:   %s hours\n", formatHours(s.AverageFloat))
	fmt.Fprintf(w, "Longest path:    %s hours\n", formatHours(s.LongestPath))
}

// PrintPresets writes the preset catalog, marking the recommended preset.
func PrintPresets(w io.Writer, presets []preset.Preset, recommended preset.Name) {
	for _, p := range presets {
		mark := " "
		if p.Name == recommended {
			mark = ui.BoldGreen("★")
		}
		e := p.Engine
		fmt.Fprintf(w, "%s %-16s %s\n", mark, ui.BoldMagenta(string(p.Name)), p.Title)
		fmt.Fprintf(w, "    %s\n", ui.Dim(p.Description))
		fmt.Fprintf(w, "    strategy=%s goal=%s parallel=%d hours/day=%s days/week=%d buffer=%s%%\n",
			e.SchedulingStrategy, e.OptimizationGoal, e.MaxParallelTasks,
			formatHours(e.WorkingHoursPerDay), e.WorkingDaysPerWeek, formatHours(e.BufferPercentage))
	}
}

// formatHours trims trailing zeros: 8 -> "8", 2.5 -> "2.5".
func formatHours(h float64) string {
	s := fmt.Sprintf("%.2f", h)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
