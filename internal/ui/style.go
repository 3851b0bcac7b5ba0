package ui

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/joshharrison/taskflow/internal/task"
)

// Sprint color functions for building styled strings.
var (
	Bold        = color.New(color.Bold).SprintFunc()
	Dim         = color.New(color.Faint).SprintFunc()
	Cyan        = color.New(color.FgCyan).SprintFunc()
	Green       = color.New(color.FgGreen).SprintFunc()
	Red         = color.New(color.FgRed).SprintFunc()
	Yellow      = color.New(color.FgYellow).SprintFunc()
	Magenta     = color.New(color.FgMagenta).SprintFunc()
	BoldCyan    = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldGreen   = color.New(color.Bold, color.FgGreen).SprintFunc()
	BoldRed     = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow  = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldMagenta = color.New(color.Bold, color.FgMagenta).SprintFunc()
	BoldWhite   = color.New(color.Bold, color.FgWhite).SprintFunc()
)

// tagPalette gives parallel tasks distinguishable colors.
var tagPalette = []func(a ...interface{}) string{
	BoldMagenta,
	BoldCyan,
	BoldYellow,
	BoldGreen,
	color.New(color.Bold, color.FgHiBlue).SprintFunc(),
	color.New(color.Bold, color.FgHiRed).SprintFunc(),
}

func paletteIndex(id string) int {
	var h uint32
	for _, c := range id {
		h = h*31 + uint32(c)
	}
	return int(h % uint32(len(tagPalette)))
}

// TaskTag renders id as [id], colored by a stable hash of the id.
func TaskTag(id string) string {
	return Dim("[") + tagPalette[paletteIndex(id)](id) + Dim("]")
}

// CriticalMark returns the marker shown next to critical tasks.
func CriticalMark(critical bool) string {
	if critical {
		return BoldYellow("⚡")
	}
	return " "
}

// Priority returns a colored priority label.
func Priority(p task.Priority) string {
	switch p {
	case task.PriorityCritical:
		return BoldRed(string(p))
	case task.PriorityHigh:
		return Yellow(string(p))
	case task.PriorityLow:
		return Dim(string(p))
	case "":
		return Dim(string(task.PriorityMedium))
	default:
		return string(p)
	}
}

// RiskLevel colors a risk score on the 0-10 scale.
func RiskLevel(score float64) string {
	s := fmt.Sprintf("%.1f", score)
	switch {
	case score > 6:
		return BoldRed(s)
	case score > 4:
		return Yellow(s)
	case score > 0:
		return Green(s)
	default:
		return Dim(s)
	}
}

// Utilization colors a utilization rate as a percentage.
func Utilization(rate float64) string {
	s := fmt.Sprintf("%.0f%%", rate*100)
	switch {
	case rate > 1:
		return BoldRed(s)
	case rate < 0.5:
		return Dim(s)
	default:
		return Green(s)
	}
}
