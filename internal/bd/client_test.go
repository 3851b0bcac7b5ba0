package bd

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/joshharrison/taskflow/internal/task"
)

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", "")
	if c.BdBin != "bd" {
		t.Errorf("expected default bd binary 'bd', got %q", c.BdBin)
	}
	if c.DbPath != "" {
		t.Errorf("expected empty db path, got %q", c.DbPath)
	}
}

func TestBaseArgs_WithDB(t *testing.T) {
	c := NewClient("bd", "/my/db")
	args := c.baseArgs()
	if len(args) != 2 || args[0] != "--db" || args[1] != "/my/db" {
		t.Errorf("expected [--db /my/db], got %v", args)
	}
}

func TestBaseArgs_WithoutDB(t *testing.T) {
	c := NewClient("bd", "")
	if args := c.baseArgs(); len(args) != 0 {
		t.Errorf("expected empty args, got %v", args)
	}
}

// fakeBd answers list and dep list calls from canned output.
func fakeBd(calls *[]string) Runner {
	return func(_ context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, name+" "+strings.Join(args, " "))
		switch {
		case args[2] == "list":
			return []byte(`[
				{"id":"bd-1","title":"Schema","status":"open","priority":0,"issue_type":"task","estimate":120},
				{"id":"bd-2","title":"API","status":"open","priority":2,"issue_type":"feature","labels":["serial"]}
			]`), nil
		case args[2] == "dep" && args[4] == "bd-2":
			return []byte(`[{"id":"bd-1"}]`), nil
		default:
			return []byte("no dependencies"), errors.New("exit status 1")
		}
	}
}

func TestOpenIssues(t *testing.T) {
	var calls []string
	c := NewClient("bd", "/db").WithRunner(fakeBd(&calls))

	issues, err := c.OpenIssues(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}
	if len(issues[0].BlockedBy) != 0 {
		t.Errorf("bd-1: expected no blockers, got %v", issues[0].BlockedBy)
	}
	if len(issues[1].BlockedBy) != 1 || issues[1].BlockedBy[0] != "bd-1" {
		t.Errorf("bd-2: expected [bd-1], got %v", issues[1].BlockedBy)
	}
	if want := "bd --db /db list --json --status open --limit 0"; calls[0] != want {
		t.Errorf("first call = %q, want %q", calls[0], want)
	}
	if len(calls) != 3 {
		t.Errorf("expected 3 bd calls, got %d: %v", len(calls), calls)
	}
}

func TestListOpen_Error(t *testing.T) {
	c := NewClient("bd", "").WithRunner(func(context.Context, string, ...string) ([]byte, error) {
		return []byte("database locked"), errors.New("exit status 2")
	})
	_, err := c.ListOpen(context.Background())
	if err == nil || !strings.Contains(err.Error(), "database locked") {
		t.Errorf("expected error carrying bd output, got %v", err)
	}
}

func TestToTasks(t *testing.T) {
	issues := []RawIssue{
		{ID: "bd-1", Title: "Schema", Priority: 0, Estimate: 90},
		{ID: "bd-2", Title: "API", Priority: 3, Labels: []string{LabelSerial, LabelNoReview}, BlockedBy: []string{"bd-1"}},
	}
	tasks := ToTasks(issues)

	if h := tasks[0].EstimatedHours; h == nil || *h != 1.5 {
		t.Errorf("bd-1: expected 1.5h, got %v", h)
	}
	if tasks[0].Priority != task.PriorityCritical {
		t.Errorf("bd-1: expected critical, got %q", tasks[0].Priority)
	}
	if tasks[0].Metadata != nil {
		t.Errorf("bd-1: expected no metadata, got %+v", tasks[0].Metadata)
	}

	b := tasks[1]
	if b.Priority != task.PriorityLow {
		t.Errorf("bd-2: expected low, got %q", b.Priority)
	}
	if b.Duration() != task.DefaultDuration {
		t.Errorf("bd-2: expected default duration, got %v", b.Duration())
	}
	if b.Parallelizable() {
		t.Error("bd-2: serial label should disable parallel execution")
	}
	if !b.SkipsReview() {
		t.Error("bd-2: no-review label should skip review")
	}
	if len(b.Dependencies) != 1 || b.Dependencies[0] != "bd-1" {
		t.Errorf("bd-2: expected dependency on bd-1, got %v", b.Dependencies)
	}
}

func TestPriority(t *testing.T) {
	want := map[int]task.Priority{
		0: task.PriorityCritical,
		1: task.PriorityHigh,
		2: task.PriorityMedium,
		3: task.PriorityLow,
		4: task.PriorityLow,
	}
	for in, expected := range want {
		if got := Priority(in); got != expected {
			t.Errorf("Priority(%d) = %q, want %q", in, got, expected)
		}
	}
}

func TestListOpen_RetriesBusyDatabase(t *testing.T) {
	attempts := 0
	c := NewClient("bd", "").WithRunner(func(context.Context, string, ...string) ([]byte, error) {
		attempts++
		if attempts < 3 {
			return []byte("Error: database is locked"), errors.New("exit status 1")
		}
		return []byte(`[{"id":"bd-1","title":"Schema"}]`), nil
	})
	c.Backoff = time.Millisecond

	issues, err := c.ListOpen(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if len(issues) != 1 || issues[0].ID != "bd-1" {
		t.Errorf("unexpected issues: %+v", issues)
	}
}

func TestListOpen_GivesUpAfterRetries(t *testing.T) {
	attempts := 0
	c := NewClient("bd", "").WithRunner(func(context.Context, string, ...string) ([]byte, error) {
		attempts++
		return []byte("database is busy"), errors.New("exit status 1")
	})
	c.Backoff = time.Millisecond
	c.Retries = 2

	if _, err := c.ListOpen(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if attempts != 3 {
		t.Errorf("expected 1 attempt plus 2 retries, got %d", attempts)
	}
}
