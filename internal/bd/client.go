// Package bd reads issues from the beads (bd) CLI as schedulable tasks.
package bd

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// Defaults for retrying bd calls that fail on a busy database.
const (
	DefaultRetries = 3
	DefaultBackoff = 100 * time.Millisecond
)

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Client wraps the bd CLI binary.
type Client struct {
	BdBin   string        // path to bd binary (default: "bd")
	DbPath  string        // --db flag value (optional)
	Retries uint64        // extra attempts when the database is busy
	Backoff time.Duration // base of the exponential backoff

	run Runner
}

// NewClient creates a Client using the given bd binary path and database path.
func NewClient(bdBin, dbPath string) *Client {
	if bdBin == "" {
		bdBin = "bd"
	}
	return &Client{
		BdBin:   bdBin,
		DbPath:  dbPath,
		Retries: DefaultRetries,
		Backoff: DefaultBackoff,
		run:     execRunner,
	}
}

// WithRunner returns a copy of c that executes commands with r.
func (c *Client) WithRunner(r Runner) *Client {
	cp := *c
	cp.run = r
	return &cp
}

func (c *Client) baseArgs() []string {
	if c.DbPath != "" {
		return []string{"--db", c.DbPath}
	}
	return nil
}

func (c *Client) exec(ctx context.Context, args ...string) ([]byte, error) {
	all := append(c.baseArgs(), args...)
	backoff := retry.WithMaxRetries(c.Retries, retry.NewExponential(max(c.Backoff, time.Millisecond)))

	var out []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var runErr error
		out, runErr = c.run(ctx, c.BdBin, all...)
		if runErr == nil {
			return nil
		}
		runErr = fmt.Errorf("bd %s: %w\n%s", strings.Join(args, " "), runErr, string(out))
		if busy(out) {
			return retry.RetryableError(runErr)
		}
		return runErr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// busy reports whether bd failed because another process holds the database.
func busy(out []byte) bool {
	s := strings.ToLower(string(out))
	return strings.Contains(s, "database is locked") || strings.Contains(s, "database is busy")
}

// RawIssue is the JSON structure returned by bd list/show.
type RawIssue struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Status      string   `json:"status"`
	Priority    int      `json:"priority"`
	Type        string   `json:"issue_type"`
	Labels      []string `json:"labels,omitempty"`
	Description string   `json:"description"`
	Estimate    int      `json:"estimate,omitempty"` // minutes

	// Dependencies are not in bd list output; filled in from DepList.
	BlockedBy []string `json:"-"`
}

// ListOpen returns all open issues.
func (c *Client) ListOpen(ctx context.Context) ([]RawIssue, error) {
	out, err := c.exec(ctx, "list", "--json", "--status", "open", "--limit", "0")
	if err != nil {
		return nil, err
	}
	var issues []RawIssue
	if err := json.Unmarshal(out, &issues); err != nil {
		return nil, fmt.Errorf("parse bd list output: %w", err)
	}
	return issues, nil
}

// DepListItem is an issue returned by bd dep list --json.
type DepListItem struct {
	ID string `json:"id"`
}

// BlockedBy returns the ids of issues that id depends on.
func (c *Client) BlockedBy(ctx context.Context, id string) ([]string, error) {
	out, err := c.exec(ctx, "dep", "list", id, "--direction=down", "--json")
	if err != nil {
		// dep list fails when an issue has no deps; treat as empty
		out = []byte("[]")
	}
	var deps []DepListItem
	if err := json.Unmarshal(out, &deps); err != nil {
		return nil, fmt.Errorf("parse bd dep list: %w", err)
	}
	ids := make([]string, 0, len(deps))
	for _, d := range deps {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// OpenIssues lists open issues with their blockers filled in.
func (c *Client) OpenIssues(ctx context.Context) ([]RawIssue, error) {
	issues, err := c.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	for i := range issues {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		blockedBy, err := c.BlockedBy(ctx, issues[i].ID)
		if err != nil {
			return nil, err
		}
		issues[i].BlockedBy = blockedBy
	}
	return issues, nil
}
