package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gittyup/gittyup/internal/domain"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactlyten", Truncate("exactlyten", 10))
	assert.Equal(t, "toolongfo…", Truncate("toolongforthis", 10))
	assert.Equal(t, "", Truncate("x", 0))
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []TableColumn{
		{Name: "NAME", Width: 8},
		{Name: "STATE", Width: 6},
	})

	table.WriteHeader()
	table.WriteRow("repo1", "clean")
	table.WriteRow("averyverylongname", "dirty")
	table.WriteRow("partial")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "repo1")
	assert.Contains(t, lines[2], "…")
	assert.NotContains(t, lines[2], "averyverylongname")
}

func TestNewOutput(t *testing.T) {
	var buf bytes.Buffer

	assert.IsType(t, &JSONOutput{}, NewOutput(&buf, "json"))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, "text"))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, ""))
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	o := NewJSONOutput(&buf)

	o.Success("hidden")
	o.Info("hidden")
	o.Warning("hidden")
	assert.Empty(t, buf.String())

	require.NoError(t, o.JSON(map[string]int{"total": 3}))
	assert.Contains(t, buf.String(), "\"total\": 3")

	buf.Reset()
	o.Error(errors.New("boom"))
	assert.Contains(t, buf.String(), "\"boom\"")
}

func TestReporter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false, true)

	r.Info("hidden")
	r.Success("hidden")
	r.Warning("hidden")
	assert.Empty(t, buf.String())

	r.Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestReporter_ScanReport(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, true, false)

	r.ScanReport(&domain.ScanResult{
		Repositories: []domain.Repository{
			{Path: "/tmp/one", Name: "one"},
		},
		Errors: []string{"/tmp/locked: permission denied"},
	})

	out := buf.String()
	assert.Contains(t, out, "Found 1 git repository")
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "permission denied")
}

func TestReporter_SummaryReport(t *testing.T) {
	summary := domain.NewExecutionSummary("run-1", 3)
	repo := domain.Repository{Name: "repo1"}
	summary.Add(domain.OperationResult{Repository: repo, Status: domain.StatusSuccess, Message: "Already up to date"})
	summary.Add(domain.OperationResult{Repository: repo, Status: domain.StatusError, Message: "Authentication failed"})
	summary.Add(domain.OperationResult{Repository: repo, Status: domain.StatusSkipped, Message: "Would execute: git pull --no-rebase"})
	summary.Duration = 1500 * time.Millisecond

	t.Run("normal", func(t *testing.T) {
		var buf bytes.Buffer
		NewReporter(&buf, false, false).SummaryReport(summary)

		out := buf.String()
		assert.Contains(t, out, "Successful: 1")
		assert.Contains(t, out, "Errors: 1")
		assert.Contains(t, out, "Skipped: 1")
		assert.Contains(t, out, "Duration: 1.50s")
		assert.NotContains(t, out, "Detailed results")
	})

	t.Run("verbose includes detail", func(t *testing.T) {
		var buf bytes.Buffer
		NewReporter(&buf, true, false).SummaryReport(summary)
		assert.Contains(t, buf.String(), "Detailed results")
		assert.Contains(t, buf.String(), "Already up to date")
	})

	t.Run("quiet only reports failures", func(t *testing.T) {
		var buf bytes.Buffer
		NewReporter(&buf, false, true).SummaryReport(summary)
		assert.Contains(t, buf.String(), "1 of 3 operations failed")
		assert.NotContains(t, buf.String(), "Successful")
	})
}

func TestHasColorSupport(t *testing.T) {
	t.Run("no_color disables", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		assert.False(t, HasColorSupport())
	})

	t.Run("dumb terminal disables", func(t *testing.T) {
		t.Setenv("TERM", "dumb")
		assert.False(t, HasColorSupport())
	})
}

func TestStateIcon(t *testing.T) {
	assert.Equal(t, "✓", StateIcon(domain.StateClean))
	assert.Equal(t, "?", StateIcon(domain.RepositoryState("bogus")))
}

func TestStateColors(t *testing.T) {
	colors := StateColors()
	assert.Equal(t, ColorSuccess, colors[domain.StateClean])
	assert.Equal(t, ColorError, colors[domain.StateDiverged])
	assert.Len(t, colors, 7)
}

func TestStatusIcon(t *testing.T) {
	assert.Equal(t, "✗", StatusIcon(domain.StatusError))
	assert.Equal(t, "○", StatusIcon(domain.StatusSkipped))
}
