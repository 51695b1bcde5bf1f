package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-maze/internal/storage"
)

func sampleRuns() []storage.Run {
	now := time.Now()
	return []storage.Run{
		{ID: "a", Seed: 1, Rows: 10, Cols: 20, Steps: 200, Completed: true, Duration: 1500 * time.Millisecond, Source: "cli", CreatedAt: now},
		{ID: "b", Seed: 2, Rows: 5, Cols: 5, Steps: 3, Completed: false, Duration: time.Second, Source: "tui", CreatedAt: now},
	}
}

func TestHistoryRow(t *testing.T) {
	row := HistoryRow(sampleRuns()[0])
	assert.Len(t, row, len(HistoryColumns()))
	assert.Equal(t, "10x20", row[1])
	assert.Equal(t, "1", row[2])
	assert.Equal(t, "yes", row[4])
	assert.Equal(t, "1.5s", row[5])
	assert.Equal(t, "cli", row[6])
}

func TestHistoryFilter(t *testing.T) {
	m := NewHistoryModel(sampleRuns(), nil, 100, 30)
	assert.Len(t, m.table.Rows(), 2)

	next, _ := m.Update(runes("c"))
	m = next.(HistoryModel)
	assert.Len(t, m.table.Rows(), 1)
	assert.Contains(t, m.View(), "(completed)")

	next, _ = m.Update(runes("c"))
	m = next.(HistoryModel)
	assert.Len(t, m.table.Rows(), 2)
}

func TestHistoryEmptyAndQuit(t *testing.T) {
	m := NewHistoryModel(nil, nil, 80, 24)
	assert.Contains(t, m.View(), "No runs recorded yet")
	assert.Contains(t, m.View(), "no runs")

	next, cmd := m.Update(runes("q"))
	m = next.(HistoryModel)
	assert.True(t, m.IsQuitting())
	assert.NotNil(t, cmd)
	assert.Equal(t, "", m.View())
}

func TestStatsLine(t *testing.T) {
	stats := &storage.Stats{
		Runs:        3,
		Completed:   2,
		TotalCells:  725,
		AvgDuration: 2 * time.Second,
		LargestRows: 20,
		LargestCols: 30,
	}
	line := StatsLine(stats)
	assert.True(t, strings.HasPrefix(line, "3 runs, 2 completed, 725 cells carved"))
	assert.Contains(t, line, "avg 2s")
	assert.Contains(t, line, "largest 20x30")
}

func TestHistoryResize(t *testing.T) {
	m := NewHistoryModel(sampleRuns(), nil, 80, 24)
	before := m.table.Height()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(HistoryModel)
	assert.Greater(t, m.table.Height(), before)
	assert.Len(t, m.table.Rows(), 2)
}
