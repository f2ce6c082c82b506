package executor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nsedata/downloader/internal/dates"
	"github.com/nsedata/downloader/internal/nse"
)

func mustExpand(t *testing.T, start, end string) []time.Time {
	t.Helper()
	s, err := dates.Parse(start)
	assert.NoError(t, err)
	e, err := dates.Parse(end)
	assert.NoError(t, err)
	return dates.Expand(s, e)
}

func TestTotalFiles(t *testing.T) {
	tests := []struct {
		name      string
		sources   []string
		dateCount int
		want      int
	}{
		{"single source single date", []string{"stocks"}, 1, 1},
		{"single source range", []string{"indices"}, 3, 3},
		{"two dated sources", []string{"indices", "stocks"}, 5, 10},
		{"nifty50 alone single date", []string{"nifty50"}, 1, 1},
		{"nifty50 alone multi date", []string{"nifty50"}, 10, 1},
		{"nifty50 plus one source", []string{"nifty50", "stocks"}, 5, 6},
		{"nifty50 plus all sources", []string{"nifty50", "indices", "stocks", "marketActivity", "options"}, 3, 13},
		{"duplicates collapse", []string{"stocks", "stocks", "nifty50", "nifty50"}, 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalFiles(tt.sources, tt.dateCount))
		})
	}
}

func TestBuildPlan_Order(t *testing.T) {
	dts := mustExpand(t, "01/01/2024", "03/01/2024")

	plan := BuildPlan([]string{"stocks", "nifty50", "indices"}, dts)
	assert.Len(t, plan, 7)

	// sources in submission order, dates chronological within a source
	wantSources := []nse.Source{
		nse.SourceStocks, nse.SourceStocks, nse.SourceStocks,
		nse.SourceNifty50,
		nse.SourceIndices, nse.SourceIndices, nse.SourceIndices,
	}
	for i, task := range plan {
		assert.Equal(t, wantSources[i], task.Source)
	}
	assert.Equal(t, dts[0], plan[0].Date)
	assert.Equal(t, dts[2], plan[2].Date)
	assert.Equal(t, dts[0], plan[3].Date)
}

func TestBuildPlan_Nifty50SingleTask(t *testing.T) {
	dts := mustExpand(t, "01/01/2024", "10/01/2024")

	plan := BuildPlan([]string{"nifty50"}, dts)
	assert.Len(t, plan, 1)
	assert.Equal(t, nse.SourceNifty50, plan[0].Source)
	assert.Equal(t, dts[0], plan[0].Date)
}

func TestBuildPlan_MatchesTotalFiles(t *testing.T) {
	dts := mustExpand(t, "01/01/2024", "05/01/2024")

	combos := [][]string{
		{"nifty50"},
		{"nifty50", "stocks"},
		{"indices", "options", "marketActivity"},
		{"nifty50", "indices", "stocks", "marketActivity", "options"},
	}
	for _, sources := range combos {
		plan := BuildPlan(sources, dts)
		assert.Equal(t, TotalFiles(sources, len(dts)), len(plan), "sources=%v", sources)
	}
}
