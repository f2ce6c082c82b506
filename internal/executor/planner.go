package executor

import (
	"time"

	"github.com/nsedata/downloader/internal/nse"
)

// Task is one atomic unit of work within a job: a single (source, date)
// fetch, or the single nifty50 fetch. For nifty50 the date is only used for
// the downloaded-file record, never for URL or file naming.
type Task struct {
	Source nse.Source
	Date   time.Time
}

// BuildPlan turns a job's data sources and expanded dates into the ordered
// task list. Sources are processed in the order they were submitted, with
// duplicates collapsed; within a dated source, dates run chronologically.
// Nifty50 contributes exactly one task regardless of the date count.
func BuildPlan(sources []string, dts []time.Time) []Task {
	var plan []Task
	for _, src := range dedupe(sources) {
		if src == nse.SourceNifty50 {
			plan = append(plan, Task{Source: src, Date: dts[0]})
			continue
		}
		for _, d := range dts {
			plan = append(plan, Task{Source: src, Date: d})
		}
	}
	return plan
}

// TotalFiles computes the number of tasks a job will run: one file per date
// for every dated source, plus a single file when nifty50 is selected.
func TotalFiles(sources []string, dateCount int) int {
	total := 0
	for _, src := range dedupe(sources) {
		if src == nse.SourceNifty50 {
			total++
		} else {
			total += dateCount
		}
	}
	return total
}

func dedupe(sources []string) []nse.Source {
	seen := make(map[nse.Source]struct{}, len(sources))
	var out []nse.Source
	for _, s := range sources {
		src := nse.Source(s)
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		out = append(out, src)
	}
	return out
}
