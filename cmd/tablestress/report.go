package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"
)

// Report summarizes one stress run: its configuration, the mutation mix it
// drove, and resource usage before/after. Adapted from the teacher's
// cmd/ecs-stress Report, re-pointed at table mutations instead of scheduler
// frames.
type Report struct {
	// Configuration
	Duration     time.Duration
	InitialRows  int
	ArchetypeMix int

	// Results
	TotalSpawns   int64
	TotalDeletes  int64
	TotalMerges   int64
	TotalTime     time.Duration
	BatchTime     Stats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// Stats is a min/max/avg summary over a series of timing samples.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

// Finalize computes Min/Max/Avg from Samples.
func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Generate writes a Markdown report of r to w.
func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Table Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Rows:** {{.InitialRows}}
- **Archetype Mix:** {{.ArchetypeMix}}

## Mutation Counts
- **Spawns:** {{.TotalSpawns}}
- **Deletes:** {{.TotalDeletes}}
- **Merges:** {{.TotalMerges}}

## Batch Timing
- **Total Test Time:** {{.TotalTime}}
- **Batch Time:**
  - **Avg:** {{.BatchTime.Avg}}
  - **Min:** {{.BatchTime.Min}}
  - **Max:** {{.BatchTime.Max}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
