package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/highscore"
	"github.com/plus3/blockfall/tetris"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Tick     time.Duration
	Seed     uint64
	Width    int
	Height   int

	// Results
	TotalTime     time.Duration
	Stats         tetris.Stats
	Scores        []int
	BestScore     int
	AvgScore      int
	Top           []highscore.Entry
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

func (r *Report) AddGame(score int) {
	r.Scores = append(r.Scores, score)
}

func (r *Report) Finalize() {
	if len(r.Scores) == 0 {
		return
	}

	total := 0
	for _, s := range r.Scores {
		total += s
		r.BestScore = max(r.BestScore, s)
	}
	r.AvgScore = total / len(r.Scores)
}

// SimulatedTime is the total game time covered by all ticks.
func (r *Report) SimulatedTime() time.Duration {
	return time.Duration(r.Stats.Ticks) * r.Tick
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Tick:** {{.Tick}}
- **Seed:** {{.Seed}}
- **Board:** {{.Width}}x{{.Height}}

## Simulation Results
- **Total Ticks:** {{.Stats.Ticks}}
- **Simulated Time:** {{.SimulatedTime}}
- **Wall Time:** {{.TotalTime}}
- **Games Finished:** {{len .Scores}} (started {{.Stats.Games}})
- **Pieces Locked:** {{.Stats.PiecesLocked}}
- **Lines Cleared:** {{.Stats.LinesCleared}}
- **Best Score:** {{.BestScore}}
- **Average Score:** {{.AvgScore}}
- **Tick Time:**
  - **Avg:** {{.Stats.AvgTick}}
  - **Min:** {{.Stats.MinTick}}
  - **Max:** {{.Stats.MaxTick}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end)
{{if .Top}}
## High Scores
{{range $i, $e := .Top}}{{inc $i}}. {{$e.Name}} {{$e.Score}} ({{$e.Lines}} lines)
{{end}}{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"inc": func(i int) int {
			return i + 1
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
