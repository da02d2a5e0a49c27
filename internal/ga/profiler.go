package ga

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// OperationStats aggregates timing samples for one named operation,
// grounded on pangadfs.profiler.OperationStats.
type OperationStats struct {
	TotalTime time.Duration
	CallCount int
	MinTime   time.Duration
	MaxTime   time.Duration
	Times     []time.Duration
}

func (s *OperationStats) addTiming(d time.Duration) {
	s.TotalTime += d
	s.CallCount++
	if s.MinTime == 0 || d < s.MinTime {
		s.MinTime = d
	}
	if d > s.MaxTime {
		s.MaxTime = d
	}
	s.Times = append(s.Times, d)
}

func (s *OperationStats) avgTime() time.Duration {
	if s.CallCount == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.CallCount)
}

// ProfileSummary is the exported snapshot of a completed run's profiling
// data, the Go analogue of profiler.py's export_to_dict output.
type ProfileSummary struct {
	Enabled                bool
	TotalTime              time.Duration
	SetupTime              time.Duration
	OptimizationTime       time.Duration
	TimeToBestSolution     time.Duration
	BestSolutionGeneration int
	GenerationsCompleted   int
	AvgGenerationTime      time.Duration
	MeanGenerationTime     float64
	StddevGenerationTime   float64
	Operations             map[string]OperationStats
}

// Profiler times optimization phases: setup, each generation, and the
// overall run, grounded on pangadfs.profiler.GAProfiler.
type Profiler struct {
	enabled bool

	startTime, endTime           time.Time
	setupCompleteTime            time.Time
	bestSolutionTime             time.Time
	bestSolutionGeneration       int
	generationTimes              []time.Duration
	currentGeneration            int
	currentGenerationStart       time.Time
	stats                        map[string]*OperationStats
}

// NewProfiler constructs a Profiler; when enabled is false every method is
// a no-op and Summary reports ProfileSummary{Enabled: false}.
func NewProfiler(enabled bool) *Profiler {
	return &Profiler{enabled: enabled, stats: make(map[string]*OperationStats)}
}

func (p *Profiler) StartOptimization() {
	if !p.enabled {
		return
	}
	p.startTime = time.Now()
}

func (p *Profiler) EndOptimization() {
	if !p.enabled {
		return
	}
	p.endTime = time.Now()
}

func (p *Profiler) MarkSetupComplete() {
	if !p.enabled {
		return
	}
	p.setupCompleteTime = time.Now()
}

func (p *Profiler) MarkBestSolution(generation int) {
	if !p.enabled {
		return
	}
	p.bestSolutionTime = time.Now()
	p.bestSolutionGeneration = generation
}

func (p *Profiler) StartGeneration(generation int) {
	if !p.enabled {
		return
	}
	p.currentGeneration = generation
	p.currentGenerationStart = time.Now()
}

func (p *Profiler) EndGeneration() {
	if !p.enabled || p.currentGenerationStart.IsZero() {
		return
	}
	p.generationTimes = append(p.generationTimes, time.Since(p.currentGenerationStart))
}

// TimeOperation runs fn and records its duration under name, the Go
// analogue of profiler.py's time_operation context manager.
func (p *Profiler) TimeOperation(name string, fn func()) {
	if !p.enabled {
		fn()
		return
	}
	start := time.Now()
	defer func() {
		s, ok := p.stats[name]
		if !ok {
			s = &OperationStats{}
			p.stats[name] = s
		}
		s.addTiming(time.Since(start))
	}()
	fn()
}

// Summary returns the accumulated profiling data for this run.
func (p *Profiler) Summary() *ProfileSummary {
	if !p.enabled {
		return &ProfileSummary{Enabled: false}
	}

	total := durationBetween(p.startTime, p.endTime)
	setup := durationBetween(p.startTime, p.setupCompleteTime)
	optimization := durationBetween(p.setupCompleteTime, p.endTime)
	toBest := durationBetween(p.startTime, p.bestSolutionTime)

	ops := make(map[string]OperationStats, len(p.stats))
	for name, s := range p.stats {
		ops[name] = *s
	}

	mean, stddev := 0.0, 0.0
	if len(p.generationTimes) > 0 {
		samples := make([]float64, len(p.generationTimes))
		for i, d := range p.generationTimes {
			samples[i] = d.Seconds()
		}
		mean = stat.Mean(samples, nil)
		if len(samples) > 1 {
			stddev = stat.StdDev(samples, nil)
		}
	}

	var avg time.Duration
	if len(p.generationTimes) > 0 {
		var sum time.Duration
		for _, d := range p.generationTimes {
			sum += d
		}
		avg = sum / time.Duration(len(p.generationTimes))
	}

	return &ProfileSummary{
		Enabled:                true,
		TotalTime:              total,
		SetupTime:              setup,
		OptimizationTime:       optimization,
		TimeToBestSolution:     toBest,
		BestSolutionGeneration: p.bestSolutionGeneration,
		GenerationsCompleted:   len(p.generationTimes),
		AvgGenerationTime:      avg,
		MeanGenerationTime:     mean,
		StddevGenerationTime:   stddev,
		Operations:             ops,
	}
}

func durationBetween(start, end time.Time) time.Duration {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	return end.Sub(start)
}
