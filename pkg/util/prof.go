// pkg/util/prof.go
// Copyright(c) 2025-2026 heuristica contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/shirou/gopsutil/cpu"
)

// Profiler owns the CPU and heap profile files enabled by a CLI's
// -cpuprofile/-memprofile flags. Both solvers run to completion
// synchronously, so there is no need for the signal-driven early-exit
// handling a long-lived server would need; Cleanup is simply called
// once the solver returns.
type Profiler struct {
	cpu, mem *os.File
}

// CreateProfiler starts CPU profiling (if cpu is non-empty) and opens the
// heap profile destination (if mem is non-empty).
func CreateProfiler(cpu, mem string) (Profiler, error) {
	p := Profiler{}

	absPath := func(p string) string {
		if p != "" && !filepath.IsAbs(p) {
			if cwd, err := os.Getwd(); err == nil {
				return filepath.Join(cwd, p)
			}
		}
		return p
	}
	cpu = absPath(cpu)
	mem = absPath(mem)

	var err error
	if cpu != "" {
		if p.cpu, err = os.Create(cpu); err != nil {
			return Profiler{}, fmt.Errorf("%s: unable to create CPU profile file: %v", cpu, err)
		} else if err = pprof.StartCPUProfile(p.cpu); err != nil {
			p.cpu.Close()
			return Profiler{}, fmt.Errorf("unable to start CPU profile: %v", err)
		}
	}

	if mem != "" {
		if p.mem, err = os.Create(mem); err != nil {
			return Profiler{}, fmt.Errorf("%s: unable to create memory profile file: %v", mem, err)
		}
	}

	return p, nil
}

// Cleanup stops CPU profiling and writes the heap profile, if either was
// requested. It is safe to call on a zero-valued Profiler.
func (p *Profiler) Cleanup() {
	if p.cpu != nil {
		pprof.StopCPUProfile()
		p.cpu.Close()
		p.cpu = nil
	}
	if p.mem != nil {
		if err := pprof.WriteHeapProfile(p.mem); err != nil {
			fmt.Fprintf(os.Stderr, "unable to write memory profile file: %v\n", err)
		}
		p.mem.Close()
		p.mem = nil
	}
}

// CPUSampler tracks peak system-wide CPU utilization over a run. A
// batch solve has a definite end, so rather than watching for a
// process wedged above a utilization threshold, it just records the
// highest cpu.Percent reading between Start and Stop for the run's
// diagnostic log line.
type CPUSampler struct {
	peak float64
	stop chan struct{}
	done chan struct{}
}

// StartCPUSampler begins polling cpu.Percent every interval in the
// background until Stop is called.
func StartCPUSampler(interval time.Duration) *CPUSampler {
	s := &CPUSampler{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(s.done)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-t.C:
				if usage, err := cpu.Percent(0, false); err == nil && len(usage) > 0 && usage[0] > s.peak {
					s.peak = usage[0]
				}
			}
		}
	}()
	return s
}

// Stop halts sampling and returns the peak utilization percentage
// observed, or 0 if the sampler never got a reading in before Stop was
// called (e.g. the run finished faster than one interval).
func (s *CPUSampler) Stop() float64 {
	close(s.stop)
	<-s.done
	return s.peak
}
