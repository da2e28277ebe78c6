// cmd/taxiplan/main.go

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/liangjizhu/heuristica/pkg/grid"
	"github.com/liangjizhu/heuristica/pkg/ioformat"
	"github.com/liangjizhu/heuristica/pkg/log"
	"github.com/liangjizhu/heuristica/pkg/taxi"
	"github.com/liangjizhu/heuristica/pkg/util"
	"github.com/liangjizhu/heuristica/pkg/visualize"
)

func main() {
	logLevel := flag.String("loglevel", "info", "logging level: debug, info, warn, or error")
	logDir := flag.String("logdir", "", "directory for the log file (default: current directory)")
	cpuprofile := flag.String("cpuprofile", "", "write a CPU profile to this file")
	memprofile := flag.String("memprofile", "", "write a memory profile to this file")
	visual := flag.Bool("animate", false, "replay the computed plan in an animated terminal view")
	flag.Parse()

	if len(flag.Args()) != 2 {
		fmt.Fprintf(os.Stderr, "usage: taxiplan [options] <map.csv> <heuristic (1 or 2)>\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	mapPath := flag.Args()[0]
	heuristicArg := flag.Args()[1]

	heuristicN, err := strconv.Atoi(heuristicArg)
	if err != nil || (heuristicN != 1 && heuristicN != 2) {
		fmt.Fprintf(os.Stderr, "taxiplan: heuristic must be 1 or 2, got %q\n", heuristicArg)
		os.Exit(1)
	}

	lg := log.New(*logLevel, *logDir)
	prof, err := util.CreateProfiler(*cpuprofile, *memprofile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer prof.Cleanup()

	f, err := os.Open(mapPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var el util.ErrorLogger
	inst, err := ioformat.ParseTaxiInput(f, &el)
	if err != nil {
		el.PrintErrors(lg)
		os.Exit(1)
	}
	lg.Infof("parsed %d aircraft over a %dx%d map", len(inst.Aircraft), inst.Map.Bounds.Rows, inst.Map.Bounds.Cols)

	goals := util.MapSlice(inst.Aircraft, func(ac taxi.Aircraft) grid.Cell { return ac.Goal })

	var h taxi.Heuristic
	if heuristicN == 1 {
		h = taxi.H1{Goals: goals}
	} else {
		h = taxi.LoadOrComputeH2(inst.Map, goals)
	}

	sampler := util.StartCPUSampler(200 * time.Millisecond)
	res := taxi.Search(inst, h)
	lg.Infof("peak CPU utilization during search: %.1f%%", sampler.Stop())
	if res.Plan == nil {
		lg.Infof("no plan exists for this instance")
	} else {
		lg.Infof("makespan=%d h0=%d expanded=%d", res.Makespan, res.H0, res.Expanded)
	}

	base := strings.TrimSuffix(mapPath, ".csv")
	planPath := fmt.Sprintf("%s-%d.output", base, heuristicN)
	statPath := fmt.Sprintf("%s-%d.stat", base, heuristicN)

	if err := writeFile(planPath, func(out *os.File) error {
		return ioformat.WritePlanFile(out, res.Plan)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := writeFile(statPath, func(out *os.File) error {
		return ioformat.WriteStatsFile(out, res)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if *visual && res.Plan != nil {
		player, err := visualize.NewPlayer(inst, res.Plan)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		if err := player.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
}

func writeFile(path string, fn func(*os.File) error) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return fn(out)
}
