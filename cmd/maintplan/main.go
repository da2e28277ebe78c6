// cmd/maintplan/main.go

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/liangjizhu/heuristica/pkg/ioformat"
	"github.com/liangjizhu/heuristica/pkg/log"
	"github.com/liangjizhu/heuristica/pkg/schedule"
	"github.com/liangjizhu/heuristica/pkg/util"
)

func main() {
	logLevel := flag.String("loglevel", "info", "logging level: debug, info, warn, or error")
	logDir := flag.String("logdir", "", "directory for the log file (default: current directory)")
	cpuprofile := flag.String("cpuprofile", "", "write a CPU profile to this file")
	memprofile := flag.String("memprofile", "", "write a memory profile to this file")
	flag.Parse()

	if len(flag.Args()) != 1 {
		fmt.Fprintf(os.Stderr, "usage: maintplan [options] <input.txt>\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath := flag.Args()[0]

	lg := log.New(*logLevel, *logDir)
	prof, err := util.CreateProfiler(*cpuprofile, *memprofile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer prof.Cleanup()

	f, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var el util.ErrorLogger
	inst, err := ioformat.ParseMaintenanceInput(f, &el)
	if err != nil {
		el.PrintErrors(lg)
		os.Exit(1)
	}

	byKind := map[schedule.AircraftKind]int{}
	for _, ac := range inst.Aircraft {
		byKind[ac.Kind]++
	}
	for _, k := range util.SortedMapKeys(byKind) {
		lg.Infof("%s aircraft: %d", k, byKind[k])
	}
	jumbos := util.CountSlice(inst.Aircraft, func(a schedule.Aircraft) bool { return a.Kind == schedule.JMB })
	lg.Infof("parsed %d aircraft (%d jumbo), %d slots", len(inst.Aircraft), jumbos, inst.Slots)

	sampler := util.StartCPUSampler(200 * time.Millisecond)
	solutions := schedule.Enumerate(inst)
	lg.Infof("peak CPU utilization during enumeration: %.1f%%", sampler.Stop())
	lg.Infof("found %d solutions", len(solutions))

	outputPath := strings.TrimSuffix(inputPath, ".txt") + ".csv"
	out, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := ioformat.WriteMaintenanceOutput(out, inst, solutions); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
