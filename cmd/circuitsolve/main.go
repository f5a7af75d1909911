// Command circuitsolve reads a netlist file, solves it, and reports node
// potentials and source currents. Grounded on the teacher's main.go
// structure (banner, argument table, deferred panic recovery) but driven by
// the standard flag package rather than a positional-argument helper.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/circuitkit/mna/internal/xlog"
	"github.com/circuitkit/mna/netlist"
	"github.com/circuitkit/mna/report"
)

func main() {
	log := xlog.New("")

	defer func() {
		if err := recover(); err != nil {
			log.Error("panic: %v", err)
			os.Exit(1)
		}
	}()

	verbose := flag.Bool("v", true, "print a startup banner")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: circuitsolve [-v] <netlist-file>")
		os.Exit(2)
	}
	fnamepath := flag.Arg(0)

	if *verbose {
		log.Banner("circuitsolve -- dense MNA circuit solver")
	}

	f, err := os.Open(fnamepath)
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	defer f.Close()

	c, names, err := netlist.Load(f)
	if err != nil {
		log.Error("loading %s: %v", fnamepath, err)
		os.Exit(1)
	}

	if err := report.Solve(os.Stdout, c, names); err != nil {
		log.Error("solving %s: %v", fnamepath, err)
		os.Exit(1)
	}
}
