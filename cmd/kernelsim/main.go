package main

import (
	"fmt"
	"os"

	"github.com/emberchain/emberd/util/panics"
	"github.com/emberchain/emberd/version"
)

func main() {
	defer panics.HandlePanic(log, nil)

	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		os.Exit(1)
	}

	log.Infof("%s version %s", version.AppName(), version.Version())
	log.Infof("Simulating %d stake blocks with difficulty bits %08x", cfg.NumberOfBlocks, cfg.bits)

	err = newSimulation(cfg).run()
	if err != nil {
		panics.Exit(log, fmt.Sprintf("Simulation failed: %s", err))
	}

	backendLog.Close()
}
