package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/emberchain/emberd/infrastructure/logger"
	"github.com/emberchain/emberd/version"
)

const defaultLogFilename = "kernelsim.log"

type configFlags struct {
	ShowVersion    bool   `short:"V" long:"version" description:"Display version information and exit"`
	NumberOfBlocks uint64 `short:"n" long:"numblocks" default:"64" description:"Number of stake blocks to find before exiting"`
	Stakers        uint64 `long:"stakers" default:"16" description:"Number of independent stake coins competing for kernels"`
	CoinValue      int64  `long:"coinvalue" default:"100000000000" description:"Value of each stake coin, in base units"`
	DifficultyBits string `long:"bits" default:"1b00ffff" description:"Compact difficulty bits for every simulated block, in hex"`
	Seed           int64  `long:"seed" default:"1" description:"Seed for the simulation's random number generator"`
	LogLevel       string `long:"loglevel" default:"info" description:"Set log level {trace, debug, info, warn, error, critical}"`

	bits uint32
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	if err != nil {
		return nil, err
	}

	bits, err := strconv.ParseUint(cfg.DifficultyBits, 16, 32)
	if err != nil {
		return nil, errors.Wrapf(err, "--bits %s is not valid hex", cfg.DifficultyBits)
	}
	cfg.bits = uint32(bits)

	if cfg.Stakers == 0 {
		return nil, errors.New("--stakers must be at least 1")
	}
	if cfg.CoinValue <= 0 {
		return nil, errors.New("--coinvalue must be positive")
	}

	level, ok := logger.LevelFromString(cfg.LogLevel)
	if !ok {
		return nil, errors.Errorf("%s is not a valid log level, must be one of %s",
			cfg.LogLevel, strings.Join(logger.SupportedLevels(), ", "))
	}
	initLog(defaultLogFilename, level)

	return cfg, nil
}
