package main

import (
	"fmt"
	"os"

	"github.com/emberchain/emberd/infrastructure/logger"
)

var (
	backendLog = logger.BackendLog()
	log        = logger.RegisterSubSystem("KSIM")
)

func initLog(logFile string, level logger.Level) {
	err := backendLog.AddLogWriter(os.Stdout, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding stdout to the logger for level %s: %s", level, err)
		os.Exit(1)
	}
	err = backendLog.AddLogFile(logFile, logger.LevelTrace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", logFile, logger.LevelTrace, err)
		os.Exit(1)
	}
	err = backendLog.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the logger: %s ", err)
		os.Exit(1)
	}
	logger.SetLogLevels(level)
}
