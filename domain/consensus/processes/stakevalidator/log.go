package stakevalidator

import "github.com/emberchain/emberd/infrastructure/logger"

var log = logger.RegisterSubSystem("STAK")
