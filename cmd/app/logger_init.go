package main

import (
	"github.com/osse101/modstanding/internal/logger"
)

// initBootLogger installs a stdout logger for failures that happen before
// the configuration is loaded and the session log file exists.
func initBootLogger() {
	logger.InitLogger(logger.DefaultConfig())
}
