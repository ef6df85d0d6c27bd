//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals stop a conversion: Ctrl+C and SIGTERM from supervisors.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
