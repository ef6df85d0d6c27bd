//go:build windows

package main

import "os"

// shutdownSignals stop a conversion. Windows delivers only Ctrl+C.
var shutdownSignals = []os.Signal{os.Interrupt}
