package main

import (
	"context"
	"os/signal"
)

// notifyContext derives a context canceled on any of shutdownSignals, so an
// interrupted run stops before the output file is replaced.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
