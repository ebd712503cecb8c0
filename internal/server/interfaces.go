package server

import "context"

// Server defines the lifecycle of the transports managed by this package.
type Server interface {
	// RunServer serves until ctx is done, a termination signal arrives or a
	// transport fails. It shuts every transport down before returning.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops all transports.
	Shutdown()
}
