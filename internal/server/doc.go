// Package server runs the HTTP API and the optional gRPC health endpoint,
// and stops both on SIGTERM, SIGINT or SIGQUIT.
package server
