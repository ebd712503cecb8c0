// Package http implements the REST API of the todo-list server.
//
// It wires chi routes to the service layer and carries the cross-cutting
// middleware: trace ids, access logging, panic recovery, CORS, metrics,
// rate limiting of the public auth routes, response compression and bearer
// token authentication.
package http
