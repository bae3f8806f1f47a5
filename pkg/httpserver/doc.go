// Package httpserver runs an http.Handler with configured timeouts and shuts
// it down gracefully when the context ends or the process receives SIGINT or
// SIGTERM. HealthCheckHandler serves liveness and readiness checks.
package httpserver
