// Package server runs the HTTP server of a binary until a termination signal
// arrives and then shuts it down gracefully.
package server
