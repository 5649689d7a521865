// Package http implements the HTTP transport of the CSE and of the scheduler.
//
// Handler is the oneM2M HTTP binding: it turns requests under the configured
// root into [models.Request] primitives, hands them to the resource service
// and writes the response status code, the X-M2M headers and the JSON body.
// Tracing, access logging, compression, metrics and the optional basic or
// bearer authentication are applied as chi middlewares.
//
// SchedulerHandler serves the notification callback of the scheduler.
package http
