// Package api implements the HTTP delivery layer: request/response models,
// handlers, and error mapping. Handlers are thin shims over the service
// layer; completing a task through this API is what triggers the
// task-completed event fan-out.
package api
