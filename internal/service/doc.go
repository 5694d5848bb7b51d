// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects, the record
// store (internal/store), and the event bus (internal/events).
//
// The central use case is task completion: TaskService.CompleteTask commits
// the durable status transition first and only then publishes the
// task-completed event. Event fan-out is informational; its outcome is
// logged but never changes the result the caller sees.
package service
