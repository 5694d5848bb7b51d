// Package events implements the task-completion fan-out core: a typed
// publish/subscribe bus plus the dispatch coordinator that runs every
// subscriber for an event concurrently, bound by a per-consumer timeout.
//
// The design keeps the producer and the downstream consumers decoupled:
// the producer commits its state transition, publishes one event, and
// receives a DispatchReport describing how each consumer fared. A failing
// or slow consumer never affects its siblings and never surfaces as an
// error to the producer.
//
// The primary components are:
//   - Event: an immutable record of something that happened
//   - Bus: the kind-to-subscribers registry and sole Publish entry point
//   - Consumer: the contract any downstream processor satisfies
//   - DispatchReport: the aggregated per-consumer outcome of one publish
package events
