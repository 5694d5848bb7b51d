// Package consumers contains the downstream processors subscribed to
// task lifecycle events: progress recalculation, story composition,
// notification delivery, and semantic-memory indexing.
//
// Each consumer is a thin adapter: it fetches the entity snapshot it
// needs from the record store, performs one unit of domain work, and
// returns. Consumers never mutate the event payload and are registered
// under the names exported here so dispatch reports stay stable.
package consumers
