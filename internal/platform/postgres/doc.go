// Package postgres provides the PostgreSQL implementations of the data
// storage interfaces defined in the internal/store package, along with
// the embedded schema migrations. It handles query execution, error
// mapping, and data mapping between domain entities and database rows.
package postgres
