// Package store defines the persistence contracts of the application:
// one interface per entity, the sentinel errors all implementations
// share, and RunInTransaction, the single unit-of-work entry point
// every multi-step write goes through.
package store
