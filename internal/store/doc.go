// Package store defines the persistence interfaces and shared error
// taxonomy used by the service layer. Concrete implementations live in
// internal/platform/postgres; stores that participate in multi-write
// operations expose WithTx so callers can compose them inside
// RunInTransaction.
package store
