// Package postgres provides the PostgreSQL implementations of the
// store interfaces. Each store works against store.DBTX, so the same
// code runs on a plain connection or inside a transaction handed out
// by store.RunInTransaction.
package postgres
