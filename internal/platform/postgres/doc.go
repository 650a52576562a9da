// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in the store package. Each store accepts a store.DBTX,
// so the same implementation serves both plain connections and transactions.
package postgres
