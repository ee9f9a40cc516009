// Package storage implements the storefront store on SQLite. It serves the
// photo and catalog procedures and the fixtures used by tests and local
// development. The PostgreSQL backend lives in storage/postgres.
//
// Rows are always returned ordered by id so that every procedure sees the
// same candidate order on every run.
package storage
