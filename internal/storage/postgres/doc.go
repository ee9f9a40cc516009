// Package postgres implements the storefront store on PostgreSQL through a
// pgx connection pool. It targets the live storefront database, so it never
// creates or migrates tables on open.
package postgres
