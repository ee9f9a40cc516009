// Package main hosts the doorops CLI entrypoint and command graph.
//
// Each subcommand runs one maintenance procedure against the storefront:
// photo path reconciliation and marker sweeps, category seeding and bulk
// product deletes, supplier workbook inspection, and storefront API checks.
// This package resolves configuration, opens and closes the store, tags the
// run for logging, and renders results; the procedures themselves live in
// the internal packages.
package main
