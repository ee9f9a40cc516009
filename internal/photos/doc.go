// Package photos reconciles cover-photo paths for catalog property values.
//
// Rows in the property photo table are tagged with a property name, a
// property value, and a photo type. Upstream imports leave several rows per
// property value, often pointing at different paths: a file under the served
// uploads directory, an external URL from the supplier, or the placeholder.
// The reconciler loads a snapshot of those rows, groups them by property
// value, chooses one authoritative path per group under a named Policy, and
// writes only the rows that differ.
//
// The Store interface is the only way this package touches the database; it
// is injected by the caller, which also owns its lifecycle. Filesystem checks
// go through the Presence interface so the grouping engine stays a pure
// function of its inputs.
package photos
