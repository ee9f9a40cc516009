// Package services defines shared helpers consumed by the maintenance
// procedures and their external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and procedure names for
//     logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     (precondition, store, filesystem, external API) for operator output.
//
// Use these helpers when wiring new procedures so failures read the same way
// across every command.
package services
