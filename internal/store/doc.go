// Package store provides a SQLite-backed runtime environment.
//
// Each application of a configuration's php section is recorded with:
//   - Applications: one row per Begin, with the configuration path and digest
//   - Ini settings: last-writer-wins
//   - Constants: first-writer-wins, never redefined
//   - Globals: last-writer-wins
//
// Every setting row names the application that last wrote it.
//
// # Ordering
//
//   - Applications are ordered by seq INTEGER (logical clock), never by
//     timestamps
//   - Setting queries order by name ASC COLLATE BINARY
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Values are stored as tagged canonical JSON (see marshal.go) so that the
// variant of every ir.Value survives a round trip.
package store
