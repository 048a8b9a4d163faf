// Package sqlite persists toolchain run history for a workspace.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. It implements
// the RunStore driven port through a single database connection.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory. Each migration is a pair of .up.sql and
// .down.sql files.
//
// # Data Location
//
// The database lives inside the workspace at .webrig/history.db, so
// history travels with the project and never mixes across workspaces.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
