// Package sqlite provides the single-file SQLite store for normalised records.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements driven.RecordStore.
//
// # Schema
//
// Tables are generated from domain.TableSchema values and created with
// CREATE TABLE IF NOT EXISTS ... STRICT, so opening is idempotent. Boolean
// columns become INTEGER columns constrained to 0 and 1; categorical columns
// are constrained to their codes.
//
// # Clearing and Backups
//
// Opening a writable store with Clear drops every schema table and vacuums the
// file. When Backup is also set and the file already holds data, a
// byte-identical copy is written to the backup directory first.
//
// # Data Location
//
// By default, the database is stored at data/database.db
//
// # Thread Safety
//
// The store holds a single connection. Calls are serialised by database/sql;
// the rollback journal is used so the file size reflects committed data.
package sqlite
