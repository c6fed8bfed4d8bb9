// Package storage owns the process-wide SQLite connection.
//
// A Store is constructed explicitly with Open, prepared with Initialize and
// released with Close; it is injected into editor sessions and listing code
// rather than living in a global. InitDatabase combines Open and Initialize.
//
// Initialize is safe on every start: migrations are versioned by goose and
// the default folders are seeded only while the folder table is empty.
//
// The pool is limited to one connection. Connection-scoped pragmas
// (foreign_keys, busy_timeout) stay in force and SQLite serializes writers.
package storage
