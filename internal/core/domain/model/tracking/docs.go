// Package tracking holds the append-only tracking log entries shown to
// customers for a tracking id. Entries are never updated or deleted.
package tracking
