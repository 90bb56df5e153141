// Package state provides filesystem-backed storage for production records,
// the pending-artifact mapping and the cancellation marker. All writes are
// atomic (temp file + rename) so a concurrently running pipeline never
// observes a half-written file.
package state
