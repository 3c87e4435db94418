package id

import "github.com/oklog/ulid/v2"

// New returns a fresh ULID. Sortable by mint time, which keeps user ids
// roughly chronological in table scans.
func New() string {
	return ulid.Make().String()
}
