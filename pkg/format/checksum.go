package format

import (
	"github.com/cespare/xxhash/v2"

	"github.com/ozkatz/cloudbytes/pkg/lazy"
)

// Checksum returns the xxhash64 digest of the materialized object.
func Checksum(v lazy.Viewer) (uint64, error) {
	data, ok := v.Bytes()
	if !ok {
		return 0, lazy.ErrSourceUnavailable
	}
	return xxhash.Sum64(data), nil
}
