package cachewatch

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/scrwatch/internal/core/domain"
)

// Fingerprint folds every entry's URL and last-used second into one hash.
// Order matters: two reads hash equal only if they decoded the same entries
// in the same order.
func Fingerprint(entries []domain.CacheEntry) uint64 {
	d := xxhash.New()
	var ts [8]byte
	for _, e := range entries {
		_, _ = d.WriteString(e.URL)
		binary.LittleEndian.PutUint64(ts[:], uint64(e.LastUsed.Unix()))
		_, _ = d.Write(ts[:])
	}
	return d.Sum64()
}
