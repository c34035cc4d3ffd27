// rating.go: deterministic per-name ratings.
package places

// Rating derives a stable rating in [3.0, 5.0] from a place name. The
// same name always yields the same value, across requests and across
// processes, so listings stay consistent without persisting anything.
//
// The rolling hash uses 32-bit signed wraparound on purpose; changing
// the arithmetic changes every rating in the catalog.
func Rating(name string) float64 {
	var hash int32
	for _, r := range name {
		hash = int32(r) + (hash << 5) - hash
	}

	// Widen before abs: -MinInt32 overflows int32.
	h := int64(hash)
	if h < 0 {
		h = -h
	}
	return 3.0 + float64(h%21)/10.0
}
