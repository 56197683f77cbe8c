//go:build !amd64 && !arm64

package resample

// hasWideLanes is always false on platforms without a wide-lane probe
// wired up; downsampleU8 falls back to the narrow (column-at-a-time)
// integer pipeline, which is already bit-compatible with the wide path.
func hasWideLanes() bool {
	return false
}
