//go:build arm64

package resample

import "github.com/ajroetker/go-highway/hwy"

// hasWideLanes reports whether go-highway has dispatched to a real SIMD
// backend (NEON/SVE) rather than its scalar fallback. ASIMD is mandatory
// on arm64, so this is effectively always true, but the probe is kept
// for symmetry with cpu_amd64.go and to document the dependency
// explicitly, sourced from go-highway rather than a hand-rolled ASIMD
// probe.
func hasWideLanes() bool {
	return hwy.HasSIMD()
}
