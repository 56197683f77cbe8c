//go:build amd64

package resample

import "github.com/ajroetker/go-highway/hwy"

// hasWideLanes reports whether go-highway has dispatched to a real SIMD
// backend (AVX2/AVX-512) rather than its scalar fallback, mirroring
// deepteams-webp/internal/dsp/cpuid_amd64.go's HasAVX2 probe but sourced
// from the portable vector library that backs wideIntPipelineDownsampleU8
// instead of a hand-rolled CPUID probe.
func hasWideLanes() bool {
	return hwy.HasSIMD()
}
