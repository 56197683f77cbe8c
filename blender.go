package pyramid

import "github.com/blendkit/pyramid/raster"

// Kind selects the blending variant at construction time.
type Kind int

const (
	// KindMultiBand selects the Laplacian/Gaussian multi-band blender.
	KindMultiBand Kind = iota
	// KindFeather selects the single-resolution feather blender.
	KindFeather
)

// MaxBands caps the multi-band blender's band count (spec.md §4.5.1).
const MaxBands = 7

// Blender is the shared feed/blend contract implemented by both
// variants (spec.md §3's "Blender object" and §6's operation table).
//
// Lifecycle: New -> 1..N Feed calls -> exactly one Blend -> Result -> Close.
// Feed must never be called after Blend.
type Blender interface {
	// Feed accumulates one input image/mask pair placed at topLeft on the
	// output canvas. img is 3-channel U8, mask is 1-channel U8, and both
	// must share the same dimensions (ErrSizeMismatch otherwise). A
	// placement wholly outside the canvas is a silent no-op, not an
	// error (spec.md §7.3).
	Feed(img, mask raster.U8, topLeft raster.Point) error

	// Blend finalizes the accumulated inputs into Result. It is
	// infallible once all Feed calls have returned successfully, except
	// for ErrClosed after Close; a repeated Blend is a no-op returning nil.
	Blend() error

	// Result returns the blended U8 RGB raster. Returns ErrNotBlended if
	// called before Blend has completed successfully.
	Result() (raster.U8, error)

	// Close releases the blender's accumulator state. Further Feed/Blend
	// calls return ErrClosed.
	Close()
}

// New creates a blender of the requested kind. outRect is the caller's
// requested output placement and size (real_out_size in spec.md §3);
// numBands is clamped per spec.md §4.5.1 and ignored for KindFeather.
// For KindFeather with distance-transform falloff enabled, use
// NewFeather directly.
func New(kind Kind, outRect raster.Rect, numBands int) (Blender, error) {
	switch kind {
	case KindFeather:
		return newFeather(outRect), nil
	default:
		return newMultiBand(outRect, numBands)
	}
}

// NewMultiBand creates a multi-band Laplacian/Gaussian pyramid blender.
// numBands is clamped to MaxBands and to floor(log2(max(W,H))) of the
// requested output size (spec.md §4.5.1); a negative numBands returns
// ErrInvalidBands.
func NewMultiBand(outRect raster.Rect, numBands int) (Blender, error) {
	return newMultiBand(outRect, numBands)
}

// NewFeather creates a single-resolution feather blender. When
// distanceTransform is true, every fed mask is replaced by its chamfer
// distance transform (component C4) before weighting, giving a smooth
// falloff instead of a hard mask edge (spec.md §4.5.3).
func NewFeather(outRect raster.Rect, distanceTransform bool) (Blender, error) {
	f := newFeather(outRect)
	if distanceTransform {
		f.EnableDistanceTransform()
	}
	return f, nil
}
