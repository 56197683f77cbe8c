package resample

// weights1D is the 1D binomial approximation to a Gaussian,
// [1, 4, 6, 4, 1]/16, whose outer product forms the 5x5 separable kernel
// used by both downsample and upsample.
var weights1D = [5]float64{1, 4, 6, 4, 1}

// Kernel2D returns the 5x5 tensor-product kernel {1,4,6,4,1}(x){1,4,6,4,1}/256.
func Kernel2D() [5][5]float64 {
	var k [5][5]float64
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			k[i][j] = weights1D[i] * weights1D[j] / 256
		}
	}
	return k
}

// weights1DInt and the /16 normalization are exact in integer arithmetic,
// which the U8 fast path exploits; it rounds to nearest where the float
// path takes the ceiling, so the two can differ by one per pixel.
var weights1DInt = [5]int32{1, 4, 6, 4, 1}

// Reflect maps an out-of-range index into [0, n) by mirroring about the
// nearest edge, without ever duplicating a boundary pixel:
// reflect(i,n) = -i if i<0, 2n-i-2 if i>=n, else i. Indices more than one
// mirror away are folded repeatedly (period 2n-2); for n == 1 every index
// maps to 0.
func Reflect(i, n int) int {
	if i >= 0 && i < n {
		return i
	}
	if n == 1 {
		return 0
	}
	if i < 0 {
		i = -i
	}
	i %= 2*n - 2
	if i >= n {
		i = 2*n - 2 - i
	}
	return i
}
