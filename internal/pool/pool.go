// Package pool provides bucketed sync.Pool instances for reducing allocations
// in hot paths. Buffers are organized by size class to minimize waste.
package pool

import "sync"

// Size classes for bucketed pools.
const (
	Size256B = 256
	Size1K   = 1024
	Size4K   = 4096
	Size16K  = 16384
	Size64K  = 65536
	Size256K = 262144
	Size1M   = 1048576
)

// bucketIndex returns the pool index for a given size.
func bucketIndex(size int) int {
	switch {
	case size <= Size256B:
		return 0
	case size <= Size1K:
		return 1
	case size <= Size4K:
		return 2
	case size <= Size16K:
		return 3
	case size <= Size64K:
		return 4
	case size <= Size256K:
		return 5
	default:
		return 6
	}
}

var sizes = [7]int{Size256B, Size1K, Size4K, Size16K, Size64K, Size256K, Size1M}

var pools [7]sync.Pool
var int16Pools [7]sync.Pool
var float32Pools [7]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i] = sync.Pool{
			New: func() any {
				b := make([]byte, sz)
				return &b
			},
		}
		int16Pools[i] = sync.Pool{
			New: func() any {
				s := make([]int16, sz)
				return &s
			},
		}
		float32Pools[i] = sync.Pool{
			New: func() any {
				s := make([]float32, sz)
				return &s
			},
		}
	}
}

// Get returns a byte slice of at least the requested size from the pool.
// The returned slice has length == size and may have a larger capacity.
// The caller must call Put when done.
func Get(size int) []byte {
	idx := bucketIndex(size)
	bp := pools[idx].Get().(*[]byte)
	b := *bp
	if cap(b) < size {
		b = make([]byte, size)
		*bp = b
		return b
	}
	return b[:size]
}

// Put returns a byte slice to the pool. The slice must have been obtained
// from Get. Slices smaller than Size256B are not pooled.
func Put(b []byte) {
	c := cap(b)
	if c < Size256B {
		return
	}
	idx := bucketIndex(c)
	b = b[:c]
	pools[idx].Put(&b)
}

// GetInt16 returns an int16 slice of length n drawn from a size-classed
// pool. The caller must call PutInt16 when done. Used by internal/pyramid
// to recycle the Laplacian/Gaussian level buffers that Build allocates
// and discards on every Feed call.
func GetInt16(n int) []int16 {
	idx := bucketIndex(n)
	sp := int16Pools[idx].Get().(*[]int16)
	s := *sp
	if cap(s) < n {
		s = make([]int16, n)
	}
	return s[:n]
}

// PutInt16 returns a slice obtained from GetInt16 to the pool. Slices
// smaller than Size256B elements are not pooled.
func PutInt16(s []int16) {
	c := cap(s)
	if c < Size256B {
		return
	}
	idx := bucketIndex(c)
	s = s[:c]
	int16Pools[idx].Put(&s)
}

// GetFloat32 returns a float32 slice of length n drawn from a
// size-classed pool. The caller must call PutFloat32 when done. Used by
// the multiband accumulator pyramids, which each blender allocates once
// at construction and returns on Blend or Close.
func GetFloat32(n int) []float32 {
	idx := bucketIndex(n)
	sp := float32Pools[idx].Get().(*[]float32)
	s := *sp
	if cap(s) < n {
		s = make([]float32, n)
	}
	return s[:n]
}

// PutFloat32 returns a slice obtained from GetFloat32 to the pool.
// Slices smaller than Size256B elements are not pooled.
func PutFloat32(s []float32) {
	c := cap(s)
	if c < Size256B {
		return
	}
	idx := bucketIndex(c)
	s = s[:c]
	float32Pools[idx].Put(&s)
}
