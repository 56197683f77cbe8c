// Package mask provides convenience generators for the step masks used
// to test and drive the blending core: a single-channel U8 raster that
// is 255 where an input contributes fully and 0 where it contributes
// nothing.
package mask

import "github.com/blendkit/pyramid/raster"

// Horizontal builds a width x height mask that is all-255 except for a
// column stripe of width floor(cutRange*width) zeroed on each requested
// side. cutRange is clamped to [0, 1]. Per Open Question 4, when neither
// left nor right is requested the result is an all-255 mask, never an
// uninitialized or partially-filled buffer.
func Horizontal(width, height int, cutRange float64, left, right bool) raster.U8 {
	m := raster.New[uint8](width, height, 1)
	for i := range m.Data {
		m.Data[i] = 255
	}
	if !left && !right {
		return m
	}

	cut := clampCut(cutRange, width)
	for y := 0; y < height; y++ {
		if left {
			for x := 0; x < cut; x++ {
				m.Set(x, y, 0, 0)
			}
		}
		if right {
			for x := width - cut; x < width; x++ {
				m.Set(x, y, 0, 0)
			}
		}
	}
	return m
}

// Vertical builds a width x height mask that is all-255 except for a row
// stripe of height floor(cutRange*height) zeroed on each requested side.
// Analogous to Horizontal but for top/bottom.
func Vertical(width, height int, cutRange float64, top, bottom bool) raster.U8 {
	m := raster.New[uint8](width, height, 1)
	for i := range m.Data {
		m.Data[i] = 255
	}
	if !top && !bottom {
		return m
	}

	cut := clampCut(cutRange, height)
	if top {
		for y := 0; y < cut; y++ {
			row := m.Row(y)
			for x := range row {
				row[x] = 0
			}
		}
	}
	if bottom {
		for y := height - cut; y < height; y++ {
			row := m.Row(y)
			for x := range row {
				row[x] = 0
			}
		}
	}
	return m
}

func clampCut(cutRange float64, dim int) int {
	if cutRange < 0 {
		cutRange = 0
	}
	if cutRange > 1 {
		cutRange = 1
	}
	return int(cutRange * float64(dim))
}
