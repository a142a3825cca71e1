/*
DESCRIPTION
  boxblur.go implements a separable horizontal+vertical accumulator box
  blur. The detector does not call it: block matching runs on the
  unblurred luma plane whatever the configured step size.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package boxblur implements a separable accumulator box blur over planar
// frame buffers, grounded on original_source/src/boxblur.c.
package boxblur

import "github.com/ausocean/vidstab/frame"

// ColorMode selects which planes a Blur call touches.
type ColorMode int

const (
	// LumaOnly blurs only plane 0.
	LumaOnly ColorMode = iota
	// AllPlanes blurs every plane, subsampled planes included.
	AllPlanes
)

// normalizeSize makes size odd (an even size goes up by one), raises it to
// at least 3 and caps it at min(w,h)/2; when that cap is even the result
// is the cap plus one, so it can exceed min(w,h)/2 by one.
func normalizeSize(size, w, h int) int {
	size = (size/2)*2 + 1
	max := w
	if h < max {
		max = h
	}
	max /= 2
	if size < 3 {
		size = 3
	}
	if size > max {
		size = max
	}
	if size%2 == 0 {
		size++
	}
	return size
}

// Blur writes a box-blurred copy of src into dst (which must already be
// allocated with the same FrameInfo) using the given kernel size (odd,
// clamped as in the original) and color mode.
func Blur(dst, src *frame.Frame, fi frame.FrameInfo, size int, mode ColorMode) {
	planes := fi.Planes()
	for p := 0; p < planes; p++ {
		if mode == LumaOnly && p != 0 {
			copy(dst.Data[p], src.Data[p])
			continue
		}
		w := fi.PlaneWidth(p)
		h := fi.PlaneHeight(p)
		s := normalizeSize(size, w, h)
		blurPlane(dst.Data[p], src.Data[p], dst.Linesize[p], src.Linesize[p], w, h, s)
	}
}

// blurPlane runs the horizontal pass into a scratch buffer, then the
// vertical pass from the scratch buffer into dst.
func blurPlane(dst, src []byte, dstLinesize, srcLinesize, w, h, size int) {
	scratch := make([]byte, len(src))
	blurHorizontal(scratch, src, srcLinesize, w, h, size)
	blurVertical(dst, scratch, dstLinesize, srcLinesize, w, h, size)
}

// blurHorizontal runs a 1-D accumulator box blur along each row.
func blurHorizontal(dst, src []byte, linesize, w, h, size int) {
	r := size / 2
	for y := 0; y < h; y++ {
		row := y * linesize
		var sum int
		for x := -r; x <= r; x++ {
			sum += int(sampleClamped(src, row, w, x))
		}
		for x := 0; x < w; x++ {
			dst[row+x] = byte(sum / size)
			leave := x - r
			enter := x + r + 1
			sum -= int(sampleClamped(src, row, w, leave))
			sum += int(sampleClamped(src, row, w, enter))
		}
	}
}

// blurVertical runs a 1-D accumulator box blur down each column.
func blurVertical(dst, src []byte, dstLinesize, srcLinesize, w, h, size int) {
	r := size / 2
	for x := 0; x < w; x++ {
		var sum int
		for y := -r; y <= r; y++ {
			sum += int(sampleColClamped(src, srcLinesize, h, x, y))
		}
		for y := 0; y < h; y++ {
			dst[y*dstLinesize+x] = byte(sum / size)
			leave := y - r
			enter := y + r + 1
			sum -= int(sampleColClamped(src, srcLinesize, h, x, leave))
			sum += int(sampleColClamped(src, srcLinesize, h, x, enter))
		}
	}
}

func sampleClamped(row []byte, off, w, x int) byte {
	if x < 0 {
		x = 0
	}
	if x >= w {
		x = w - 1
	}
	return row[off+x]
}

func sampleColClamped(src []byte, linesize, h, x, y int) byte {
	if y < 0 {
		y = 0
	}
	if y >= h {
		y = h - 1
	}
	return src[y*linesize+x]
}
