/*
DESCRIPTION
  field.go lays out the rectangular grid of measurement Fields used by the
  block-match search, grounded on original_source/src/motiondetect.c's
  configureMotionDetect and initFields.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package detect

// Field is an axis-aligned square measurement region: center (X,Y) and odd
// Size. The entire field plus a maxShift+stepSize border must lie inside
// the frame (spec.md §3).
type Field struct {
	X, Y, Size int
}

// deriveShiftAndSize computes maxShift and fieldSize from shakiness and the
// frame's smaller dimension, matching configureMotionDetect:
// max(4, min(w,h)*shakiness/40).
func deriveShiftAndSize(w, h, shakiness int) (maxShift, fieldSize int) {
	m := w
	if h < m {
		m = h
	}
	v := m * shakiness / 40
	if v < 4 {
		v = 4
	}
	return v, oddify(v)
}

// oddify rounds v up to the nearest odd integer.
func oddify(v int) int {
	if v%2 == 0 {
		v++
	}
	return v
}

// layoutFields builds the rectangular field grid for a frame of size w x h
// given the derived maxShift, fieldSize and the configured stepSize. It
// mirrors initFields: rows/cols are chosen so a border of
// fieldSize/2+maxShift+stepSize separates every field's reach from the
// frame edge.
func layoutFields(w, h, maxShift, fieldSize, stepSize int) (fields []Field, rows, cols int, err error) {
	rows = maxInt(3, (h-2*maxShift)/fieldSize-1)
	cols = maxInt(3, (w-2*maxShift)/fieldSize-1)

	border := fieldSize/2 + maxShift + stepSize
	if 2*border >= w || 2*border >= h {
		return nil, 0, 0, ErrAlloc
	}

	stepX := (w - 2*border) / maxInt(cols-1, 1)
	stepY := (h - 2*border) / maxInt(rows-1, 1)

	fields = make([]Field, 0, rows*cols)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			fields = append(fields, Field{
				X:    border + i*stepX,
				Y:    border + j*stepY,
				Size: fieldSize,
			})
		}
	}
	return fields, rows, cols, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
