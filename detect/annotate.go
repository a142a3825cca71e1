/*
DESCRIPTION
  annotate.go draws field boxes, motion vectors and (optionally) the full
  scan area onto a writable copy of the luma plane, for the Detector's
  show option. Grounded on original_source/src/motiondetect_internal.h's
  drawField/drawFieldTrans/drawFieldScanArea declarations.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package detect

// fieldColor and vectorColor are the luma values used to draw field boxes
// and motion vectors respectively; scanAreaColor is used for the full
// search-area outline when Show==ShowScanAreas.
const (
	fieldColor    = 80
	vectorColor   = 200
	scanAreaColor = 60
)

// Annotate draws lms (and, if d.cfg.Show==ShowScanAreas, every field's
// search boundary) onto a copy of luma and returns the annotated plane.
// luma is not modified. Annotation draws onto plane 0 only (spec.md §4.1).
func (d *Detector) Annotate(luma []byte, lms LocalMotions) []byte {
	if d.cfg.Show == ShowNothing {
		return luma
	}
	out := make([]byte, len(luma))
	copy(out, luma)

	if d.cfg.Show == ShowScanAreas {
		for _, f := range d.fields {
			drawBox(out, d.linesize, d.width, d.height,
				f.X-f.Size/2-d.maxShift, f.Y-f.Size/2-d.maxShift,
				f.Size+2*d.maxShift, f.Size+2*d.maxShift, scanAreaColor)
		}
	}

	for _, lm := range lms {
		drawBox(out, d.linesize, d.width, d.height,
			lm.F.X-lm.F.Size/2, lm.F.Y-lm.F.Size/2, lm.F.Size, lm.F.Size, fieldColor)
		drawLine(out, d.linesize, d.width, d.height,
			lm.F.X, lm.F.Y, lm.F.X+int(lm.V.X), lm.F.Y+int(lm.V.Y), vectorColor)
	}
	return out
}

// drawBox draws an unfilled rectangle outline.
func drawBox(plane []byte, linesize, w, h, x, y, bw, bh int, color byte) {
	for i := 0; i < bw; i++ {
		setPixel(plane, linesize, w, h, x+i, y, color)
		setPixel(plane, linesize, w, h, x+i, y+bh-1, color)
	}
	for j := 0; j < bh; j++ {
		setPixel(plane, linesize, w, h, x, y+j, color)
		setPixel(plane, linesize, w, h, x+bw-1, y+j, color)
	}
}

// drawLine draws a coarse Bresenham-free line by stepping along the
// dominant axis; sufficient fidelity for a short motion-vector overlay.
func drawLine(plane []byte, linesize, w, h, x0, y0, x1, y1 int, color byte) {
	dx := x1 - x0
	dy := y1 - y0
	steps := absInt(dx)
	if absInt(dy) > steps {
		steps = absInt(dy)
	}
	if steps == 0 {
		setPixel(plane, linesize, w, h, x0, y0, color)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		setPixel(plane, linesize, w, h, x, y, color)
	}
}

func setPixel(plane []byte, linesize, w, h, x, y int, color byte) {
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	plane[y*linesize+x] = color
}
