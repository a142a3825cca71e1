/*
DESCRIPTION
  match.go implements the block-match shift search: a coarse pass at
  stride stepSize followed by a fine pass at stride 1 around the coarse
  minimum, with a threshold early-abort and the boundary/out-of-frame edge
  policies. Grounded on original_source/src/motiondetect.c's
  calcFieldTransYUV and motiondetect_opt.c's compareSubImg.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package detect

import "math"

const infMatch = math.MaxInt32

// compareSubImg returns the sum of absolute differences between field f in
// cur and the same field shifted by (dx,dy) in prev, aborting early once
// the running sum exceeds best (the threshold cutoff named in spec.md
// §4.1). Returns infMatch if the shifted footprint would leave the frame,
// matching compareSubImg's INT_MAX-on-out-of-bounds policy.
func compareSubImg(cur, prev []byte, ls, w, h int, f Field, dx, dy, best int) int {
	s2 := f.Size / 2
	if f.X-s2+dx < 0 || f.Y-s2+dy < 0 ||
		f.X-s2+dx+f.Size > w || f.Y-s2+dy+f.Size > h {
		return infMatch
	}
	sum := 0
	for row := 0; row < f.Size; row++ {
		curOff := (f.Y - s2 + row) * ls
		prevOff := (f.Y - s2 + dy + row) * ls
		for col := 0; col < f.Size; col++ {
			cv := int(cur[curOff+f.X-s2+col])
			pv := int(prev[prevOff+f.X-s2+dx+col])
			d := cv - pv
			if d < 0 {
				d = -d
			}
			sum += d
		}
		if sum >= best {
			return sum
		}
	}
	return sum
}

// matchField runs the coarse+fine block-match search for field f and
// returns the best (dx,dy) shift and its match score.
func matchField(cur, prev []byte, ls, w, h int, f Field, maxShift, stepSize int, allowMax bool) (dx, dy int, match int) {
	minerror := infMatch
	var tx, ty int
	for i := -maxShift; i <= maxShift; i += stepSize {
		for j := -maxShift; j <= maxShift; j += stepSize {
			e := compareSubImg(cur, prev, ls, w, h, f, i, j, minerror)
			if e < minerror {
				minerror = e
				tx, ty = i, j
			}
		}
	}

	if stepSize > 1 {
		txc, tyc := tx, ty
		r := stepSize - 1
		for i := txc - r; i <= txc+r; i++ {
			for j := tyc - r; j <= tyc+r; j++ {
				if i == txc && j == tyc {
					continue
				}
				e := compareSubImg(cur, prev, ls, w, h, f, i, j, minerror)
				if e < minerror {
					minerror = e
					tx, ty = i, j
				}
			}
		}
	}

	if !allowMax {
		if absInt(tx) >= maxShift+stepSize-1 {
			tx = 0
		}
		if absInt(ty) >= maxShift+stepSize-1 {
			ty = 0
		}
	}
	return tx, ty, minerror
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
