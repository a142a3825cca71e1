/*
DESCRIPTION
  warp.go implements the inverse-similarity frame warp: for every
  destination pixel, compute the corresponding source coordinate under
  the inverse of a compensating Transform and interpolate. Grounded on
  original_source/src/transformfloat.c's transformPlanar (planar path)
  and the packed-format branch of transformPacked.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package warp applies a compensating similarity transform to a frame by
// inverse-mapping each destination pixel into source coordinates and
// interpolating, with pluggable kernels and a keep-border/crop-border
// policy.
package warp

import (
	"math"

	"github.com/ausocean/vidstab/frame"
	"github.com/ausocean/vidstab/transform"
)

// Interpolation selects the pixel reconstruction kernel.
type Interpolation int

const (
	Zero Interpolation = iota
	Linear
	BiLinear
	BiCubic
)

// CropPolicy mirrors smooth.CropPolicy without importing it, keeping warp
// independent of the smoothing package.
type CropPolicy int

const (
	KeepBorder CropPolicy = iota
	CropBorder
)

// Config holds the warper's border and interpolation policy.
type Config struct {
	Interpolation Interpolation
	Crop          CropPolicy
}

// Warper applies compensating transforms to frames of a fixed FrameInfo.
type Warper struct {
	Info frame.FrameInfo
	Cfg  Config
}

// New constructs a Warper for frames described by fi.
func New(fi frame.FrameInfo, cfg Config) *Warper {
	return &Warper{Info: fi, Cfg: cfg}
}

// Warp writes the result of applying t to src into dst. dst must be
// allocated with the same FrameInfo as w.Info; dst is reused across calls
// (not zeroed) so that the keep-border policy can bleed prior-frame
// content into uncovered destination pixels, matching destbuf reuse in
// the original.
func (w *Warper) Warp(dst, src *frame.Frame, t transform.Transform) {
	if t.X == 0 && t.Y == 0 && t.Alpha == 0 && t.Zoom == 0 {
		if dst != src {
			dst.CopyFrom(src)
		}
		return
	}

	if w.Info.Format.Packed() {
		w.warpPacked(dst, src, t)
		return
	}

	z := 1.0 - t.Zoom/100
	zcos := z * math.Cos(-t.Alpha)
	zsin := z * math.Sin(-t.Alpha)

	for plane := 0; plane < w.Info.Planes(); plane++ {
		wsub, hsub := 0, 0
		if plane > 0 {
			wsub, hsub = w.Info.Log2ChromaW(), w.Info.Log2ChromaH()
		}
		pw := w.Info.PlaneWidth(plane)
		ph := w.Info.PlaneHeight(plane)

		csx := float64(w.Info.Width>>wsub) / 2
		csy := float64(w.Info.Height>>hsub) / 2
		cdx := csx
		cdy := csy

		black := byte(0)
		if plane > 0 {
			black = 0x80
		}

		tx := t.X / float64(int(1)<<wsub)
		ty := t.Y / float64(int(1)<<hsub)

		srcData := src.Data[plane]
		srcLs := src.Linesize[plane]
		dstData := dst.Data[plane]
		dstLs := dst.Linesize[plane]

		for y := 0; y < ph; y++ {
			for x := 0; x < pw; x++ {
				xd1 := float64(x) - cdx
				yd1 := float64(y) - cdy
				xs := zcos*xd1 + zsin*yd1 + csx - tx
				ys := -zsin*xd1 + zcos*yd1 + csy - ty

				def := black
				if w.Cfg.Crop == KeepBorder {
					def = dstData[y*dstLs+x]
				}
				dstData[y*dstLs+x] = w.interpolate(xs, ys, srcData, srcLs, pw, ph, def)
			}
		}
	}
}

// warpPacked applies the transform to a single interleaved plane (RGB24,
// BGR24, RGBA), per channel, grounded on transformPacked.
func (w *Warper) warpPacked(dst, src *frame.Frame, t transform.Transform) {
	pw := w.Info.Width
	ph := w.Info.Height
	channels := w.Info.BytesPerPixel()

	csx := float64(pw) / 2
	csy := float64(ph) / 2

	srcData := src.Data[0]
	srcLs := src.Linesize[0]
	dstData := dst.Data[0]
	dstLs := dst.Linesize[0]

	if math.Abs(t.Alpha) <= 0.1*math.Pi/180 && t.Zoom == 0 {
		rx := int(math.Round(t.X))
		ry := int(math.Round(t.Y))
		for y := 0; y < ph; y++ {
			for x := 0; x < pw; x++ {
				sx, sy := x-rx, y-ry
				for z := 0; z < channels; z++ {
					def := byte(0)
					if w.Cfg.Crop == KeepBorder {
						def = dstData[y*dstLs+x*channels+z]
					}
					if sx < 0 || sx >= pw || sy < 0 || sy >= ph {
						dstData[y*dstLs+x*channels+z] = def
						continue
					}
					dstData[y*dstLs+x*channels+z] = srcData[sy*srcLs+sx*channels+z]
				}
			}
		}
		return
	}

	z := 1.0 - t.Zoom/100
	zcos := z * math.Cos(-t.Alpha)
	zsin := z * math.Sin(-t.Alpha)
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			xd1 := float64(x) - csx
			yd1 := float64(y) - csy
			xs := zcos*xd1 + zsin*yd1 + csx - t.X
			ys := -zsin*xd1 + zcos*yd1 + csy - t.Y
			for z := 0; z < channels; z++ {
				def := byte(0)
				if w.Cfg.Crop == KeepBorder {
					def = dstData[y*dstLs+x*channels+z]
				}
				dstData[y*dstLs+x*channels+z] = interpolateChannel(xs, ys, srcData, srcLs, pw, ph, channels, z, def)
			}
		}
	}
}
