/*
DESCRIPTION
  transform.go implements the similarity transform algebra shared by the
  fit, smooth and warp packages: the angle/zoom (A/Z) parametrization used
  throughout the pipeline and the linear-similarity (LS) parametrization
  used by the L1 path optimizer, with conversion and composition between
  the two.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package transform implements the similarity-transform algebra (A/Z and LS
// parametrizations) used to represent, compose and invert per-frame camera
// motion.
package transform

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Transform is a 4-DOF similarity transform in angle/zoom form: translation
// (X,Y), rotation Alpha (radians), and percentage Zoom (0 means no scale
// change; z = 1+Zoom/100). Barrel and RShutter are carried for format
// compatibility with the source project but are not acted on by any
// operation in this package. Extra is a flag reserved for scene-cut/invalid
// markers set by the fit and smoother stages.
type Transform struct {
	X, Y     float64
	Alpha    float64
	Zoom     float64
	Barrel   float64
	RShutter float64
	Extra    int
}

// Identity is the neutral element of Add/Compose.
var Identity = Transform{}

// New is a convenience constructor for the four parameters that matter to
// most callers; Barrel, RShutter and Extra default to zero.
func New(x, y, alpha, zoom float64) Transform {
	return Transform{X: x, Y: y, Alpha: alpha, Zoom: zoom}
}

// IsIdentity reports whether t has no translation, rotation or zoom, per
// the warper's identity shortcut (spec §4.4).
func (t Transform) IsIdentity() bool {
	return t.X == 0 && t.Y == 0 && t.Alpha == 0 && t.Zoom == 0
}

// Add returns the component-wise sum of a and b. Extra is taken from a.
func Add(a, b Transform) Transform {
	return Transform{
		X: a.X + b.X, Y: a.Y + b.Y,
		Alpha: a.Alpha + b.Alpha, Zoom: a.Zoom + b.Zoom,
		Barrel: a.Barrel + b.Barrel, RShutter: a.RShutter + b.RShutter,
		Extra: a.Extra,
	}
}

// Sub returns a-b component-wise. Extra is taken from a.
func Sub(a, b Transform) Transform {
	return Transform{
		X: a.X - b.X, Y: a.Y - b.Y,
		Alpha: a.Alpha - b.Alpha, Zoom: a.Zoom - b.Zoom,
		Barrel: a.Barrel - b.Barrel, RShutter: a.RShutter - b.RShutter,
		Extra: a.Extra,
	}
}

// Scale multiplies every field of t (except Extra) by f.
func Scale(t Transform, f float64) Transform {
	return Transform{
		X: t.X * f, Y: t.Y * f,
		Alpha: t.Alpha * f, Zoom: t.Zoom * f,
		Barrel: t.Barrel * f, RShutter: t.RShutter * f,
		Extra: t.Extra,
	}
}

// Mean returns the component-wise arithmetic mean of ts. Returns Identity
// for an empty slice.
func Mean(ts []Transform) Transform {
	if len(ts) == 0 {
		return Identity
	}
	xs := make([]float64, len(ts))
	ys := make([]float64, len(ts))
	as := make([]float64, len(ts))
	zs := make([]float64, len(ts))
	for i, t := range ts {
		xs[i], ys[i], as[i], zs[i] = t.X, t.Y, t.Alpha, t.Zoom
	}
	n := float64(len(ts))
	return Transform{
		X:     floats.Sum(xs) / n,
		Y:     floats.Sum(ys) / n,
		Alpha: floats.Sum(as) / n,
		Zoom:  floats.Sum(zs) / n,
	}
}

// Compose returns the transform equivalent to applying b then a (a∘b), via
// the LS parametrization, matching original_source's concat_transformLS.
func Compose(a, b Transform) Transform {
	return FromLS(concatLS(a.ToLS(), b.ToLS()))
}

// Invert returns t's inverse, via the LS parametrization's exact inversion
// formula (original_source/src/campathoptimization.c invert_transformLS).
func Invert(t Transform) Transform {
	return FromLS(invertLS(t.ToLS()))
}

// RequiredZoom returns the zoom percentage (as used in Transform.Zoom) that
// would be required so that, for an image of size w x h, a shift of
// (t.X,t.Y) does not expose any border. This mirrors
// transform_get_required_zoom from original_source's
// transformtype_operations.h.
func RequiredZoom(t Transform, w, h int) float64 {
	return 100.0 * math.Max(2*math.Abs(t.X)/float64(w), 2*math.Abs(t.Y)/float64(h))
}

// zoom2z and z2zoom convert between the A/Z percentage zoom and the linear
// scale factor z=1+zoom/100 used in the LS parametrization.
func zoom2z(zoom float64) float64 { return 1 + zoom/100 }
func z2zoom(z float64) float64    { return (z - 1) * 100 }

// TransformLS is the linear-similarity parametrization (x,y,a,b,c) with
// effective matrix [[a,b,x],[-b,a,y]] and homogeneous scale c (normally 1).
// It is linear in its parameters, which is why the L1 path optimizer works
// in this form.
type TransformLS struct {
	X, Y, A, B, C float64
	Extra         int
}

// IdentityLS is (0,0,1,0,1,0).
var IdentityLS = TransformLS{A: 1, C: 1}

// ToLS converts t to the linear-similarity parametrization
// (transformAZtoLS in original_source/src/campathoptimization.c).
func (t Transform) ToLS() TransformLS {
	z := zoom2z(t.Zoom)
	return TransformLS{
		X: t.X, Y: t.Y,
		A: z * math.Cos(t.Alpha),
		B: -z * math.Sin(t.Alpha),
		C: 1,
		Extra: t.Extra,
	}
}

// FromLS converts ls back to the A/Z parametrization
// (transformLStoAZ in original_source/src/campathoptimization.c).
func FromLS(ls TransformLS) Transform {
	alpha := math.Atan2(-ls.B, ls.A)
	var z float64
	if math.Cos(alpha) != 0 {
		z = ls.A / math.Cos(alpha)
	} else {
		z = -ls.B / math.Sin(alpha)
	}
	return Transform{
		X: ls.X, Y: ls.Y,
		Alpha: alpha,
		Zoom:  z2zoom(z),
		Extra: ls.Extra,
	}
}

// concatLS composes a∘b: apply b first, then a.
func concatLS(a, b TransformLS) TransformLS {
	return TransformLS{
		X: a.A*b.X + a.B*b.Y + a.X,
		Y: -a.B*b.X + a.A*b.Y + a.Y,
		A: a.A*b.A - a.B*b.B,
		B: a.A*b.B + a.B*b.A,
		C: a.C * b.C,
	}
}

// invertLS returns the exact inverse of ls, using z=a^2+b^2 as in
// original_source's invert_transformLS.
func invertLS(ls TransformLS) TransformLS {
	z := ls.A*ls.A + ls.B*ls.B
	if z == 0 {
		return IdentityLS
	}
	a := ls.A / z
	b := -ls.B / z
	return TransformLS{
		X: -a*ls.X - b*ls.Y,
		Y: b*ls.X - a*ls.Y,
		A: a,
		B: b,
		C: 1 / ls.C,
	}
}
