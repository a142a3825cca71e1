/*
DESCRIPTION
  smooth.go is the top-level entry point of the camera-path smoothing
  package: it dispatches between the Avg, Gaussian and OptimalL1
  algorithms, applies the optimal-zoom schedule, negates the result
  (invert option), and crops the output to the configured maxShift /
  maxAngle bounds. Grounded on original_source/src/transformtype.c's
  config struct and campathoptimization.c's cameraPathAvg / Gaussian /
  OptimalL1 dispatch in vid.stab's vsPreprocessTransforms.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package smooth

import (
	"math"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/vidstab/transform"
)

// discardWriter is an io.Writer that discards everything written to it,
// used as the default logger's sink.
type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// CropPolicy selects a border-handling policy. Smooth never reads
// Config.Crop; the warp package takes its own warp.CropPolicy.
type CropPolicy int

const (
	KeepBorder CropPolicy = iota
	CropBorder
)

// CamPathAlgo selects the path-smoothing algorithm.
type CamPathAlgo int

const (
	OptimalL1 CamPathAlgo = iota
	Gaussian
	Avg
)

// Config holds the Transformer's path-smoothing parameters, matching the
// per-component option table.
type Config struct {
	MaxShift      float64 // pixel clamp on |x|,|y|; -1 disables.
	MaxAngle      float64 // radian clamp on |alpha|; -1 disables.
	Crop          CropPolicy
	Relative      bool
	Invert        bool
	Smoothing     int
	Zoom          float64
	OptZoom       ZoomMode
	ZoomSpeed     float64
	CamPathAlgo   CamPathAlgo
	MaxZoom       float64
	SceneCutAware bool
	Logger        logging.Logger
}

// DefaultConfig matches the option table defaults.
func DefaultConfig() Config {
	return Config{
		MaxShift:  -1,
		MaxAngle:  -1,
		Crop:      KeepBorder,
		Relative:  true,
		Invert:    false,
		Smoothing: 15,
		Zoom:      0,
		OptZoom:   ZoomCoarse,
		ZoomSpeed: 0.25,
		CamPathAlgo: OptimalL1,
		MaxZoom:     10.0,
	}
}

func (c Config) logger() logging.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logging.New(logging.Info, discardWriter{}, true)
}

// Smooth runs the full path-smoothing pipeline over a sequence of
// transforms and the frame dimensions they apply to, returning the
// compensating transform to apply to each corresponding frame.
func Smooth(ts []transform.Transform, width, height int, cfg Config) []transform.Transform {
	n := len(ts)
	if n == 0 {
		return nil
	}

	work := make([]transform.Transform, n)
	copy(work, ts)

	var out []transform.Transform
	switch cfg.CamPathAlgo {
	case Avg:
		out = avg(work, cfg.Smoothing)
		if cfg.Relative {
			integrate(out)
		}
	case Gaussian:
		if cfg.Relative {
			integrate(work)
		}
		out = gaussian(work, cfg.Smoothing, cfg.SceneCutAware)
	default: // OptimalL1
		if cfg.Relative {
			integrate(work)
		}
		res, err := l1(work, width, height, cfg.MaxZoom, cfg.Smoothing, cfg.SceneCutAware)
		if err != nil {
			cfg.logger().Warning("L1 path optimizer unavailable, falling back to gaussian", "error", err.Error())
		}
		out = res
	}

	applyZoom(out, cfg.OptZoom, width, height, cfg.ZoomSpeed, cfg.Zoom)

	if cfg.Invert {
		for i := range out {
			out[i] = transform.Scale(out[i], -1)
		}
	}

	cropTransforms(out, cfg.MaxShift, cfg.MaxAngle)

	cfg.logger().Debug("path smoothing complete", "frames", n, "algo", cfg.CamPathAlgo)
	return out
}

// cropTransforms clamps |x|,|y| to maxShift and |alpha| to maxAngle in
// place, unless the corresponding limit is -1 (disabled).
func cropTransforms(ts []transform.Transform, maxShift, maxAngle float64) {
	for i := range ts {
		if maxShift >= 0 {
			ts[i].X = clampAbs(ts[i].X, maxShift)
			ts[i].Y = clampAbs(ts[i].Y, maxShift)
		}
		if maxAngle >= 0 {
			ts[i].Alpha = clampAbs(ts[i].Alpha, maxAngle)
		}
	}
}

func clampAbs(v, bound float64) float64 {
	return math.Max(-bound, math.Min(bound, v))
}
