/*
DESCRIPTION
  stab.go provides the two top-level orchestration state machines that
  wire the core packages into the two-pass pipeline described by the
  library: DetectPass streams frames through the Detector and serializes
  local motions; TransformPass consumes a full local-motion sequence,
  fits per-frame transforms, smooths the camera path, and warps frames
  against the resulting compensating transforms. Grounded on
  revid/revid.go's Revid struct and New(cfg, ns) constructor/lifecycle
  pattern: a config struct in, a constructed state machine out, explicit
  error returns wrapped with %w.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package stab orchestrates the Detector, Fit, Smooth and Warp packages
// into the two-pass (detect, then transform) stabilization pipeline.
package stab

import (
	"fmt"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/vidstab/detect"
	"github.com/ausocean/vidstab/fit"
	"github.com/ausocean/vidstab/frame"
	"github.com/ausocean/vidstab/smooth"
	"github.com/ausocean/vidstab/transform"
	"github.com/ausocean/vidstab/warp"
)

// DetectConfig configures the first pass.
type DetectConfig struct {
	Info   frame.FrameInfo
	Detect detect.Config
}

// DetectPass runs the Detector over a sequence of frames, one at a time,
// holding only the current and previous luma plane in memory.
type DetectPass struct {
	cfg       DetectConfig
	detector  *detect.Detector
	frameNum  int
}

// NewDetectPass constructs a DetectPass for frames described by cfg.Info.
func NewDetectPass(cfg DetectConfig) (*DetectPass, error) {
	ls := cfg.Info.PlaneWidth(0) * cfg.Info.BytesPerPixel()
	d, err := detect.NewDetector(cfg.Detect, cfg.Info.PlaneWidth(0), cfg.Info.PlaneHeight(0), ls, cfg.Info.BytesPerPixel())
	if err != nil {
		return nil, fmt.Errorf("stab: could not construct detector: %w", err)
	}
	return &DetectPass{cfg: cfg, detector: d}, nil
}

// Process runs the detector on the next frame's luma plane (plane 0) and
// returns its local motions, advancing the internal frame counter.
func (p *DetectPass) Process(f *frame.Frame) (detect.LocalMotions, error) {
	lms, err := p.detector.Detect(f.Data[0])
	if err != nil {
		return nil, fmt.Errorf("stab: detect frame %d: %w", p.frameNum, err)
	}
	p.frameNum++
	return lms, nil
}

// FrameNum returns the number of frames processed so far.
func (p *DetectPass) FrameNum() int { return p.frameNum }

// TransformConfig configures the second pass.
type TransformConfig struct {
	Width, Height int
	Fit           fit.Config
	UseSimpleFit  bool
	Smooth        smooth.Config
	Warp          warp.Config
	Logger        logging.Logger
}

// TransformPass collects per-frame local motions across an entire clip,
// then (on Finalize) fits, smooths and produces the compensating
// transform for every frame, ready to drive Warper.Warp.
type TransformPass struct {
	cfg  TransformConfig
	lms  []detect.LocalMotions
	comp []transform.Transform
	w    *warp.Warper
}

// NewTransformPass constructs a TransformPass for frames of the given
// dimensions.
func NewTransformPass(cfg TransformConfig) (*TransformPass, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("stab: invalid frame dimensions %dx%d", cfg.Width, cfg.Height)
	}
	return &TransformPass{cfg: cfg}, nil
}

// AddFrame appends one frame's local motions to the path being built.
func (p *TransformPass) AddFrame(lms detect.LocalMotions) {
	p.lms = append(p.lms, lms)
}

// Finalize fits a raw transform for every collected frame, smooths the
// resulting camera path, and stores the compensating transforms,
// returning them for inspection (e.g. serialization or plotting).
func (p *TransformPass) Finalize() []transform.Transform {
	raw := make([]transform.Transform, len(p.lms))
	for i, lms := range p.lms {
		if p.cfg.UseSimpleFit {
			raw[i] = fit.Simple(lms)
		} else {
			raw[i] = fit.Optimize(lms, p.cfg.Width, p.cfg.Height, p.cfg.Fit)
		}
	}
	p.comp = smooth.Smooth(raw, p.cfg.Width, p.cfg.Height, p.cfg.Smooth)
	return p.comp
}

// Warp applies the compensating transform for frame index i to src,
// writing the result into dst. Finalize must be called first.
func (p *TransformPass) Warp(i int, dst, src *frame.Frame) error {
	if p.comp == nil {
		return fmt.Errorf("stab: Warp called before Finalize")
	}
	if i < 0 || i >= len(p.comp) {
		return fmt.Errorf("stab: frame index %d out of range [0,%d)", i, len(p.comp))
	}
	if p.w == nil {
		p.w = warp.New(src.Info, p.cfg.Warp)
	}
	p.w.Warp(dst, src, p.comp[i])
	return nil
}

// Transforms returns the finalized compensating transforms, or nil if
// Finalize has not yet run.
func (p *TransformPass) Transforms() []transform.Transform { return p.comp }
