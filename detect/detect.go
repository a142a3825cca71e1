/*
DESCRIPTION
  detect.go implements the Detector: per-frame local-motion estimation
  against the previous frame (or a fixed virtual-tripod reference),
  orchestrating field layout, contrast-based selection and block-match
  search. Grounded on original_source/src/motiondetect.c's
  motionDetection and the teacher's constructor/logging idiom
  (revid/revid.go's New).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package detect implements pass one of the stabilization pipeline: a
// grid of measurement fields is matched, frame over frame, against the
// previous (or a fixed tripod) frame via block matching, yielding a set
// of local motion vectors per frame.
package detect

import "github.com/ausocean/utils/logging"

// Vec is a 2-D displacement.
type Vec struct{ X, Y float64 }

// LocalMotion is one field's measurement: the field it was measured at,
// its displacement, its contrast, and the block-match quality (lower is
// better).
type LocalMotion struct {
	F        Field
	V        Vec
	Contrast float64
	Match    float64
}

// LocalMotions is the ordered set of LocalMotion produced for one frame.
type LocalMotions []LocalMotion

// Detector holds the configuration, the immutable field grid and the
// previous-frame state for one detection stream. A Detector is not safe
// for concurrent use across frames: frame-processing calls must be
// strictly sequential (spec.md §5).
type Detector struct {
	cfg Config

	width, height, linesize int
	bytesPerPixel           int

	maxShift, fieldSize int
	fields              []Field
	rows, cols          int
	maxFields           int

	prev       []byte // previous (or tripod) luma plane, owned copy
	tripodSet  bool
	frameCount int
}

// NewDetector validates cfg against the given luma-plane geometry and
// builds the Detector's field grid. width/height are the luma plane
// dimensions and linesize its row stride; bytesPerPixel is normally 1 for
// planar formats.
func NewDetector(cfg Config, width, height, linesize, bytesPerPixel int) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 || linesize < width || bytesPerPixel <= 0 {
		return nil, ErrBadConfig
	}

	maxShift, fieldSize := deriveShiftAndSize(width, height, cfg.Shakiness)
	fields, rows, cols, err := layoutFields(width, height, maxShift, fieldSize, cfg.StepSize)
	if err != nil {
		return nil, err
	}

	d := &Detector{
		cfg:           cfg,
		width:         width,
		height:        height,
		linesize:      linesize,
		bytesPerPixel: bytesPerPixel,
		maxShift:      maxShift,
		fieldSize:     fieldSize,
		fields:        fields,
		rows:          rows,
		cols:          cols,
		maxFields:     cfg.Accuracy * len(fields) / 15,
	}
	return d, nil
}

// Detect processes the luma plane of the current frame and returns its
// local motions against the previous (or tripod) frame. luma must have
// the geometry NewDetector was configured with. The first call (and every
// call while VirtualTripod references a frame not yet seen) returns an
// empty LocalMotions. A luma plane shorter than linesize*height yields
// ErrFrameMismatch.
func (d *Detector) Detect(luma []byte) (LocalMotions, error) {
	if len(luma) < d.linesize*d.height {
		return nil, ErrFrameMismatch
	}
	d.frameCount++

	if d.prev == nil {
		d.recordReference(luma)
		return nil, nil
	}

	selected := selectFields(luma, d.linesize, d.fields, d.rows, d.cfg.ContrastThreshold, d.maxFields)
	if len(selected) == 0 {
		d.cfg.Logger.Info("no field survived contrast filtering, emitting empty local motions")
		d.recordReference(luma)
		return nil, nil
	}

	lms := make(LocalMotions, 0, len(selected))
	for _, idx := range selected {
		f := d.fields[idx]
		dx, dy, match := matchField(luma, d.prev, d.linesize, d.width, d.height, f,
			d.maxShift, d.cfg.StepSize, d.cfg.AllowMax)
		c := contrast(luma, d.linesize, f)
		normMatch := float64(match) / float64(f.Size*f.Size*d.bytesPerPixel)
		lms = append(lms, LocalMotion{
			F:        f,
			V:        Vec{X: float64(dx), Y: float64(dy)},
			Contrast: c,
			Match:    normMatch,
		})
	}

	d.recordReference(luma)
	return lms, nil
}

// recordReference stores luma as the reference frame for the next call,
// unless VirtualTripod mode has already latched a fixed reference.
func (d *Detector) recordReference(luma []byte) {
	if d.cfg.VirtualTripod > 0 {
		if d.tripodSet {
			return
		}
		if d.frameCount != d.cfg.VirtualTripod {
			return
		}
		d.tripodSet = true
	}
	if d.prev == nil {
		d.prev = make([]byte, len(luma))
	}
	copy(d.prev, luma)
}

// FieldGrid returns the immutable grid of measurement fields, for
// annotation or diagnostic purposes.
func (d *Detector) FieldGrid() []Field { return d.fields }

// MaxShift returns the derived search radius.
func (d *Detector) MaxShift() int { return d.maxShift }

// Logger exposes the Detector's configured logger.
func (d *Detector) Logger() logging.Logger { return d.cfg.Logger }
