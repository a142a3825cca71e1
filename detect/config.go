/*
DESCRIPTION
  config.go defines the Detector configuration record. Validate clamps
  out-of-range fields to their documented default and logs the adjustment,
  following the pattern of revid/config.Config.Validate /
  LogInvalidField in the teacher project.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package detect

import "github.com/ausocean/utils/logging"

// Show levels for the show config field.
const (
	ShowNothing = iota
	ShowFields
	ShowScanAreas
)

// Config holds the Detector's tunable parameters (spec.md §4.1).
type Config struct {
	// Shakiness scales maxShift and fieldSize: larger means a larger
	// search radius and larger measurement fields. Range 1-10.
	Shakiness int

	// Accuracy controls what fraction of the measurement field grid is
	// actually used per frame. Must be >= Shakiness. Range 1-15.
	Accuracy int

	// StepSize is the coarse stride of the shift search; the region
	// around the coarse minimum is re-scanned at stride 1. Must be >= 1.
	StepSize int

	// ContrastThreshold discards fields whose contrast falls below it.
	// Range 0-1.
	ContrastThreshold float64

	// Show controls frame annotation: ShowNothing, ShowFields or
	// ShowScanAreas.
	Show int

	// VirtualTripod, if > 0, matches every frame against frame number
	// VirtualTripod instead of the immediately preceding frame.
	VirtualTripod int

	// AllowMax disables the boundary-hit clamp: normally a motion that
	// equals the search boundary on either axis is presumed unreliable
	// and clamped to zero.
	AllowMax bool

	// Logger receives Info/Warn/Error level diagnostics. A nil Logger is
	// replaced with a discarding logger.
	Logger logging.Logger
}

const (
	defaultShakiness         = 5
	defaultAccuracy          = 9
	defaultStepSize          = 6
	defaultContrastThreshold = 0.25
)

// Validate clamps out-of-range fields to their documented default (logging
// the adjustment) and returns ErrBadConfig only for conditions that cannot
// be repaired by clamping.
func (c *Config) Validate() error {
	if c.Logger == nil {
		c.Logger = logging.New(logging.Info, discardWriter{}, true)
	}
	if c.Shakiness < 1 || c.Shakiness > 10 {
		c.logInvalidField("Shakiness", defaultShakiness)
		c.Shakiness = defaultShakiness
	}
	if c.Accuracy < 1 || c.Accuracy > 15 {
		c.logInvalidField("Accuracy", defaultAccuracy)
		c.Accuracy = defaultAccuracy
	}
	if c.Accuracy < c.Shakiness {
		return ErrBadConfig
	}
	if c.StepSize < 1 {
		c.logInvalidField("StepSize", defaultStepSize)
		c.StepSize = defaultStepSize
	}
	if c.ContrastThreshold < 0 || c.ContrastThreshold > 1 {
		c.logInvalidField("ContrastThreshold", defaultContrastThreshold)
		c.ContrastThreshold = defaultContrastThreshold
	}
	if c.VirtualTripod < 0 {
		c.logInvalidField("VirtualTripod", 0)
		c.VirtualTripod = 0
	}
	return nil
}

func (c *Config) logInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}

// discardWriter is an io.Writer that discards everything written to it,
// used as the default sink when no Logger is supplied.
type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
