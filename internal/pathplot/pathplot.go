/*
DESCRIPTION
  pathplot.go renders a PNG of the X and Y components of one transform
  sequence against frame index, as a diagnostic aid for tuning
  smooth.Config.
  New code: the teacher doesn't plot anything, but gonum/v1/plot is
  already a transitive dependency of the teacher's own gonum usage
  elsewhere in the pack, so this gives it a direct, exercised caller.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pathplot renders diagnostic plots of a stabilized camera path.
package pathplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ausocean/vidstab/transform"
)

// Write renders the X and Y components of a compensating transform
// sequence against frame index and saves the result as a PNG at path.
func Write(path string, ts []transform.Transform) error {
	p := plot.New()
	p.Title.Text = "camera path"
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "pixels"

	xs := make(plotter.XYs, len(ts))
	ys := make(plotter.XYs, len(ts))
	for i, t := range ts {
		xs[i] = plotter.XY{X: float64(i), Y: t.X}
		ys[i] = plotter.XY{X: float64(i), Y: t.Y}
	}

	xLine, err := plotter.NewLine(xs)
	if err != nil {
		return fmt.Errorf("pathplot: could not build x line: %w", err)
	}
	xLine.Color = plotter.DefaultLineStyle.Color

	yLine, err := plotter.NewLine(ys)
	if err != nil {
		return fmt.Errorf("pathplot: could not build y line: %w", err)
	}

	p.Add(xLine, yLine)
	p.Legend.Add("x", xLine)
	p.Legend.Add("y", yLine)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("pathplot: could not save %s: %w", path, err)
	}
	return nil
}
