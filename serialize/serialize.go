/*
DESCRIPTION
  serialize.go writes and parses the VID.STAB text interchange format that
  connects the Detector pass to the Transformer pass: a header line with
  detector configuration as comments, followed by one `Frame N (...)`
  line per detected frame listing its local motions. Grounded on
  original_source/src/serialize.c (vsPrepareFile, vsWriteToFile,
  vsStoreLocalmotions, vsReadFileVersion, vsReadFromFile,
  vsRestoreLocalmotions).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package serialize reads and writes the local-motion interchange format
// that decouples the Detector and Transformer passes, and the deprecated
// plain-numeric transform file format.
package serialize

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ausocean/vidstab/detect"
	"github.com/ausocean/vidstab/transform"
)

// FormatVersion is the VID.STAB header version this package writes and
// the highest version it accepts when reading.
const FormatVersion = 1

// DetectorConfig carries the subset of detect.Config worth recording as
// header comments, so a later transform pass (or a human) can see how
// the local motions were produced.
type DetectorConfig struct {
	Accuracy          int
	Shakiness         int
	StepSize          int
	ContrastThreshold float64
}

// WriteHeader writes the VID.STAB version line and configuration
// comments, per vsPrepareFile.
func WriteHeader(w io.Writer, cfg DetectorConfig) error {
	_, err := fmt.Fprintf(w, "VID.STAB %d\n"+
		"#      accuracy = %d\n"+
		"#     shakiness = %d\n"+
		"#      stepsize = %d\n"+
		"#   mincontrast = %f\n",
		FormatVersion, cfg.Accuracy, cfg.Shakiness, cfg.StepSize, cfg.ContrastThreshold)
	return err
}

// WriteFrame writes one frame's local motions as `Frame N (LM ...)`, per
// vsWriteToFile/vsStoreLocalmotions.
func WriteFrame(w io.Writer, frameNum int, lms detect.LocalMotions) error {
	if _, err := fmt.Fprintf(w, "Frame %d (List %d [", frameNum, len(lms)); err != nil {
		return err
	}
	for i, lm := range lms {
		if i > 0 {
			if _, err := fmt.Fprint(w, ","); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "(LM %d %d %d %d %d %f %f)",
			int(lm.V.X), int(lm.V.Y), lm.F.X, lm.F.Y, lm.F.Size, lm.Contrast, lm.Match); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "])\n")
	return err
}

// Frame is one parsed `Frame N (...)` record.
type Frame struct {
	Num         int
	LocalMotion detect.LocalMotions
}

// ReadAll parses a VID.STAB file: the version header, then every Frame
// record, skipping comment and blank lines, per vsReadFileVersion and
// vsReadFromFile.
func ReadAll(r io.Reader) ([]Frame, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	if !sc.Scan() {
		return nil, errors.New("serialize: empty file, expected VID.STAB header")
	}
	header := sc.Text()
	var version int
	if _, err := fmt.Sscanf(header, "VID.STAB %d", &version); err != nil {
		return nil, errors.Wrap(err, "serialize: missing VID.STAB header")
	}
	if version > FormatVersion {
		return nil, errors.Errorf("serialize: file version %d newer than supported %d", version, FormatVersion)
	}

	var frames []Frame
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		f, err := parseFrameLine(line)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "serialize: reading file")
	}
	return frames, nil
}

func parseFrameLine(line string) (Frame, error) {
	var num int
	rest := line
	n, err := fmt.Sscanf(line, "Frame %d (", &num)
	if err != nil || n != 1 {
		return Frame{}, errors.Errorf("serialize: expected 'Frame N (...)', got %q", line)
	}
	idx := strings.IndexByte(line, '(')
	rest = line[idx+1:]

	var length int
	if _, err := fmt.Sscanf(rest, "List %d [", &length); err != nil {
		return Frame{}, errors.Wrapf(err, "serialize: expected 'List N [...]' in %q", line)
	}

	lms := make(detect.LocalMotions, 0, length)
	open := strings.IndexByte(rest, '[')
	body := rest[open+1:]
	for _, chunk := range splitLMs(body) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		lm, err := parseLM(chunk)
		if err != nil {
			return Frame{}, err
		}
		lms = append(lms, lm)
	}
	return Frame{Num: num, LocalMotion: lms}, nil
}

// splitLMs splits the comma-separated "(LM ...),(LM ...)" body into
// individual "(LM ...)" chunks, respecting the parens (commas never
// appear inside an LM record).
func splitLMs(body string) []string {
	end := strings.LastIndexByte(body, ']')
	if end >= 0 {
		body = body[:end]
	}
	if strings.TrimSpace(body) == "" {
		return nil
	}
	return strings.Split(body, ",")
}

func parseLM(s string) (detect.LocalMotion, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "(")
	s = strings.TrimSuffix(s, ")")
	var vx, vy, fx, fy, fsize int
	var contrast, match float64
	_, err := fmt.Sscanf(s, "LM %d %d %d %d %d %f %f", &vx, &vy, &fx, &fy, &fsize, &contrast, &match)
	if err != nil {
		return detect.LocalMotion{}, errors.Wrapf(err, "serialize: cannot parse localmotion %q", s)
	}
	return detect.LocalMotion{
		F:        detect.Field{X: fx, Y: fy, Size: fsize},
		V:        detect.Vec{X: float64(vx), Y: float64(vy)},
		Contrast: contrast,
		Match:    match,
	}, nil
}

// ReadLegacyTransforms parses the deprecated plain-numeric transform file
// format: whitespace-separated `time x y alpha [zoom] extra` per line,
// comments (#) and blank lines tolerated. Grounded on
// vsReadOldTransforms.
func ReadLegacyTransforms(r io.Reader) ([]transform.Transform, error) {
	sc := bufio.NewScanner(r)
	var out []transform.Transform
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		t, err := parseLegacyFields(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "serialize: cannot parse line %q", line)
		}
		out = append(out, t)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "serialize: reading legacy transform file")
	}
	return out, nil
}

func parseLegacyFields(fields []string) (transform.Transform, error) {
	parseFloat := func(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
	parseInt := func(s string) (int, error) { return strconv.Atoi(s) }

	switch len(fields) {
	case 6: // time x y alpha zoom extra
		x, err := parseFloat(fields[1])
		if err != nil {
			return transform.Transform{}, err
		}
		y, err := parseFloat(fields[2])
		if err != nil {
			return transform.Transform{}, err
		}
		alpha, err := parseFloat(fields[3])
		if err != nil {
			return transform.Transform{}, err
		}
		zoom, err := parseFloat(fields[4])
		if err != nil {
			return transform.Transform{}, err
		}
		extra, err := parseInt(fields[5])
		if err != nil {
			return transform.Transform{}, err
		}
		return transform.Transform{X: x, Y: y, Alpha: alpha, Zoom: zoom, Extra: extra}, nil
	case 5: // time x y alpha extra, zoom defaults to 0
		x, err := parseFloat(fields[1])
		if err != nil {
			return transform.Transform{}, err
		}
		y, err := parseFloat(fields[2])
		if err != nil {
			return transform.Transform{}, err
		}
		alpha, err := parseFloat(fields[3])
		if err != nil {
			return transform.Transform{}, err
		}
		extra, err := parseInt(fields[4])
		if err != nil {
			return transform.Transform{}, err
		}
		return transform.Transform{X: x, Y: y, Alpha: alpha, Extra: extra}, nil
	default:
		return transform.Transform{}, errors.Errorf("expected 5 or 6 fields, got %d", len(fields))
	}
}
