/*
DESCRIPTION
  vidstabtransform is the second-pass CLI: it reads a VID.STAB
  local-motion file produced by vidstabdetect plus the original raw
  frames, fits and smooths the camera path, and writes the warped,
  stabilized frames.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements vidstabtransform, the Transformer pass CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/vidstab/fit"
	"github.com/ausocean/vidstab/frame"
	"github.com/ausocean/vidstab/internal/pathplot"
	"github.com/ausocean/vidstab/serialize"
	"github.com/ausocean/vidstab/smooth"
	"github.com/ausocean/vidstab/stab"
	"github.com/ausocean/vidstab/warp"
)

const (
	logPath      = "vidstabtransform.log"
	logMaxSize   = 100
	logMaxBackup = 5
	logMaxAge    = 28
)

const version = "0.1.0"

func main() {
	motionsPath := flag.String("input", "motions.trf", "path to the VID.STAB local-motion file from vidstabdetect")
	framesPath := flag.String("frames", "", "path to the original raw frame file")
	outputPath := flag.String("output", "stabilized.raw", "path to write warped raw frames")
	width := flag.Int("width", 0, "frame width in pixels")
	height := flag.Int("height", 0, "frame height in pixels")
	formatName := flag.String("format", "yuv420p", "pixel format: gray8, yuv420p, yuv422p, yuv444p, rgb24, bgr24, rgba")
	smoothing := flag.Int("smoothing", 15, "half-window for the path smoother")
	maxShift := flag.Float64("maxshift", -1, "pixel clamp on |x|,|y| after smoothing, -1 disables")
	maxAngle := flag.Float64("maxangle", -1, "radian clamp on |alpha| after smoothing, -1 disables")
	algoName := flag.String("algo", "optimall1", "path smoother: optimall1, gaussian, avg")
	cropName := flag.String("crop", "keep", "border policy: keep, crop")
	interpolName := flag.String("interpol", "bilinear", "interpolation kernel: zero, linear, bilinear, bicubic")
	zoom := flag.Float64("zoom", 0, "static zoom percentage added to every frame")
	optZoom := flag.Int("optzoom", 1, "optimal zoom: 0 off, 1 coarse, 2 adaptive")
	zoomSpeed := flag.Float64("zoomspeed", 0.25, "per-frame zoom decay for adaptive optimal zoom")
	maxZoom := flag.Float64("maxzoom", 10.0, "inclusion-constraint inward zoom for the L1 path optimizer")
	relative := flag.Bool("relative", true, "treat fitted transforms as per-frame relative")
	invert := flag.Bool("invert", false, "negate all compensating transforms")
	useSimpleFit := flag.Bool("simplefit", false, "use the trimmed-mean simple-path fit instead of gradient-descent optimization")
	plotPath := flag.String("plot", "", "if set, write a PNG of the X/Y components of the compensating transforms to this path")
	logVerbosity := flag.Int("loglevel", int(logging.Info), "log verbosity")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("vidstabtransform", version)
		return
	}

	fileLog := &lumberjack.Logger{Filename: logPath, MaxSize: logMaxSize, MaxBackups: logMaxBackup, MaxAge: logMaxAge}
	log := logging.New(int8(*logVerbosity), io.MultiWriter(fileLog, os.Stderr), true)

	format, err := parseFormat(*formatName)
	if err != nil {
		log.Fatal("bad -format", "error", err.Error())
	}
	if *width <= 0 || *height <= 0 {
		log.Fatal("-width and -height must be positive")
	}
	fi, err := frame.NewFrameInfo(*width, *height, format)
	if err != nil {
		log.Fatal("could not construct frame info", "error", err.Error())
	}

	in, err := os.Open(*motionsPath)
	if err != nil {
		log.Fatal("could not open motions file", "error", err.Error())
	}
	frames, err := serialize.ReadAll(in)
	in.Close()
	if err != nil {
		log.Fatal("could not parse motions file", "error", err.Error())
	}

	tp, err := stab.NewTransformPass(stab.TransformConfig{
		Width: fi.Width, Height: fi.Height,
		Fit:          fit.Config{Logger: log},
		UseSimpleFit: *useSimpleFit,
		Smooth: smooth.Config{
			MaxShift: *maxShift, MaxAngle: *maxAngle,
			Crop:          parseCrop(*cropName),
			Relative:      *relative,
			Invert:        *invert,
			Smoothing:     *smoothing,
			Zoom:          *zoom,
			OptZoom:       smooth.ZoomMode(*optZoom),
			ZoomSpeed:     *zoomSpeed,
			CamPathAlgo:   parseAlgo(*algoName),
			MaxZoom:       *maxZoom,
			SceneCutAware: false,
			Logger:        log,
		},
		Warp: warp.Config{Interpolation: parseInterpol(*interpolName), Crop: parseWarpCrop(*cropName)},
	})
	if err != nil {
		log.Fatal("could not construct transform pass", "error", err.Error())
	}
	for _, f := range frames {
		tp.AddFrame(f.LocalMotion)
	}
	comp := tp.Finalize()
	log.Info("path smoothing complete", "frames", len(comp))

	if *plotPath != "" {
		if err := pathplot.Write(*plotPath, comp); err != nil {
			log.Warning("could not write path plot", "error", err.Error())
		}
	}

	src, err := os.Open(*framesPath)
	if err != nil {
		log.Fatal("could not open raw frames", "error", err.Error())
	}
	defer src.Close()
	out, err := os.Create(*outputPath)
	if err != nil {
		log.Fatal("could not create output file", "error", err.Error())
	}
	defer out.Close()

	dst := frame.Allocate(fi)
	for i := range comp {
		srcFrame, err := readFrame(src, fi)
		if err == io.EOF {
			log.Warning("fewer raw frames than local-motion records", "have", i, "want", len(comp))
			break
		}
		if err != nil {
			log.Fatal("reading raw frame", "frame", i, "error", err.Error())
		}
		if err := tp.Warp(i, dst, srcFrame); err != nil {
			log.Fatal("warping frame", "frame", i, "error", err.Error())
		}
		if err := writeFrame(out, dst, fi); err != nil {
			log.Fatal("writing warped frame", "frame", i, "error", err.Error())
		}
	}
	log.Info("transform pass complete")
}

func parseFormat(name string) (frame.Format, error) {
	switch name {
	case "gray8":
		return frame.GRAY8, nil
	case "yuv420p":
		return frame.YUV420P, nil
	case "yuv422p":
		return frame.YUV422P, nil
	case "yuv444p":
		return frame.YUV444P, nil
	case "rgb24":
		return frame.RGB24, nil
	case "bgr24":
		return frame.BGR24, nil
	case "rgba":
		return frame.RGBA, nil
	default:
		return 0, fmt.Errorf("unrecognised format %q", name)
	}
}

func parseAlgo(name string) smooth.CamPathAlgo {
	switch name {
	case "gaussian":
		return smooth.Gaussian
	case "avg":
		return smooth.Avg
	default:
		return smooth.OptimalL1
	}
}

func parseCrop(name string) smooth.CropPolicy {
	if name == "crop" {
		return smooth.CropBorder
	}
	return smooth.KeepBorder
}

func parseWarpCrop(name string) warp.CropPolicy {
	if name == "crop" {
		return warp.CropBorder
	}
	return warp.KeepBorder
}

func parseInterpol(name string) warp.Interpolation {
	switch name {
	case "zero":
		return warp.Zero
	case "linear":
		return warp.Linear
	case "bicubic":
		return warp.BiCubic
	default:
		return warp.BiLinear
	}
}

// readFrame reads one frame's worth of raw bytes from r into planes
// matching fi's layout.
func readFrame(r io.Reader, fi frame.FrameInfo) (*frame.Frame, error) {
	f := frame.Allocate(fi)
	for p := 0; p < fi.Planes(); p++ {
		if _, err := io.ReadFull(r, f.Data[p]); err != nil {
			if err == io.ErrUnexpectedEOF {
				return nil, io.EOF
			}
			return nil, err
		}
	}
	return f, nil
}

// writeFrame writes one frame's planes to w in plane order.
func writeFrame(w io.Writer, f *frame.Frame, fi frame.FrameInfo) error {
	for p := 0; p < fi.Planes(); p++ {
		if _, err := w.Write(f.Data[p]); err != nil {
			return err
		}
	}
	return nil
}
