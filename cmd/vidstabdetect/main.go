/*
DESCRIPTION
  vidstabdetect is the first-pass CLI: it reads raw planar video frames
  and writes a VID.STAB local-motion file that a later vidstabtransform
  run consumes.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements vidstabdetect, the Detector pass CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/vidstab/detect"
	"github.com/ausocean/vidstab/frame"
	"github.com/ausocean/vidstab/serialize"
	"github.com/ausocean/vidstab/stab"
)

// Logging related constants, matching the teacher CLI's lumberjack setup.
const (
	logPath      = "vidstabdetect.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
)

const version = "0.1.0"

func main() {
	inputPath := flag.String("input", "", "path to raw video source (file, or directory in -watch mode)")
	outputPath := flag.String("output", "motions.trf", "path to write the VID.STAB local-motion file")
	width := flag.Int("width", 0, "frame width in pixels")
	height := flag.Int("height", 0, "frame height in pixels")
	formatName := flag.String("format", "yuv420p", "pixel format: gray8, yuv420p, yuv422p, yuv444p, rgb24, bgr24, rgba")
	shakiness := flag.Int("shakiness", 5, "how shaky the input is, 1..10")
	accuracy := flag.Int("accuracy", 9, "accuracy of detection, 1..15")
	stepSize := flag.Int("stepsize", 6, "search step size for the coarse block match")
	minContrast := flag.Float64("mincontrast", 0.25, "minimum field contrast to be considered")
	showLevel := flag.Int("show", 0, "detector Show level: fields (1) or fields+scan area (2), 0 disables; this tool writes no frames, so nothing is drawn")
	watch := flag.Bool("watch", false, "watch -input as a directory for new raw frame files using fsnotify")
	useCV := flag.Bool("camera", false, "capture frames from a live camera/file source via gocv instead of -input")
	logVerbosity := flag.Int("loglevel", int(logging.Info), "log verbosity")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("vidstabdetect", version)
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

	pass, err := stab.NewDetectPass(stab.DetectConfig{
		Info: fi,
		Detect: detect.Config{
			Shakiness:         *shakiness,
			Accuracy:          *accuracy,
			StepSize:          *stepSize,
			ContrastThreshold: *minContrast,
			Show:              *showLevel,
			Logger:            log,
		},
	})
	if err != nil {
		log.Fatal("could not construct detect pass", "error", err.Error())
	}

	out, err := os.Create(*outputPath)
	if err != nil {
		log.Fatal("could not create output file", "error", err.Error())
	}
	defer out.Close()
	if err := serialize.WriteHeader(out, serialize.DetectorConfig{
		Accuracy: *accuracy, Shakiness: *shakiness, StepSize: *stepSize, ContrastThreshold: *minContrast,
	}); err != nil {
		log.Fatal("could not write header", "error", err.Error())
	}

	var source frameSource
	switch {
	case *useCV:
		source, err = newCVSource(fi)
	case *watch:
		source, err = newWatchSource(*inputPath, fi, log)
	default:
		source, err = newFileSource(*inputPath, fi)
	}
	if err != nil {
		log.Fatal("could not open frame source", "error", err.Error())
	}
	defer source.Close()

	for n := 0; ; n++ {
		f, err := source.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal("reading frame", "error", err.Error())
		}
		lms, err := pass.Process(f)
		if err != nil {
			log.Fatal("detecting motion", "frame", n, "error", err.Error())
		}
		if err := serialize.WriteFrame(out, n, lms); err != nil {
			log.Fatal("writing frame motions", "frame", n, "error", err.Error())
		}
	}
	log.Info("detect pass complete", "frames", pass.FrameNum())
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
