//go:build withcv
// +build withcv

/*
DESCRIPTION
  source_withcv.go implements the -camera frame source using gocv when
  built with the withcv tag, matching filter/knn.go's gocv-gated build.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"fmt"
	"io"

	"gocv.io/x/gocv"

	"github.com/ausocean/vidstab/frame"
)

type cvSource struct {
	cap *gocv.VideoCapture
	mat gocv.Mat
	fi  frame.FrameInfo
}

func newCVSource(fi frame.FrameInfo) (frameSource, error) {
	cap, err := gocv.OpenVideoCapture(0)
	if err != nil {
		return nil, fmt.Errorf("could not open camera: %w", err)
	}
	return &cvSource{cap: cap, mat: gocv.NewMat(), fi: fi}, nil
}

func (s *cvSource) Next() (*frame.Frame, error) {
	if !s.cap.Read(&s.mat) || s.mat.Empty() {
		return nil, io.EOF
	}
	f := frame.Allocate(s.fi)
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(s.mat, &gray, gocv.ColorBGRToGray)
	copy(f.Data[0], gray.ToBytes())
	return f, nil
}

func (s *cvSource) Close() error {
	s.mat.Close()
	return s.cap.Close()
}
