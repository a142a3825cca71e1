//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  source_nocv.go replaces the gocv -camera source when built without the
  withcv tag, matching filter/filters_circleci.go's CI-friendly stand-in.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"errors"

	"github.com/ausocean/vidstab/frame"
)

func newCVSource(fi frame.FrameInfo) (frameSource, error) {
	return nil, errors.New("-camera requires a build with -tags withcv")
}
