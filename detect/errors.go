/*
LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package detect

import "errors"

// ErrBadConfig is returned by NewDetector for a FatalConfig condition: a
// non-positive width, height or bytesPerPixel, a linesize smaller than
// width, or an Accuracy below Shakiness.
var ErrBadConfig = errors.New("detect: bad configuration")

// ErrAlloc is returned by NewDetector for a FatalInit condition: the field
// grid could not be laid out for the given frame geometry.
var ErrAlloc = errors.New("detect: could not allocate field grid")

// ErrFrameMismatch is returned by Detect when the luma plane is shorter
// than the linesize*height geometry the Detector was configured with.
var ErrFrameMismatch = errors.New("detect: frame does not match configured FrameInfo")
