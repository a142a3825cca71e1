/*
DESCRIPTION
  frame.go defines the pixel-buffer types shared by every stage of the
  stabilization pipeline: a FrameInfo descriptor and a mutable Frame
  container for up to four planes of planar or packed pixel data.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package frame provides the planar/packed pixel buffer descriptor (FrameInfo)
// and container (Frame) that every other package in this module operates on.
package frame

import "fmt"

// Format identifies a pixel layout recognised by the detector and warper.
type Format int

// Recognised pixel formats. Planar YUV formats differ only in chroma
// subsampling; RGB24/BGR24/RGBA are packed (plane 0 holds interleaved
// samples, planes 1-3 are unused).
const (
	GRAY8 Format = iota
	YUV420P
	YUV422P
	YUV444P
	YUV410P
	YUV411P
	YUV440P
	YUVA420P
	RGB24
	BGR24
	RGBA
)

func (f Format) String() string {
	switch f {
	case GRAY8:
		return "GRAY8"
	case YUV420P:
		return "YUV420P"
	case YUV422P:
		return "YUV422P"
	case YUV444P:
		return "YUV444P"
	case YUV410P:
		return "YUV410P"
	case YUV411P:
		return "YUV411P"
	case YUV440P:
		return "YUV440P"
	case YUVA420P:
		return "YUVA420P"
	case RGB24:
		return "RGB24"
	case BGR24:
		return "BGR24"
	case RGBA:
		return "RGBA"
	default:
		return "unknown"
	}
}

// Packed reports whether f interleaves its samples in a single plane.
func (f Format) Packed() bool {
	switch f {
	case RGB24, BGR24, RGBA:
		return true
	default:
		return false
	}
}

// formatProps holds the per-format plane count, bytes-per-pixel, and chroma
// subsampling shifts. Values are taken from original_source/src/frameinfo.h
// and the VS_BPP/log2ChromaW/H tables in motiondetect_internal.h.
type formatProps struct {
	planes                   int
	bytesPerPixel            int
	log2ChromaW, log2ChromaH int
}

var props = map[Format]formatProps{
	GRAY8:    {1, 1, 0, 0},
	YUV420P:  {3, 1, 1, 1},
	YUV422P:  {3, 1, 1, 0},
	YUV444P:  {3, 1, 0, 0},
	YUV410P:  {3, 1, 2, 2},
	YUV411P:  {3, 1, 2, 0},
	YUV440P:  {3, 1, 0, 1},
	YUVA420P: {4, 1, 1, 1},
	RGB24:    {1, 3, 0, 0},
	BGR24:    {1, 3, 0, 0},
	RGBA:     {1, 4, 0, 0},
}

// FrameInfo is an immutable descriptor of a frame's geometry and pixel
// layout. Two Frames are compatible for detection/warping purposes iff
// their FrameInfo values are equal.
type FrameInfo struct {
	Width, Height int
	Format        Format
}

// NewFrameInfo validates width, height and format and returns a FrameInfo.
// Width and height must be positive and even; that makes the 2x chroma
// subsamplings exact, while the 4x ones (YUV410P, YUV411P) round down
// unless the dimension is also a multiple of 4.
func NewFrameInfo(width, height int, format Format) (FrameInfo, error) {
	if width <= 0 || height <= 0 {
		return FrameInfo{}, fmt.Errorf("frame: invalid dimensions %dx%d", width, height)
	}
	if width%2 != 0 || height%2 != 0 {
		return FrameInfo{}, fmt.Errorf("frame: dimensions %dx%d must be even", width, height)
	}
	if _, ok := props[format]; !ok {
		return FrameInfo{}, fmt.Errorf("frame: unrecognised format %v", format)
	}
	return FrameInfo{Width: width, Height: height, Format: format}, nil
}

// Planes returns the number of distinct planes this format stores data in.
func (fi FrameInfo) Planes() int { return props[fi.Format].planes }

// BytesPerPixel returns the number of bytes used per sample. For packed
// formats this is the stride per interleaved pixel group; for planar
// formats it is the per-sample size (always 1 for the YUV family here).
func (fi FrameInfo) BytesPerPixel() int { return props[fi.Format].bytesPerPixel }

// Log2ChromaW and Log2ChromaH return the horizontal and vertical chroma
// subsampling shifts: a chroma plane's width is Width>>Log2ChromaW.
func (fi FrameInfo) Log2ChromaW() int { return props[fi.Format].log2ChromaW }
func (fi FrameInfo) Log2ChromaH() int { return props[fi.Format].log2ChromaH }

// PlaneWidth and PlaneHeight return the pixel dimensions of plane p,
// accounting for chroma subsampling. Plane 0 (luma, or the packed plane)
// is always full resolution.
func (fi FrameInfo) PlaneWidth(p int) int {
	if p == 0 || fi.Format.Packed() {
		return fi.Width
	}
	return fi.Width >> fi.Log2ChromaW()
}

func (fi FrameInfo) PlaneHeight(p int) int {
	if p == 0 || fi.Format.Packed() {
		return fi.Height
	}
	return fi.Height >> fi.Log2ChromaH()
}

// Frame is a mutable pixel container: up to four planes of (data, linesize).
// A Frame allocated by Allocate owns its storage; a Frame constructed around
// a borrowed buffer (via Wrap) does not and Free is a no-op for it.
type Frame struct {
	Info     FrameInfo
	Data     [4][]byte
	Linesize [4]int
	borrowed bool
}

// Allocate returns a new Frame with freshly allocated, zeroed plane buffers
// matching fi.
func Allocate(fi FrameInfo) *Frame {
	f := &Frame{Info: fi}
	n := fi.Planes()
	for p := 0; p < n; p++ {
		w := fi.PlaneWidth(p)
		h := fi.PlaneHeight(p)
		bpp := fi.BytesPerPixel()
		linesize := w * bpp
		f.Linesize[p] = linesize
		f.Data[p] = make([]byte, linesize*h)
	}
	return f
}

// Wrap constructs a Frame around caller-owned plane buffers. Free is a
// no-op on a wrapped Frame; the caller retains ownership.
func Wrap(fi FrameInfo, data [4][]byte, linesize [4]int) *Frame {
	return &Frame{Info: fi, Data: data, Linesize: linesize, borrowed: true}
}

// CopyFrom copies every plane of src into f, which must share src's
// FrameInfo.
func (f *Frame) CopyFrom(src *Frame) error {
	if f.Info != src.Info {
		return fmt.Errorf("frame: CopyFrom mismatched FrameInfo: %+v != %+v", f.Info, src.Info)
	}
	n := f.Info.Planes()
	for p := 0; p < n; p++ {
		h := f.Info.PlaneHeight(p)
		for y := 0; y < h; y++ {
			srcOff := y * src.Linesize[p]
			dstOff := y * f.Linesize[p]
			row := f.Info.PlaneWidth(p) * f.Info.BytesPerPixel()
			copy(f.Data[p][dstOff:dstOff+row], src.Data[p][srcOff:srcOff+row])
		}
	}
	return nil
}

// Free releases an allocated Frame's plane buffers. It is a no-op on a
// wrapped (borrowed) Frame.
func (f *Frame) Free() {
	if f.borrowed {
		return
	}
	for p := range f.Data {
		f.Data[p] = nil
	}
}

// At returns the byte offset of pixel (x,y) within plane p, or -1 if the
// coordinates are out of bounds for that plane.
func (f *Frame) At(p, x, y int) int {
	w := f.Info.PlaneWidth(p)
	h := f.Info.PlaneHeight(p)
	if x < 0 || y < 0 || x >= w || y >= h {
		return -1
	}
	return y*f.Linesize[p] + x*f.Info.BytesPerPixel()
}
