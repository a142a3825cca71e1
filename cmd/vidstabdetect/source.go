/*
DESCRIPTION
  source.go defines the frameSource abstraction vidstabdetect reads from:
  a flat raw-frame file, or a watched directory of per-frame files
  (fsnotify). The optional camera source lives in source_withcv.go /
  source_nocv.go behind the teacher's withcv/!withcv build-tag pair.

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
	"os"
	"path/filepath"
	"sort"

	"github.com/fsnotify/fsnotify"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/vidstab/frame"
)

// frameSource yields successive frames until exhausted (io.EOF).
type frameSource interface {
	Next() (*frame.Frame, error)
	Close() error
}

// frameSize is the number of bytes one frame occupies given fi.
func frameSize(fi frame.FrameInfo) int {
	n := 0
	for p := 0; p < fi.Planes(); p++ {
		n += fi.PlaneWidth(p) * fi.PlaneHeight(p) * fi.BytesPerPixel()
	}
	return n
}

// readFrame reads one frame's worth of raw bytes from r into planes
// matching fi's layout.
func readFrame(r io.Reader, fi frame.FrameInfo) (*frame.Frame, error) {
	f := frame.Allocate(fi)
	for p := 0; p < fi.Planes(); p++ {
		if _, err := io.ReadFull(r, f.Data[p]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// fileSource reads consecutive raw frames from a single flat file.
type fileSource struct {
	f  *os.File
	fi frame.FrameInfo
}

func newFileSource(path string, fi frame.FrameInfo) (frameSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	return &fileSource{f: f, fi: fi}, nil
}

func (s *fileSource) Next() (*frame.Frame, error) {
	f, err := readFrame(s.f, s.fi)
	if err == io.ErrUnexpectedEOF {
		return nil, io.EOF
	}
	return f, err
}

func (s *fileSource) Close() error { return s.f.Close() }

// watchSource watches a directory with fsnotify and yields a frame for
// every file in it, blocking until one arrives. Files already present are
// yielded first in lexical filename order; files that appear later are
// yielded in the order their create/write events arrive.
type watchSource struct {
	watcher *fsnotify.Watcher
	dir     string
	fi      frame.FrameInfo
	log     logging.Logger
	pending []string
}

func newWatchSource(dir string, fi frame.FrameInfo, log logging.Logger) (frameSource, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create fsnotify watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("could not watch %s: %w", dir, err)
	}
	existing, _ := filepath.Glob(filepath.Join(dir, "*"))
	sort.Strings(existing)
	return &watchSource{watcher: w, dir: dir, fi: fi, log: log, pending: existing}, nil
}

func (s *watchSource) Next() (*frame.Frame, error) {
	for {
		if len(s.pending) > 0 {
			path := s.pending[0]
			s.pending = s.pending[1:]
			f, err := os.Open(path)
			if err != nil {
				s.log.Warning("skipping unreadable frame file", "path", path, "error", err.Error())
				continue
			}
			fr, err := readFrame(f, s.fi)
			f.Close()
			if err != nil {
				s.log.Warning("skipping malformed frame file", "path", path, "error", err.Error())
				continue
			}
			return fr, nil
		}
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return nil, io.EOF
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				s.pending = append(s.pending, ev.Name)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil, io.EOF
			}
			s.log.Warning("fsnotify error", "error", err.Error())
		}
	}
}

func (s *watchSource) Close() error { return s.watcher.Close() }
