/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ioadapter

import (
	"io"
	"os"
)

// FileSource reads from a regular file with relative seeking.
type FileSource struct {
	f   *os.File
	eof bool
}

// OpenFileSource opens path for reading and hints the kernel that access
// will be sequential.
func OpenFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	adviseSequential(f)
	return &FileSource{f: f}, nil
}

// NewFileSource wraps an already opened file.
func NewFileSource(f *os.File) *FileSource {
	adviseSequential(f)
	return &FileSource{f: f}
}

func (s *FileSource) Read(p []byte) (int, error) {
	n, err := s.f.Read(p)
	if err == io.EOF {
		s.eof = true
	}
	return n, err
}

// Seek moves the read position relative to the current one. Rewinding
// clears the EOF latch.
func (s *FileSource) Seek(offset int64) error {
	if _, err := s.f.Seek(offset, io.SeekCurrent); err != nil {
		return err
	}
	if offset < 0 {
		s.eof = false
	}
	return nil
}

// EOF reports whether a read has hit the end of the file.
func (s *FileSource) EOF() bool {
	return s.eof
}

// SkipSkippable seeks past a skippable frame body.
func (s *FileSource) SkipSkippable(magic uint32, size uint32) error {
	_ = magic
	return s.Seek(int64(size))
}

// Close closes the underlying file.
func (s *FileSource) Close() error {
	return s.f.Close()
}

// ReaderSource adapts an arbitrary io.Reader, typically stdin. A small
// pushback window retains the tail of the last read so the driver can
// rewind the four magic bytes at a multi-frame boundary even though the
// stream itself cannot seek.
type ReaderSource struct {
	r       io.Reader
	eof     bool
	history [8]byte
	histLen int
	unread  []byte
}

// NewReaderSource wraps r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

func (s *ReaderSource) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var n int
	if len(s.unread) > 0 {
		n = copy(p, s.unread)
		s.unread = s.unread[n:]
		s.remember(p[:n])
		return n, nil
	}
	n, err := s.r.Read(p)
	if n > 0 {
		s.remember(p[:n])
	}
	if err == io.EOF {
		s.eof = true
	}
	return n, err
}

// remember keeps the tail of everything read for the pushback window.
func (s *ReaderSource) remember(p []byte) {
	if len(p) >= len(s.history) {
		copy(s.history[:], p[len(p)-len(s.history):])
		s.histLen = len(s.history)
		return
	}
	keep := len(s.history) - len(p)
	if s.histLen < keep {
		keep = s.histLen
	}
	copy(s.history[:], s.history[s.histLen-keep:s.histLen])
	copy(s.history[keep:], p)
	s.histLen = keep + len(p)
}

// Seek supports only small rewinds inside the pushback window.
func (s *ReaderSource) Seek(offset int64) error {
	if offset == 0 {
		return nil
	}
	if offset > 0 || len(s.unread) > 0 {
		return ErrSeekUnsupported
	}
	back := int(-offset)
	if back > s.histLen {
		return ErrSeekUnsupported
	}
	s.unread = append([]byte(nil), s.history[s.histLen-back:s.histLen]...)
	s.eof = false
	return nil
}

// EOF reports whether the underlying reader is exhausted and the pushback
// window is empty.
func (s *ReaderSource) EOF() bool {
	return s.eof && len(s.unread) == 0
}

// SkipSkippable discards size bytes from the stream.
func (s *ReaderSource) SkipSkippable(magic uint32, size uint32) error {
	_ = magic
	_, err := io.CopyN(io.Discard, s, int64(size))
	return err
}
