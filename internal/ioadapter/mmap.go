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

	"github.com/tysonmote/gommap"
)

// MmapSource serves reads from a memory-mapped file. Mapping the input
// avoids the copy through a read buffer when compressing large files;
// block reads become plain memcpy from the page cache.
type MmapSource struct {
	f    *os.File
	mmap gommap.MMap
	pos  int64
}

// OpenMmapSource maps path read-only. Empty files fall back to a plain
// FileSource since zero-length mappings are rejected by the kernel.
func OpenMmapSource(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.Size() == 0 {
		return NewFileSource(f), nil
	}
	mmap, err := gommap.Map(f.Fd(), gommap.PROT_READ, gommap.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &MmapSource{f: f, mmap: mmap}, nil
}

func (s *MmapSource) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.mmap)) {
		return 0, io.EOF
	}
	n := copy(p, s.mmap[s.pos:])
	s.pos += int64(n)
	return n, nil
}

// Seek moves the read position relative to the current one.
func (s *MmapSource) Seek(offset int64) error {
	pos := s.pos + offset
	if pos < 0 || pos > int64(len(s.mmap)) {
		return ErrSeekUnsupported
	}
	s.pos = pos
	return nil
}

// EOF reports whether the read position is at the end of the mapping.
func (s *MmapSource) EOF() bool {
	return s.pos >= int64(len(s.mmap))
}

// SkipSkippable advances the read position past a skippable frame body.
func (s *MmapSource) SkipSkippable(magic uint32, size uint32) error {
	_ = magic
	return s.Seek(int64(size))
}

// Close unmaps the file and closes it.
func (s *MmapSource) Close() error {
	if err := s.mmap.UnsafeUnmap(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
