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

/*
Package ioadapter adapts byte sources and sinks to the narrow interface
the stream engines consume.

SOURCES:
========

	FileSource    regular file, relative seek, sequential read-ahead hint
	MmapSource    memory-mapped file (read side of compression)
	ReaderSource  any io.Reader; stdin; supports the 4-byte magic rewind
	              through a small pushback window

SINKS:
======

	any io.Writer; files, stdout, io.Discard

The engines call Read only from the driver goroutine and Write only from
the barrier-holding task, so the adapters do not need internal locking.
*/
package ioadapter

import (
	"errors"
	"io"
)

// ErrSeekUnsupported is returned by sources that cannot rewind further
// than their pushback window.
var ErrSeekUnsupported = errors.New("ioadapter: seek not supported")

// Source is the byte source consumed by the decompression driver. Seek
// takes a relative offset; the driver only ever rewinds the four magic
// bytes at a frame boundary.
type Source interface {
	io.Reader

	// Seek moves the read position by offset bytes relative to the
	// current position.
	Seek(offset int64) error

	// EOF reports whether a read has already hit the end of the source.
	EOF() bool

	// SkipSkippable discards size bytes of a skippable frame identified
	// by magic.
	SkipSkippable(magic uint32, size uint32) error
}

// Sink is the byte sink produced into. Short writes are failures.
type Sink = io.Writer
