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
Package lz4stream compresses and decompresses the LZ4 streaming frame
format over plain io.Reader / io.Writer pairs.

USAGE:
======

	err := lz4stream.Compress(in, out, lz4stream.Options{})

	err := lz4stream.Decompress(in, out, lz4stream.Options{})

The zero Options value selects the format defaults: parallel execution,
independent 4 MiB blocks, stream checksum on, block checksums off, fast
compression.
*/
package lz4stream

import (
	"io"

	"lz4stream/internal/frame"
	"lz4stream/internal/ioadapter"
	"lz4stream/internal/stream"
)

// Mode selects the execution model.
type Mode = stream.Mode

// Execution modes.
const (
	Parallel   = stream.Parallel
	Sequential = stream.Sequential
)

// Block maximum size ids, as carried in the frame descriptor.
const (
	BlockMax64KiB  = 4
	BlockMax256KiB = 5
	BlockMax1MiB   = 6
	BlockMax4MiB   = 7
)

// Options is the tuning surface for a compress or decompress call. The
// descriptor-related fields are ignored on decompression, where the frame
// header is authoritative.
type Options struct {
	// Level is the compression level; 3 and above use the
	// high-compression encoder.
	Level int

	// Mode selects parallel (default) or sequential execution.
	Mode Mode

	// Concurrency bounds worker parallelism; 0 means the number of CPUs.
	Concurrency int

	// BlockSizeID is the block maximum size id (4..7); 0 means 7 (4 MiB).
	BlockSizeID int

	// BlockChecksum appends an XXH32 checksum to every block.
	BlockChecksum bool

	// NoStreamChecksum drops the whole-content XXH32 trailer.
	NoStreamChecksum bool

	// BlockDependent emits a block-dependent frame, processed
	// single-threaded. The built-in block codec compresses each block
	// standalone without using the 64 KiB dictionary, so the output is not
	// denser than with independent blocks; decoding honors the dictionary.
	BlockDependent bool

	// ContentSize records the uncompressed size in the frame header when
	// HasContentSize is set.
	ContentSize    uint64
	HasContentSize bool
}

// Descriptor builds the frame descriptor the options describe.
func (o Options) Descriptor() frame.Descriptor {
	d := frame.NewDescriptor()
	if o.BlockSizeID != 0 {
		d.Bd.BlockMaximumSize = byte(o.BlockSizeID)
	}
	if o.BlockChecksum {
		d.Flg.BlockChecksum = 1
	}
	if o.NoStreamChecksum {
		d.Flg.StreamChecksum = 0
	}
	if o.BlockDependent {
		d.Flg.BlockIndependence = 0
	}
	if o.HasContentSize {
		d.Flg.StreamSize = 1
		d.StreamSize = o.ContentSize
	}
	return d
}

func (o Options) config() stream.Config {
	return stream.Config{
		Level:       o.Level,
		Mode:        o.Mode,
		Concurrency: o.Concurrency,
	}
}

// Compress encodes r into one LZ4 frame written to w.
func Compress(r io.Reader, w io.Writer, o Options) error {
	c := stream.NewContext(ioadapter.NewReaderSource(r), w, o.config())
	return stream.Compress(c, o.Descriptor())
}

// Decompress decodes every LZ4 frame from r into w, skipping interleaved
// skippable frames.
func Decompress(r io.Reader, w io.Writer, o Options) error {
	c := stream.NewContext(ioadapter.NewReaderSource(r), w, o.config())
	var d frame.Descriptor
	return stream.Decompress(c, &d)
}
