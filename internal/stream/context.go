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
Package stream implements the LZ4 frame engines: the shared per-call
context, the parallel block-independent pipeline, the single-threaded
block-dependent (linked) pipeline, and the top-level compress/decompress
drivers.

CONCURRENCY MODEL:
==================

Block-independent frames are processed by one task per block. Each task
compresses or decompresses its block concurrently with the others, then
waits on an ordering barrier (the previous task's completion channel)
before touching the sink or the streaming checksum. The emitted byte
stream is therefore identical to a sequential encoder's, while the
CPU-bound work overlaps earlier tasks' I/O.

Back-pressure comes from the buffer pools: the read loop blocks acquiring
a source buffer when all of them are lent to in-flight tasks, bounding
peak memory at 2*(concurrency+1)*blockMaximumSize.

Errors latch first-wins in the context. The quit flag makes in-flight
tasks finish quickly without performing I/O; the drivers join every task
before returning.
*/
package stream

import (
	"io"
	"runtime"
	"sync"
	"sync/atomic"

	"lz4stream/internal/blockcodec"
	"lz4stream/internal/frame"
	"lz4stream/internal/ioadapter"
	"lz4stream/internal/wire"
)

// Mode selects the execution model for block-independent frames.
type Mode int

const (
	// Parallel runs one task per block on its own goroutine.
	Parallel Mode = iota
	// Sequential runs every task inline on the driver goroutine.
	Sequential
)

// Config carries the tuning surface of a compress or decompress call.
type Config struct {
	// Level selects the block compressor; values at or above
	// blockcodec.HighCompressionLevel use the high-compression encoder.
	Level int

	// Mode selects parallel or sequential execution.
	Mode Mode

	// Concurrency is the worker parallelism; 0 means the number of CPUs.
	Concurrency int
}

// Context aggregates the I/O endpoints, the block codec, the tuning
// parameters, the first-error latch and the quit flag for one call. All
// accessors are safe for concurrent use by worker tasks.
type Context struct {
	src ioadapter.Source
	dst ioadapter.Sink

	level       int
	mode        Mode
	concurrency int

	codecs sync.Pool

	mu     sync.Mutex
	result error
	quit   atomic.Bool
}

// NewContext builds a context for one streaming call.
func NewContext(src ioadapter.Source, dst ioadapter.Sink, cfg Config) *Context {
	n := cfg.Concurrency
	if n <= 0 {
		n = runtime.NumCPU()
	}
	c := &Context{
		src:         src,
		dst:         dst,
		level:       cfg.Level,
		mode:        cfg.Mode,
		concurrency: n,
	}
	c.codecs.New = func() any { return blockcodec.NewLZ4(cfg.Level) }
	return c
}

// poolCount returns the element count for the per-call buffer pools.
func (c *Context) poolCount() int {
	if c.mode == Sequential {
		return 1
	}
	return c.concurrency + 1
}

// getCodec lends a block codec to a task. Codecs keep per-instance match
// tables, so tasks must not share one.
func (c *Context) getCodec() blockcodec.Codec {
	return c.codecs.Get().(blockcodec.Codec)
}

func (c *Context) putCodec(codec blockcodec.Codec) {
	c.codecs.Put(codec)
}

// Err returns the latched result; nil means success so far.
func (c *Context) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Failed reports whether any error has been latched.
func (c *Context) Failed() bool {
	return c.Err() != nil
}

// SetResult latches err. A specific error is sticky: it can only be set
// while the stored result is nil or the generic frame.ErrGeneric, so the
// first specific failure wins. Passing nil clears a pending generic
// error, which is how an EOF-at-frame-boundary short read is forgiven.
func (c *Context) SetResult(err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil || c.result == frame.ErrGeneric {
		c.result = err
	}
	return c.result
}

// Quit latches err and raises the quit flag for cooperative cancellation.
func (c *Context) Quit(err error) {
	c.SetResult(err)
	c.quit.Store(true)
}

// Quitting reports whether tasks should short-circuit.
func (c *Context) Quitting() bool {
	return c.quit.Load()
}

// read fills p from the source, stopping early only at end of stream.
// It returns the number of bytes read. Only a read error other than end
// of stream latches the generic error; short reads are meaningful at
// stream boundaries and the callers decide.
func (c *Context) read(p []byte) int {
	if c.Failed() {
		return 0
	}
	n, err := io.ReadFull(c.src, p)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		c.SetResult(frame.ErrGeneric)
	}
	return n
}

// readU32 reads a little-endian u32, latching the generic error on a
// short read so the caller can upgrade it to a specific kind.
func (c *Context) readU32() (uint32, bool) {
	if c.Failed() {
		return 0, false
	}
	var buf [4]byte
	if _, err := io.ReadFull(c.src, buf[:]); err != nil {
		c.SetResult(frame.ErrGeneric)
		return 0, false
	}
	return wire.LoadU32(buf[:]), true
}

// writeU32 writes a little-endian u32 unless an error is already latched.
func (c *Context) writeU32(v uint32) bool {
	var buf [4]byte
	wire.StoreU32(buf[:], v)
	return c.writeBin(buf[:])
}

// writeBin writes p to the sink; a short write latches the generic error.
func (c *Context) writeBin(p []byte) bool {
	if c.Failed() {
		return false
	}
	if n, err := c.dst.Write(p); err != nil || n != len(p) {
		c.SetResult(frame.ErrGeneric)
		return false
	}
	return true
}
