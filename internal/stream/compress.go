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

package stream

import (
	"github.com/OneOfOne/xxhash"
	"golang.org/x/sync/errgroup"

	"lz4stream/internal/frame"
	"lz4stream/internal/mempool"
)

// compressBlocks runs the block-independent compression pipeline: read a
// block, compress it on its own task, emit in submission order behind the
// ordering barrier, then terminate the frame with EOS and the optional
// stream checksum.
func compressBlocks(c *Context, d *frame.Descriptor) {
	blockMax := d.BlockMaximumSize()
	blockChecksum := d.Flg.BlockChecksum != 0
	streamChecksum := d.Flg.StreamChecksum != 0
	sequential := c.mode == Sequential

	srcPool := mempool.New(blockMax, c.poolCount())
	dstPool := mempool.New(blockMax, c.poolCount())
	defer srcPool.Close()
	defer dstPool.Close()

	xxhStream := xxhash.NewS32(frame.ChecksumSeed)

	task := func(src *mempool.Buffer, barrier <-chan struct{}, done chan<- struct{}) error {
		defer close(done)
		defer src.Release()
		if c.Failed() || c.Quitting() {
			return nil
		}

		srcBytes := src.Bytes()
		dst := dstPool.Acquire()
		defer dst.Release()
		if dst.Empty() {
			return nil
		}

		codec := c.getCodec()
		// Cap the output at the input size: a block that does not shrink
		// is emitted verbatim.
		cmpSize := codec.Compress(srcBytes, dst.Data()[:len(srcBytes)])
		c.putCodec(codec)

		incompressible := cmpSize <= 0 || cmpSize >= len(srcBytes)
		var blockHeader uint32
		var payload []byte
		if incompressible {
			blockHeader = uint32(len(srcBytes)) | frame.IncompressibleBit
			payload = srcBytes
			// The scratch output is dead weight from here on; hand it
			// back before blocking on the barrier.
			dst.Release()
		} else {
			blockHeader = uint32(cmpSize)
			payload = dst.Bytes()[:cmpSize]
		}

		var blockSum uint32
		if blockChecksum {
			blockSum = xxhash.Checksum32S(payload, frame.ChecksumSeed)
		}

		<-barrier

		// From here this task owns the sink and the stream hash. The hash
		// update overlaps this task's own writes; it must finish before
		// done is closed, which the deferred close guarantees.
		var hashDone chan struct{}
		if streamChecksum {
			if sequential {
				xxhStream.Write(srcBytes)
			} else {
				hashDone = make(chan struct{})
				go func() {
					xxhStream.Write(srcBytes)
					close(hashDone)
				}()
			}
		}

		ok := c.writeU32(blockHeader) && c.writeBin(payload)
		if ok && blockChecksum {
			ok = c.writeU32(blockSum)
		}
		if hashDone != nil {
			<-hashDone
		}
		if !ok {
			c.Quit(frame.ErrCannotWriteDataBlock)
			return frame.ErrCannotWriteDataBlock
		}
		return nil
	}

	var g errgroup.Group
	prev := make(chan struct{})
	close(prev)

	for !c.Failed() && !c.Quitting() {
		src := srcPool.Acquire()
		if src.Empty() {
			break
		}
		n := c.read(src.Data())
		if n == 0 {
			src.Release()
			break
		}
		src.Resize(n)

		barrier, done := prev, make(chan struct{})
		prev = done
		if sequential {
			if err := task(src, barrier, done); err != nil {
				c.SetResult(err)
			}
		} else {
			g.Go(func() error { return task(src, barrier, done) })
		}
	}

	if err := g.Wait(); err != nil {
		c.SetResult(err)
	}

	if !c.writeU32(frame.EOS) {
		c.SetResult(frame.ErrCannotWriteEos)
		return
	}
	if streamChecksum {
		if !c.writeU32(xxhStream.Sum32()) {
			c.SetResult(frame.ErrCannotWriteStreamChecksum)
		}
	}
}
