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

// decompressBlocks runs the block-independent decompression pipeline for
// one frame whose header has already been parsed: read block records,
// decode each on its own task, emit in frame order behind the ordering
// barrier, then verify the optional stream checksum.
func decompressBlocks(c *Context, d *frame.Descriptor) {
	blockMax := d.BlockMaximumSize()
	blockChecksum := d.Flg.BlockChecksum != 0
	streamChecksum := d.Flg.StreamChecksum != 0
	sequential := c.mode == Sequential

	srcPool := mempool.New(blockMax, c.poolCount())
	dstPool := mempool.New(blockMax, c.poolCount())
	defer srcPool.Close()
	defer dstPool.Close()

	xxhStream := xxhash.NewS32(frame.ChecksumSeed)

	task := func(src *mempool.Buffer, incompressible bool, wireSum uint32, barrier <-chan struct{}, done chan<- struct{}) error {
		defer close(done)
		defer src.Release()
		if c.Failed() || c.Quitting() {
			return nil
		}

		payload := src.Bytes()

		var calcSum uint32
		if blockChecksum {
			// The block checksum covers the on-wire payload; computing it
			// here overlaps earlier tasks' I/O.
			calcSum = xxhash.Checksum32S(payload, frame.ChecksumSeed)
		}

		var out []byte
		var dst *mempool.Buffer
		if incompressible {
			out = payload
		} else {
			dst = dstPool.Acquire()
			defer dst.Release()
			if dst.Empty() {
				return nil
			}
			codec := c.getCodec()
			decSize, err := codec.Decompress(payload, dst.Data())
			c.putCodec(codec)
			if err != nil {
				c.Quit(frame.ErrDecompressFail)
				return frame.ErrDecompressFail
			}
			out = dst.Data()[:decSize]
		}

		<-barrier

		var hashDone chan struct{}
		if streamChecksum {
			if sequential {
				xxhStream.Write(out)
			} else {
				hashDone = make(chan struct{})
				go func() {
					xxhStream.Write(out)
					close(hashDone)
				}()
			}
		}

		ok := c.writeBin(out)
		if hashDone != nil {
			<-hashDone
		}
		if !ok {
			c.Quit(frame.ErrCannotWriteDecodedBlock)
			return frame.ErrCannotWriteDecodedBlock
		}

		if blockChecksum && calcSum != wireSum {
			c.Quit(frame.ErrBlockChecksumMismatch)
			return frame.ErrBlockChecksumMismatch
		}
		return nil
	}

	var g errgroup.Group
	prev := make(chan struct{})
	close(prev)

	for !c.Failed() && !c.Quitting() {
		blockHeader, ok := c.readU32()
		if !ok {
			c.Quit(frame.ErrCannotReadBlockSize)
			break
		}
		if blockHeader == frame.EOS {
			break
		}

		incompressible := blockHeader&frame.IncompressibleBit != 0
		srcSize := int(blockHeader &^ frame.IncompressibleBit)
		if srcSize > blockMax {
			c.Quit(frame.ErrInvalidBlockSize)
			break
		}

		src := srcPool.Acquire()
		if src.Empty() {
			break
		}
		if n := c.read(src.Data()[:srcSize]); n != srcSize {
			src.Release()
			c.Quit(frame.ErrCannotReadBlockData)
			break
		}
		src.Resize(srcSize)

		var wireSum uint32
		if blockChecksum {
			sum, ok := c.readU32()
			if !ok {
				src.Release()
				c.Quit(frame.ErrCannotReadBlockChecksum)
				break
			}
			wireSum = sum
		}

		barrier, done := prev, make(chan struct{})
		prev = done
		if sequential {
			if err := task(src, incompressible, wireSum, barrier, done); err != nil {
				c.SetResult(err)
			}
		} else {
			g.Go(func() error { return task(src, incompressible, wireSum, barrier, done) })
		}
	}

	if err := g.Wait(); err != nil {
		c.SetResult(err)
	}

	if !c.Failed() && streamChecksum {
		wireSum, ok := c.readU32()
		if !ok {
			c.SetResult(frame.ErrCannotReadStreamChecksum)
			return
		}
		if xxhStream.Sum32() != wireSum {
			c.SetResult(frame.ErrStreamChecksumMismatch)
		}
	}
}
