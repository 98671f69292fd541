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

	"lz4stream/internal/blockcodec"
	"lz4stream/internal/frame"
)

// minLinkedWindow keeps the compression window large enough that the
// slide happens rarely even with small blocks.
const minLinkedWindow = 1088 << 10

// compressLinked runs the block-dependent compression engine. Blocks may
// reference the preceding 64 KiB of uncompressed input, so the engine is
// single-threaded: it maintains one sliding window buffer and hands the
// codec the dictionary prefix for every block. The default LZ4 codec
// ignores that prefix and encodes each block standalone.
func compressLinked(c *Context, d *frame.Descriptor) {
	blockMax := d.BlockMaximumSize()
	blockChecksum := d.Flg.BlockChecksum != 0
	streamChecksum := d.Flg.StreamChecksum != 0

	winSize := blockMax + blockcodec.DictSize
	if winSize < minLinkedWindow {
		winSize = minLinkedWindow
	}
	win := make([]byte, winSize)
	dst := make([]byte, blockMax)
	pos := 0

	codec := c.getCodec()
	defer c.putCodec(codec)
	xxhStream := xxhash.NewS32(frame.ChecksumSeed)

	for !c.Failed() && !c.Quitting() {
		// Slide the window: keep the trailing dictionary at the front so
		// the next block still sees its full 64 KiB prefix.
		if pos+blockMax > len(win) {
			copy(win, win[pos-blockcodec.DictSize:pos])
			pos = blockcodec.DictSize
		}

		n := c.read(win[pos : pos+blockMax])
		if n == 0 {
			break
		}
		src := win[pos : pos+n]

		dictStart := pos - blockcodec.DictSize
		if dictStart < 0 {
			dictStart = 0
		}
		cmpSize := codec.CompressLinked(src, dst[:n], win[dictStart:pos])

		incompressible := cmpSize <= 0 || cmpSize >= n
		var blockHeader uint32
		var payload []byte
		if incompressible {
			blockHeader = uint32(n) | frame.IncompressibleBit
			payload = src
		} else {
			blockHeader = uint32(cmpSize)
			payload = dst[:cmpSize]
		}

		if streamChecksum {
			xxhStream.Write(src)
		}
		ok := c.writeU32(blockHeader) && c.writeBin(payload)
		if ok && blockChecksum {
			ok = c.writeU32(xxhash.Checksum32S(payload, frame.ChecksumSeed))
		}
		if !ok {
			c.SetResult(frame.ErrCannotWriteDataBlock)
			return
		}
		pos += n
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

// decompressLinked runs the block-dependent decompression engine for one
// frame. Decoded output stays in a sliding buffer so each block can
// reference the previous 64 KiB; uncompressed blocks are copied into the
// same buffer to keep the prefix contiguous.
func decompressLinked(c *Context, d *frame.Descriptor) {
	blockMax := d.BlockMaximumSize()
	blockChecksum := d.Flg.BlockChecksum != 0
	streamChecksum := d.Flg.StreamChecksum != 0

	dec := make([]byte, blockcodec.DictSize+blockMax)
	src := make([]byte, blockMax)
	pos := 0

	codec := c.getCodec()
	defer c.putCodec(codec)
	xxhStream := xxhash.NewS32(frame.ChecksumSeed)

	for !c.Failed() && !c.Quitting() {
		blockHeader, ok := c.readU32()
		if !ok {
			c.SetResult(frame.ErrCannotReadBlockSize)
			break
		}
		if blockHeader == frame.EOS {
			break
		}

		incompressible := blockHeader&frame.IncompressibleBit != 0
		srcSize := int(blockHeader &^ frame.IncompressibleBit)
		if srcSize > blockMax {
			c.SetResult(frame.ErrInvalidBlockSize)
			break
		}

		if n := c.read(src[:srcSize]); n != srcSize {
			c.SetResult(frame.ErrCannotReadBlockData)
			break
		}
		payload := src[:srcSize]

		var wireSum uint32
		if blockChecksum {
			wireSum, ok = c.readU32()
			if !ok {
				c.SetResult(frame.ErrCannotReadBlockChecksum)
				break
			}
		}

		// Rewind the cursor once the buffer cannot hold a full block,
		// preserving the trailing dictionary.
		if pos+blockMax > len(dec) {
			copy(dec, dec[pos-blockcodec.DictSize:pos])
			pos = blockcodec.DictSize
		}

		var out []byte
		if incompressible {
			copy(dec[pos:], payload)
			out = dec[pos : pos+srcSize]
		} else {
			dictStart := pos - blockcodec.DictSize
			if dictStart < 0 {
				dictStart = 0
			}
			decSize, err := codec.DecompressLinked(payload, dec[pos:pos+blockMax], dec[dictStart:pos])
			if err != nil {
				c.SetResult(frame.ErrDecompressFail)
				break
			}
			out = dec[pos : pos+decSize]
		}

		if blockChecksum {
			if xxhash.Checksum32S(payload, frame.ChecksumSeed) != wireSum {
				c.SetResult(frame.ErrBlockChecksumMismatch)
				break
			}
		}

		if streamChecksum {
			xxhStream.Write(out)
		}
		if !c.writeBin(out) {
			c.SetResult(frame.ErrCannotWriteDecodedBlock)
			break
		}
		pos += len(out)
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
