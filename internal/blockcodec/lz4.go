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

package blockcodec

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// LZ4 is the default Codec, backed by github.com/pierrec/lz4. Levels at or
// above HighCompressionLevel use the high-compression encoder.
//
// An LZ4 value is not safe for concurrent use; the stream context keeps a
// pool of them and lends each task its own.
type LZ4 struct {
	level int
	fast  lz4.Compressor
	hc    lz4.CompressorHC
}

// NewLZ4 returns a block codec for the given compression level.
func NewLZ4(level int) *LZ4 {
	c := &LZ4{level: level}
	if level >= HighCompressionLevel {
		// pierrec levels are powers of two of the search depth; clamp the
		// lz4hc-style 3..12 scale onto them.
		hcLevel := lz4.Level1 << (uint(level) - 1)
		if hcLevel > lz4.Level9 {
			hcLevel = lz4.Level9
		}
		c.hc.Level = hcLevel
	}
	return c
}

// CompressBound returns the worst-case compressed size for n input bytes.
func (c *LZ4) CompressBound(n int) int {
	return lz4.CompressBlockBound(n)
}

// Compress encodes src into dst, returning 0 when the block does not
// shrink below len(dst).
func (c *LZ4) Compress(src, dst []byte) int {
	var n int
	var err error
	if c.level >= HighCompressionLevel {
		n, err = c.hc.CompressBlock(src, dst)
	} else {
		n, err = c.fast.CompressBlock(src, dst)
	}
	if err != nil || n <= 0 {
		// Does not fit in dst: incompressible at this bound.
		return 0
	}
	return n
}

// CompressLinked encodes src against a prefix dictionary. The underlying
// library exposes no dictionary-aware block compressor, so the block is
// encoded standalone; that is a valid (if less dense) block-dependent
// stream, because dictionary references are optional for an encoder.
func (c *LZ4) CompressLinked(src, dst, dict []byte) int {
	_ = dict
	return c.Compress(src, dst)
}

// Decompress decodes a standalone block.
func (c *LZ4) Decompress(src, dst []byte) (int, error) {
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return 0, fmt.Errorf("lz4 block: %w", err)
	}
	return n, nil
}

// DecompressLinked decodes a block whose matches may reach back into dict,
// the uncompressed bytes immediately preceding the block.
func (c *LZ4) DecompressLinked(src, dst, dict []byte) (int, error) {
	n, err := lz4.UncompressBlockWithDict(src, dst, dict)
	if err != nil {
		return 0, fmt.Errorf("lz4 linked block: %w", err)
	}
	return n, nil
}
