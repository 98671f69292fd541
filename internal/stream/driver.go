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

import "lz4stream/internal/frame"

// Compress encodes the context's source into one LZ4 frame described by
// d: header, blocks through the engine selected by BlockIndependence,
// EOS, optional stream checksum.
func Compress(c *Context, d frame.Descriptor) error {
	if err := d.Validate(); err != nil {
		return c.SetResult(err)
	}

	if !c.writeBin(frame.MarshalHeader(&d)) {
		return c.SetResult(frame.ErrCannotWriteHeader)
	}

	if d.Flg.BlockIndependence != 0 {
		compressBlocks(c, &d)
	} else {
		compressLinked(c, &d)
	}
	return c.Err()
}

// Decompress decodes every LZ4 frame in the context's source, skipping
// skippable frames in between. It stops successfully at end of stream, or
// at a foreign magic number once at least one frame has been decoded (the
// four bytes are rewound so the caller can continue with them). The last
// frame's descriptor is stored in *d.
func Decompress(c *Context, d *frame.Descriptor) error {
	frames := 0

	for !c.Failed() && !c.Quitting() && !c.src.EOF() {
		magic, ok := c.readU32()
		if !ok {
			if c.src.EOF() {
				// A frame boundary is where the stream may simply end.
				c.SetResult(nil)
			} else {
				c.SetResult(frame.ErrInvalidHeader)
			}
			break
		}

		if frame.IsSkippableMagic(magic) {
			size, ok := c.readU32()
			if !ok {
				c.SetResult(frame.ErrSkippableSizeUnreadable)
				break
			}
			if err := c.src.SkipSkippable(magic, size); err != nil {
				c.SetResult(frame.ErrCannotSkipArea)
				break
			}
			continue
		}

		if magic != frame.Magic {
			if err := c.src.Seek(-4); err != nil {
				c.SetResult(frame.ErrInvalidMagicNumber)
				break
			}
			if frames == 0 {
				c.SetResult(frame.ErrInvalidMagicNumber)
			}
			// With at least one frame decoded this is a concatenation
			// boundary owned by the caller.
			break
		}

		parsed, err := frame.ReadHeader(c.src)
		if err != nil {
			c.SetResult(err)
			break
		}
		*d = parsed

		if parsed.Flg.BlockIndependence != 0 {
			decompressBlocks(c, &parsed)
		} else {
			decompressLinked(c, &parsed)
		}
		if c.Failed() {
			break
		}
		frames++
	}

	return c.Err()
}
