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
Package blockcodec is the boundary between the frame engines and the raw
LZ4 block codec.

The frame engines never call an LZ4 library directly; they depend on the
Codec interface so the block primitive stays swappable. Compress reports
incompressible input by returning 0; the engines then emit the block
verbatim with the high bit of its header set.

The linked variants carry the preceding uncompressed window (at most
64 KiB) as a prefix dictionary for block-dependent frames.
*/
package blockcodec

// DictSize is the sliding dictionary size for block-dependent frames.
const DictSize = 64 << 10

// HighCompressionLevel is the lowest compression level that selects the
// high-compression encoder.
const HighCompressionLevel = 3

// Codec compresses and decompresses single LZ4 blocks.
type Codec interface {
	// CompressBound returns the worst-case compressed size for n input
	// bytes.
	CompressBound(n int) int

	// Compress encodes src into dst and returns the compressed size.
	// It returns 0 when src does not shrink to under len(dst) bytes.
	Compress(src, dst []byte) int

	// CompressLinked is Compress with dict as the prefix dictionary
	// (the uncompressed bytes immediately preceding src in the stream).
	CompressLinked(src, dst, dict []byte) int

	// Decompress decodes src into dst and returns the decoded size.
	Decompress(src, dst []byte) (int, error)

	// DecompressLinked is Decompress with dict as the prefix dictionary.
	DecompressLinked(src, dst, dict []byte) (int, error)
}
