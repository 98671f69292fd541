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
Package frame defines the LZ4 frame wire entities: magic numbers, the
stream descriptor with its validation rules, the frame header codec, and
the error kinds surfaced by the stream engines.

FRAME LAYOUT:
=============

	[4 bytes]  magic 0x184D2204
	[1 byte]   FLG
	[1 byte]   BD
	[8 bytes]  stream size        (iff FLG.streamSize)
	[4 bytes]  dictionary id      (iff FLG.presetDictionary)
	[1 byte]   header check byte  (bits 8..15 of XXH32(FLG..last optional))
	blocks...                     (u32 header, payload, optional u32 check)
	[4 bytes]  EOS (0)
	[4 bytes]  stream checksum    (iff FLG.streamChecksum)

Skippable frames (magic 0x184D2A50..0x184D2A5F, u32 size, size opaque
bytes) may appear between LZ4 frames.
*/
package frame

import (
	"github.com/OneOfOne/xxhash"

	"lz4stream/internal/wire"
)

// Frame constants.
const (
	Magic             uint32 = 0x184D2204
	SkippableMagicMin uint32 = 0x184D2A50
	SkippableMagicMax uint32 = 0x184D2A5F
	EOS               uint32 = 0

	// IncompressibleBit marks a block stored uncompressed; the low 31
	// bits of the block header carry the payload length.
	IncompressibleBit uint32 = 1 << 31

	// ChecksumSeed is the XXH32 seed for every frame checksum.
	ChecksumSeed uint32 = 0

	// MaxHeaderSize is magic + FLG + BD + streamSize + dictId + check byte.
	MaxHeaderSize = 4 + 2 + 8 + 4 + 1

	// DefaultBlockSizeID selects 4 MiB blocks.
	DefaultBlockSizeID = 7
)

// BlockSize returns the block maximum size in bytes for a BD size id.
// Valid ids are 4 (64 KiB) through 7 (4 MiB).
func BlockSize(id byte) int {
	return 1 << (8 + 2*uint(id))
}

// IsSkippableMagic reports whether magic identifies a skippable frame.
func IsSkippableMagic(magic uint32) bool {
	return magic >= SkippableMagicMin && magic <= SkippableMagicMax
}

// CheckBits extracts the header check byte from an XXH32 digest.
func CheckBits(xxh uint32) byte {
	return byte(xxh >> 8)
}

// Descriptor is the stream descriptor carried in the frame header.
type Descriptor struct {
	Flg        wire.Flg
	Bd         wire.Bd
	StreamSize uint64
	DictID     uint32
}

// NewDescriptor returns a descriptor with the default settings: version 1,
// independent blocks, stream checksum on, 4 MiB blocks.
func NewDescriptor() Descriptor {
	return Descriptor{
		Flg: wire.Flg{
			StreamChecksum:    1,
			BlockIndependence: 1,
			VersionNumber:     1,
		},
		Bd: wire.Bd{BlockMaximumSize: DefaultBlockSizeID},
	}
}

// BlockMaximumSize returns the descriptor's block maximum size in bytes.
func (d *Descriptor) BlockMaximumSize() int {
	return BlockSize(d.Bd.BlockMaximumSize)
}

// Validate checks the descriptor against the frame format rules. It is
// applied both before emitting a header and after parsing one, so reserved
// bits are rejected symmetrically.
func (d *Descriptor) Validate() error {
	if d.Flg.VersionNumber != 1 {
		return ErrInvalidVersion
	}
	if d.Flg.PresetDictionary != 0 {
		return ErrPresetDictionary
	}
	if d.Flg.Reserved1 != 0 {
		return ErrInvalidHeaderReserved1
	}
	if d.Bd.BlockMaximumSize < 4 || d.Bd.BlockMaximumSize > 7 {
		return ErrInvalidBlockMaximumSize
	}
	if d.Bd.Reserved3 != 0 {
		return ErrInvalidHeaderReserved3
	}
	if d.Bd.Reserved2 != 0 {
		return ErrInvalidHeaderReserved2
	}
	return nil
}

// checksum32 is a convenience for one-shot XXH32 with the frame seed.
func checksum32(p []byte) uint32 {
	return xxhash.Checksum32S(p, ChecksumSeed)
}
