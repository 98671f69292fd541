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
Package wire implements the byte-level codec for the LZ4 frame format.

All multi-byte integers on the wire are little-endian. The two packed
descriptor bytes have the following layout:

FLG BYTE LAYOUT:
================

	bit 0    presetDictionary
	bit 1    reserved1 (must be 0)
	bit 2    streamChecksum
	bit 3    streamSize
	bit 4    blockChecksum
	bit 5    blockIndependence
	bit 6-7  versionNumber (must be 1)

BD BYTE LAYOUT:
===============

	bit 0-3  reserved3 (must be 0)
	bit 4-6  blockMaximumSize (valid ids 4..7)
	bit 7    reserved2 (must be 0)

Reserved bits round-trip exactly so that validation can reject them with
a precise error rather than silently dropping them.
*/
package wire

import "encoding/binary"

// Flg is the unpacked FLG descriptor byte.
type Flg struct {
	PresetDictionary  byte
	Reserved1         byte
	StreamChecksum    byte
	StreamSize        byte
	BlockChecksum     byte
	BlockIndependence byte
	VersionNumber     byte
}

// Bd is the unpacked BD descriptor byte.
type Bd struct {
	Reserved3        byte
	BlockMaximumSize byte
	Reserved2        byte
}

// StoreU32 writes v little-endian into p and returns the number of
// bytes written.
func StoreU32(p []byte, v uint32) int {
	binary.LittleEndian.PutUint32(p, v)
	return 4
}

// StoreU64 writes v little-endian into p and returns the number of
// bytes written.
func StoreU64(p []byte, v uint64) int {
	binary.LittleEndian.PutUint64(p, v)
	return 8
}

// LoadU32 reads a little-endian uint32 from p.
func LoadU32(p []byte) uint32 {
	return binary.LittleEndian.Uint32(p)
}

// LoadU64 reads a little-endian uint64 from p.
func LoadU64(p []byte) uint64 {
	return binary.LittleEndian.Uint64(p)
}

// FlgToByte packs f into its wire representation.
func FlgToByte(f Flg) byte {
	return (f.PresetDictionary&1)<<0 |
		(f.Reserved1&1)<<1 |
		(f.StreamChecksum&1)<<2 |
		(f.StreamSize&1)<<3 |
		(f.BlockChecksum&1)<<4 |
		(f.BlockIndependence&1)<<5 |
		(f.VersionNumber&3)<<6
}

// ByteToFlg unpacks a wire FLG byte.
func ByteToFlg(c byte) Flg {
	return Flg{
		PresetDictionary:  (c >> 0) & 1,
		Reserved1:         (c >> 1) & 1,
		StreamChecksum:    (c >> 2) & 1,
		StreamSize:        (c >> 3) & 1,
		BlockChecksum:     (c >> 4) & 1,
		BlockIndependence: (c >> 5) & 1,
		VersionNumber:     (c >> 6) & 3,
	}
}

// BdToByte packs b into its wire representation.
func BdToByte(b Bd) byte {
	return (b.Reserved3&15)<<0 |
		(b.BlockMaximumSize&7)<<4 |
		(b.Reserved2&1)<<7
}

// ByteToBd unpacks a wire BD byte.
func ByteToBd(c byte) Bd {
	return Bd{
		Reserved3:        (c >> 0) & 15,
		BlockMaximumSize: (c >> 4) & 7,
		Reserved2:        (c >> 7) & 1,
	}
}
