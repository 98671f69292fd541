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

package frame

import (
	"io"

	"lz4stream/internal/wire"
)

// MarshalHeader serializes the full frame header, magic included. The
// caller must Validate the descriptor first.
func MarshalHeader(d *Descriptor) []byte {
	buf := make([]byte, 0, MaxHeaderSize)
	var u32 [4]byte
	var u64 [8]byte

	wire.StoreU32(u32[:], Magic)
	buf = append(buf, u32[:]...)

	sumBegin := len(buf)
	buf = append(buf, wire.FlgToByte(d.Flg), wire.BdToByte(d.Bd))
	if d.Flg.StreamSize != 0 {
		wire.StoreU64(u64[:], d.StreamSize)
		buf = append(buf, u64[:]...)
	}
	if d.Flg.PresetDictionary != 0 {
		wire.StoreU32(u32[:], d.DictID)
		buf = append(buf, u32[:]...)
	}
	buf = append(buf, CheckBits(checksum32(buf[sumBegin:])))
	return buf
}

// ReadHeader parses the frame header following the magic number. It reads
// FLG and BD, validates them, then reads the optional fields and the check
// byte. Short reads surface as ErrInvalidHeader; validation failures keep
// their specific kind.
func ReadHeader(r io.Reader) (Descriptor, error) {
	var d Descriptor
	var buf [MaxHeaderSize - 4]byte

	if _, err := io.ReadFull(r, buf[:2]); err != nil {
		return d, ErrInvalidHeader
	}
	d.Flg = wire.ByteToFlg(buf[0])
	d.Bd = wire.ByteToBd(buf[1])
	if err := d.Validate(); err != nil {
		return d, err
	}

	// Optional fields plus the check byte.
	n := 2
	extra := 1
	if d.Flg.StreamSize != 0 {
		extra += 8
	}
	if d.Flg.PresetDictionary != 0 {
		extra += 4
	}
	if _, err := io.ReadFull(r, buf[n:n+extra]); err != nil {
		return d, ErrInvalidHeader
	}
	if d.Flg.StreamSize != 0 {
		d.StreamSize = wire.LoadU64(buf[n:])
		n += 8
	}
	if d.Flg.PresetDictionary != 0 {
		d.DictID = wire.LoadU32(buf[n:])
		n += 4
	}

	if CheckBits(checksum32(buf[:n])) != buf[n] {
		return d, ErrInvalidHeaderChecksum
	}
	return d, nil
}
