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

package wire

import (
	"bytes"
	"testing"
)

func TestStoreLoadU32(t *testing.T) {
	buf := make([]byte, 4)
	n := StoreU32(buf, 0x184D2204)
	if n != 4 {
		t.Fatalf("StoreU32 wrote %d bytes, want 4", n)
	}
	want := []byte{0x04, 0x22, 0x4D, 0x18}
	if !bytes.Equal(buf, want) {
		t.Errorf("StoreU32 = % X, want % X", buf, want)
	}
	if v := LoadU32(buf); v != 0x184D2204 {
		t.Errorf("LoadU32 = %#x, want 0x184d2204", v)
	}
}

func TestStoreLoadU64(t *testing.T) {
	buf := make([]byte, 8)
	n := StoreU64(buf, 0x0102030405060708)
	if n != 8 {
		t.Fatalf("StoreU64 wrote %d bytes, want 8", n)
	}
	want := []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(buf, want) {
		t.Errorf("StoreU64 = % X, want % X", buf, want)
	}
	if v := LoadU64(buf); v != 0x0102030405060708 {
		t.Errorf("LoadU64 = %#x", v)
	}
}

func TestFlgPacking(t *testing.T) {
	tests := []struct {
		name string
		flg  Flg
		want byte
	}{
		{
			name: "defaults",
			flg:  Flg{StreamChecksum: 1, BlockIndependence: 1, VersionNumber: 1},
			want: 0x64,
		},
		{
			name: "block checksum",
			flg:  Flg{BlockChecksum: 1, BlockIndependence: 1, VersionNumber: 1},
			want: 0x70,
		},
		{
			name: "stream size",
			flg:  Flg{StreamSize: 1, StreamChecksum: 1, BlockIndependence: 1, VersionNumber: 1},
			want: 0x6C,
		},
		{
			name: "linked blocks",
			flg:  Flg{StreamChecksum: 1, VersionNumber: 1},
			want: 0x44,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FlgToByte(tt.flg)
			if got != tt.want {
				t.Errorf("FlgToByte = %#02x, want %#02x", got, tt.want)
			}
			if back := ByteToFlg(got); back != tt.flg {
				t.Errorf("ByteToFlg round-trip = %+v, want %+v", back, tt.flg)
			}
		})
	}
}

func TestBdPacking(t *testing.T) {
	for id := byte(0); id <= 7; id++ {
		bd := Bd{BlockMaximumSize: id}
		c := BdToByte(bd)
		if c != id<<4 {
			t.Errorf("BdToByte(id=%d) = %#02x, want %#02x", id, c, id<<4)
		}
		if back := ByteToBd(c); back != bd {
			t.Errorf("ByteToBd round-trip = %+v, want %+v", back, bd)
		}
	}
}

func TestReservedBitsRoundTrip(t *testing.T) {
	// Every bit pattern must survive pack/unpack unchanged, including
	// reserved bits, so validation can see exactly what was on the wire.
	for c := 0; c < 256; c++ {
		if got := FlgToByte(ByteToFlg(byte(c))); got != byte(c) {
			t.Fatalf("FLG %#02x round-tripped to %#02x", c, got)
		}
		if got := BdToByte(ByteToBd(byte(c))); got != byte(c) {
			t.Fatalf("BD %#02x round-tripped to %#02x", c, got)
		}
	}
}
