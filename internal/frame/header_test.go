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
	"bytes"
	"errors"
	"testing"

	"lz4stream/internal/wire"
)

func TestMarshalHeaderDefaults(t *testing.T) {
	d := NewDescriptor()
	hdr := MarshalHeader(&d)

	if len(hdr) != 7 {
		t.Fatalf("header length = %d, want 7", len(hdr))
	}
	if got := wire.LoadU32(hdr); got != Magic {
		t.Errorf("magic = %#x, want %#x", got, Magic)
	}
	if hdr[4] != 0x64 {
		t.Errorf("FLG = %#02x, want 0x64", hdr[4])
	}
	if hdr[5] != 0x70 {
		t.Errorf("BD = %#02x, want 0x70", hdr[5])
	}
	// Canonical default header: 04 22 4D 18 64 70 B9.
	if hdr[6] != 0xB9 {
		t.Errorf("check byte = %#02x, want 0xb9", hdr[6])
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Descriptor)
	}{
		{"defaults", func(*Descriptor) {}},
		{"block checksum", func(d *Descriptor) { d.Flg.BlockChecksum = 1 }},
		{"linked blocks", func(d *Descriptor) { d.Flg.BlockIndependence = 0 }},
		{"64KiB blocks", func(d *Descriptor) { d.Bd.BlockMaximumSize = 4 }},
		{"stream size", func(d *Descriptor) {
			d.Flg.StreamSize = 1
			d.StreamSize = 123456789
		}},
		{"no stream checksum", func(d *Descriptor) { d.Flg.StreamChecksum = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDescriptor()
			tt.mod(&d)
			hdr := MarshalHeader(&d)

			got, err := ReadHeader(bytes.NewReader(hdr[4:]))
			if err != nil {
				t.Fatalf("ReadHeader failed: %v", err)
			}
			if got != d {
				t.Fatalf("round-trip = %+v, want %+v", got, d)
			}

			// Re-emitting the parsed descriptor must reproduce the header
			// bit-exactly.
			if !bytes.Equal(MarshalHeader(&got), hdr) {
				t.Errorf("re-marshal differs from original header")
			}
		})
	}
}

func TestHeaderBitFlipDetected(t *testing.T) {
	d := NewDescriptor()
	d.Flg.StreamSize = 1
	d.StreamSize = 65536
	hdr := MarshalHeader(&d)
	body := hdr[4:]

	// The check byte only carries 8 bits, so a flip in the optional
	// fields is not guaranteed to fail the checksum; what is guaranteed
	// is that a silent parse cannot reproduce the original descriptor.
	for i := 0; i < len(body)-1; i++ {
		for bit := 0; bit < 8; bit++ {
			corrupted := append([]byte(nil), body...)
			corrupted[i] ^= 1 << bit
			got, err := ReadHeader(bytes.NewReader(corrupted))
			if err == nil && got == d {
				t.Fatalf("flip byte %d bit %d not detected", i, bit)
			}
		}
	}

	// A flipped check byte itself always mismatches.
	for bit := 0; bit < 8; bit++ {
		corrupted := append([]byte(nil), body...)
		corrupted[len(corrupted)-1] ^= 1 << bit
		if _, err := ReadHeader(bytes.NewReader(corrupted)); !errors.Is(err, ErrInvalidHeaderChecksum) {
			t.Fatalf("check byte flip bit %d: err = %v, want %v", bit, err, ErrInvalidHeaderChecksum)
		}
	}
}

func TestHeaderValidation(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Descriptor)
		want error
	}{
		{"version 0", func(d *Descriptor) { d.Flg.VersionNumber = 0 }, ErrInvalidVersion},
		{"version 2", func(d *Descriptor) { d.Flg.VersionNumber = 2 }, ErrInvalidVersion},
		{"preset dictionary", func(d *Descriptor) { d.Flg.PresetDictionary = 1 }, ErrPresetDictionary},
		{"reserved1", func(d *Descriptor) { d.Flg.Reserved1 = 1 }, ErrInvalidHeaderReserved1},
		{"reserved2", func(d *Descriptor) { d.Bd.Reserved2 = 1 }, ErrInvalidHeaderReserved2},
		{"reserved3", func(d *Descriptor) { d.Bd.Reserved3 = 5 }, ErrInvalidHeaderReserved3},
		{"block size id 3", func(d *Descriptor) { d.Bd.BlockMaximumSize = 3 }, ErrInvalidBlockMaximumSize},
		{"block size id 0", func(d *Descriptor) { d.Bd.BlockMaximumSize = 0 }, ErrInvalidBlockMaximumSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDescriptor()
			tt.mod(&d)
			if err := d.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate = %v, want %v", err, tt.want)
			}

			// The same rejection must fire when the bytes arrive off the
			// wire, before the checksum is even considered.
			var buf [2]byte
			buf[0] = wire.FlgToByte(d.Flg)
			buf[1] = wire.BdToByte(d.Bd)
			if _, err := ReadHeader(bytes.NewReader(buf[:])); !errors.Is(err, tt.want) {
				t.Errorf("ReadHeader = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHeaderShortRead(t *testing.T) {
	d := NewDescriptor()
	hdr := MarshalHeader(&d)
	for n := 0; n < len(hdr)-4-1; n++ {
		_, err := ReadHeader(bytes.NewReader(hdr[4 : 4+n]))
		if !errors.Is(err, ErrInvalidHeader) {
			t.Errorf("truncated at %d: err = %v, want %v", n, err, ErrInvalidHeader)
		}
	}
}

func TestBlockSize(t *testing.T) {
	want := map[byte]int{4: 64 << 10, 5: 256 << 10, 6: 1 << 20, 7: 4 << 20}
	for id, size := range want {
		if got := BlockSize(id); got != size {
			t.Errorf("BlockSize(%d) = %d, want %d", id, got, size)
		}
	}
}

func TestIsSkippableMagic(t *testing.T) {
	for m := SkippableMagicMin; m <= SkippableMagicMax; m++ {
		if !IsSkippableMagic(m) {
			t.Errorf("IsSkippableMagic(%#x) = false", m)
		}
	}
	if IsSkippableMagic(Magic) || IsSkippableMagic(SkippableMagicMin-1) || IsSkippableMagic(SkippableMagicMax+1) {
		t.Error("non-skippable magic accepted")
	}
}
