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
	"bytes"
	"math/rand"
	"testing"

	"lz4stream/internal/frame"
	"lz4stream/internal/wire"
)

func compressBytes(t *testing.T, input []byte, d frame.Descriptor, cfg Config) []byte {
	t.Helper()
	var out bytes.Buffer
	c := newTestContext(input, &out, cfg)
	if err := Compress(c, d); err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	return out.Bytes()
}

func decompressBytes(input []byte, cfg Config) ([]byte, error) {
	var out bytes.Buffer
	c := newTestContext(input, &out, cfg)
	var d frame.Descriptor
	err := Decompress(c, &d)
	return out.Bytes(), err
}

// appendU32 appends v little-endian, the way every u32 goes on the wire.
func appendU32(p []byte, v uint32) []byte {
	var buf [4]byte
	wire.StoreU32(buf[:], v)
	return append(p, buf[:]...)
}

func TestCompressEmptyInput(t *testing.T) {
	d := frame.NewDescriptor()
	got := compressBytes(t, nil, d, Config{Mode: Sequential})

	var want []byte
	want = append(want, 0x04, 0x22, 0x4D, 0x18, 0x64, 0x70, 0xB9)
	want = appendU32(want, frame.EOS)
	want = appendU32(want, 0x02CC5D05) // XXH32 of nothing, seed 0
	if !bytes.Equal(got, want) {
		t.Fatalf("empty input wire:\n got  % X\n want % X", got, want)
	}

	out, err := decompressBytes(got, Config{Mode: Sequential})
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("empty frame decoded to %d bytes", len(out))
	}
}

func TestCompressHello(t *testing.T) {
	// Five bytes cannot shrink, so the block goes out verbatim with the
	// incompressible marker.
	d := frame.NewDescriptor()
	got := compressBytes(t, []byte("hello"), d, Config{Mode: Sequential})

	var want []byte
	want = append(want, 0x04, 0x22, 0x4D, 0x18, 0x64, 0x70, 0xB9)
	want = appendU32(want, 5|frame.IncompressibleBit)
	want = append(want, "hello"...)
	want = appendU32(want, frame.EOS)
	want = appendU32(want, 0xFB0077F9) // XXH32 of "hello", seed 0
	if !bytes.Equal(got, want) {
		t.Fatalf("hello wire:\n got  % X\n want % X", got, want)
	}
}

func TestBlockCount(t *testing.T) {
	d := frame.NewDescriptor()
	d.Bd.BlockMaximumSize = 4 // 64 KiB
	const blockMax = 64 << 10

	tests := []struct {
		inputLen int
		want     int
	}{
		{0, 0},
		{1, 1},
		{blockMax - 1, 1},
		{blockMax, 1},
		{blockMax + 1, 2},
		{2 * blockMax, 2},
		{2*blockMax + 17, 3},
	}
	rng := rand.New(rand.NewSource(7))
	for _, tt := range tests {
		input := make([]byte, tt.inputLen)
		rng.Read(input)
		wireBytes := compressBytes(t, input, d, Config{Mode: Sequential})

		// Walk the block records between header and EOS.
		p := wireBytes[7:]
		blocks := 0
		for {
			bh := wire.LoadU32(p)
			p = p[4:]
			if bh == frame.EOS {
				break
			}
			size := int(bh &^ frame.IncompressibleBit)
			if size > blockMax {
				t.Fatalf("len %d: block payload %d exceeds maximum", tt.inputLen, size)
			}
			p = p[size:]
			blocks++
		}
		if blocks != tt.want {
			t.Errorf("len %d: %d blocks, want %d", tt.inputLen, blocks, tt.want)
		}
	}
}

func TestIncompressibleBlockWire(t *testing.T) {
	d := frame.NewDescriptor()
	d.Bd.BlockMaximumSize = 4
	rng := rand.New(rand.NewSource(11))
	input := make([]byte, 64<<10)
	rng.Read(input)

	wireBytes := compressBytes(t, input, d, Config{Mode: Sequential})
	bh := wire.LoadU32(wireBytes[7:])
	if bh&frame.IncompressibleBit == 0 {
		t.Fatal("random block not marked incompressible")
	}
	if size := int(bh &^ frame.IncompressibleBit); size != len(input) {
		t.Fatalf("incompressible payload length = %d, want %d", size, len(input))
	}
	if !bytes.Equal(wireBytes[11:11+len(input)], input) {
		t.Fatal("incompressible payload altered")
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	// The ordering barrier must make the parallel wire byte-identical to
	// the sequential one.
	rng := rand.New(rand.NewSource(3))
	input := make([]byte, 1<<20+12345)
	rng.Read(input)
	// Mix in compressible stretches so both block kinds appear.
	copy(input[100<<10:], bytes.Repeat([]byte("pattern!"), 8<<10))

	for _, blockID := range []byte{4, 5} {
		for _, blockSum := range []bool{false, true} {
			d := frame.NewDescriptor()
			d.Bd.BlockMaximumSize = blockID
			if blockSum {
				d.Flg.BlockChecksum = 1
			}

			seq := compressBytes(t, input, d, Config{Mode: Sequential})
			par := compressBytes(t, input, d, Config{Mode: Parallel, Concurrency: 4})
			if !bytes.Equal(seq, par) {
				t.Fatalf("blockID=%d blockSum=%v: parallel wire differs from sequential", blockID, blockSum)
			}
		}
	}
}

func TestRoundTripMatrix(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	random := make([]byte, 300<<10)
	rng.Read(random)

	inputs := map[string][]byte{
		"empty":       nil,
		"hello":       []byte("hello"),
		"zeros":       make([]byte, 2*(64<<10)), // scenario: two full 64 KiB blocks
		"random":      random,
		"exact-block": bytes.Repeat([]byte{0xAA}, 2*(64<<10)),
	}

	for name, input := range inputs {
		for _, mode := range []Mode{Sequential, Parallel} {
			for _, blockSum := range []bool{false, true} {
				d := frame.NewDescriptor()
				d.Bd.BlockMaximumSize = 4
				if blockSum {
					d.Flg.BlockChecksum = 1
				}
				cfg := Config{Mode: mode, Concurrency: 3}

				wireBytes := compressBytes(t, input, d, cfg)
				out, err := decompressBytes(wireBytes, cfg)
				if err != nil {
					t.Fatalf("%s mode=%v blockSum=%v: decompress failed: %v", name, mode, blockSum, err)
				}
				if !bytes.Equal(out, input) {
					t.Fatalf("%s mode=%v blockSum=%v: round-trip mismatch (%d vs %d bytes)", name, mode, blockSum, len(out), len(input))
				}
			}
		}
	}
}

func TestCompressRejectsBadDescriptor(t *testing.T) {
	d := frame.NewDescriptor()
	d.Bd.BlockMaximumSize = 2
	var out bytes.Buffer
	c := newTestContext(nil, &out, Config{})
	if err := Compress(c, d); err != frame.ErrInvalidBlockMaximumSize {
		t.Fatalf("err = %v, want %v", err, frame.ErrInvalidBlockMaximumSize)
	}
	if out.Len() != 0 {
		t.Fatal("bytes written despite invalid descriptor")
	}
}

func TestCompressWithContentSize(t *testing.T) {
	input := bytes.Repeat([]byte("size"), 1024)
	d := frame.NewDescriptor()
	d.Flg.StreamSize = 1
	d.StreamSize = uint64(len(input))

	wireBytes := compressBytes(t, input, d, Config{Mode: Sequential})

	var outBuf bytes.Buffer
	c := newTestContext(wireBytes, &outBuf, Config{Mode: Sequential})
	var parsed frame.Descriptor
	if err := Decompress(c, &parsed); err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if parsed.Flg.StreamSize != 1 || parsed.StreamSize != uint64(len(input)) {
		t.Fatalf("stream size not carried: %+v", parsed)
	}
	if !bytes.Equal(outBuf.Bytes(), input) {
		t.Fatal("round-trip mismatch")
	}
}
