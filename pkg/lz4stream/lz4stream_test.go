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

package lz4stream

import (
	"bytes"
	"testing"
)

func TestRoundTripDefaults(t *testing.T) {
	input := bytes.Repeat([]byte("facade round trip "), 50000)

	var compressed bytes.Buffer
	if err := Compress(bytes.NewReader(input), &compressed, Options{}); err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if compressed.Len() >= len(input) {
		t.Fatalf("compressible input grew: %d -> %d", len(input), compressed.Len())
	}

	var out bytes.Buffer
	if err := Decompress(bytes.NewReader(compressed.Bytes()), &out, Options{}); err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if !bytes.Equal(out.Bytes(), input) {
		t.Fatal("round-trip mismatch")
	}
}

func TestRoundTripOptionMatrix(t *testing.T) {
	input := bytes.Repeat([]byte{0xAA}, 150<<10)

	options := []Options{
		{Mode: Sequential},
		{Level: 9},
		{BlockSizeID: BlockMax64KiB, BlockChecksum: true},
		{BlockSizeID: BlockMax256KiB, NoStreamChecksum: true},
		{BlockDependent: true, BlockSizeID: BlockMax64KiB},
		{HasContentSize: true, ContentSize: 150 << 10},
	}
	for i, o := range options {
		var compressed, out bytes.Buffer
		if err := Compress(bytes.NewReader(input), &compressed, o); err != nil {
			t.Fatalf("case %d: Compress failed: %v", i, err)
		}
		if err := Decompress(bytes.NewReader(compressed.Bytes()), &out, o); err != nil {
			t.Fatalf("case %d: Decompress failed: %v", i, err)
		}
		if !bytes.Equal(out.Bytes(), input) {
			t.Fatalf("case %d: round-trip mismatch", i)
		}
	}
}

func TestOptionsDescriptor(t *testing.T) {
	d := Options{}.Descriptor()
	if d.Bd.BlockMaximumSize != 7 || d.Flg.StreamChecksum != 1 || d.Flg.BlockIndependence != 1 {
		t.Errorf("zero options descriptor = %+v", d)
	}

	d = Options{
		BlockSizeID:      BlockMax64KiB,
		BlockChecksum:    true,
		NoStreamChecksum: true,
		BlockDependent:   true,
		HasContentSize:   true,
		ContentSize:      42,
	}.Descriptor()
	if d.Bd.BlockMaximumSize != 4 {
		t.Errorf("block size id = %d, want 4", d.Bd.BlockMaximumSize)
	}
	if d.Flg.BlockChecksum != 1 || d.Flg.StreamChecksum != 0 || d.Flg.BlockIndependence != 0 {
		t.Errorf("flags = %+v", d.Flg)
	}
	if d.Flg.StreamSize != 1 || d.StreamSize != 42 {
		t.Errorf("stream size not applied: %+v", d)
	}
}
