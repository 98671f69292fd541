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

import "errors"

// Error kinds surfaced by the codec. ErrGeneric is the placeholder set by
// low-level read/write helpers; callers upgrade it to a specific kind, and
// the context latch refuses to overwrite a specific kind once set.
var (
	ErrGeneric                 = errors.New("lz4stream: error")
	ErrInvalidMagicNumber      = errors.New("lz4stream: invalid magic number")
	ErrInvalidHeader           = errors.New("lz4stream: invalid header")
	ErrPresetDictionary        = errors.New("lz4stream: preset dictionary is not supported")
	ErrInvalidVersion          = errors.New("lz4stream: invalid version number")
	ErrInvalidHeaderChecksum   = errors.New("lz4stream: invalid header checksum")
	ErrInvalidBlockMaximumSize = errors.New("lz4stream: invalid block maximum size")
	ErrInvalidHeaderReserved1  = errors.New("lz4stream: reserved bit 1 is set")
	ErrInvalidHeaderReserved2  = errors.New("lz4stream: reserved bit 2 is set")
	ErrInvalidHeaderReserved3  = errors.New("lz4stream: reserved bits 3 are set")
	ErrInvalidBlockSize        = errors.New("lz4stream: block size exceeds block maximum size")

	ErrCannotWriteHeader         = errors.New("lz4stream: cannot write header")
	ErrCannotWriteEos            = errors.New("lz4stream: cannot write EOS")
	ErrCannotWriteStreamChecksum = errors.New("lz4stream: cannot write stream checksum")
	ErrCannotWriteDataBlock      = errors.New("lz4stream: cannot write data block")
	ErrCannotWriteDecodedBlock   = errors.New("lz4stream: cannot write decoded block")

	ErrCannotReadBlockSize      = errors.New("lz4stream: cannot read block size")
	ErrCannotReadBlockData      = errors.New("lz4stream: cannot read block data")
	ErrCannotReadBlockChecksum  = errors.New("lz4stream: cannot read block checksum")
	ErrCannotReadStreamChecksum = errors.New("lz4stream: cannot read stream checksum")

	ErrBlockChecksumMismatch  = errors.New("lz4stream: block checksum mismatch")
	ErrStreamChecksumMismatch = errors.New("lz4stream: stream checksum mismatch")
	ErrDecompressFail         = errors.New("lz4stream: block decompression failed")

	ErrSkippableSizeUnreadable = errors.New("lz4stream: cannot read skippable frame size")
	ErrCannotSkipArea          = errors.New("lz4stream: cannot skip skippable area")
)

// exitCodes maps error kinds onto the exit codes the classic lz4c tool
// uses for the matching failures, so scripts keep working.
var exitCodes = map[error]int{
	ErrInvalidMagicNumber:        44,
	ErrSkippableSizeUnreadable:   42,
	ErrCannotSkipArea:            43,
	ErrCannotWriteHeader:         32,
	ErrCannotWriteEos:            37,
	ErrCannotWriteStreamChecksum: 37,
	ErrInvalidHeader:             61,
	ErrInvalidVersion:            62,
	ErrInvalidHeaderReserved1:    65,
	ErrPresetDictionary:          66,
	ErrInvalidHeaderReserved2:    67,
	ErrInvalidHeaderReserved3:    67,
	ErrInvalidBlockMaximumSize:   68,
	ErrInvalidHeaderChecksum:     69,
	ErrCannotReadBlockSize:       71,
	ErrInvalidBlockSize:          72,
	ErrCannotReadBlockData:       73,
	ErrCannotReadBlockChecksum:   74,
	ErrCannotReadStreamChecksum:  74,
	ErrBlockChecksumMismatch:     75,
	ErrStreamChecksumMismatch:    75,
	ErrCannotWriteDataBlock:      76,
	ErrDecompressFail:            77,
	ErrCannotWriteDecodedBlock:   78,
}

// ExitCode returns the process exit code for err: 0 for nil, the lz4c
// code for a known kind, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	for kind, code := range exitCodes {
		if errors.Is(err, kind) {
			return code
		}
	}
	return 1
}
