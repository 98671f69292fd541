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
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{ErrGeneric, 1},
		{errors.New("unrelated"), 1},
		{ErrInvalidMagicNumber, 44},
		{ErrInvalidHeaderChecksum, 69},
		{ErrBlockChecksumMismatch, 75},
		{ErrStreamChecksumMismatch, 75},
		{ErrDecompressFail, 77},
		{ErrInvalidBlockSize, 72},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestExitCodeWrapped(t *testing.T) {
	wrapped := fmt.Errorf("while decoding: %w", ErrCannotReadBlockData)
	if got := ExitCode(wrapped); got != 73 {
		t.Errorf("ExitCode(wrapped) = %d, want 73", got)
	}
}
