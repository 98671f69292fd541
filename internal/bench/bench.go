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
Package bench measures in-memory frame compression and decompression
throughput over a set of input files.

Each file is loaded fully, compressed and decompressed for a number of
iterations, and the best time of each direction is reported, along with
the compression ratio. The decoded output is checked against the input
byte for byte before any number is printed.
*/
package bench

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"lz4stream/internal/logging"
	"lz4stream/pkg/lz4stream"
)

// ANSI color codes for terminal output.
const (
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorBold  = "\033[1m"
	colorDim   = "\033[2m"
	colorReset = "\033[0m"
)

// Result holds the measured numbers for one input file.
type Result struct {
	RunID          string  `json:"run_id"`
	File           string  `json:"file"`
	InputBytes     int     `json:"input_bytes"`
	OutputBytes    int     `json:"output_bytes"`
	Ratio          float64 `json:"ratio_percent"`
	CompressMBps   float64 `json:"compress_mib_per_sec"`
	DecompressMBps float64 `json:"decompress_mib_per_sec"`
}

// Runner drives benchmark runs.
type Runner struct {
	Iterations int
	Options    lz4stream.Options
	Out        io.Writer
	logger     *logging.Logger
}

// NewRunner returns a runner with the given per-call options.
func NewRunner(opts lz4stream.Options, iterations int) *Runner {
	if iterations <= 0 {
		iterations = 3
	}
	return &Runner{
		Iterations: iterations,
		Options:    opts,
		Out:        os.Stderr,
		logger:     logging.New("bench"),
	}
}

// Run benchmarks every file and prints a result line per file. It returns
// the collected results; a file that fails to load or verify is skipped
// with a logged error.
func (r *Runner) Run(files []string) []Result {
	runID := uuid.New().String()
	results := make([]Result, 0, len(files))

	fmt.Fprintf(r.Out, "%srun %s · %d iteration(s)%s\n", colorDim, runID, r.Iterations, colorReset)

	for _, file := range files {
		input, err := os.ReadFile(file)
		if err != nil {
			r.logger.Error("cannot read input", "file", file, "error", err)
			continue
		}

		res, err := r.measure(input)
		if err != nil {
			r.logger.Error("benchmark failed", "file", file, "error", err)
			continue
		}
		res.RunID = runID
		res.File = file
		results = append(results, res)

		fmt.Fprintf(r.Out, "%s%-24s%s %10d -> %10d (%s%6.2f%%%s), %s%7.1f MiB/s, %7.1f MiB/s%s\n",
			colorBold, file, colorReset,
			res.InputBytes, res.OutputBytes,
			colorCyan, res.Ratio, colorReset,
			colorGreen, res.CompressMBps, res.DecompressMBps, colorReset)
	}

	return results
}

// measure runs the timed loops for one in-memory input.
func (r *Runner) measure(input []byte) (Result, error) {
	var compressed bytes.Buffer

	bestCompress := time.Duration(0)
	for i := 0; i < r.Iterations; i++ {
		compressed.Reset()
		start := time.Now()
		if err := lz4stream.Compress(bytes.NewReader(input), &compressed, r.Options); err != nil {
			return Result{}, fmt.Errorf("compress: %w", err)
		}
		if d := time.Since(start); bestCompress == 0 || d < bestCompress {
			bestCompress = d
		}
	}

	var decoded bytes.Buffer
	bestDecompress := time.Duration(0)
	for i := 0; i < r.Iterations; i++ {
		decoded.Reset()
		start := time.Now()
		if err := lz4stream.Decompress(bytes.NewReader(compressed.Bytes()), &decoded, r.Options); err != nil {
			return Result{}, fmt.Errorf("decompress: %w", err)
		}
		if d := time.Since(start); bestDecompress == 0 || d < bestDecompress {
			bestDecompress = d
		}
	}

	if !bytes.Equal(decoded.Bytes(), input) {
		return Result{}, fmt.Errorf("round-trip verification failed (%d -> %d bytes)", len(input), decoded.Len())
	}

	mib := float64(len(input)) / (1 << 20)
	res := Result{
		InputBytes:     len(input),
		OutputBytes:    compressed.Len(),
		CompressMBps:   mib / bestCompress.Seconds(),
		DecompressMBps: mib / bestDecompress.Seconds(),
	}
	if len(input) > 0 {
		res.Ratio = float64(compressed.Len()) * 100 / float64(len(input))
	}
	return res, nil
}
