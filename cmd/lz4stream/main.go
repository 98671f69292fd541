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
lz4stream - multi-threaded LZ4 frame compressor / decompressor.

USAGE:
======

	lz4stream [switch...] <input> [output]

SWITCHES:
=========

	-c0/-c   Compress, fast (default)
	-c1/-hc  Compress, high compression
	-d       Decompress
	-s       Sequential mode
	-m       Parallel mode (default)
	-B4..B7  Block maximum size: 64 KiB .. 4 MiB (default: 7)
	-BD      Block-dependent (linked) blocks
	-x       Enable block checksums (default: disabled)
	-nx      Disable stream checksum (default: enabled)
	-Sx      Record the input size in the frame header (files only)
	-mm      Read the input through a memory map (files only)
	-y       Overwrite the output file without prompting
	-b       Benchmark the input files
	-i#      Benchmark iterations [1-9] (default: 3)
	-v       Verbose logging
	-h       Help

"stdin" and "stdout" name the standard streams; "null" as output
discards everything. Without an output name, compression appends ".lz4"
to the input name.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"lz4stream/internal/banner"
	"lz4stream/internal/bench"
	"lz4stream/internal/config"
	"lz4stream/internal/frame"
	"lz4stream/internal/ioadapter"
	"lz4stream/internal/logging"
	"lz4stream/internal/stream"
	"lz4stream/pkg/lz4stream"
)

const lz4Extension = ".lz4"

type action int

const (
	actCompress action = iota
	actDecompress
	actBenchmark
)

func usage() {
	fmt.Fprint(os.Stderr, `usage:
  lz4stream [switch...] <input> [output]
switch:
  -c0/-c  : Compress, fast (default)
  -c1/-hc : Compress, high compression
  -d      : Decompress
  -s      : Sequential mode
  -m      : Parallel mode (default)
  -B#     : Block size [4-7] (default: 7)
  -BD     : Block-dependent (linked) blocks
  -x      : Enable block checksum (default: disabled)
  -nx     : Disable stream checksum (default: enabled)
  -Sx     : Record input size in the frame header
  -mm     : Memory-map the input file
  -y      : Overwrite output without prompting
  -b      : Benchmark mode
  -i#     : Benchmark iterations [1-9] (default: 3)
  -v      : Verbose logging
  -h      : Help
input     : a filename, or 'stdin'
output    : a filename, 'stdout' or 'null'
`)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := logging.New("lz4stream")
	cfg := config.LoadFromEnv()

	act := actCompress
	overwrite := false
	recordSize := false
	iterations := 3
	var names []string

	for _, a := range args {
		switch a {
		case "-c0", "-c":
			act = actCompress
			if cfg.Level >= 3 {
				cfg.Level = 0
			}
		case "-c1", "-hc":
			act = actCompress
			cfg.Level = 9
		case "-d":
			act = actDecompress
		case "-b":
			act = actBenchmark
		case "-s":
			cfg.Mode = "sequential"
		case "-m":
			cfg.Mode = "parallel"
		case "-B4", "-B5", "-B6", "-B7":
			cfg.BlockSizeID = int(a[2] - '0')
		case "-BD":
			cfg.BlockDependent = true
		case "-x":
			cfg.BlockChecksum = true
		case "-nx":
			cfg.StreamChecksum = false
		case "-Sx":
			recordSize = true
		case "-mm":
			cfg.Mmap = true
		case "-y":
			overwrite = true
		case "-v":
			cfg.LogLevel = "debug"
		case "-h", "-H", "--help":
			usage()
			return 1
		default:
			if strings.HasPrefix(a, "-i") && len(a) == 3 && a[2] >= '1' && a[2] <= '9' {
				iterations = int(a[2] - '0')
				continue
			}
			if strings.HasPrefix(a, "-") {
				fmt.Fprintf(os.Stderr, "ERROR: bad switch [%s]\n", a)
				return 1
			}
			names = append(names, a)
		}
	}

	logger.SetLevel(logging.ParseLevel(cfg.LogLevel))
	logger.SetJSONMode(cfg.LogJSON)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}

	opts := lz4stream.Options{
		Level:            cfg.Level,
		Concurrency:      cfg.Concurrency,
		BlockSizeID:      cfg.BlockSizeID,
		BlockChecksum:    cfg.BlockChecksum,
		NoStreamChecksum: !cfg.StreamChecksum,
		BlockDependent:   cfg.BlockDependent,
	}
	if cfg.Mode == "sequential" {
		opts.Mode = lz4stream.Sequential
	}

	if act == actBenchmark {
		if len(names) == 0 {
			fmt.Fprintln(os.Stderr, "ERROR: no benchmark input files")
			return 1
		}
		banner.PrintTo(os.Stderr)
		bench.NewRunner(opts, iterations).Run(names)
		return 0
	}

	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "ERROR: no input filename")
		return 1
	}
	inpName := names[0]
	outName := ""
	if len(names) > 1 {
		outName = names[1]
	}
	if len(names) > 2 {
		fmt.Fprintf(os.Stderr, "ERROR: bad argument [%s]\n", names[2])
		return 1
	}
	if outName == "" {
		if act != actCompress {
			fmt.Fprintln(os.Stderr, "ERROR: no output filename")
			return 1
		}
		outName = inpName + lz4Extension
	}

	src, closeSrc, size, err := openSource(inpName, cfg.Mmap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: can't open input file [%s]: %v\n", inpName, err)
		return 1
	}
	defer closeSrc()

	if recordSize && size >= 0 {
		opts.HasContentSize = true
		opts.ContentSize = uint64(size)
	}

	dst, closeDst, err := openSink(outName, overwrite)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: can't open output file [%s]: %v\n", outName, err)
		return 1
	}

	ctx := stream.NewContext(src, dst, stream.Config{
		Level:       opts.Level,
		Mode:        opts.Mode,
		Concurrency: opts.Concurrency,
	})

	logger.Debug("starting", "action", int(act), "input", inpName, "output", outName,
		"mode", cfg.Mode, "blockSizeID", cfg.BlockSizeID)

	switch act {
	case actCompress:
		err = stream.Compress(ctx, opts.Descriptor())
	case actDecompress:
		var d frame.Descriptor
		err = stream.Decompress(ctx, &d)
	}

	if cerr := closeDst(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		logger.Error("stream failed", "error", err)
		return frame.ExitCode(err)
	}
	return 0
}

// openSource resolves the input name to a Source. The returned size is
// -1 when unknown (stdin).
func openSource(name string, useMmap bool) (ioadapter.Source, func(), int64, error) {
	if name == "stdin" {
		return ioadapter.NewReaderSource(os.Stdin), func() {}, -1, nil
	}
	fi, err := os.Stat(name)
	if err != nil {
		return nil, nil, -1, err
	}
	if useMmap {
		src, err := ioadapter.OpenMmapSource(name)
		if err != nil {
			return nil, nil, -1, err
		}
		closer := func() {
			if c, ok := src.(io.Closer); ok {
				c.Close()
			}
		}
		return src, closer, fi.Size(), nil
	}
	src, err := ioadapter.OpenFileSource(name)
	if err != nil {
		return nil, nil, -1, err
	}
	return src, func() { src.Close() }, fi.Size(), nil
}

// openSink resolves the output name to a Sink plus its closer.
func openSink(name string, overwrite bool) (ioadapter.Sink, func() error, error) {
	switch name {
	case "stdout":
		return os.Stdout, func() error { return nil }, nil
	case "null":
		return io.Discard, func() error { return nil }, nil
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(name, flags, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
