// Command fontrender is the batch/stream/validate entry point for the
// text rendering engine: it reads job specifications from stdin and
// writes JSONL results to stdout (spec component 4.H's external
// interface). Argument parsing is intentionally minimal; this is the
// collaborator surface needed to exercise package batchexec, not a
// general-purpose CLI framework.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fontlaborg/gorender/batchexec"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "usage: fontrender <batch|stream|validate|version> [flags]")
		return 2
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "fontrender %s\n", version)
		return 0

	case "batch":
		fs := flag.NewFlagSet("batch", flag.ContinueOnError)
		cacheSize := fs.Int("cache-size", 512, "shape/glyph cache capacity")
		workers := fs.Int("jobs", 0, "parallel worker count (0 = default)")
		baseDir := fs.String("base-dir", "", "constrain font paths to this directory")
		timeoutMs := fs.Int64("timeout-ms", 0, "per-job timeout in milliseconds (0 disables)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		payload, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		spec, err := batchexec.ValidateSpec(payload)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		e := batchexec.NewEngine(batchexec.ExecutionOptions{
			BaseDir:   *baseDir,
			TimeoutMs: *timeoutMs,
			CacheSize: *cacheSize,
			Workers:   *workers,
		})
		if err := batchexec.RunBatch(e, spec, stdout); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0

	case "stream":
		fs := flag.NewFlagSet("stream", flag.ContinueOnError)
		cacheSize := fs.Int("cache-size", 512, "shape/glyph cache capacity")
		baseDir := fs.String("base-dir", "", "constrain font paths to this directory")
		timeoutMs := fs.Int64("timeout-ms", 0, "per-job timeout in milliseconds (0 disables)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		e := batchexec.NewEngine(batchexec.ExecutionOptions{
			BaseDir:   *baseDir,
			TimeoutMs: *timeoutMs,
			CacheSize: *cacheSize,
		})
		skipped, err := batchexec.RunStream(e, stdin, stdout)
		for _, s := range skipped {
			fmt.Fprintln(stderr, s)
		}
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0

	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		input := fs.String("input", "", "file to validate (reads stdin if empty)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var payload []byte
		var err error
		if *input != "" {
			payload, err = os.ReadFile(*input)
		} else {
			payload, err = io.ReadAll(stdin)
		}
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}

		spec, err := batchexec.ValidateSpec(payload)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintf(stdout, "valid job specification: version=%s jobs=%d\n", spec.Version, len(spec.Jobs))
		return 0

	default:
		fmt.Fprintf(stderr, "unknown subcommand %q\n", args[0])
		return 2
	}
}
