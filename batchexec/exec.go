package batchexec

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/fontlaborg/gorender/ferrors"
)

// ValidateSpec parses and validates payload without rendering
// anything, the "validate" mode of spec component 4.H.
func ValidateSpec(payload []byte) (JobSpec, error) {
	if err := ValidateJSONSize(payload); err != nil {
		return JobSpec{}, err
	}
	var spec JobSpec
	if err := json.Unmarshal(payload, &spec); err != nil {
		return JobSpec{}, &ferrors.JsonParseError{Cause: err}
	}
	if err := spec.Validate(); err != nil {
		return JobSpec{}, err
	}
	return spec, nil
}

// RunBatch validates spec, then fans its jobs out over a worker pool
// sharing e's font cache, writing each JobResult to out as one JSONL
// line as soon as it is ready (results may complete out of submission
// order; each job is independently ordered on its own line).
func RunBatch(e *Engine, spec JobSpec, out io.Writer) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	workers := e.opts.Workers
	if workers <= 0 {
		workers = 8
	}

	results := make(chan JobResult, workers)
	writerDone := make(chan error, 1)
	go func() {
		w := bufio.NewWriter(out)
		for r := range results {
			line, err := json.Marshal(r)
			if err != nil {
				writerDone <- &ferrors.JsonParseError{Cause: err}
				return
			}
			if _, err := w.Write(append(line, '\n')); err != nil {
				writerDone <- &ferrors.IoError{Cause: err}
				return
			}
		}
		writerDone <- w.Flush()
	}()

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for _, job := range spec.Jobs {
		job := job
		g.Go(func() error {
			results <- e.RunJob(job)
			return nil
		})
	}
	waitErr := g.Wait()
	close(results)
	writeErr := <-writerDone

	if waitErr != nil {
		return waitErr
	}
	return writeErr
}

// RunStream processes JSONL job input line by line, writing each
// result as soon as it is computed. Blank lines are ignored; a line
// that fails to parse or validate is logged to the returned error
// slice and skipped rather than aborting the whole stream.
func RunStream(e *Engine, in io.Reader, out io.Writer) ([]string, error) {
	var skipped []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxJSONSize)
	w := bufio.NewWriter(out)
	defer w.Flush()

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var job Job
		if err := json.Unmarshal(line, &job); err != nil {
			skipped = append(skipped, fmt.Sprintf("line %d: invalid JSON: %s", lineNo, err))
			continue
		}
		if err := job.Validate(); err != nil {
			skipped = append(skipped, fmt.Sprintf("line %d: invalid job: %s", lineNo, err))
			continue
		}

		result := e.RunJob(job)
		encoded, err := json.Marshal(result)
		if err != nil {
			return skipped, &ferrors.JsonParseError{Cause: err}
		}
		if _, err := w.Write(append(encoded, '\n')); err != nil {
			return skipped, &ferrors.IoError{Cause: err}
		}
		if err := w.Flush(); err != nil {
			return skipped, &ferrors.IoError{Cause: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return skipped, &ferrors.IoError{Cause: err}
	}
	return skipped, nil
}
