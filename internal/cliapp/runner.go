package cliapp

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/oxhq/actiontree/internal/model"
	"github.com/oxhq/actiontree/internal/rewrite"
	"github.com/oxhq/actiontree/internal/util"
	"github.com/oxhq/actiontree/internal/writer"
)

// Runner applies one edit request across a batch of files.
type Runner struct {
	Options Options
	writer  writer.Writer
}

// NewRunner builds a Runner. The underlying Writer follows opts: --stage
// records changes under .actiontree/ for a later `actiontree commit`,
// --interactive asks y/N/q per file, --modify writes straight to disk, and
// the default is a dry run that only measures the would-be change.
func NewRunner(opts Options) *Runner {
	var w writer.Writer
	switch {
	case opts.Stage:
		w = writer.NewStagingWriter()
	case opts.Interactive:
		w = writer.NewInteractiveWriter()
	case opts.Modify:
		w = writer.NewDiskWriter()
	default:
		w = writer.NewDryRunWriter()
	}
	return &Runner{Options: opts, writer: w}
}

// Run applies req.Edits to every file in r.Options.Files concurrently and
// returns one Result per file, in the same order files were given.
func (r *Runner) Run(req *model.EditRequest) []model.Result {
	results := make([]model.Result, len(r.Options.Files))

	numWorkers := r.Options.Workers
	if numWorkers < 1 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(r.Options.Files) {
		numWorkers = len(r.Options.Files)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = r.processFile(r.Options.Files[idx], req)
			}
		}()
	}
	for i := range r.Options.Files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (r *Runner) processFile(path string, req *model.EditRequest) model.Result {
	res := model.Result{
		File:          path,
		Time:          time.Now().Format(time.RFC3339),
		SchemaVersion: model.CurrentSchemaVersion,
		ToolVersion:   model.CurrentToolVersion,
	}

	var data []byte
	var err error
	var statBefore os.FileInfo
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		statBefore, err = os.Stat(path)
		if err == nil {
			data, err = os.ReadFile(path)
		}
	}
	if err != nil {
		return failure(res, model.ECReadError, err)
	}
	original := string(data)
	res.OriginalContent = original
	res.OriginalSHA1 = util.SHA1Hex(data)

	tw := rewrite.New(original, r.Options.Policy, os.Stderr)
	for _, edit := range req.Edits {
		rng := rewrite.Range{Begin: edit.Range[0], End: edit.Range[1]}
		var applyErr error
		switch edit.Op {
		case model.OpReplace:
			applyErr = tw.Replace(rng, edit.Text)
		case model.OpDelete:
			applyErr = tw.Remove(rng)
		case model.OpInsertBefore:
			applyErr = tw.InsertBefore(rng, edit.Text)
		case model.OpInsertAfter:
			applyErr = tw.InsertAfter(rng, edit.Text)
		default:
			applyErr = fmt.Errorf("cliapp: unknown edit op %q", edit.Op)
		}
		if applyErr != nil {
			return failure(res, model.ECConflict, applyErr)
		}
	}

	modified := tw.Process()
	res.ModifiedContent = modified
	res.EditCount = len(req.Edits)
	res.ChangedBytes = rewrite.ChangedBytes(original, modified)
	res.Success = true

	if r.Options.ShowDiff {
		res.Diff = rewrite.UnifiedDiff(original, modified, path, r.Options.DiffContext)
	}

	if path == "-" || original == modified {
		res.ModifiedSHA1 = res.OriginalSHA1
		return res
	}

	// Race detection only matters for writers that touch the real path;
	// staging writes to .actiontree/ and the dry run writes nowhere.
	if r.Options.Modify || r.Options.Interactive {
		statAfter, _ := os.Stat(path)
		if util.RaceDetected(statBefore, statAfter) {
			return failure(res, model.ECWriteRace, model.ErrWriteRace)
		}
	}

	if err := r.writer.WriteFile(path, []byte(modified), 0o644); err != nil {
		return failure(res, model.ECWriteError, err)
	}
	res.ModifiedSHA1 = util.SHA1Hex([]byte(modified))

	return res
}

func failure(res model.Result, code model.ErrorCode, err error) model.Result {
	res.Success = false
	res.ErrorCode = code
	res.Error = err.Error()
	return res
}

// Summary returns the underlying writer's human-readable summary. Every
// writer returns a non-empty message, including when nothing was written.
func (r *Runner) Summary() string {
	return r.writer.Summary()
}
