package cliapp

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/oxhq/actiontree/internal/model"
	"github.com/oxhq/actiontree/internal/util"
)

// PrintResult writes one file's outcome to stdout/stderr according to
// opts. JSON mode is handled separately by PrintResultsJSON, since it
// needs the whole batch.
func PrintResult(res model.Result, opts Options) {
	if !res.Success {
		fmt.Fprintf(os.Stderr, "✗ %s: %s (%s)\n", res.File, res.Error, res.ErrorCode)
		return
	}

	if opts.Verbose {
		if res.EditCount > 0 {
			fmt.Printf("✓ %s — %d edit(s), %d bytes changed\n", res.File, res.EditCount, res.ChangedBytes)
		} else {
			fmt.Printf("✓ %s — no changes\n", res.File)
		}
	}

	if opts.ShowDiff && res.Diff != "" {
		if opts.ColorDiff {
			fmt.Print(util.UnifiedDiff(res.OriginalContent, res.ModifiedContent, res.File, opts.DiffContext, true))
		} else {
			fmt.Print(res.Diff)
		}
	}
}

// PrintResultsJSON marshals the whole batch as a single JSON array.
func PrintResultsJSON(results []model.Result) error {
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

// PrintFatal reports a top-level (pre-batch) error, e.g. a malformed edit
// request, honoring --json so scripted callers get a parseable payload
// either way.
func PrintFatal(err error, jsonOut bool) {
	if jsonOut {
		b, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Println(string(b))
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
