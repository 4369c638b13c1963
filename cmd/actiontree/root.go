package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxhq/actiontree/internal/audit"
	"github.com/oxhq/actiontree/internal/cliapp"
	"github.com/oxhq/actiontree/internal/config"
	"github.com/oxhq/actiontree/internal/model"
	"github.com/oxhq/actiontree/internal/rewrite"
	"github.com/oxhq/actiontree/internal/writer"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "actiontree",
		Short: "Apply declarative, conflict-checked edits to source files",
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newCommitCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		editsPath     string
		modify        bool
		stage         bool
		interactive   bool
		showDiff      bool
		diffContext   int
		colorDiff     bool
		jsonOutput    bool
		verbose       bool
		workers       int
		auditDSN      string
		onCrossDel    string
		onCrossIns    string
		onDiffRepl    string
		onSwallowedIn string
	)

	cmd := &cobra.Command{
		Use:   "run <files...>",
		Short: "Build one rewriter per file from an edit request and apply it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			fs := cmd.Flags()
			if !fs.Changed("workers") {
				workers = cfg.Workers
			}
			if !fs.Changed("diff-context") {
				diffContext = cfg.DiffContext
			}
			if !fs.Changed("audit-dsn") {
				auditDSN = cfg.AuditDSN
			}

			policy, err := buildPolicy(onCrossDel, onCrossIns, onDiffRepl, onSwallowedIn)
			if err != nil {
				return err
			}

			files, err := cliapp.ExpandFiles(args)
			if err != nil {
				return err
			}

			req, err := cliapp.LoadEditRequest(editsPath)
			if err != nil {
				return err
			}

			opts := cliapp.Options{
				Files:       files,
				EditRequest: editsPath,
				Modify:      modify,
				Stage:       stage,
				Interactive: interactive,
				ShowDiff:    showDiff,
				DiffContext: diffContext,
				ColorDiff:   colorDiff,
				JSONOutput:  jsonOutput,
				Verbose:     verbose,
				Workers:     workers,
				Policy:      policy,
			}

			runner := cliapp.NewRunner(opts)
			results := runner.Run(req)

			if auditDSN != "" {
				if err := recordAuditRun(auditDSN, cfg.RetentionRuns, policy, results); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "audit: %v\n", err)
				}
			}

			if jsonOutput {
				if err := cliapp.PrintResultsJSON(results); err != nil {
					return err
				}
			} else {
				for _, res := range results {
					cliapp.PrintResult(res, opts)
				}
				if summary := runner.Summary(); summary != "" {
					fmt.Println(summary)
				}
			}

			failures := 0
			for _, res := range results {
				if !res.Success {
					failures++
				}
			}
			if failures > 0 {
				return fmt.Errorf("%d of %d file(s) failed", failures, len(results))
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&editsPath, "edits", "-", "Path to a JSON edit-request file (\"-\" for stdin)")
	fs.BoolVar(&modify, "modify", false, "Write results back to disk (default is a dry run)")
	fs.BoolVar(&stage, "stage", false, "Write results under .actiontree/ for a later 'actiontree commit'")
	fs.BoolVar(&interactive, "interactive", false, "Show each file's diff and ask y/N/q before writing")
	fs.BoolVar(&showDiff, "diff", false, "Print a unified diff of the changes")
	fs.IntVar(&diffContext, "diff-context", 3, "Lines of context for --diff")
	fs.BoolVar(&colorDiff, "color", false, "Colorize --diff output")
	fs.BoolVar(&jsonOutput, "json", false, "Print results as a JSON array")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Print a line per file processed")
	fs.IntVarP(&workers, "workers", "w", 0, "Concurrent workers, 0 means runtime.NumCPU()")
	fs.StringVar(&auditDSN, "audit-dsn", "", "Record this run in the audit ledger at this DSN")
	fs.StringVar(&onCrossDel, "on-crossing-deletions", "accept", "accept|warn|raise")
	fs.StringVar(&onCrossIns, "on-crossing-insertions", "raise", "accept|warn|raise")
	fs.StringVar(&onDiffRepl, "on-different-replacements", "raise", "accept|warn|raise")
	fs.StringVar(&onSwallowedIn, "on-swallowed-insertions", "raise", "accept|warn|raise")

	return cmd
}

func buildPolicy(crossDel, crossIns, diffRepl, swallowed string) (rewrite.Policy, error) {
	policy := rewrite.DefaultPolicy()
	var err error
	if policy.CrossingDeletions, err = rewrite.ParseDecision(crossDel); err != nil {
		return policy, err
	}
	if policy.CrossingInsertions, err = rewrite.ParseDecision(crossIns); err != nil {
		return policy, err
	}
	if policy.DifferentReplacements, err = rewrite.ParseDecision(diffRepl); err != nil {
		return policy, err
	}
	if policy.SwallowedInsertions, err = rewrite.ParseDecision(swallowed); err != nil {
		return policy, err
	}
	return policy, nil
}

func newCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit",
		Short: "Apply changes staged by 'actiontree run --stage'",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cw := writer.NewCommitWriter()
			err := cw.ApplyStagedChanges()
			fmt.Fprint(cmd.OutOrStdout(), cw.Summary())
			return err
		},
	}
}

// recordAuditRun opens the audit ledger at dsn, records a summary row for
// this invocation, and prunes old runs per cfg's retention setting. It
// never stores the edit request or either file content, only counts.
func recordAuditRun(dsn string, retentionRuns int, policy rewrite.Policy, results []model.Result) error {
	db, err := audit.Connect(dsn, false)
	if err != nil {
		return fmt.Errorf("connecting to audit ledger: %w", err)
	}

	policyJSON, err := json.Marshal(policy)
	if err != nil {
		return err
	}

	runID, err := audit.BeginRun(db, policyJSON)
	if err != nil {
		return fmt.Errorf("beginning audit run: %w", err)
	}

	var editsApplied, changedBytes int
	var runErr error
	for _, res := range results {
		editsApplied += res.EditCount
		changedBytes += res.ChangedBytes
		if !res.Success && runErr == nil {
			runErr = fmt.Errorf("%s: %s", res.File, res.Error)
		}
	}

	if err := audit.FinishRun(db, runID, len(results), editsApplied, changedBytes, runErr); err != nil {
		return fmt.Errorf("finishing audit run: %w", err)
	}

	return audit.EnforceRetentionPolicy(db, retentionRuns)
}
