package cliapp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/actiontree/internal/model"
	"github.com/oxhq/actiontree/internal/rewrite"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunnerAppliesEditsDryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "a.txt", "hello world")

	opts := Options{
		Files:       []string{path},
		Modify:      false,
		Workers:     2,
		Policy:      rewrite.DefaultPolicy(),
		DiffContext: 3,
	}
	runner := NewRunner(opts)

	req := &model.EditRequest{Edits: []model.Edit{
		{Op: model.OpReplace, Range: [2]int{0, 5}, Text: "goodbye"},
	}}

	results := runner.Run(req)
	require.Len(t, results, 1)
	res := results[0]
	assert.True(t, res.Success)
	assert.Equal(t, "goodbye world", res.ModifiedContent)
	assert.Equal(t, 1, res.EditCount)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(onDisk), "dry run must not touch the file")
}

func TestRunnerModifiesOnDisk(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "b.txt", "abcdef")

	opts := Options{
		Files:   []string{path},
		Modify:  true,
		Workers: 1,
		Policy:  rewrite.DefaultPolicy(),
	}
	runner := NewRunner(opts)

	req := &model.EditRequest{Edits: []model.Edit{
		{Op: model.OpDelete, Range: [2]int{1, 3}},
	}}

	results := runner.Run(req)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "adef", string(onDisk))
}

func TestRunnerReportsConflict(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "c.txt", "abcdef")

	opts := Options{
		Files:   []string{path},
		Policy:  rewrite.DefaultPolicy(),
		Workers: 1,
	}
	runner := NewRunner(opts)

	req := &model.EditRequest{Edits: []model.Edit{
		{Op: model.OpReplace, Range: [2]int{0, 3}, Text: "X"},
		{Op: model.OpReplace, Range: [2]int{0, 3}, Text: "Y"},
	}}

	results := runner.Run(req)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, model.ECConflict, results[0].ErrorCode)
}

func TestRunnerStagesChanges(t *testing.T) {
	dir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(oldWd)

	path := writeTemp(t, dir, "d.txt", "hello world")

	opts := Options{
		Files:   []string{path},
		Stage:   true,
		Workers: 1,
		Policy:  rewrite.DefaultPolicy(),
	}
	runner := NewRunner(opts)

	req := &model.EditRequest{Edits: []model.Edit{
		{Op: model.OpReplace, Range: [2]int{0, 5}, Text: "goodbye"},
	}}

	results := runner.Run(req)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(onDisk), "staging must not touch the real file")

	entries, err := os.ReadDir(".actiontree")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExpandFilesPassesThroughStdinAndExpandsGlobs(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "x.go", "")
	writeTemp(t, dir, "y.go", "")

	got, err := ExpandFiles([]string{"-", filepath.Join(dir, "*.go")})
	require.NoError(t, err)
	assert.Contains(t, got, "-")
	assert.Len(t, got, 3)
}
