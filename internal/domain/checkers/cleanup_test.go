package checkers_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-platform/readygate/internal/domain"
	"github.com/zenith-platform/readygate/internal/domain/checkers"
)

func seedProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", "pkg"), 0755))

	files := map[string]string{
		"src/index.ts":              "export {}\n",
		"npm-debug.log":             "log\n",
		".DS_Store":                 "junk",
		"src/editor.swp":            "swap",
		"node_modules/pkg/pkg.log":  "ignored: excluded dir",
		"node_modules/pkg/index.js": "module.exports = {}\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestCheckCleanup_CountsTempFiles(t *testing.T) {
	dir := seedProject(t)

	res := checkers.CheckCleanup(context.Background(), dir, domain.DefaultConfig(), nil, checkers.Options{})

	// npm-debug.log, .DS_Store and editor.swp match; node_modules is excluded.
	assert.Equal(t, 85.0, res.Score)
	assert.Equal(t, "3", res.Metrics["temp_files"])
	assert.Len(t, res.Issues, 3)

	// Read-only without fix mode.
	_, err := os.Stat(filepath.Join(dir, ".DS_Store"))
	assert.NoError(t, err)
}

func TestCheckCleanup_MaxTempFilesAllowance(t *testing.T) {
	dir := seedProject(t)

	cfg := domain.DefaultConfig()
	cfg.Thresholds.MaxTempFiles = 2

	res := checkers.CheckCleanup(context.Background(), dir, cfg, nil, checkers.Options{})

	// 3 matches, 2 tolerated: only the excess file is penalized.
	assert.Equal(t, 95.0, res.Score)
	assert.Equal(t, "3", res.Metrics["temp_files"])
	assert.Len(t, res.Issues, 3)
}

func TestCheckCleanup_AllowanceCoversAllMatches(t *testing.T) {
	dir := seedProject(t)

	cfg := domain.DefaultConfig()
	cfg.Thresholds.MaxTempFiles = 10

	res := checkers.CheckCleanup(context.Background(), dir, cfg, nil, checkers.Options{})

	assert.Equal(t, 100.0, res.Score)
	assert.Len(t, res.Issues, 3)
}

func TestCheckCleanup_FixModeDeletes(t *testing.T) {
	dir := seedProject(t)

	res := checkers.CheckCleanup(context.Background(), dir, domain.DefaultConfig(), nil, checkers.Options{Fix: true})

	assert.Equal(t, "3", res.Metrics["removed"])
	_, err := os.Stat(filepath.Join(dir, ".DS_Store"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "npm-debug.log"))
	assert.True(t, os.IsNotExist(err))

	// Source files and excluded dirs are untouched.
	_, err = os.Stat(filepath.Join(dir, "src", "index.ts"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "node_modules", "pkg", "pkg.log"))
	assert.NoError(t, err)
}

func TestCheckCleanup_CleanTree(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.ts"), []byte("export {}\n"), 0644))

	res := checkers.CheckCleanup(context.Background(), dir, domain.DefaultConfig(), nil, checkers.Options{})

	assert.Equal(t, 100.0, res.Score)
	assert.Empty(t, res.Issues)
}

func TestCheckCleanup_MissingDirectory(t *testing.T) {
	res := checkers.CheckCleanup(context.Background(), filepath.Join(t.TempDir(), "nope"), domain.DefaultConfig(), nil, checkers.Options{})

	assert.Equal(t, 0.0, res.Score)
	assert.NotEmpty(t, res.Issues)
}
