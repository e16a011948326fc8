package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestRunFormatsFileInPlaceWithWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.sql")
	assert.NoError(t, os.WriteFile(path, []byte("select 1 from dual"), 0o644))

	code := run(&cli{Path: path, Write: true})
	assert.Equal(t, exitOK, code)

	out, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.True(t, len(out) > 0)
}

func TestRunCheckReportsDiffFound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.sql")
	assert.NoError(t, os.WriteFile(path, []byte("select 1 from dual"), 0o644))

	code := run(&cli{Path: path, Check: true})
	assert.Equal(t, exitDiffFound, code)
}

func TestRunCheckAlreadyFormattedIsOK(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.sql")
	assert.NoError(t, os.WriteFile(path, []byte("select 1 from dual"), 0o644))

	assert.Equal(t, exitOK, run(&cli{Path: path, Write: true}))
	assert.Equal(t, exitOK, run(&cli{Path: path, Check: true}))
}

func TestRunMissingFileIsIOError(t *testing.T) {
	code := run(&cli{Path: filepath.Join(t.TempDir(), "missing.sql")})
	assert.Equal(t, exitIOError, code)
}

func TestRunParseFailureMapsToExitParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.sql")
	assert.NoError(t, os.WriteFile(path, []byte("not a statement"), 0o644))

	code := run(&cli{Path: path})
	assert.Equal(t, exitParseError, code)
}

func TestRunLoadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	sqlPath := filepath.Join(dir, "q.sql")
	cfgPath := filepath.Join(dir, "rc.json")
	assert.NoError(t, os.WriteFile(sqlPath, []byte("SELECT 1"), 0o644))
	assert.NoError(t, os.WriteFile(cfgPath, []byte(`{"keyword_case":"lower"}`), 0o644))

	code := run(&cli{Path: sqlPath, Config: cfgPath})
	assert.Equal(t, exitOK, code)
}

func TestRunBadConfigFileIsOther(t *testing.T) {
	dir := t.TempDir()
	sqlPath := filepath.Join(dir, "q.sql")
	cfgPath := filepath.Join(dir, "rc.json")
	assert.NoError(t, os.WriteFile(sqlPath, []byte("SELECT 1"), 0o644))
	assert.NoError(t, os.WriteFile(cfgPath, []byte(`{"tab_size":-1}`), 0o644))

	code := run(&cli{Path: sqlPath, Config: cfgPath})
	assert.Equal(t, exitOther, code)
}
