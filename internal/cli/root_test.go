package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "filetz/internal/errors"
	infrafs "filetz/internal/infra/fs"
)

func execute(t *testing.T, fsys *infrafs.FS, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(context.Background(), args, fsys, Streams{Out: &out, Err: &errOut})
	return out.String(), errOut.String(), err
}

func memorySource(t *testing.T, names ...string) *infrafs.FS {
	t.Helper()
	fsys := infrafs.NewMemory()
	require.NoError(t, fsys.MkdirAll("src", 0o755))
	for _, name := range names {
		require.NoError(t, util.WriteFile(fsys.Raw(), "src/"+name, []byte(name), 0o644))
	}
	return fsys
}

func TestConvertsIntoDestination(t *testing.T) {
	fsys := memorySource(t, "230115120000.txt")

	out, _, err := execute(t, fsys,
		"-s", "./src/", "-d", "./dst/", "-t", "Europe/Warsaw", "-p", "%y%m%d%H%M%S")
	require.NoError(t, err)
	assert.Equal(t, "./src/230115120000.txt --> ./dst/230115130000.txt\n", out)

	_, err = fsys.Stat("dst/230115130000.txt")
	require.NoError(t, err)
}

func TestEmptySourceDirectory(t *testing.T) {
	fsys := memorySource(t)

	out, _, err := execute(t, fsys, "--source-directory=./src/", "--destination-directory=./dst/")
	require.NoError(t, err)
	assert.Equal(t, "No files to process in source folder.\n", out)

	_, err = fsys.Stat("dst")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDryRunChangesNothing(t *testing.T) {
	fsys := memorySource(t, "231501120000.txt")

	out, _, err := execute(t, fsys, "-s", "./src/", "-d", "./dst/", "-t", "Europe/Warsaw", "-m", "move", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "./src/231501120000.txt --> ./dst/231501130000.txt\n", out)

	_, err = fsys.Stat("dst")
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = fsys.Stat("src/231501120000.txt")
	assert.NoError(t, err)
}

func TestMoveWithSameZoneKeepsSource(t *testing.T) {
	fsys := memorySource(t, "231501120000.txt")

	_, _, err := execute(t, fsys, "-s", "./src/", "-d", "./dst/", "-f", "UTC", "-t", "UTC", "-m", "move")
	require.NoError(t, err)

	_, err = fsys.Stat("src/231501120000.txt")
	assert.NoError(t, err)
	_, err = fsys.Stat("dst/231501120000.txt")
	assert.NoError(t, err)
}

func TestValidationErrorsArePrintedTogether(t *testing.T) {
	fsys := memorySource(t)

	out, _, err := execute(t, fsys, "-s", "./missing/", "-f", "Bad/Zone", "-t", "Worse/Zone")
	require.NoError(t, err)
	assert.Equal(t,
		"./missing/ is not a valid folder\nBad/Zone is not a valid timezone\nWorse/Zone is not a valid timezone\n",
		out)
}

func TestFlagErrorsExitWithStatusTwo(t *testing.T) {
	for _, args := range [][]string{
		{"--unknown"},
		{"-x"},
		{"--mode=rename"},
		{"--from-tz"},
	} {
		_, _, err := execute(t, memorySource(t), args...)
		require.Error(t, err, args)
		assert.Equal(t, appErrors.InvalidFlags, appErrors.KindOf(err), args)
		assert.Equal(t, 2, ExitCode(err), args)
	}
}

func TestHelp(t *testing.T) {
	out, _, err := execute(t, memorySource(t), "--help")
	require.NoError(t, err)
	assert.Equal(t, 0, ExitCode(err))
	assert.Contains(t, out, BasicSyntax)
	assert.Contains(t, out, "--source-directory")
	assert.Contains(t, out, "--dry-run")
}

func TestEnvironmentFallback(t *testing.T) {
	fsys := memorySource(t, "231501120000.txt")
	t.Setenv("FILETZ_SOURCE_DIR", "./src/")
	t.Setenv("FILETZ_DESTINATION_DIR", "./dst/")
	t.Setenv("FILETZ_TO_TZ", "Europe/Warsaw")
	t.Setenv("FILETZ_DRY_RUN", "yes")

	out, _, err := execute(t, fsys, "-d", "./other/")
	require.NoError(t, err)
	assert.Equal(t, "./src/231501120000.txt --> ./other/231501130000.txt\n", out)
}

func TestExecutionFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "231501120000.txt"), []byte("x"), 0o644))
	blocker := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))

	var out, errOut bytes.Buffer
	err := Execute(context.Background(), []string{"-s", src, "-d", blocker}, infrafs.NewOS(), Streams{Out: &out, Err: &errOut})
	require.Error(t, err)
	assert.Equal(t, appErrors.IOFailure, appErrors.KindOf(err))
	assert.Equal(t, 1, ExitCode(err))
	assert.Empty(t, out.String())
}

func TestVerboseWritesToStderrOnly(t *testing.T) {
	fsys := memorySource(t, "231501120000.txt", "notes.md")

	out, errOut, err := execute(t, fsys, "-s", "./src/", "-d", "./dst/", "--dry-run", "-v")
	require.NoError(t, err)
	assert.Equal(t, "./src/231501120000.txt --> ./dst/231501120000.txt\n", out)
	assert.Contains(t, errOut, "Skipping notes.md")
}
