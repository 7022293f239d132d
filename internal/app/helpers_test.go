package app

import (
	"testing"
	_ "time/tzdata"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"filetz/internal/config"
	infrafs "filetz/internal/infra/fs"
)

const yearMonthDay = "%y%m%d%H%M%S"

func newSource(t *testing.T, names ...string) *infrafs.FS {
	t.Helper()
	fsys := infrafs.NewMemory()
	require.NoError(t, fsys.MkdirAll("./src", 0o755))
	for _, name := range names {
		require.NoError(t, util.WriteFile(fsys.Raw(), JoinPath("./src/", name), []byte(name), 0o644))
	}
	return fsys
}

func resolve(t *testing.T, fsys config.StatFS, mutate func(*config.Config)) config.Resolved {
	t.Helper()
	cfg := config.Default()
	cfg.SourceDir = "./src/"
	cfg.DestinationDir = "./dst/"
	if mutate != nil {
		mutate(&cfg)
	}
	resolved, msgs := config.Validate(cfg, fsys)
	require.Empty(t, msgs)
	return resolved
}
