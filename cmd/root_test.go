package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAllUsesCatalogFromConfig(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "me.yml")
	require.NoError(t, os.WriteFile(catalogPath, []byte("profile: {name: Tester}\n"), 0o644))

	cfgPath := filepath.Join(dir, "portfolio.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("catalog_path: "+catalogPath+"\n"), 0o644))

	prev := cfgFile
	cfgFile = cfgPath
	t.Cleanup(func() { cfgFile = prev })

	cfg, c, err := loadAll()
	require.NoError(t, err)
	require.Equal(t, catalogPath, cfg.CatalogPath)
	require.Equal(t, "Tester", c.Profile.Name)
	require.Empty(t, c.Certificates)
}

func TestLoadAllRejectsInvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "portfolio.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("gin_mode: loud\n"), 0o644))

	prev := cfgFile
	cfgFile = cfgPath
	t.Cleanup(func() { cfgFile = prev })

	_, _, err := loadAll()
	require.ErrorContains(t, err, "gin_mode")
}

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	require.True(t, names["serve"])
	require.True(t, names["tui"])
}
