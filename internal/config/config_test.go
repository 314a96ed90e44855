package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/stackie/internal/sized"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 256, cfg.Capacity)
	require.Equal(t, "string", cfg.Mode)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
	require.Equal(t, "stderr", cfg.Log.Output)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	content := "capacity = 8\nmode = \"literal\"\n\n[log]\nlevel = \"debug\"\nformat = \"json\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Capacity)
	require.Equal(t, "literal", cfg.Mode)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoadDefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("stackie.toml", []byte("capacity = 32\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 32, cfg.Capacity)
}

func TestEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STACKIE_CAPACITY", "16")
	t.Setenv("STACKIE_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 16, cfg.Capacity)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	// godotenv never overrides variables that are already set; clear first.
	t.Setenv("STACKIE_MODE", "")
	require.NoError(t, os.Unsetenv("STACKIE_MODE"))
	require.NoError(t, os.WriteFile(".env", []byte("STACKIE_MODE=cstr\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("STACKIE_MODE") })

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "cstr", cfg.Mode)
}

func TestLoadRejectsMalformedDotEnv(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("STACKIE-MODE=cstr\n"), 0o644))

	_, err := Load("")
	require.ErrorContains(t, err, "load .env")
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "cap.toml")
	require.NoError(t, os.WriteFile(bad, []byte("capacity = 7\n"), 0o644))
	_, err := Load(bad)
	require.ErrorIs(t, err, sized.ErrCapacity)

	mode := filepath.Join(dir, "mode.toml")
	require.NoError(t, os.WriteFile(mode, []byte("mode = \"utf16\"\n"), 0o644))
	_, err = Load(mode)
	require.ErrorIs(t, err, sized.ErrMode)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
