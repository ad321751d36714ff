package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smarti.env")
	require.NoError(t, os.WriteFile(path, []byte("SMARTI_TEST_MODEL=gpt-4o\nSMARTI_TEST_KEPT=from-file\n"), 0o600))

	t.Setenv("SMARTI_TEST_KEPT", "from-env")
	t.Setenv("SMARTI_TEST_MODEL", "")
	os.Unsetenv("SMARTI_TEST_MODEL")

	LoadEnv(path)
	t.Cleanup(func() { os.Unsetenv("SMARTI_TEST_MODEL") })

	assert.Equal(t, "gpt-4o", os.Getenv("SMARTI_TEST_MODEL"))
	assert.Equal(t, "from-env", os.Getenv("SMARTI_TEST_KEPT"), "process environment wins")
}

func TestLoadEnvMissingFile(t *testing.T) {
	assert.NotPanics(t, func() { LoadEnv(filepath.Join(t.TempDir(), "absent.env")) })
}
