package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	client "github.com/hsn0918/buildvu-client"
)

func newFlagSet(t *testing.T, args ...string) (*pflag.FlagSet, *cliOptions) {
	t.Helper()
	opts := &cliOptions{}
	fs := pflag.NewFlagSet("buildvu", pflag.ContinueOnError)
	addGlobalFlags(fs, opts)
	require.NoError(t, fs.Parse(args))
	return fs, opts
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	fs, opts := newFlagSet(t)
	require.NoError(t, loadConfig(fs, opts))

	assert.Empty(t, opts.url)
	assert.Equal(t, client.DefaultEndpoint, opts.endpoint)
	assert.Equal(t, 60*time.Second, opts.timeout)
	assert.Equal(t, 30, opts.conversionTimeout)
	assert.Equal(t, "fail.log", opts.failLogPath)
	assert.Error(t, opts.validate())
}

func TestLoadConfig_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "buildvu.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
url: http://from-file:8080/microservice-example
username: file-user
conversion-timeout: 45
timeout: 5s
`), 0o644))

	t.Setenv("BUILDVU_PASSWORD", "env-secret")
	t.Setenv("BUILDVU_CONVERSION_TIMEOUT", "90")

	fs, opts := newFlagSet(t, "--config", cfgPath, "--username", "flag-user")
	require.NoError(t, loadConfig(fs, opts))

	assert.Equal(t, "http://from-file:8080/microservice-example", opts.url)
	assert.Equal(t, "flag-user", opts.username)
	assert.Equal(t, "env-secret", opts.password)
	assert.Equal(t, 90, opts.conversionTimeout)
	assert.Equal(t, 5*time.Second, opts.timeout)
	assert.NoError(t, opts.validate())
}

func TestLoadConfig_DiscoversFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "buildvu.yaml"), []byte("url: http://cwd:8080\nendpoint: jpedal\n"), 0o644))
	chdir(t, dir)

	fs, opts := newFlagSet(t)
	require.NoError(t, loadConfig(fs, opts))
	assert.Equal(t, "http://cwd:8080", opts.url)
	assert.Equal(t, "jpedal", opts.endpoint)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	fs, opts := newFlagSet(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, loadConfig(fs, opts))
}

func TestValidate_PasswordNeedsUsername(t *testing.T) {
	opts := &cliOptions{url: "http://x", password: "pw"}
	assert.Error(t, opts.validate())
}
