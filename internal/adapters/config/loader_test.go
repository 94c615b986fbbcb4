package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rsnakamura/theape/internal/adapters/config"
	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return config.NewLoader(log), log
}

func TestLoad_Valid(t *testing.T) {
	dir := t.TempDir()
	path := createFile(t, dir, "ape.yaml", `
countdown:
  time: 1m30s
  iterations: 4
  end: 2030-01-02T15:04:05Z
operations:
  - name: ping
    plugins:
      - name: first
        plugin: dummy
        options:
          fail: true
      - plugin: sleep
`)

	loader, _ := newLoader(t)
	cfg, err := loader.Load([]string{path})
	require.NoError(t, err)

	assert.Equal(t, []string{path}, cfg.Sources)
	assert.Len(t, cfg.Fingerprint, 16)
	assert.Equal(t, 90*time.Second, cfg.Countdown.Total)
	assert.Equal(t, 4, cfg.Countdown.Iterations)
	assert.Equal(t, time.Date(2030, 1, 2, 15, 4, 5, 0, time.UTC), cfg.Countdown.End.UTC())

	require.Len(t, cfg.Operations, 1)
	op := cfg.Operations[0]
	assert.Equal(t, "ping", op.Name)
	require.Len(t, op.Plugins, 2)
	assert.Equal(t, "first", op.Plugins[0].Name)
	assert.Equal(t, "dummy", op.Plugins[0].Plugin)
	assert.Equal(t, true, op.Plugins[0].Options["fail"])
	assert.Equal(t, "sleep", op.Plugins[1].Name, "section name defaults to the plugin name")
	assert.NotNil(t, op.Plugins[1].Options)
}

func TestLoad_NoCountdownMeansSinglePass(t *testing.T) {
	dir := t.TempDir()
	path := createFile(t, dir, "ape.yaml", "operations:\n  - name: a\n")

	loader, _ := newLoader(t)
	cfg, err := loader.Load([]string{path})
	require.NoError(t, err)
	assert.True(t, cfg.Countdown.IsZero())
}

func TestLoad_MergesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	first := createFile(t, dir, "a.yaml", `
countdown:
  iterations: 2
operations:
  - name: one
`)
	second := createFile(t, dir, "b.yaml", `
countdown:
  iterations: 7
operations:
  - name: two
`)

	loader, log := newLoader(t)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	cfg, err := loader.Load([]string{first, second})
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Countdown.Iterations)
	require.Len(t, cfg.Operations, 2)
	assert.Equal(t, "one", cfg.Operations[0].Name)
	assert.Equal(t, "two", cfg.Operations[1].Name)
}

func TestLoad_FingerprintTracksContent(t *testing.T) {
	dir := t.TempDir()
	a := createFile(t, dir, "a.yaml", "operations:\n  - name: a\n")
	b := createFile(t, dir, "b.yaml", "operations:\n  - name: b\n")
	c := createFile(t, dir, "c.yaml", "operations:\n  - name: a\n")

	loader, _ := newLoader(t)
	cfgA, err := loader.Load([]string{a})
	require.NoError(t, err)
	cfgB, err := loader.Load([]string{b})
	require.NoError(t, err)
	cfgC, err := loader.Load([]string{c})
	require.NoError(t, err)

	assert.NotEqual(t, cfgA.Fingerprint, cfgB.Fingerprint)
	assert.Equal(t, cfgA.Fingerprint, cfgC.Fingerprint)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "empty file",
			content: "",
			want:    domain.ErrNoOperations,
		},
		{
			name:    "malformed yaml",
			content: "operations: [",
			want:    domain.ErrConfigParseFailed,
		},
		{
			name:    "unknown field",
			content: "operation:\n  - name: a\n",
			want:    domain.ErrConfigParseFailed,
		},
		{
			name:    "missing operation name",
			content: "operations:\n  - plugins: []\n",
			want:    domain.ErrMissingOperationName,
		},
		{
			name:    "duplicate operation",
			content: "operations:\n  - name: a\n  - name: a\n",
			want:    domain.ErrDuplicateOperation,
		},
		{
			name:    "missing plugin",
			content: "operations:\n  - name: a\n    plugins:\n      - name: x\n",
			want:    domain.ErrMissingPluginName,
		},
		{
			name:    "bad duration",
			content: "countdown:\n  time: soon\noperations:\n  - name: a\n",
			want:    domain.ErrInvalidCountdown,
		},
		{
			name:    "bad end",
			content: "countdown:\n  end: tomorrow\noperations:\n  - name: a\n",
			want:    domain.ErrInvalidCountdown,
		},
		{
			name:    "negative iterations",
			content: "countdown:\n  iterations: -1\noperations:\n  - name: a\n",
			want:    domain.ErrInvalidCountdown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := createFile(t, dir, "ape.yaml", tt.content)

			loader, _ := newLoader(t)
			_, err := loader.Load([]string{path})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	loader, _ := newLoader(t)
	_, err := loader.Load([]string{filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigReadFailed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_NoFiles(t *testing.T) {
	loader, _ := newLoader(t)
	_, err := loader.Load(nil)
	assert.ErrorIs(t, err, domain.ErrNoConfigFiles)
}
