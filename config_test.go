package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpterm/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigYAMLOverridesOnlyGivenKeys(t *testing.T) {
	path := writeFile(t, "config.yaml", `
repl:
  prompt: "lemma> "
defaults:
  pumping_length: "7"
  language: palindromes
batch:
  workers: 2
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "lemma> ", cfg.REPL.Prompt)
	assert.Equal(t, 500, cfg.REPL.HistorySize)
	assert.Equal(t, "7", cfg.Defaults.PumpingLength)
	assert.Equal(t, "palindromes", cfg.Defaults.Language)
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "warning", cfg.Logging.Level)
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"output": {"format": "json"}, "logging": {"level": "debug"}}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.LoggerSettings().Level)
	assert.Equal(t, "5", cfg.Defaults.PumpingLength)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeFile(t, "config.yaml", "repl: [unclosed\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeConfigLoad))
}

func TestSaveConfigRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.REPL.Colors = true
			cfg.Defaults.Language = "a^n b^n c^n"

			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, SaveConfig(cfg, path))

			loaded, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("PUMPTERM_CONFIG", "/from/env.yaml")

	assert.Equal(t, "/from/flag.yaml", ResolveConfigPath("/from/flag.yaml"))
	assert.Equal(t, "/from/env.yaml", ResolveConfigPath(""))
}

func TestLoggerSettingsExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg := DefaultConfig()
	cfg.Logging.File = "~/pumpterm.log"
	assert.Equal(t, filepath.Join(home, "pumpterm.log"), cfg.LoggerSettings().File)
}
