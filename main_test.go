package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"gitlab.com/tinyland/lab/feedtui/pkg/companion"
	"gitlab.com/tinyland/lab/feedtui/pkg/host"
)

// writeFixture saves a companion and a config pointing at it.
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	statePath := filepath.Join(dir, "tui.json")
	c := companion.New(companion.Owl, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	c.Level = 5
	c.XP = 40
	c.SkillPoints = 3
	c.Visits = 7
	require.NoError(t, companion.NewFileStore(statePath).Save(c))

	cfgPath := filepath.Join(dir, "config.toml")
	cfg := fmt.Sprintf("[general]\ncompanion_path = %q\n\n[[widgets]]\ntype = \"creature\"\n", statePath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	return cfgPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "feedtui "+host.Version)
}

func TestVersionFollowsHostVersion(t *testing.T) {
	orig := host.Version
	t.Cleanup(func() { host.Version = orig })
	host.Version = "9.9.9-test"

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "feedtui 9.9.9-test (dev)")

	out, err = execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "feedtui 9.9.9-test")
}

func TestCompanionText(t *testing.T) {
	out, err := execute(t, "companion", "--config", writeFixture(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Tui the Owl")
	assert.Contains(t, out, "Level 5  40/500 XP")
	assert.Contains(t, out, "Skill points: 3")
	assert.Contains(t, out, "Visits: 7")
}

func TestCompanionJSON(t *testing.T) {
	out, err := execute(t, "companion", "--config", writeFixture(t), "--format", "json")
	require.NoError(t, err)

	var s companion.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, companion.Owl, s.Species)
	assert.Equal(t, 5, s.Level)
	assert.Equal(t, []string{"default", "hacker"}, s.Outfits)
}

func TestCompanionYAML(t *testing.T) {
	out, err := execute(t, "companion", "--config", writeFixture(t), "--format", "yaml")
	require.NoError(t, err)

	var s companion.Summary
	require.NoError(t, yaml.Unmarshal([]byte(out), &s))
	assert.Equal(t, 500, s.XPToNext)
	assert.True(t, strings.HasPrefix(out, "name: Tui"))
}

func TestCompanionUnknownFormat(t *testing.T) {
	_, err := execute(t, "companion", "--config", writeFixture(t), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestCompanionMissingRecord(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	cfg := fmt.Sprintf("[general]\ncompanion_path = %q\n", filepath.Join(dir, "none.json"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	_, err := execute(t, "companion", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no companion yet")
}

func TestCompanionMissingConfig(t *testing.T) {
	_, err := execute(t, "companion", "--config", filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestInvalidConfigFailsBeforeTerminal(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[[widgets]]\ntype = \"stocks\"\n"), 0o600))

	_, err := execute(t, "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config load error")
	assert.Contains(t, err.Error(), "symbol")
}

func TestDashboardNeedsTerminal(t *testing.T) {
	text := fmt.Sprintf("[general]\ncompanion_path = %q\n\n[[widgets]]\ntype = \"creature\"\n", filepath.Join(t.TempDir(), "tui.json"))
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(text), 0o600))

	// go test never gives the test binary a terminal stdout.
	_, err := execute(t, "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a terminal")
}
