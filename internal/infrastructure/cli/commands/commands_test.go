package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/organize-desk/internal/app"
	"github.com/doeshing/organize-desk/internal/application/doctor"
	"github.com/doeshing/organize-desk/internal/application/run"
	"github.com/doeshing/organize-desk/internal/application/settings"
	"github.com/doeshing/organize-desk/internal/codec"
	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/infrastructure/config"
	"github.com/doeshing/organize-desk/internal/infrastructure/fileio"
	"github.com/doeshing/organize-desk/internal/infrastructure/history"
	"github.com/doeshing/organize-desk/internal/pkg/logger"
	"github.com/doeshing/organize-desk/internal/ports"
)

type stubRunner struct {
	calls  int
	output string
	exit   int
}

func (s *stubRunner) Run(_ context.Context, _ domain.Verb, _ string, _ domain.RunOptions, sink ports.OutputSink) (domain.RunResult, error) {
	s.calls++
	sink.Write(s.output, domain.StreamStdout)
	return domain.RunResult{ExitCode: s.exit, Stdout: s.output, DurationMS: 5}, nil
}

func (s *stubRunner) CheckInstalled(context.Context) domain.InstallStatus {
	return domain.InstallStatus{Installed: true, Version: "3.2.0"}
}

func (s *stubRunner) DefaultConfigPath(context.Context) (string, error) {
	return "/home/me/.config/organize/config.yaml\n", nil
}

func (s *stubRunner) ListConfigs(context.Context) (string, error) {
	return "config.yaml\n", nil
}

func testContainer(t *testing.T) (*app.Container, *stubRunner, string) {
	t.Helper()
	dir := t.TempDir()
	log := logger.Discard()
	store := config.NewFileLoader(filepath.Join(dir, "settings.yaml"))
	logs := history.NewFileStore(filepath.Join(dir, "runlogs.jsonl"))
	runner := &stubRunner{output: "SIM done\n"}
	settingsService := &settings.Service{Store: store, Logger: log}

	return &app.Container{
		SettingsStore:   store,
		SettingsService: settingsService,
		Files:           fileio.DocumentFiles{},
		Runner:          runner,
		RunLogs:         logs,
		RunService:      &run.Service{Runner: runner, Logs: logs, Settings: store, Logger: log},
		DoctorService: &doctor.Service{
			Settings: store,
			Runner:   runner,
			Logs:     logs,
			LookPath: func(file string) (string, error) { return "/usr/bin/" + file, nil },
		},
		Logger: log,
	}, runner, dir
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func newConfigFile(t *testing.T, c *app.Container, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "organize.yaml")
	_, err := execute(t, NewNewCommand(c), path)
	require.NoError(t, err)
	return path
}

func decodeFile(t *testing.T, path string) domain.Config {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := codec.Decode(string(data))
	require.NoError(t, err)
	return cfg
}

func TestNewAndValidate(t *testing.T) {
	c, _, dir := testContainer(t)
	path := newConfigFile(t, c, dir)

	_, err := execute(t, NewNewCommand(c), path)
	assert.ErrorContains(t, err, "already exists")

	out, err := execute(t, NewValidateCommand(c), path)
	require.NoError(t, err)
	assert.Contains(t, out, MsgConfigurationValid)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rules:\n  - name: x\n"), 0o644))
	out, err = execute(t, NewValidateCommand(c), bad)
	assert.Error(t, err)
	assert.Contains(t, out, "Rule 1")
}

func TestShowAndRulesList(t *testing.T) {
	c, _, dir := testContainer(t)
	path := newConfigFile(t, c, dir)

	out, err := execute(t, NewShowCommand(c), path)
	require.NoError(t, err)
	assert.Contains(t, out, "1. Example: Find PDFs in Downloads")
	assert.Contains(t, out, "location: ~/Downloads")
	assert.Contains(t, out, "filter 1: extension")

	out, err = execute(t, NewRulesCommand(c), "list", path)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Example: Find PDFs in Downloads")
}

func TestRulesEditing(t *testing.T) {
	c, _, dir := testContainer(t)
	path := newConfigFile(t, c, dir)

	_, err := execute(t, NewRulesCommand(c), "add", path, "--name", "Screenshots", "--location", "~/Desktop", "--tag", "images")
	require.NoError(t, err)
	out, err := execute(t, NewRulesCommand(c), "duplicate", path, "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Screenshots (copy)")

	_, err = execute(t, NewRulesCommand(c), "move", path, "3", "1")
	require.NoError(t, err)
	_, err = execute(t, NewRulesCommand(c), "disable", path, "2")
	require.NoError(t, err)

	cfg := decodeFile(t, path)
	require.Len(t, cfg.Rules, 3)
	assert.Equal(t, "Screenshots (copy)", cfg.Rules[0].Name)
	assert.False(t, cfg.Rules[1].Enabled)
	assert.Equal(t, "~/Desktop", cfg.Rules[2].Locations[0].Path)
	assert.Equal(t, []string{"images"}, cfg.Rules[2].Tags)

	_, err = execute(t, NewRulesCommand(c), "remove", path, "1")
	require.NoError(t, err)
	assert.Len(t, decodeFile(t, path).Rules, 2)

	_, err = execute(t, NewRulesCommand(c), "remove", path, "9")
	assert.ErrorContains(t, err, "out of range")
}

func TestFiltersAndActions(t *testing.T) {
	c, _, dir := testContainer(t)
	path := newConfigFile(t, c, dir)

	_, err := execute(t, NewFiltersCommand(c), "add", path, "1", "size", "--set", "conditions='>1 MB'", "--not")
	require.NoError(t, err)
	_, err = execute(t, NewFiltersCommand(c), "add", path, "1", "nosuchfilter")
	assert.ErrorContains(t, err, "--allow-unknown")

	_, err = execute(t, NewActionsCommand(c), "add", path, "1", "move", "--set", "dest=~/Documents/PDF/")
	require.NoError(t, err)
	_, err = execute(t, NewActionsCommand(c), "move", path, "1", "2", "1")
	require.NoError(t, err)

	cfg := decodeFile(t, path)
	rule := cfg.Rules[0]
	require.Len(t, rule.Filters, 2)
	assert.Equal(t, "size", rule.Filters[1].Type)
	assert.True(t, rule.Filters[1].Negated)
	require.Len(t, rule.Actions, 2)
	assert.Equal(t, "move", rule.Actions[0].Type)
	assert.Equal(t, "echo", rule.Actions[1].Type)

	out, err := execute(t, NewFiltersCommand(c), "negate", path, "1", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "no longer negated")

	_, err = execute(t, NewActionsCommand(c), "remove", path, "1", "1")
	require.NoError(t, err)
	assert.Equal(t, "echo", decodeFile(t, path).Rules[0].Actions[0].Type)
}

func TestFmtPrintsCanonicalText(t *testing.T) {
	c, _, dir := testContainer(t)
	path := newConfigFile(t, c, dir)

	out, err := execute(t, NewFmtCommand(c), path)
	require.NoError(t, err)
	assert.Contains(t, out, "rules:")
	assert.NotContains(t, out, "# organize configuration file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# organize configuration file", "fmt without --write leaves the file alone")
}

func TestSimRecordsLog(t *testing.T) {
	c, runner, dir := testContainer(t)
	path := newConfigFile(t, c, dir)

	out, err := execute(t, NewSimCommand(c), path)
	require.NoError(t, err)
	assert.Contains(t, out, "SIM done")
	assert.Equal(t, 1, runner.calls)

	logs, err := c.RunLogs.List(0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.VerbSim, logs[0].Command)
	assert.Equal(t, "organize.yaml", logs[0].ConfigName)

	out, err = execute(t, NewLogsCommand(c), "list")
	require.NoError(t, err)
	assert.Contains(t, out, logs[0].ID)
	assert.Contains(t, out, "organize.yaml")

	out, err = execute(t, NewLogsCommand(c), "show", logs[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "SIM done")

	_, err = execute(t, NewLogsCommand(c), "clear")
	require.NoError(t, err)
	out, err = execute(t, NewLogsCommand(c), "list")
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoRunLogs)
}

func TestSimFailureReturnsError(t *testing.T) {
	c, runner, dir := testContainer(t)
	runner.exit = 2
	path := newConfigFile(t, c, dir)

	_, err := execute(t, NewSimCommand(c), path)
	assert.ErrorContains(t, err, "exit code 2")
}

func TestRunAsksBeforeDangerousActions(t *testing.T) {
	c, runner, dir := testContainer(t)
	path := newConfigFile(t, c, dir)
	_, err := execute(t, NewActionsCommand(c), "add", path, "1", "trash")
	require.NoError(t, err)

	out, err := execute(t, NewRunCommand(c), path)
	assert.ErrorContains(t, err, ErrConfirmationDeclined)
	assert.Contains(t, out, "--yes")
	assert.Equal(t, 0, runner.calls)

	_, err = execute(t, NewRunCommand(c), path, "--yes")
	require.NoError(t, err)
	assert.Equal(t, 1, runner.calls)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	c, runner, dir := testContainer(t)
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rules: 5\n"), 0o644))

	_, err := execute(t, NewRunCommand(c), bad, "--yes")
	assert.ErrorContains(t, err, "not a valid config")
	assert.Equal(t, 0, runner.calls)
}

func TestInspect(t *testing.T) {
	c, _, dir := testContainer(t)
	path := newConfigFile(t, c, dir)

	out, err := execute(t, NewInspectCommand(c), path)
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoFindings)

	_, err = execute(t, NewFiltersCommand(c), "add", path, "1", "mystery", "--allow-unknown")
	require.NoError(t, err)

	out, err = execute(t, NewInspectCommand(c), path)
	require.NoError(t, err, "unknown types are warnings")
	assert.Contains(t, out, "mystery")

	_, err = execute(t, NewInspectCommand(c), path, "--strict")
	assert.Error(t, err)
}

func TestCatalogShow(t *testing.T) {
	out, err := execute(t, NewCatalogCommand(), "show", "move", "--action")
	require.NoError(t, err)
	assert.Contains(t, out, "dest")
	assert.Contains(t, out, "Shorthand: move: <dest>")

	_, err = execute(t, NewCatalogCommand(), "show", "move")
	assert.Error(t, err, "move is not a filter")

	out, err = execute(t, NewCatalogCommand(), "filters")
	require.NoError(t, err)
	assert.Contains(t, out, "extension")
}

func TestSettingsCommands(t *testing.T) {
	c, _, _ := testContainer(t)

	out, err := execute(t, NewSettingsCommand(c), "diff")
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoDifferencesFromDefault)

	_, err = execute(t, NewSettingsCommand(c), "set", "font_size", "16")
	require.NoError(t, err)
	out, err = execute(t, NewSettingsCommand(c), "get", "font_size")
	require.NoError(t, err)
	assert.Equal(t, "16\n", out)

	_, err = execute(t, NewSettingsCommand(c), "set", "font_size", "99")
	assert.Error(t, err)

	out, err = execute(t, NewSettingsCommand(c), "diff")
	require.NoError(t, err)
	assert.Contains(t, out, "FontSize")

	_, err = execute(t, NewSettingsCommand(c), "reset")
	require.NoError(t, err)
	out, err = execute(t, NewSettingsCommand(c), "get", "font_size")
	require.NoError(t, err)
	assert.Equal(t, "14\n", out)
}

func TestRecentFiles(t *testing.T) {
	c, _, dir := testContainer(t)

	out, err := execute(t, NewRecentCommand(c), "list")
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoRecentFiles)

	path := newConfigFile(t, c, dir)
	_, err = execute(t, NewShowCommand(c), path)
	require.NoError(t, err)

	out, err = execute(t, NewRecentCommand(c), "list")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = execute(t, NewRecentCommand(c), "clear")
	require.NoError(t, err)
	files, err := c.SettingsService.RecentFiles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDoctorAndEngine(t *testing.T) {
	c, _, _ := testContainer(t)

	out, err := execute(t, NewDoctorCommand(c))
	require.NoError(t, err)
	assert.Contains(t, out, "[OK] organize - 3.2.0")
	assert.Contains(t, out, "[OK] Python - /usr/bin/python3")

	out, err = execute(t, NewEngineCommand(c), "path")
	require.NoError(t, err)
	assert.Equal(t, "/home/me/.config/organize/config.yaml\n", out)
}

func TestVersionReportsEngine(t *testing.T) {
	c, _, _ := testContainer(t)

	out, err := execute(t, NewVersionCommand(c))
	require.NoError(t, err)
	assert.Contains(t, out, "Version:  dev")
	assert.Contains(t, out, "Built:    unknown")
	assert.Contains(t, out, "Platform:")
	assert.Contains(t, out, "organize engine")
	assert.Contains(t, out, "Version:  3.2.0")

	out, err = execute(t, NewVersionCommand(c), "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestCheckWatchedFile(t *testing.T) {
	c, _, dir := testContainer(t)
	path := newConfigFile(t, c, dir)

	var out bytes.Buffer
	checkWatchedFile(&out, c, path, true)
	assert.Contains(t, out.String(), MsgConfigurationValid)
	assert.Contains(t, out.String(), MsgNoFindings)

	require.NoError(t, os.WriteFile(path, []byte("rules: [\n"), 0o644))
	out.Reset()
	checkWatchedFile(&out, c, path, true)
	assert.NotContains(t, out.String(), MsgConfigurationValid)
}

func TestParsePosition(t *testing.T) {
	i, err := parsePosition("2", 3, "rule")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = parsePosition("0", 3, "rule")
	assert.ErrorContains(t, err, "out of range (1-3)")
	_, err = parsePosition("x", 3, "rule")
	assert.ErrorContains(t, err, "must be a number")
	_, err = parsePosition("1", 0, "filter")
	assert.ErrorContains(t, err, "no filters")
}

func TestParseAssignments(t *testing.T) {
	params, err := parseAssignments([]string{"extensions=[pdf, docx]", "msg=hello world"})
	require.NoError(t, err)
	exts, _ := params.Get("extensions")
	assert.Equal(t, []interface{}{"pdf", "docx"}, exts)
	msg, _ := params.Get("msg")
	assert.Equal(t, "hello world", msg)

	_, err = parseAssignments([]string{"novalue"})
	assert.Error(t, err)
}
