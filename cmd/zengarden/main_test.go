package main

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	out, err := execute(t, "generate", "--width", "40", "--height", "20", "--seed", "7", "-q")
	require.NoError(t, err)

	rows := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, rows, 20)
	for _, row := range rows {
		assert.Len(t, row, 40)
	}

	again, err := execute(t, "generate", "--width", "40", "--height", "20", "--seed", "7", "-q")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestGenerateSummaryAndStats(t *testing.T) {
	out, err := execute(t, "generate", "--width", "40", "--height", "20", "--seed", "3", "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, "seed 3, 40x20 (800 cells)")
	assert.Contains(t, out, "Fine Gravel")
}

func TestGenerateBatchCommand(t *testing.T) {
	out, err := execute(t, "generate", "--width", "30", "--height", "15", "--seed", "10", "-n", "3")
	require.NoError(t, err)
	for _, seed := range []string{"seed 10,", "seed 11,", "seed 12,"} {
		assert.Contains(t, out, seed)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	_, err := execute(t, "generate", "--width", "5")
	assert.ErrorContains(t, err, "invalid garden dimensions")

	_, err = execute(t, "generate", "-n", "0")
	assert.Error(t, err)
}

func TestLegendCommand(t *testing.T) {
	out, err := execute(t, "legend")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "TERRAIN\n"), out)
	for _, sym := range []string{"#", "@", "o", "~", "=", ".", "-", "|", "^", "*", "+"} {
		assert.Contains(t, out, "  "+sym+"  ")
	}
}

func TestRunsCommands(t *testing.T) {
	t.Setenv("ZEN_DB", filepath.Join(t.TempDir(), "catalog.db"))

	out, err := execute(t, "runs")
	require.NoError(t, err)
	assert.Contains(t, out, "no runs stored")

	out, err = execute(t, "generate", "--width", "30", "--height", "15", "--seed", "5", "--save")
	require.NoError(t, err)
	m := regexp.MustCompile(`saved as ([0-9a-f-]{36})`).FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	id := m[1]

	out, err = execute(t, "runs")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "30x15")

	out, err = execute(t, "runs", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "seed 5, 30x15")

	_, err = execute(t, "runs", "rm", id)
	require.NoError(t, err)
	_, err = execute(t, "runs", "show", id)
	assert.Error(t, err)
}

func TestRunsNeedsCatalog(t *testing.T) {
	t.Setenv("ZEN_DB", "")
	_, err := execute(t, "runs")
	assert.ErrorContains(t, err, "no run catalog configured")
}
