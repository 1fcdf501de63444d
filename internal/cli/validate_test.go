package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_GoodSchedule(t *testing.T) {
	dir := t.TempDir()
	content := `
package ratelab

schedule: {
	defaultIncome:   45000
	baselineRevenue: 9000000000
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schedule.cue"), []byte(content), 0o644))

	out, err := execute(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓")
}

func TestValidate_MissingDirectory(t *testing.T) {
	_, err := execute(t, "validate", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidate_BadBrackets(t *testing.T) {
	dir := t.TempDir()
	content := `
package ratelab

schedule: {
	brackets: [
		{lower: 0, upper: 50000},
		{lower: 30000, upper: 1000000000000},
	]
	bandLabels: ["a", "b"]
	defaultRates: [0.03, 0.05]
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.cue"), []byte(content), 0o644))

	out, err := execute(t, "validate", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗")
}

func TestValidate_RequiresArgument(t *testing.T) {
	_, err := execute(t, "validate")
	require.Error(t, err)
}
