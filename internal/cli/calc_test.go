package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCalc_DefaultFlatSchedule(t *testing.T) {
	out, err := execute(t, "calc", "--income", "60000")
	require.NoError(t, err)
	assert.Contains(t, out, "$2,970")
	assert.Contains(t, out, "Your bill would not change.")
}

func TestCalc_ProgressiveRates(t *testing.T) {
	out, err := execute(t, "calc", "--income", "60000", "--rates", "0.02,0.04,0.06,0.06,0.06")
	require.NoError(t, err)
	// 25000*0.02 + 25000*0.04 + 10000*0.06 = 2100, against a 2970 flat bill.
	assert.Contains(t, out, "$2,100")
	assert.Contains(t, out, "less")
}

func TestCalc_PresetRates(t *testing.T) {
	out, err := execute(t, "calc", "--income", "60000", "--preset", "IL_2017")
	require.NoError(t, err)
	assert.Contains(t, out, "Your bill would not change.")
}

func TestCalc_JSONOutput(t *testing.T) {
	out, err := execute(t, "--format", "json", "calc", "--income", "60000")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2970), data["total"])
	assert.Equal(t, float64(60000), data["income"])
}

func TestCalc_WrongRateCount(t *testing.T) {
	_, err := execute(t, "calc", "--rates", "0.02,0.04")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "expected 5 rates")
}

func TestCalc_RateOutOfRange(t *testing.T) {
	_, err := execute(t, "calc", "--rates", "0.02,0.04,0.06,0.06,1.5")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCalc_UnknownPreset(t *testing.T) {
	_, err := execute(t, "calc", "--preset", "ZZ_9999")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCalc_NegativeIncome(t *testing.T) {
	_, err := execute(t, "calc", "--income", "-5")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestPresets_ListsCatalog(t *testing.T) {
	out, err := execute(t, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "IL_2017")
	assert.Contains(t, out, "WI_2018")
}

func TestPresets_JSONOutput(t *testing.T) {
	out, err := execute(t, "--format", "json", "presets")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	entries, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, entries, 10)
}
