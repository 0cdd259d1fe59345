package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEvaluateFixedPass(t *testing.T) {
	out, err := runCommand(t, "evaluate", "--kind", "fixed", "--target", "10", "--tolerance", "0.5", "--result", "10.2")
	require.NoError(t, err)
	assert.Contains(t, out, "10.00 ± 0.50")
	assert.Contains(t, out, "aprovado")
}

func TestEvaluateFixedBoundaryPasses(t *testing.T) {
	out, err := runCommand(t, "evaluate", "--kind", "fixed", "--target", "10", "--tolerance", "0.5", "--result", "10.5")
	require.NoError(t, err)
	assert.Contains(t, out, "aprovado")
}

func TestEvaluateMaxBoundaryFails(t *testing.T) {
	out, err := runCommand(t, "evaluate", "--kind", "max", "--max", "2", "--result", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "máximo 2.00")
	assert.Contains(t, out, "reprovado")
}

func TestEvaluateRangeOutOfBounds(t *testing.T) {
	out, err := runCommand(t, "evaluate", "--kind", "range", "--min", "1", "--max", "5", "--result", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "entre 1.00 e 5.00")
	assert.Contains(t, out, "reprovado")
}

func TestEvaluateMissingRuleParameter(t *testing.T) {
	_, err := runCommand(t, "evaluate", "--kind", "fixed", "--target", "10", "--result", "10.2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `requires parameter "tolerance"`)
}

func TestEvaluateUnknownKind(t *testing.T) {
	_, err := runCommand(t, "evaluate", "--kind", "exact", "--result", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown rule kind")
}

func TestMigrateRequiresConfig(t *testing.T) {
	_, err := runCommand(t, "--config", "does-not-exist.yaml", "migrate", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file is required")
}
