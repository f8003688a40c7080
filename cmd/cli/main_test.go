package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"doegen/adapters/excel"
	"doegen/domain/design"
	"doegen/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDOECommand_Stdout(t *testing.T) {
	out, err := execute(t, "doe", "--factor", "A=1,2", "--factor", "B=x,y")
	require.NoError(t, err)
	assert.Equal(t, "A,B\n1,x\n1,y\n2,x\n2,y\n", out)
}

func TestDOECommand_Files(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "doe.csv")
	xlsxPath := filepath.Join(dir, "doe.xlsx")

	out, err := execute(t, "doe", "--factor", "A=1,2,3", "--out", csvPath, "--xlsx", xlsxPath)
	require.NoError(t, err)
	assert.Empty(t, out)

	content, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "A\n1\n2\n3\n", string(content))

	data, err := excel.NewDataReader(xlsxPath).ReadData()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, data.Headers)
	assert.Len(t, data.Rows, 3)
}

func TestDOECommand_FactorsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factors.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,values\nA,\"1,2\"\n"), 0o644))

	out, err := execute(t, "doe", "--factors-file", path, "--factor", "B=x")
	require.NoError(t, err)
	assert.Equal(t, "A,B\n1,x\n2,x\n", out)
}

func TestLHSCommand_XLSXFactorsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factors.xlsx")
	require.NoError(t, testkit.WriteFactorSheet(path, design.ModeLHS, testkit.LHSFactors()))

	out, err := execute(t, "lhs", "--factors-file", path, "--samples", "12", "--sampler", "lhs")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "height,width", lines[0])
	assert.Len(t, lines, 13)
}

func TestDOECommand_BadFactor(t *testing.T) {
	_, err := execute(t, "doe", "--factor", "A")
	assert.Error(t, err)

	_, err = execute(t, "doe", "--factor", "A=1", "--factor", "A=2")
	assert.Error(t, err)
}

func TestLHSCommand(t *testing.T) {
	dir := t.TempDir()
	plotPath := filepath.Join(dir, "lhs.png")

	out, err := execute(t, "lhs", "--factor", "height=50,200", "--factor", "width=0,1",
		"--samples", "30", "--seed", "3", "--sampler", "lhs", "--plot", plotPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 31)
	assert.Equal(t, "height,width", lines[0])

	png, err := os.ReadFile(plotPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	again, err := execute(t, "lhs", "--factor", "height=50,200", "--factor", "width=0,1",
		"--samples", "30", "--seed", "3", "--sampler", "lhs")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestLHSCommand_InvalidBounds(t *testing.T) {
	_, err := execute(t, "lhs", "--factor", "height=low,high", "--samples", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bounds must be two finite numbers")
}

func TestCollectFactors_LHS(t *testing.T) {
	factors, err := collectFactors(outputFlags{factors: []string{" h = 1, 2"}}, design.ModeLHS)
	require.NoError(t, err)
	require.Len(t, factors, 1)
	assert.Equal(t, "h", factors[0].Name)
	assert.Equal(t, design.Bounds{Min: 1, Max: 2}, factors[0].Bounds)
}

func TestSamplersCommand(t *testing.T) {
	out, err := execute(t, "samplers")
	require.NoError(t, err)
	assert.Equal(t, "* lhsmdu\n  lhs\n", out)
}
