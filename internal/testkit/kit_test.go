package testkit

import (
	"path/filepath"
	"testing"

	"doegen/adapters/excel"
	"doegen/domain/design"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestKit(t *testing.T) {
	kit, err := NewTestKit()
	require.NoError(t, err)
	assert.NotNil(t, kit.DesignService())
	assert.Equal(t, int64(777), kit.DesignService().DefaultSeed())
}

func TestWriteFactorSheet_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		file    string
		mode    design.Mode
		factors []design.Factor
	}{
		{"doe.csv", design.ModeDOE, DOEFactors()},
		{"doe.xlsx", design.ModeDOE, DOEFactors()},
		{"lhs.csv", design.ModeLHS, LHSFactors()},
		{"lhs.xlsx", design.ModeLHS, LHSFactors()},
		{"quoted.csv", design.ModeDOE, []design.Factor{
			{Name: `bolt "M6"`, Levels: []string{`10"`, `"20`}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, WriteFactorSheet(path, tt.mode, tt.factors))

			got, err := excel.ReadFactors(path, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.factors, got)
		})
	}
}
