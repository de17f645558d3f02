package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/rentbuy/internal/models"
	"github.com/stwalsh4118/rentbuy/internal/presets"
	"github.com/stwalsh4118/rentbuy/internal/services"
	"github.com/stwalsh4118/rentbuy/internal/simulator"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func simulateJSON(t *testing.T, args ...string) services.ScenarioResult {
	t.Helper()
	stdout, _, err := run(t, append([]string{"simulate", "--json"}, args...)...)
	require.NoError(t, err)

	var result services.ScenarioResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	return result
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSimulate_Defaults(t *testing.T) {
	result := simulateJSON(t)

	assert.Nil(t, result.Preset)
	assert.Equal(t, presets.DefaultInputs(), result.Inputs)
	assert.Equal(t, simulator.Simulate(presets.DefaultInputs()).Winner, result.Outputs.Winner)
}

func TestSimulate_Report(t *testing.T) {
	stdout, stderr, err := run(t, "simulate", "--preset", "austin-tx")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Austin, TX")
	assert.Contains(t, stdout, "BUYING")
	assert.Contains(t, stdout, "RENTING + INVESTING")
	assert.Contains(t, stdout, "After 20 years")
	assert.Empty(t, stderr, "info logs are below the default CLI level")
}

func TestSimulate_Precedence(t *testing.T) {
	file := writeFile(t, "scenario.toml", `
preset_id = "phoenix-az"
home_price = 500000
investment_return_rate = 0.06
include_tax_benefits = false
`)

	t.Run("file over preset", func(t *testing.T) {
		result := simulateJSON(t, "--file", file)

		require.NotNil(t, result.Preset)
		assert.Equal(t, "phoenix-az", result.Preset.ID)
		assert.Equal(t, 500000.0, result.Inputs.HomePrice)
		assert.Equal(t, 1900.0, result.Inputs.CurrentRent, "preset fields not in the file survive")
		assert.Equal(t, 0.06, result.Inputs.InvestmentReturnRate)
		assert.False(t, result.Inputs.IncludeTaxBenefits)
	})

	t.Run("flags over file", func(t *testing.T) {
		result := simulateJSON(t,
			"--file", file,
			"--preset", "denver-co",
			"--home-price", "650000",
			"--time-horizon-years", "12",
			"--include-tax-benefits=true",
		)

		require.NotNil(t, result.Preset)
		assert.Equal(t, "denver-co", result.Preset.ID)
		assert.Equal(t, 650000.0, result.Inputs.HomePrice)
		assert.Equal(t, 12, result.Inputs.TimeHorizonYears)
		assert.Equal(t, 0.06, result.Inputs.InvestmentReturnRate)
		assert.True(t, result.Inputs.IncludeTaxBenefits)
	})

	t.Run("unset flags keep defaults", func(t *testing.T) {
		result := simulateJSON(t, "--mortgage-rate", "0.05")

		expected := presets.DefaultInputs()
		expected.MortgageRate = 0.05
		assert.Equal(t, expected, result.Inputs)
	})
}

func TestSimulate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    func(t *testing.T) []string
		wantErr string
	}{
		{
			name:    "unknown preset",
			args:    func(*testing.T) []string { return []string{"simulate", "--preset", "gotham"} },
			wantErr: `unknown preset "gotham"`,
		},
		{
			name:    "invalid value",
			args:    func(*testing.T) []string { return []string{"simulate", "--down-payment-pct", "1.5"} },
			wantErr: "invalid scenario: down_payment_pct fails lte=1",
		},
		{
			name:    "overflowing price",
			args:    func(*testing.T) []string { return []string{"simulate", "--json", "--home-price", "1e308"} },
			wantErr: "invalid scenario: home_price fails lte=1000000000",
		},
		{
			name: "unknown file key",
			args: func(t *testing.T) []string {
				return []string{"simulate", "--file", writeFile(t, "bad.toml", "home_prize = 1\n")}
			},
			wantErr: "unknown keys: home_prize",
		},
		{
			name:    "missing file",
			args:    func(*testing.T) []string { return []string{"simulate", "--file", "does-not-exist.toml"} },
			wantErr: "failed to read scenario file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args(t)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSimulate_VanishingMortgageRateJSON(t *testing.T) {
	result := simulateJSON(t, "--mortgage-rate", "1e-17")

	assert.Equal(t, 1e-17, result.Inputs.MortgageRate)
	assert.True(t, result.Outputs.Finite())
}

func TestPresets(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		stdout, _, err := run(t, "presets")
		require.NoError(t, err)
		assert.Contains(t, stdout, "orange-county-ca")
		assert.Contains(t, stdout, "National Average")
	})

	t.Run("json", func(t *testing.T) {
		stdout, _, err := run(t, "presets", "--json")
		require.NoError(t, err)

		var list []models.RegionalPreset
		require.NoError(t, json.Unmarshal([]byte(stdout), &list))
		assert.Len(t, list, 14)
	})

	t.Run("custom file", func(t *testing.T) {
		file := writeFile(t, "presets.toml", `
[[preset]]
id = "smallville-ks"
name = "Smallville, KS"
home_price = 210000
property_tax_rate = 0.013
assessed_value_growth_rate = 0.02
hoa_monthly = 0
home_appreciation_rate = 0.03
current_rent = 1100
rent_inflation_rate = 0.025
`)
		stdout, _, err := run(t, "--presets-file", file, "presets", "--json")
		require.NoError(t, err)

		var list []models.RegionalPreset
		require.NoError(t, json.Unmarshal([]byte(stdout), &list))
		require.Len(t, list, 1)
		assert.Equal(t, "Smallville, KS", list[0].Name)

		result := simulateJSON(t, "--presets-file", file, "--preset", "smallville-ks")
		assert.Equal(t, 210000.0, result.Inputs.HomePrice)
	})
}
