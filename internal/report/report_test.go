package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/rentbuy/internal/presets"
	"github.com/stwalsh4118/rentbuy/internal/simulator"
)

func TestFormatter_Currency(t *testing.T) {
	f := NewFormatter()

	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{name: "zero", value: 0, expected: "$0"},
		{name: "small", value: 999.49, expected: "$999"},
		{name: "rounds half up", value: 2843.5, expected: "$2,844"},
		{name: "thousands", value: 1000, expected: "$1,000"},
		{name: "millions", value: 1234567.89, expected: "$1,234,568"},
		{name: "negative", value: -45210.2, expected: "-$45,210"},
		{name: "negative rounds to zero", value: -0.4, expected: "$0"},
		{name: "nan", value: math.NaN(), expected: "n/a"},
		{name: "infinity", value: math.Inf(1), expected: "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.Currency(tt.value))
		})
	}
}

func TestFormatter_Percent(t *testing.T) {
	f := NewFormatter()

	assert.Equal(t, "0.62%", f.Percent(0.0062))
	assert.Equal(t, "1.1%", f.Percent(0.011))
	assert.Equal(t, "4%", f.Percent(0.04))
	assert.Equal(t, "-2.5%", f.Percent(-0.025))
	assert.Equal(t, "n/a", f.Percent(math.NaN()))
}

func TestRenderer_Scenario_RentWins(t *testing.T) {
	in := presets.DefaultInputs()
	out := simulator.Simulate(in)
	require.Equal(t, simulator.WinnerRent, out.Winner)

	var buf bytes.Buffer
	r := NewRenderer(&buf)
	require.NoError(t, r.Scenario("Orange County, CA", in, out))

	text := buf.String()
	assert.True(t, strings.HasPrefix(text, "Orange County, CA\n"))
	assert.Contains(t, text, "BUYING")
	assert.Contains(t, text, "RENTING + INVESTING  * WINNER")
	assert.NotContains(t, text, "BUYING  * WINNER")
	assert.Contains(t, text, r.Formatter().Currency(out.NetHomeEquity))
	assert.Contains(t, text, r.Formatter().Currency(out.InvestmentPortfolioValue))
	assert.Contains(t, text, r.Formatter().Currency(in.CurrentRent)+"/mo")
	assert.Contains(t, text, "Renting + investing wins by "+r.Formatter().Currency(math.Abs(out.NetDifference)))
	assert.Contains(t, text, "After 20 years")
	assert.NotContains(t, text, "\x1b[", "non-terminal output must not carry ANSI escapes")
}

func TestRenderer_Scenario_Verdicts(t *testing.T) {
	year := 7

	tests := []struct {
		name     string
		out      simulator.ScenarioOutputs
		contains []string
	}{
		{
			name: "buy wins",
			out: simulator.ScenarioOutputs{
				NetDifference: 152340.6,
				Winner:        simulator.WinnerBuy,
				BreakEvenYear: &year,
			},
			contains: []string{"BUYING  * WINNER", "Buying wins by $152,341", "Buying pulls ahead in year 7"},
		},
		{
			name: "tie",
			out: simulator.ScenarioOutputs{
				NetDifference: -420,
				Winner:        simulator.WinnerTie,
			},
			contains: []string{"It's essentially a tie (within $1,000)", "Buying never pulls ahead"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			in := presets.DefaultInputs()
			require.NoError(t, NewRenderer(&buf).Scenario("", in, tt.out))

			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestRenderer_Presets(t *testing.T) {
	list, err := presets.LoadEmbedded()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf).Presets(list))

	text := buf.String()
	assert.Contains(t, text, "REGION")
	for _, p := range list {
		assert.Contains(t, text, p.ID)
	}
	assert.Contains(t, text, "Phoenix, AZ")
	assert.Contains(t, text, "$480,000")
	assert.Contains(t, text, "0.62%")
}
