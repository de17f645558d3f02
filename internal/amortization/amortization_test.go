package amortization

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name       string
		loanAmount float64
		annualRate float64
		termYears  int
		expected   float64
		delta      float64
	}{
		{
			name:       "30 year loan at 6.5 percent",
			loanAmount: 760000,
			annualRate: 0.065,
			termYears:  30,
			expected:   4803.72,
			delta:      0.01,
		},
		{
			name:       "15 year loan at 5 percent",
			loanAmount: 200000,
			annualRate: 0.05,
			termYears:  15,
			expected:   1581.59,
			delta:      0.01,
		},
		{
			name:       "zero rate is straight line",
			loanAmount: 360000,
			annualRate: 0,
			termYears:  30,
			expected:   1000,
			delta:      0,
		},
		{
			name:       "zero loan",
			loanAmount: 0,
			annualRate: 0.07,
			termYears:  30,
			expected:   0,
			delta:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyPayment(tt.loanAmount, tt.annualRate, tt.termYears)
			assert.InDelta(t, tt.expected, got, tt.delta)
		})
	}
}

func TestMonthlyPayment_MatchesAnnuityFormula(t *testing.T) {
	loan := 760000.0
	r := 0.065 / 12
	n := 360.0
	expected := loan * (r * math.Pow(1+r, n)) / (math.Pow(1+r, n) - 1)

	assert.InDelta(t, expected, MonthlyPayment(loan, 0.065, 30), 1e-9)
}

func TestMonthlyPayment_ZeroRateExact(t *testing.T) {
	for _, term := range []int{15, 20, 30} {
		loan := 123456.78
		assert.Equal(t, loan/float64(term*12), MonthlyPayment(loan, 0, term))
	}
}

func TestMonthlyPayment_VanishingRateIsStraightLine(t *testing.T) {
	loan := 760000.0
	straight := loan / 360

	tests := []struct {
		name    string
		rate    float64
		epsilon float64
	}{
		{name: "rate below float resolution", rate: 1e-17, epsilon: 1e-12},
		{name: "smallest subnormal rate", rate: math.SmallestNonzeroFloat64, epsilon: 1e-12},
		{name: "tiny representable rate", rate: 1e-12, epsilon: 1e-4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment := MonthlyPayment(loan, tt.rate, 30)
			require.False(t, math.IsNaN(payment) || math.IsInf(payment, 0), "payment %v", payment)
			assert.InEpsilon(t, straight, payment, tt.epsilon)

			balance := RemainingBalance(loan, tt.rate, 30, 120)
			require.False(t, math.IsNaN(balance) || math.IsInf(balance, 0), "balance %v", balance)
			assert.InEpsilon(t, loan-straight*120, balance, tt.epsilon)
		})
	}
}

func TestRemainingBalance_AtOrigination(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		term int
	}{
		{name: "positive rate", rate: 0.065, term: 30},
		{name: "low rate", rate: 0.0025, term: 15},
		{name: "zero rate", rate: 0, term: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := 500000.0
			got := RemainingBalance(loan, tt.rate, tt.term, 0)
			assert.InDelta(t, loan, got, loan*1e-12)
		})
	}
}

func TestRemainingBalance_FullyPaid(t *testing.T) {
	tests := []struct {
		name       string
		rate       float64
		term       int
		monthsPaid int
	}{
		{name: "exactly at term", rate: 0.065, term: 30, monthsPaid: 360},
		{name: "past term", rate: 0.065, term: 30, monthsPaid: 480},
		{name: "zero rate at term", rate: 0, term: 15, monthsPaid: 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, RemainingBalance(400000, tt.rate, tt.term, tt.monthsPaid))
		})
	}
}

func TestRemainingBalance_ZeroRateIsLinear(t *testing.T) {
	loan := 240000.0
	term := 20
	step := loan / float64(term*12)

	previous := loan
	for month := 1; month < term*12; month++ {
		balance := RemainingBalance(loan, 0, term, month)
		assert.InDelta(t, step, previous-balance, 1e-6, "month %d", month)
		previous = balance
	}
}

func TestRemainingBalance_MatchesIterativeAmortization(t *testing.T) {
	loan := 760000.0
	rate := 0.065
	term := 30
	payment := MonthlyPayment(loan, rate, term)

	balance := loan
	for month := 1; month < term*12; month++ {
		interest := InterestPayment(balance, rate)
		balance -= PrincipalPayment(payment, interest)

		closed := RemainingBalance(loan, rate, term, month)
		require.InDelta(t, closed, balance, loan*1e-6, "month %d", month)
	}
}

func TestRemainingBalance_DecreasesMonotonically(t *testing.T) {
	previous := RemainingBalance(300000, 0.07, 30, 0)
	for month := 1; month <= 360; month++ {
		balance := RemainingBalance(300000, 0.07, 30, month)
		assert.Less(t, balance, previous, "month %d", month)
		previous = balance
	}
}

func TestInterestPayment(t *testing.T) {
	assert.InDelta(t, 4116.67, InterestPayment(760000, 0.065), 0.01)
	assert.Equal(t, 0.0, InterestPayment(760000, 0))
	assert.Equal(t, 0.0, InterestPayment(0, 0.065))
}

func TestPrincipalPayment(t *testing.T) {
	assert.Equal(t, 700.0, PrincipalPayment(1000, 300))
	assert.Equal(t, 1000.0, PrincipalPayment(1000, 0))
}

func BenchmarkRemainingBalance(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = RemainingBalance(760000, 0.065, 30, i%360)
	}
}
