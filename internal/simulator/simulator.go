// Package simulator runs the month-by-month rent vs buy projection.
//
// The renter is modeled with the same monthly budget as the owner: the
// upfront cash a buyer would spend (down payment plus closing costs) is
// invested on day one, and every month in which owning costs more than
// renting the difference is invested as well. Simulate performs no I/O,
// holds no state between calls and never returns an error. Inputs are
// assumed to be validated by the caller.
package simulator

import (
	"math"

	"github.com/stwalsh4118/rentbuy/internal/amortization"
)

// buyingTotals accumulates the owner's costs over the simulation.
type buyingTotals struct {
	interest    float64
	principal   float64
	propertyTax float64
	hoa         float64
	maintenance float64
	taxSavings  float64
}

// position is the wealth comparison evaluated at a given month.
type position struct {
	remainingBalance float64
	sellingCosts     float64
	netHomeEquity    float64
	pureExpenses     float64
	netBuying        float64
	netRenting       float64
	netDifference    float64
}

// Simulate projects both paths over the scenario's time horizon.
func Simulate(in ScenarioInputs) ScenarioOutputs {
	out, _ := run(in)
	return out
}

// run performs the simulation and also returns the month-by-month running
// mortgage balance at the end of the horizon.
func run(in ScenarioInputs) (ScenarioOutputs, float64) {
	downPayment := in.HomePrice * in.DownPaymentPct
	loanAmount := in.HomePrice - downPayment
	closingCosts := in.HomePrice * in.ClosingCostsPct
	monthlyPI := amortization.MonthlyPayment(loanAmount, in.MortgageRate, in.LoanTermYears)

	var totals buyingTotals
	var totalRentPaid, totalContributions float64

	initialInvestment := downPayment + closingCosts
	portfolio := initialInvestment

	homeValue := in.HomePrice
	assessedValue := in.HomePrice
	rent := in.CurrentRent
	balance := loanAmount

	monthlyInvestmentRate := monthlyRate(in.InvestmentReturnRate)
	monthlyAppreciation := monthlyRate(in.HomeAppreciationRate)

	var breakEvenYear *int
	totalMonths := in.TimeHorizonYears * amortization.MonthsPerYear

	for month := 1; month <= totalMonths; month++ {
		newYear := month > 1 && month%amortization.MonthsPerYear == 1

		// Buying
		if month > 1 {
			homeValue *= 1 + monthlyAppreciation
		}
		if newYear {
			assessedValue *= 1 + in.AssessedValueGrowthRate
		}

		interest := amortization.InterestPayment(balance, in.MortgageRate)
		principal := amortization.PrincipalPayment(monthlyPI, interest)
		// Payments past payoff do not reduce the balance below zero.
		if principal > balance {
			principal = balance
		}
		balance -= principal

		propertyTax := assessedValue * in.PropertyTaxRate / amortization.MonthsPerYear
		maintenance := homeValue * in.MaintenanceInsuranceRate / amortization.MonthsPerYear
		hoa := in.HOAMonthly

		var taxSavings float64
		if in.IncludeTaxBenefits {
			taxSavings = (interest + propertyTax) * in.MarginalTaxRate
		}

		totals.interest += interest
		totals.principal += principal
		totals.propertyTax += propertyTax
		totals.hoa += hoa
		totals.maintenance += maintenance
		totals.taxSavings += taxSavings

		ownerCost := monthlyPI + propertyTax + hoa + maintenance - taxSavings

		// Renting
		if newYear {
			rent *= 1 + in.RentInflationRate
		}
		totalRentPaid += rent

		var contribution float64
		if gap := ownerCost - rent; gap > 0 {
			contribution = gap
			totalContributions += gap
		}

		portfolio *= 1 + monthlyInvestmentRate
		portfolio += contribution

		if breakEvenYear == nil && month%amortization.MonthsPerYear == 0 {
			p := settle(in, loanAmount, month, homeValue, totals, portfolio, totalRentPaid)
			if ClassifyWinner(p.netDifference) == WinnerBuy {
				year := month / amortization.MonthsPerYear
				breakEvenYear = &year
			}
		}
	}

	final := settle(in, loanAmount, totalMonths, homeValue, totals, portfolio, totalRentPaid)

	out := ScenarioOutputs{
		MonthlyPI:                monthlyPI,
		TotalInterestPaid:        totals.interest,
		TotalPrincipalPaid:       totals.principal,
		TotalPropertyTax:         totals.propertyTax,
		TotalHOA:                 totals.hoa,
		TotalMaintenance:         totals.maintenance,
		TotalTaxSavings:          totals.taxSavings,
		HomeFutureValue:          homeValue,
		RemainingMortgageBalance: final.remainingBalance,
		SellingCosts:             final.sellingCosts,
		NetHomeEquity:            final.netHomeEquity,
		PureExpensesBuying:       final.pureExpenses,
		NetResultBuying:          final.netBuying,

		TotalRentPaid:             totalRentPaid,
		InitialInvestment:         initialInvestment,
		TotalMonthlyContributions: totalContributions,
		TotalInvested:             initialInvestment + totalContributions,
		InvestmentPortfolioValue:  portfolio,
		FinalMonthlyRent:          rent,
		NetResultRenting:          final.netRenting,

		NetDifference: final.netDifference,
		Winner:        ClassifyWinner(final.netDifference),
		BreakEvenYear: breakEvenYear,
	}

	return out, balance
}

// settle evaluates both net results as if the home were sold after month.
// Only costs that are permanently gone count against the owner; principal
// and the down payment are already inside the equity.
func settle(in ScenarioInputs, loanAmount float64, month int, homeValue float64, totals buyingTotals, portfolio, rentPaid float64) position {
	var p position

	p.remainingBalance = amortization.RemainingBalance(loanAmount, in.MortgageRate, in.LoanTermYears, month)
	p.sellingCosts = homeValue * in.SellingCostsPct
	p.netHomeEquity = homeValue - p.remainingBalance - p.sellingCosts
	p.pureExpenses = totals.interest + totals.propertyTax + totals.hoa + totals.maintenance +
		p.sellingCosts - totals.taxSavings
	p.netBuying = p.netHomeEquity - p.pureExpenses
	p.netRenting = portfolio - rentPaid
	p.netDifference = p.netBuying - p.netRenting

	return p
}

// ClassifyWinner maps a net difference (buying minus renting) to a Winner.
func ClassifyWinner(netDifference float64) Winner {
	switch {
	case math.Abs(netDifference) < TieThreshold:
		return WinnerTie
	case netDifference > 0:
		return WinnerBuy
	default:
		return WinnerRent
	}
}

// monthlyRate converts an annual growth rate to its compounding monthly equivalent.
func monthlyRate(annual float64) float64 {
	return math.Pow(1+annual, 1.0/amortization.MonthsPerYear) - 1
}
