package simulator

import "math"

// Winner identifies which path produced the better net result.
type Winner string

const (
	WinnerBuy  Winner = "buy"
	WinnerRent Winner = "rent"
	WinnerTie  Winner = "tie"
)

// TieThreshold is the absolute net difference below which neither path wins.
const TieThreshold = 1000.0

// ScenarioInputs holds the parameters of a single rent-vs-buy scenario.
// Rates are annual fractions (0.065 = 6.5%) and money is in a single currency.
// The validate tags use the custom "finite" rule registered by
// services.NewValidator.
type ScenarioInputs struct {
	// Purchase terms
	HomePrice        float64 `json:"home_price" validate:"gt=0,lte=1000000000,finite"`
	DownPaymentPct   float64 `json:"down_payment_pct" validate:"gte=0,lte=1"`
	MortgageRate     float64 `json:"mortgage_rate" validate:"gte=0,lte=1"`
	LoanTermYears    int     `json:"loan_term_years" validate:"gt=0,lte=50"`
	TimeHorizonYears int     `json:"time_horizon_years" validate:"gte=0,lte=50"`

	// Ownership costs
	PropertyTaxRate          float64 `json:"property_tax_rate" validate:"gte=0,lte=1"`
	AssessedValueGrowthRate  float64 `json:"assessed_value_growth_rate" validate:"gte=-1,lte=1"`
	HOAMonthly               float64 `json:"hoa_monthly" validate:"gte=0,lte=1000000,finite"`
	MaintenanceInsuranceRate float64 `json:"maintenance_insurance_rate" validate:"gte=0,lte=1"`

	// Transaction costs
	ClosingCostsPct float64 `json:"closing_costs_pct" validate:"gte=0,lte=1"`
	SellingCostsPct float64 `json:"selling_costs_pct" validate:"gte=0,lte=1"`

	// Market assumptions
	HomeAppreciationRate float64 `json:"home_appreciation_rate" validate:"gt=-1,lte=1"`
	RentInflationRate    float64 `json:"rent_inflation_rate" validate:"gt=-1,lte=1"`
	InvestmentReturnRate float64 `json:"investment_return_rate" validate:"gt=-1,lte=1"`

	// Renting
	CurrentRent float64 `json:"current_rent" validate:"gt=0,lte=10000000,finite"`

	// Taxes
	MarginalTaxRate    float64 `json:"marginal_tax_rate" validate:"gte=0,lte=1"`
	IncludeTaxBenefits bool    `json:"include_tax_benefits"`
}

// ScenarioOutputs is the full comparison produced by Simulate.
// BreakEvenYear is the first year end at which selling would make buying the
// outright winner (the difference clears the tie band), or nil if it never does.
type ScenarioOutputs struct {
	// Buying
	MonthlyPI                float64 `json:"monthly_pi"`
	TotalInterestPaid        float64 `json:"total_interest_paid"`
	TotalPrincipalPaid       float64 `json:"total_principal_paid"`
	TotalPropertyTax         float64 `json:"total_property_tax"`
	TotalHOA                 float64 `json:"total_hoa"`
	TotalMaintenance         float64 `json:"total_maintenance"`
	TotalTaxSavings          float64 `json:"total_tax_savings"`
	HomeFutureValue          float64 `json:"home_future_value"`
	RemainingMortgageBalance float64 `json:"remaining_mortgage_balance"`
	SellingCosts             float64 `json:"selling_costs"`
	NetHomeEquity            float64 `json:"net_home_equity"`
	PureExpensesBuying       float64 `json:"pure_expenses_buying"`
	NetResultBuying          float64 `json:"net_result_buying"`

	// Renting
	TotalRentPaid             float64 `json:"total_rent_paid"`
	InitialInvestment         float64 `json:"initial_investment"`
	TotalMonthlyContributions float64 `json:"total_monthly_contributions"`
	TotalInvested             float64 `json:"total_invested"`
	InvestmentPortfolioValue  float64 `json:"investment_portfolio_value"`
	FinalMonthlyRent          float64 `json:"final_monthly_rent"`
	NetResultRenting          float64 `json:"net_result_renting"`

	// Comparison
	NetDifference float64 `json:"net_difference"`
	Winner        Winner  `json:"winner"`
	BreakEvenYear *int    `json:"break_even_year"`
}

// Finite reports whether every monetary output is a finite number.
func (o ScenarioOutputs) Finite() bool {
	values := []float64{
		o.MonthlyPI, o.TotalInterestPaid, o.TotalPrincipalPaid, o.TotalPropertyTax,
		o.TotalHOA, o.TotalMaintenance, o.TotalTaxSavings, o.HomeFutureValue,
		o.RemainingMortgageBalance, o.SellingCosts, o.NetHomeEquity,
		o.PureExpensesBuying, o.NetResultBuying,
		o.TotalRentPaid, o.InitialInvestment, o.TotalMonthlyContributions,
		o.TotalInvested, o.InvestmentPortfolioValue, o.FinalMonthlyRent,
		o.NetResultRenting, o.NetDifference,
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
