package services

import (
	"github.com/stwalsh4118/rentbuy/internal/models"
	"github.com/stwalsh4118/rentbuy/internal/simulator"
)

// ScenarioRequest describes a scenario as a starting point plus edits.
// Inputs are resolved as defaults, then the preset (if any), then overrides.
type ScenarioRequest struct {
	PresetID string `json:"preset_id,omitempty" toml:"preset_id"`
	ScenarioOverrides
}

// ScenarioOverrides holds individual input edits. Nil fields are left unchanged.
type ScenarioOverrides struct {
	HomePrice        *float64 `json:"home_price,omitempty" toml:"home_price"`
	DownPaymentPct   *float64 `json:"down_payment_pct,omitempty" toml:"down_payment_pct"`
	MortgageRate     *float64 `json:"mortgage_rate,omitempty" toml:"mortgage_rate"`
	LoanTermYears    *int     `json:"loan_term_years,omitempty" toml:"loan_term_years"`
	TimeHorizonYears *int     `json:"time_horizon_years,omitempty" toml:"time_horizon_years"`

	PropertyTaxRate          *float64 `json:"property_tax_rate,omitempty" toml:"property_tax_rate"`
	AssessedValueGrowthRate  *float64 `json:"assessed_value_growth_rate,omitempty" toml:"assessed_value_growth_rate"`
	HOAMonthly               *float64 `json:"hoa_monthly,omitempty" toml:"hoa_monthly"`
	MaintenanceInsuranceRate *float64 `json:"maintenance_insurance_rate,omitempty" toml:"maintenance_insurance_rate"`

	ClosingCostsPct *float64 `json:"closing_costs_pct,omitempty" toml:"closing_costs_pct"`
	SellingCostsPct *float64 `json:"selling_costs_pct,omitempty" toml:"selling_costs_pct"`

	HomeAppreciationRate *float64 `json:"home_appreciation_rate,omitempty" toml:"home_appreciation_rate"`
	RentInflationRate    *float64 `json:"rent_inflation_rate,omitempty" toml:"rent_inflation_rate"`
	InvestmentReturnRate *float64 `json:"investment_return_rate,omitempty" toml:"investment_return_rate"`

	CurrentRent *float64 `json:"current_rent,omitempty" toml:"current_rent"`

	MarginalTaxRate    *float64 `json:"marginal_tax_rate,omitempty" toml:"marginal_tax_rate"`
	IncludeTaxBenefits *bool    `json:"include_tax_benefits,omitempty" toml:"include_tax_benefits"`
}

// ScenarioResult is a resolved scenario and its projection.
type ScenarioResult struct {
	Preset  *models.RegionalPreset    `json:"preset,omitempty"`
	Inputs  simulator.ScenarioInputs  `json:"inputs"`
	Outputs simulator.ScenarioOutputs `json:"outputs"`
}

// ApplyTo returns a copy of in with every non-nil override written over it.
func (o ScenarioOverrides) ApplyTo(in simulator.ScenarioInputs) simulator.ScenarioInputs {
	set(&in.HomePrice, o.HomePrice)
	set(&in.DownPaymentPct, o.DownPaymentPct)
	set(&in.MortgageRate, o.MortgageRate)
	set(&in.LoanTermYears, o.LoanTermYears)
	set(&in.TimeHorizonYears, o.TimeHorizonYears)
	set(&in.PropertyTaxRate, o.PropertyTaxRate)
	set(&in.AssessedValueGrowthRate, o.AssessedValueGrowthRate)
	set(&in.HOAMonthly, o.HOAMonthly)
	set(&in.MaintenanceInsuranceRate, o.MaintenanceInsuranceRate)
	set(&in.ClosingCostsPct, o.ClosingCostsPct)
	set(&in.SellingCostsPct, o.SellingCostsPct)
	set(&in.HomeAppreciationRate, o.HomeAppreciationRate)
	set(&in.RentInflationRate, o.RentInflationRate)
	set(&in.InvestmentReturnRate, o.InvestmentReturnRate)
	set(&in.CurrentRent, o.CurrentRent)
	set(&in.MarginalTaxRate, o.MarginalTaxRate)
	set(&in.IncludeTaxBenefits, o.IncludeTaxBenefits)
	return in
}

// Merge returns o with every non-nil field of next layered on top.
func (o ScenarioOverrides) Merge(next ScenarioOverrides) ScenarioOverrides {
	pick(&o.HomePrice, next.HomePrice)
	pick(&o.DownPaymentPct, next.DownPaymentPct)
	pick(&o.MortgageRate, next.MortgageRate)
	pick(&o.LoanTermYears, next.LoanTermYears)
	pick(&o.TimeHorizonYears, next.TimeHorizonYears)
	pick(&o.PropertyTaxRate, next.PropertyTaxRate)
	pick(&o.AssessedValueGrowthRate, next.AssessedValueGrowthRate)
	pick(&o.HOAMonthly, next.HOAMonthly)
	pick(&o.MaintenanceInsuranceRate, next.MaintenanceInsuranceRate)
	pick(&o.ClosingCostsPct, next.ClosingCostsPct)
	pick(&o.SellingCostsPct, next.SellingCostsPct)
	pick(&o.HomeAppreciationRate, next.HomeAppreciationRate)
	pick(&o.RentInflationRate, next.RentInflationRate)
	pick(&o.InvestmentReturnRate, next.InvestmentReturnRate)
	pick(&o.CurrentRent, next.CurrentRent)
	pick(&o.MarginalTaxRate, next.MarginalTaxRate)
	pick(&o.IncludeTaxBenefits, next.IncludeTaxBenefits)
	return o
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func pick[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}
