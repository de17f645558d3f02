package main

import (
	"github.com/spf13/cobra"
	"github.com/stwalsh4118/rentbuy/internal/services"
)

// floatFlag binds a --flag to one float override.
type floatFlag struct {
	name  string
	usage string
	field func(o *services.ScenarioOverrides) **float64
}

// intFlag binds a --flag to one integer override.
type intFlag struct {
	name  string
	usage string
	field func(o *services.ScenarioOverrides) **int
}

var floatFlags = []floatFlag{
	{"home-price", "purchase price in dollars", func(o *services.ScenarioOverrides) **float64 { return &o.HomePrice }},
	{"down-payment-pct", "down payment as a fraction of price (0-1)", func(o *services.ScenarioOverrides) **float64 { return &o.DownPaymentPct }},
	{"mortgage-rate", "annual mortgage rate (0.065 = 6.5%)", func(o *services.ScenarioOverrides) **float64 { return &o.MortgageRate }},
	{"property-tax-rate", "annual property tax rate on assessed value", func(o *services.ScenarioOverrides) **float64 { return &o.PropertyTaxRate }},
	{"assessed-value-growth-rate", "annual growth of the assessed value", func(o *services.ScenarioOverrides) **float64 { return &o.AssessedValueGrowthRate }},
	{"hoa-monthly", "monthly HOA dues in dollars", func(o *services.ScenarioOverrides) **float64 { return &o.HOAMonthly }},
	{"maintenance-insurance-rate", "annual maintenance and insurance as a fraction of home value", func(o *services.ScenarioOverrides) **float64 { return &o.MaintenanceInsuranceRate }},
	{"closing-costs-pct", "closing costs as a fraction of price", func(o *services.ScenarioOverrides) **float64 { return &o.ClosingCostsPct }},
	{"selling-costs-pct", "selling costs as a fraction of the final home value", func(o *services.ScenarioOverrides) **float64 { return &o.SellingCostsPct }},
	{"home-appreciation-rate", "annual home appreciation", func(o *services.ScenarioOverrides) **float64 { return &o.HomeAppreciationRate }},
	{"rent-inflation-rate", "annual rent increase", func(o *services.ScenarioOverrides) **float64 { return &o.RentInflationRate }},
	{"investment-return-rate", "annual return on invested savings", func(o *services.ScenarioOverrides) **float64 { return &o.InvestmentReturnRate }},
	{"current-rent", "starting monthly rent in dollars", func(o *services.ScenarioOverrides) **float64 { return &o.CurrentRent }},
	{"marginal-tax-rate", "marginal income tax rate used for deductions", func(o *services.ScenarioOverrides) **float64 { return &o.MarginalTaxRate }},
}

var intFlags = []intFlag{
	{"loan-term-years", "mortgage term in years", func(o *services.ScenarioOverrides) **int { return &o.LoanTermYears }},
	{"time-horizon-years", "years to project", func(o *services.ScenarioOverrides) **int { return &o.TimeHorizonYears }},
}

const includeTaxBenefitsFlag = "include-tax-benefits"

func registerOverrideFlags(cmd *cobra.Command) {
	for _, f := range floatFlags {
		cmd.Flags().Float64(f.name, 0, f.usage)
	}
	for _, f := range intFlags {
		cmd.Flags().Int(f.name, 0, f.usage)
	}
	cmd.Flags().Bool(includeTaxBenefitsFlag, true, "apply mortgage interest and property tax deductions")
}

// overridesFromFlags collects only the flags the user set explicitly.
func overridesFromFlags(cmd *cobra.Command) (services.ScenarioOverrides, error) {
	var o services.ScenarioOverrides

	for _, f := range floatFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v, err := cmd.Flags().GetFloat64(f.name)
		if err != nil {
			return o, err
		}
		*f.field(&o) = &v
	}

	for _, f := range intFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v, err := cmd.Flags().GetInt(f.name)
		if err != nil {
			return o, err
		}
		*f.field(&o) = &v
	}

	if cmd.Flags().Changed(includeTaxBenefitsFlag) {
		v, err := cmd.Flags().GetBool(includeTaxBenefitsFlag)
		if err != nil {
			return o, err
		}
		o.IncludeTaxBenefits = &v
	}

	return o, nil
}
