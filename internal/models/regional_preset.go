package models

import (
	"github.com/stwalsh4118/rentbuy/internal/simulator"
)

// RegionalPreset represents typical market conditions for a metropolitan area.
// It covers the subset of scenario inputs that vary by region.
type RegionalPreset struct {
	ID                      string  `toml:"id" json:"id" db:"id"`
	Name                    string  `toml:"name" json:"name" db:"name"`
	HomePrice               float64 `toml:"home_price" json:"home_price" db:"home_price"`
	PropertyTaxRate         float64 `toml:"property_tax_rate" json:"property_tax_rate" db:"property_tax_rate"`
	AssessedValueGrowthRate float64 `toml:"assessed_value_growth_rate" json:"assessed_value_growth_rate" db:"assessed_value_growth_rate"`
	HOAMonthly              float64 `toml:"hoa_monthly" json:"hoa_monthly" db:"hoa_monthly"`
	HomeAppreciationRate    float64 `toml:"home_appreciation_rate" json:"home_appreciation_rate" db:"home_appreciation_rate"`
	CurrentRent             float64 `toml:"current_rent" json:"current_rent" db:"current_rent"`
	RentInflationRate       float64 `toml:"rent_inflation_rate" json:"rent_inflation_rate" db:"rent_inflation_rate"`
	SortOrder               int     `toml:"-" json:"-" db:"sort_order"`
}

// TableName returns the SQL table holding presets.
func (RegionalPreset) TableName() string {
	return "regional_presets"
}

// ApplyTo returns a copy of inputs with the regional fields replaced by the preset's values.
func (p RegionalPreset) ApplyTo(inputs simulator.ScenarioInputs) simulator.ScenarioInputs {
	inputs.HomePrice = p.HomePrice
	inputs.PropertyTaxRate = p.PropertyTaxRate
	inputs.AssessedValueGrowthRate = p.AssessedValueGrowthRate
	inputs.HOAMonthly = p.HOAMonthly
	inputs.HomeAppreciationRate = p.HomeAppreciationRate
	inputs.CurrentRent = p.CurrentRent
	inputs.RentInflationRate = p.RentInflationRate
	return inputs
}
