// Package presets provides the built-in regional market presets and the
// default scenario derived from them.
package presets

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/stwalsh4118/rentbuy/internal/models"
	"github.com/stwalsh4118/rentbuy/internal/simulator"
)

// DefaultPresetID is the preset the default scenario is built from.
const DefaultPresetID = "orange-county-ca"

//go:embed presets.toml
var embedded []byte

// presetFile maps the TOML document layout.
type presetFile struct {
	Presets []models.RegionalPreset `toml:"preset"`
}

var loadEmbedded = sync.OnceValues(func() ([]models.RegionalPreset, error) {
	return Decode(bytes.NewReader(embedded))
})

// LoadEmbedded returns the presets compiled into the binary.
// The returned slice is a copy and may be modified by the caller.
func LoadEmbedded() ([]models.RegionalPreset, error) {
	list, err := loadEmbedded()
	if err != nil {
		return nil, err
	}
	out := make([]models.RegionalPreset, len(list))
	copy(out, list)
	return out, nil
}

// LoadFile reads presets from a TOML file using the same layout as the
// embedded document.
func LoadFile(path string) ([]models.RegionalPreset, error) {
	if path == "" {
		return nil, fmt.Errorf("preset file path is empty")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preset file: %w", err)
	}
	defer f.Close()

	list, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// Decode parses a TOML preset document. Presets keep their document order,
// recorded in SortOrder. IDs must be present and unique.
func Decode(r io.Reader) ([]models.RegionalPreset, error) {
	var doc presetFile
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode presets: %w", err)
	}
	if len(doc.Presets) == 0 {
		return nil, fmt.Errorf("no presets defined")
	}

	seen := make(map[string]struct{}, len(doc.Presets))
	for i := range doc.Presets {
		p := &doc.Presets[i]
		if p.ID == "" {
			return nil, fmt.Errorf("preset %d has no id", i+1)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("duplicate preset id %q", p.ID)
		}
		if p.HomePrice <= 0 || p.CurrentRent <= 0 {
			return nil, fmt.Errorf("preset %q: home_price and current_rent must be positive", p.ID)
		}
		seen[p.ID] = struct{}{}
		p.SortOrder = i
	}

	return doc.Presets, nil
}

// Find returns the preset with the given id.
func Find(list []models.RegionalPreset, id string) (models.RegionalPreset, bool) {
	for _, p := range list {
		if p.ID == id {
			return p, true
		}
	}
	return models.RegionalPreset{}, false
}

// DefaultInputs returns the baseline scenario: the default regional preset
// combined with typical financing and market assumptions.
func DefaultInputs() simulator.ScenarioInputs {
	base := simulator.ScenarioInputs{
		DownPaymentPct:           0.20,
		MortgageRate:             0.065,
		LoanTermYears:            30,
		TimeHorizonYears:         20,
		MaintenanceInsuranceRate: 0.01,
		ClosingCostsPct:          0.03,
		SellingCostsPct:          0.07,
		InvestmentReturnRate:     0.10,
		MarginalTaxRate:          0.24,
		IncludeTaxBenefits:       true,
	}

	list, err := loadEmbedded()
	if err != nil {
		panic(fmt.Sprintf("presets: embedded presets are invalid: %v", err))
	}
	p, ok := Find(list, DefaultPresetID)
	if !ok {
		panic("presets: default preset " + DefaultPresetID + " is missing")
	}
	return p.ApplyTo(base)
}
