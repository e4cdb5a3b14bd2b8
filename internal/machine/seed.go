package machine

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// seedFile is the on-disk layout of a machine seed file:
//
//	[[machine]]
//	name = "Samyan Mitrtown"
//	location_type = "SHOPPING MALL"
//	expected_sales_per_day = 6500
//	average_profit_margin = 0.45
//	rent_cost_per_day = 550
//	electric_cost_per_temp_per_day = 12
type seedFile struct {
	Machines []Input `toml:"machine"`
}

// DefaultMachines returns the demo fleet the dashboard starts with.
func DefaultMachines() []Input {
	return []Input{
		{
			Name:                          "Samyan Mitrtown",
			LocationType:                  LocationShoppingMall,
			ExpectedSalesPerDay:           6500,
			AverageProfitMarginPercentage: 0.45,
			RentCostPerDay:                550,
			ElectricCostPerTempPerDay:     12,
		},
		{
			Name:                          "King Chulalongkorn Memorial Hospital",
			LocationType:                  LocationHospital,
			ExpectedSalesPerDay:           8000,
			AverageProfitMarginPercentage: 0.5,
			RentCostPerDay:                600,
			ElectricCostPerTempPerDay:     15,
		},
		{
			Name:                          "Faculty of Engineering, Chulalongkorn University",
			LocationType:                  LocationSchool,
			ExpectedSalesPerDay:           4500,
			AverageProfitMarginPercentage: 0.4,
			RentCostPerDay:                300,
			ElectricCostPerTempPerDay:     10,
		},
	}
}

// LoadSeedFile reads and validates machines from a TOML file.
func LoadSeedFile(path string) ([]Input, error) {
	var f seedFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return validateSeed(f.Machines)
}

// ParseSeed is LoadSeedFile for in-memory TOML.
func ParseSeed(data string) ([]Input, error) {
	var f seedFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return validateSeed(f.Machines)
}

func validateSeed(in []Input) ([]Input, error) {
	out := make([]Input, 0, len(in))
	for i, m := range in {
		valid, err := m.Validate()
		if err != nil {
			return nil, fmt.Errorf("seed machine %d (%q): %w", i, m.Name, err)
		}
		out = append(out, valid)
	}
	return out, nil
}
