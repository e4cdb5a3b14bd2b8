package machine

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/vending-forecast/internal/common"
)

// LocationType is the kind of site a machine is placed at.
type LocationType string

const (
	LocationSchool       LocationType = "SCHOOL"
	LocationShoppingMall LocationType = "SHOPPING MALL"
	LocationHospital     LocationType = "HOSPITAL"
)

// LocationTypes lists every known location type in display order.
var LocationTypes = []LocationType{LocationSchool, LocationShoppingMall, LocationHospital}

// ParseLocationType normalises user input into a LocationType.
// Underscores are accepted in place of spaces and case is ignored.
func ParseLocationType(s string) (LocationType, bool) {
	norm := strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(s, "_", " ")))
	for _, lt := range LocationTypes {
		if string(lt) == norm {
			return lt, true
		}
	}
	return "", false
}

// Valid reports whether lt is one of the known location types.
func (lt LocationType) Valid() bool {
	for _, known := range LocationTypes {
		if lt == known {
			return true
		}
	}
	return false
}

// Machine is a vending machine and the economics used to forecast it.
// AverageProfitMarginPercentage is a fraction in (0, 1], not a percentage.
type Machine struct {
	ID                            int64        `json:"id"`
	Name                          string       `json:"name"`
	LocationType                  LocationType `json:"locationType"`
	ExpectedSalesPerDay           float64      `json:"expectedSalesPerDay"`
	AverageProfitMarginPercentage float64      `json:"averageProfitMarginPercentage"`
	RentCostPerDay                float64      `json:"rentCostPerDay"`
	ElectricCostPerTempPerDay     float64      `json:"electricCostPerTempPerDay"`
}

// Input is the user-editable part of a Machine.
type Input struct {
	Name                          string       `json:"name" toml:"name" validate:"required"`
	LocationType                  LocationType `json:"locationType" toml:"location_type" validate:"required,location_type"`
	ExpectedSalesPerDay           float64      `json:"expectedSalesPerDay" toml:"expected_sales_per_day" validate:"gt=0"`
	AverageProfitMarginPercentage float64      `json:"averageProfitMarginPercentage" toml:"average_profit_margin" validate:"gt=0,lte=1"`
	RentCostPerDay                float64      `json:"rentCostPerDay" toml:"rent_cost_per_day" validate:"gt=0"`
	ElectricCostPerTempPerDay     float64      `json:"electricCostPerTempPerDay" toml:"electric_cost_per_temp_per_day" validate:"gt=0"`
}

// Messages shown for each invalid field.
var fieldMessages = map[string]string{
	"name":                          "Machine name is required.",
	"locationType":                  "Location type is required.",
	"locationType.location_type":    "Location type must be SCHOOL, SHOPPING MALL or HOSPITAL.",
	"expectedSalesPerDay":           "Sales must be greater than 0.",
	"averageProfitMarginPercentage": "Profit margin must be between 0 and 1 (e.g., 0.4 for 40%).",
	"rentCostPerDay":                "Rent cost must be greater than 0.",
	"electricCostPerTempPerDay":     "Electricity cost must be greater than 0.",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(common.JSONTagName)
	_ = v.RegisterValidation("location_type", func(fl validator.FieldLevel) bool {
		return LocationType(fl.Field().String()).Valid()
	})
	return v
}

// ValidationError carries one message per invalid field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid machine: " + joinFields(e.Fields)
}

// Normalize trims the name and canonicalises the location type.
func (in Input) Normalize() Input {
	in.Name = strings.TrimSpace(in.Name)
	if lt, ok := ParseLocationType(string(in.LocationType)); ok {
		in.LocationType = lt
	}
	return in
}

// Validate normalises the input and checks it. The returned error is a
// *ValidationError when any field is rejected.
func (in Input) Validate() (Input, error) {
	in = in.Normalize()
	if err := validate.Struct(in); err != nil {
		fields := common.FieldMessages(err, fieldMessages)
		if fields == nil {
			return in, err
		}
		return in, &ValidationError{Fields: fields}
	}
	return in, nil
}

// WithID builds a Machine from the input.
func (in Input) WithID(id int64) Machine {
	return Machine{
		ID:                            id,
		Name:                          in.Name,
		LocationType:                  in.LocationType,
		ExpectedSalesPerDay:           in.ExpectedSalesPerDay,
		AverageProfitMarginPercentage: in.AverageProfitMarginPercentage,
		RentCostPerDay:                in.RentCostPerDay,
		ElectricCostPerTempPerDay:     in.ElectricCostPerTempPerDay,
	}
}

func joinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
