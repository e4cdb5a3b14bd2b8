// Package forecast projects daily profit and loss for a machine fleet from a
// temperature forecast. Every function is pure: inputs are never mutated and
// results are rebuilt on each call.
package forecast

import (
	"github.com/i474232898/vending-forecast/internal/machine"
	"github.com/i474232898/vending-forecast/internal/weather"
)

// NoLocation is reported as the best-selling location of an empty fleet.
const NoLocation = "N/A"

// DailyForecast is the projection for a single forecast day.
type DailyForecast struct {
	Date                 string  `json:"date"`
	AverageTemperature   float64 `json:"averageTemperature"`
	TotalElectricityCost float64 `json:"totalElectricityCost"`
	NetProfitLoss        float64 `json:"netProfitLoss"`
}

// WeeklySummary totals the whole forecast window.
type WeeklySummary struct {
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalRent        float64 `json:"totalRent"`
	TotalElectricity float64 `json:"totalElectricity"`
	NetProfit        float64 `json:"netProfit"`
}

// BestSellingLocation is the location type with the highest combined daily sales.
type BestSellingLocation struct {
	LocationType string  `json:"locationType"`
	DailySales   float64 `json:"dailySales"`
}

// TotalDailySales sums expected sales across machines.
func TotalDailySales(machines []machine.Machine) float64 {
	var sum float64
	for _, m := range machines {
		sum += m.ExpectedSalesPerDay
	}
	return sum
}

// TotalDailyRent sums rent across machines.
func TotalDailyRent(machines []machine.Machine) float64 {
	var sum float64
	for _, m := range machines {
		sum += m.RentCostPerDay
	}
	return sum
}

// TotalGrossProfit sums sales times margin across machines.
func TotalGrossProfit(machines []machine.Machine) float64 {
	var sum float64
	for _, m := range machines {
		sum += m.ExpectedSalesPerDay * m.AverageProfitMarginPercentage
	}
	return sum
}

// ComputeDailyForecasts returns one row per forecast day, in forecast order.
// It returns an empty slice when there are no machines or no forecast.
//
// Only days with a date and both temperatures are projected; trailing
// entries of longer slices are ignored.
func ComputeDailyForecasts(machines []machine.Machine, outlook weather.Outlook) []DailyForecast {
	f, ok := outlook.Forecast()
	if !ok || len(machines) == 0 {
		return []DailyForecast{}
	}

	rent := TotalDailyRent(machines)
	gross := TotalGrossProfit(machines)

	days := f.Days()
	out := make([]DailyForecast, 0, days)
	for i := 0; i < days; i++ {
		avg := (f.MinTemperature[i] + f.MaxTemperature[i]) / 2

		var electricity float64
		for _, m := range machines {
			electricity += m.ElectricCostPerTempPerDay * avg
		}

		out = append(out, DailyForecast{
			Date:                 f.Dates[i],
			AverageTemperature:   avg,
			TotalElectricityCost: electricity,
			NetProfitLoss:        gross - rent - electricity,
		})
	}
	return out
}

// ComputeWeeklySummary totals the forecast window. Electricity and net profit
// are sums of the daily rows, so they always agree with them.
func ComputeWeeklySummary(machines []machine.Machine, daily []DailyForecast) WeeklySummary {
	if len(machines) == 0 || len(daily) == 0 {
		return WeeklySummary{}
	}

	days := float64(len(daily))
	s := WeeklySummary{
		TotalRevenue: TotalDailySales(machines) * days,
		TotalRent:    TotalDailyRent(machines) * days,
	}
	for _, d := range daily {
		s.TotalElectricity += d.TotalElectricityCost
		s.NetProfit += d.NetProfitLoss
	}
	return s
}

// ComputeBestSellingLocation groups machines by location type and returns the
// group with the highest summed sales. Ties go to the location type seen first.
func ComputeBestSellingLocation(machines []machine.Machine) BestSellingLocation {
	if len(machines) == 0 {
		return BestSellingLocation{LocationType: NoLocation}
	}

	// Keep first-seen order so ties are deterministic.
	var order []machine.LocationType
	sales := make(map[machine.LocationType]float64)
	for _, m := range machines {
		if _, seen := sales[m.LocationType]; !seen {
			order = append(order, m.LocationType)
		}
		sales[m.LocationType] += m.ExpectedSalesPerDay
	}

	best := BestSellingLocation{LocationType: string(order[0]), DailySales: sales[order[0]]}
	for _, lt := range order[1:] {
		if sales[lt] > best.DailySales {
			best = BestSellingLocation{LocationType: string(lt), DailySales: sales[lt]}
		}
	}
	return best
}
