package forecast

import (
	"github.com/i474232898/vending-forecast/internal/machine"
	"github.com/i474232898/vending-forecast/internal/weather"
)

// Report is everything the dashboard shows for one fleet snapshot.
type Report struct {
	MachineCount        int                 `json:"machineCount"`
	TotalDailySales     float64             `json:"totalDailySales"`
	Daily               []DailyForecast     `json:"daily"`
	Summary             WeeklySummary       `json:"summary"`
	BestSellingLocation BestSellingLocation `json:"bestSellingLocation"`
}

// BuildReport runs the whole engine over one snapshot of machines.
func BuildReport(machines []machine.Machine, outlook weather.Outlook) Report {
	daily := ComputeDailyForecasts(machines, outlook)
	return Report{
		MachineCount:        len(machines),
		TotalDailySales:     TotalDailySales(machines),
		Daily:               daily,
		Summary:             ComputeWeeklySummary(machines, daily),
		BestSellingLocation: ComputeBestSellingLocation(machines),
	}
}
