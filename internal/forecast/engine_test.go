package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/vending-forecast/internal/machine"
	"github.com/i474232898/vending-forecast/internal/weather"
)

func newMachine(id int64, lt machine.LocationType, sales, margin, rent, elec float64) machine.Machine {
	return machine.Machine{
		ID:                            id,
		Name:                          string(lt),
		LocationType:                  lt,
		ExpectedSalesPerDay:           sales,
		AverageProfitMarginPercentage: margin,
		RentCostPerDay:                rent,
		ElectricCostPerTempPerDay:     elec,
	}
}

func week() weather.Forecast {
	return weather.Forecast{
		Dates: []string{
			"2026-10-15", "2026-10-16", "2026-10-17", "2026-10-18",
			"2026-10-19", "2026-10-20", "2026-10-21",
		},
		MinTemperature: []float64{24, 25, 26, 23, 22, 24, 25},
		MaxTemperature: []float64{32, 33, 34, 31, 30, 32, 35},
	}
}

// demoFleet mirrors the machines the dashboard is seeded with.
func demoFleet() []machine.Machine {
	return []machine.Machine{
		newMachine(1, machine.LocationShoppingMall, 6500, 0.45, 550, 12),
		newMachine(2, machine.LocationHospital, 8000, 0.5, 600, 15),
		newMachine(3, machine.LocationSchool, 4500, 0.4, 300, 10),
	}
}

func TestSingleMachineOneDay(t *testing.T) {
	machines := []machine.Machine{newMachine(1, machine.LocationSchool, 1000, 0.5, 100, 10)}
	outlook := weather.Present(weather.Forecast{
		Dates:          []string{"2026-10-15"},
		MinTemperature: []float64{20},
		MaxTemperature: []float64{30},
	})

	got := ComputeDailyForecasts(machines, outlook)
	require.Equal(t, []DailyForecast{{
		Date:                 "2026-10-15",
		AverageTemperature:   25,
		TotalElectricityCost: 250,
		NetProfitLoss:        150,
	}}, got)
}

func TestDailyForecastsFleet(t *testing.T) {
	got := ComputeDailyForecasts(demoFleet(), weather.Present(week()))
	require.Len(t, got, 7)

	// gross = 2925 + 4000 + 1800, rent = 1450, elec coefficient = 37
	assert.Equal(t, "2026-10-15", got[0].Date)
	assert.Equal(t, 28.0, got[0].AverageTemperature)
	assert.InDelta(t, 37*28.0, got[0].TotalElectricityCost, 1e-9)
	assert.InDelta(t, 8725-1450-37*28.0, got[0].NetProfitLoss, 1e-9)

	assert.Equal(t, "2026-10-21", got[6].Date)
	assert.Equal(t, 30.0, got[6].AverageTemperature)
	assert.InDelta(t, 8725-1450-37*30.0, got[6].NetProfitLoss, 1e-9)
}

func TestDailyForecastsMarginIsAFraction(t *testing.T) {
	machines := []machine.Machine{newMachine(1, machine.LocationSchool, 1000, 0.45, 0, 0)}
	outlook := weather.Present(weather.Forecast{
		Dates:          []string{"2026-10-15"},
		MinTemperature: []float64{0},
		MaxTemperature: []float64{0},
	})

	got := ComputeDailyForecasts(machines, outlook)
	require.Len(t, got, 1)
	assert.InDelta(t, 450, got[0].NetProfitLoss, 1e-9)
}

func TestDailyForecastsNegativeTemperatures(t *testing.T) {
	machines := []machine.Machine{newMachine(1, machine.LocationSchool, 1000, 0.5, 100, 10)}
	outlook := weather.Present(weather.Forecast{
		Dates:          []string{"2026-01-01"},
		MinTemperature: []float64{-10},
		MaxTemperature: []float64{0},
	})

	got := ComputeDailyForecasts(machines, outlook)
	require.Len(t, got, 1)
	assert.Equal(t, -5.0, got[0].AverageTemperature)
	assert.Equal(t, -50.0, got[0].TotalElectricityCost)
	assert.Equal(t, 450.0, got[0].NetProfitLoss)
}

func TestDailyForecastsEmptyInputs(t *testing.T) {
	got := ComputeDailyForecasts(nil, weather.Present(week()))
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, ComputeDailyForecasts(demoFleet(), weather.Absent()))
	assert.Empty(t, ComputeDailyForecasts(demoFleet(), weather.Outlook{}))
	assert.Empty(t, ComputeDailyForecasts(demoFleet(), weather.Present(weather.Forecast{})))
}

func TestDailyForecastsFollowDayCount(t *testing.T) {
	machines := []machine.Machine{newMachine(1, machine.LocationSchool, 1000, 0.5, 100, 1)}

	for _, n := range []int{1, 3, 7, 10} {
		f := weather.Forecast{}
		for i := 0; i < n; i++ {
			f.Dates = append(f.Dates, "d")
			f.MinTemperature = append(f.MinTemperature, float64(i))
			f.MaxTemperature = append(f.MaxTemperature, float64(i+2))
		}

		got := ComputeDailyForecasts(machines, weather.Present(f))
		require.Len(t, got, n)
		for i, row := range got {
			assert.Equal(t, float64(i+1), row.AverageTemperature, "day %d of %d", i, n)
		}
	}
}

func TestDailyForecastsStopAtShortestSlice(t *testing.T) {
	machines := []machine.Machine{newMachine(1, machine.LocationSchool, 1000, 0.5, 100, 1)}
	f := week()
	f.MaxTemperature = f.MaxTemperature[:4]

	assert.Len(t, ComputeDailyForecasts(machines, weather.Present(f)), 4)
}

func TestDailyForecastsDeterministicAndPure(t *testing.T) {
	machines := demoFleet()
	f := week()
	before := append([]machine.Machine(nil), machines...)

	first := ComputeDailyForecasts(machines, weather.Present(f))
	second := ComputeDailyForecasts(machines, weather.Present(f))

	assert.Equal(t, first, second)
	assert.Equal(t, before, machines)
	assert.Equal(t, week(), f)
}

func TestWeeklySummary(t *testing.T) {
	machines := demoFleet()
	daily := ComputeDailyForecasts(machines, weather.Present(week()))

	got := ComputeWeeklySummary(machines, daily)

	var elec, net float64
	for _, d := range daily {
		elec += d.TotalElectricityCost
		net += d.NetProfitLoss
	}
	assert.Equal(t, 19000.0*7, got.TotalRevenue)
	assert.Equal(t, 1450.0*7, got.TotalRent)
	assert.Equal(t, elec, got.TotalElectricity)
	assert.Equal(t, net, got.NetProfit)
}

func TestWeeklySummaryUsesRowCount(t *testing.T) {
	machines := demoFleet()
	f := week()
	f.Dates, f.MinTemperature, f.MaxTemperature = f.Dates[:3], f.MinTemperature[:3], f.MaxTemperature[:3]

	got := ComputeWeeklySummary(machines, ComputeDailyForecasts(machines, weather.Present(f)))
	assert.Equal(t, 19000.0*3, got.TotalRevenue)
	assert.Equal(t, 1450.0*3, got.TotalRent)
}

func TestWeeklySummaryEmpty(t *testing.T) {
	daily := ComputeDailyForecasts(demoFleet(), weather.Present(week()))

	assert.Equal(t, WeeklySummary{}, ComputeWeeklySummary(nil, nil))
	assert.Equal(t, WeeklySummary{}, ComputeWeeklySummary(nil, daily))
	assert.Equal(t, WeeklySummary{}, ComputeWeeklySummary(demoFleet(), nil))
}

func TestBestSellingLocation(t *testing.T) {
	machines := []machine.Machine{
		newMachine(1, machine.LocationSchool, 3000, 0.5, 1, 1),
		newMachine(2, machine.LocationHospital, 4000, 0.5, 1, 1),
		newMachine(3, machine.LocationSchool, 2000, 0.5, 1, 1),
		newMachine(4, machine.LocationShoppingMall, 4500, 0.5, 1, 1),
	}

	got := ComputeBestSellingLocation(machines)
	assert.Equal(t, BestSellingLocation{LocationType: "SCHOOL", DailySales: 5000}, got)
}

func TestBestSellingLocationTieGoesToFirstSeen(t *testing.T) {
	machines := []machine.Machine{
		newMachine(1, machine.LocationSchool, 1000, 0.5, 1, 1),
		newMachine(2, machine.LocationHospital, 1000, 0.5, 1, 1),
	}
	assert.Equal(t, BestSellingLocation{LocationType: "SCHOOL", DailySales: 1000}, ComputeBestSellingLocation(machines))

	machines[0], machines[1] = machines[1], machines[0]
	assert.Equal(t, BestSellingLocation{LocationType: "HOSPITAL", DailySales: 1000}, ComputeBestSellingLocation(machines))
}

func TestBestSellingLocationTieAfterAccumulation(t *testing.T) {
	// HOSPITAL is seen first and only reaches the tie after its second machine.
	machines := []machine.Machine{
		newMachine(1, machine.LocationHospital, 500, 0.5, 1, 1),
		newMachine(2, machine.LocationShoppingMall, 1000, 0.5, 1, 1),
		newMachine(3, machine.LocationHospital, 500, 0.5, 1, 1),
	}
	assert.Equal(t, "HOSPITAL", ComputeBestSellingLocation(machines).LocationType)
}

func TestBestSellingLocationEmpty(t *testing.T) {
	assert.Equal(t, BestSellingLocation{LocationType: "N/A", DailySales: 0}, ComputeBestSellingLocation(nil))
}

func TestBuildReport(t *testing.T) {
	r := BuildReport(demoFleet(), weather.Present(week()))
	assert.Equal(t, 3, r.MachineCount)
	assert.Equal(t, 19000.0, r.TotalDailySales)
	assert.Len(t, r.Daily, 7)
	assert.Equal(t, ComputeWeeklySummary(demoFleet(), r.Daily), r.Summary)
	assert.Equal(t, BestSellingLocation{LocationType: "HOSPITAL", DailySales: 8000}, r.BestSellingLocation)

	empty := BuildReport(nil, weather.Absent())
	assert.Equal(t, 0, empty.MachineCount)
	assert.Empty(t, empty.Daily)
	assert.Equal(t, WeeklySummary{}, empty.Summary)
	assert.Equal(t, NoLocation, empty.BestSellingLocation.LocationType)
}
