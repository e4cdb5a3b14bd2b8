package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/i474232898/vending-forecast/internal/weather"
)

// OpenMeteoProvider implements weather.Source for Open-Meteo. No API key is needed.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	http    *jsonClient
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		http:    newJSONClient("openmeteo", client),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) FetchDaily(ctx context.Context, loc weather.Location, days int) (weather.Forecast, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	values.Set("daily", "temperature_2m_max,temperature_2m_min")
	if loc.Timezone != "" {
		values.Set("timezone", loc.Timezone)
	}
	if days > 0 {
		values.Set("forecast_days", strconv.Itoa(days))
	}

	var payload struct {
		Daily struct {
			Time   []string  `json:"time"`
			MaxTem []float64 `json:"temperature_2m_max"`
			MinTem []float64 `json:"temperature_2m_min"`
		} `json:"daily"`
	}

	if err := p.http.getJSON(ctx, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), &payload); err != nil {
		return weather.Forecast{}, err
	}

	f := weather.Forecast{
		Dates:          payload.Daily.Time,
		MinTemperature: payload.Daily.MinTem,
		MaxTemperature: payload.Daily.MaxTem,
	}
	if err := f.Validate(); err != nil {
		return weather.Forecast{}, err
	}
	if len(f.Dates) == 0 {
		return weather.Forecast{}, fmt.Errorf("openmeteo returned no daily data")
	}
	return f, nil
}
