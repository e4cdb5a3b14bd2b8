package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/vending-forecast/internal/weather"
)

// OpenWeatherProvider implements weather.Source for OpenWeatherMap.
// The free tier only offers 3-hourly steps for 5 days, so steps are folded
// into daily extremes and at most 5 or 6 days come back.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	http    *jsonClient
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/forecast",
		http:    newJSONClient("openweather", client),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) FetchDaily(ctx context.Context, loc weather.Location, days int) (weather.Forecast, error) {
	if p.apiKey == "" {
		return weather.Forecast{}, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	values.Set("lat", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				TempMin float64 `json:"temp_min"`
				TempMax float64 `json:"temp_max"`
			} `json:"main"`
		} `json:"list"`
		City struct {
			Timezone int `json:"timezone"` // seconds east of UTC
		} `json:"city"`
	}

	if err := p.http.getJSON(ctx, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), &payload); err != nil {
		return weather.Forecast{}, err
	}
	if len(payload.List) == 0 {
		return weather.Forecast{}, fmt.Errorf("openweather returned no forecast steps")
	}

	zone := time.FixedZone("local", payload.City.Timezone)
	readings := make([]weather.Reading, 0, len(payload.List))
	for _, item := range payload.List {
		readings = append(readings, weather.Reading{
			Timestamp: time.Unix(item.Dt, 0).In(zone),
			MinC:      item.Main.TempMin,
			MaxC:      item.Main.TempMax,
		})
	}

	return weather.DailyExtremes(readings, days), nil
}
