package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/i474232898/vending-forecast/internal/weather"
)

// WeatherAPIProvider implements weather.Source for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	http    *jsonClient
}

func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		http:    newJSONClient("weatherapi", client),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) FetchDaily(ctx context.Context, loc weather.Location, days int) (weather.Forecast, error) {
	if p.apiKey == "" {
		return weather.Forecast{}, fmt.Errorf("weatherapi api key is not configured")
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	// WeatherAPI uses "q" for location; it accepts "lat,lon".
	values.Set("q", fmt.Sprintf("%f,%f", loc.Latitude, loc.Longitude))
	if days > 0 {
		values.Set("days", strconv.Itoa(days))
	}
	values.Set("aqi", "no")
	values.Set("alerts", "no")

	var payload struct {
		Forecast struct {
			ForecastDay []struct {
				Date string `json:"date"`
				Day  struct {
					MaxTempC float64 `json:"maxtemp_c"`
					MinTempC float64 `json:"mintemp_c"`
				} `json:"day"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}

	if err := p.http.getJSON(ctx, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), &payload); err != nil {
		return weather.Forecast{}, err
	}

	n := len(payload.Forecast.ForecastDay)
	if n == 0 {
		return weather.Forecast{}, fmt.Errorf("weatherapi returned no forecast days")
	}
	f := weather.Forecast{
		Dates:          make([]string, 0, n),
		MinTemperature: make([]float64, 0, n),
		MaxTemperature: make([]float64, 0, n),
	}
	for _, d := range payload.Forecast.ForecastDay {
		f.Dates = append(f.Dates, d.Date)
		f.MinTemperature = append(f.MinTemperature, d.Day.MinTempC)
		f.MaxTemperature = append(f.MaxTemperature, d.Day.MaxTempC)
	}
	if err := f.Validate(); err != nil {
		return weather.Forecast{}, err
	}
	return f, nil
}
