package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/i474232898/vending-forecast/internal/weather"
)

type AppConfig struct {
	Port        string
	HTTPTimeout time.Duration
	LogLevel    string

	// RefreshInterval controls how often the forecast is refetched (0 = once per run).
	RefreshInterval time.Duration
	ForecastDays    int

	Location weather.Location

	// Optional geocoding of a city instead of fixed coordinates.
	// Geocoding only replaces the coordinates, so a city far from the
	// default zone needs WEATHER_TIMEZONE as well (TimezoneSet reports it).
	LocationCity    string
	LocationCountry string
	GeocoderAPIKey  string
	TimezoneSet     bool

	// Optional fallback providers.
	OpenWeatherAPIKey string
	WeatherAPIKey     string

	// Machine registry seeding.
	SeedFile         string
	SeedDemoMachines bool
}

// Load reads configuration from environment with sensible defaults.
// Call godotenv.Load first if a .env file should be honoured.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:              getenvDefault("PORT", "8080"),
		LogLevel:          getenvDefault("LOG_LEVEL", "info"),
		LocationCity:      os.Getenv("WEATHER_LOCATION_CITY"),
		LocationCountry:   os.Getenv("WEATHER_LOCATION_COUNTRY"),
		GeocoderAPIKey:    os.Getenv("GEOCODER_API_KEY"),
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		WeatherAPIKey:     os.Getenv("WEATHERAPI_API_KEY"),
		SeedFile:          os.Getenv("MACHINES_SEED_FILE"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("FORECAST_REFRESH_INTERVAL", "1h"); err != nil {
		return nil, err
	}

	if cfg.ForecastDays, err = getenvInt("FORECAST_DAYS", 7); err != nil {
		return nil, err
	}
	if cfg.ForecastDays < 1 || cfg.ForecastDays > 16 {
		return nil, fmt.Errorf("invalid FORECAST_DAYS: %d (must be 1-16)", cfg.ForecastDays)
	}

	if cfg.SeedDemoMachines, err = strconv.ParseBool(getenvDefault("SEED_DEMO_MACHINES", "true")); err != nil {
		return nil, fmt.Errorf("invalid SEED_DEMO_MACHINES: %w", err)
	}

	loc, err := loadLocation()
	if err != nil {
		return nil, err
	}
	cfg.Location = loc
	cfg.TimezoneSet = os.Getenv("WEATHER_TIMEZONE") != ""

	return cfg, nil
}

// loadLocation defaults to central Bangkok.
func loadLocation() (weather.Location, error) {
	loc := weather.Location{
		Latitude:  13.75,
		Longitude: 100.52,
		Timezone:  getenvDefault("WEATHER_TIMEZONE", "Asia/Bangkok"),
	}

	if v := strings.TrimSpace(os.Getenv("WEATHER_LATITUDE")); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil || lat < -90 || lat > 90 {
			return loc, fmt.Errorf("invalid WEATHER_LATITUDE: %q", v)
		}
		loc.Latitude = lat
	}
	if v := strings.TrimSpace(os.Getenv("WEATHER_LONGITUDE")); v != "" {
		lon, err := strconv.ParseFloat(v, 64)
		if err != nil || lon < -180 || lon > 180 {
			return loc, fmt.Errorf("invalid WEATHER_LONGITUDE: %q", v)
		}
		loc.Longitude = lon
	}
	if _, err := time.LoadLocation(loc.Timezone); err != nil {
		return loc, fmt.Errorf("invalid WEATHER_TIMEZONE: %w", err)
	}
	return loc, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
