package weather

import (
	"fmt"
	"sync"

	"github.com/kelvins/geocoder"
)

// Geocoder resolves a city/country pair to coordinates.
type Geocoder func(city, country string) (lat, lon float64, err error)

// geocoder keeps its API key in a package variable.
var geocoderMu sync.Mutex

// GoogleGeocoder returns a Geocoder backed by the Google Geocoding API.
func GoogleGeocoder(apiKey string) Geocoder {
	return func(city, country string) (float64, float64, error) {
		if apiKey == "" {
			return 0, 0, fmt.Errorf("geocoder api key is not configured")
		}

		geocoderMu.Lock()
		defer geocoderMu.Unlock()
		geocoder.ApiKey = apiKey
		loc, err := geocoder.Geocoding(geocoder.Address{
			City:    city,
			Country: country,
		})
		if err != nil {
			return 0, 0, err
		}
		return loc.Latitude, loc.Longitude, nil
	}
}

// ResolveLocation fills in coordinates for city when set, otherwise returns base unchanged.
// Only the coordinates change: days are still bucketed in base.Timezone, so
// WEATHER_TIMEZONE has to be set to the city's zone.
func ResolveLocation(base Location, city, country string, geocode Geocoder) (Location, error) {
	if city == "" {
		return base, nil
	}
	if geocode == nil {
		return base, fmt.Errorf("no geocoder available for %q", city)
	}
	lat, lon, err := geocode(city, country)
	if err != nil {
		return base, fmt.Errorf("geocode %s,%s: %w", city, country, err)
	}
	base.Latitude = lat
	base.Longitude = lon
	return base, nil
}
