// Package weather defines the external weather provider contract and its
// implementations. Providers are optional enrichments: callers wrap every
// call with a timeout and fall back to deterministic mock data on failure.
package weather

import (
	"context"
	"errors"
	"time"

	"github.com/forkcast/forkcast/internal/domain"
)

var (
	// ErrProviderUnavailable indicates the provider is not configured or unreachable.
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	// ErrProviderRequest indicates an error during the provider API request.
	ErrProviderRequest = errors.New("weather provider request failed")
	// ErrProviderResponse indicates an error parsing the provider response.
	ErrProviderResponse = errors.New("failed to parse weather provider response")
)

// Observation is a current-conditions reading, already converted to
// display units (Fahrenheit, mph, miles).
type Observation struct {
	TemperatureF float64
	FeelsLikeF   float64
	Humidity     float64
	WindMph      float64
	VisibilityMi float64
	UVIndex      float64
	Condition    string
	Sunrise      time.Time
	Sunset       time.Time
}

// ForecastEntry is one sub-daily forecast point.
type ForecastEntry struct {
	At                time.Time
	TemperatureF      float64
	PrecipProbability float64 // 0-100
	Condition         string
}

// Provider fetches weather, forecast, air quality, and reverse-geocoded
// location data for a coordinate pair.
type Provider interface {
	FetchCurrent(ctx context.Context, lat, lon float64) (*Observation, error)
	FetchForecast(ctx context.Context, lat, lon float64, days int) ([]ForecastEntry, error)
	FetchAirQuality(ctx context.Context, lat, lon float64) (float64, error)
	FetchLocation(ctx context.Context, lat, lon float64) (*domain.LocationData, error)
}
