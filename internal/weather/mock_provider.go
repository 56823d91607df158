package weather

import (
	"context"
	"time"

	"github.com/forkcast/forkcast/internal/domain"
)

// MockProvider produces deterministic weather derived from the current
// local hour, so downstream logic always receives complete data when no
// real provider is configured or a live call fails.
type MockProvider struct {
	now func() time.Time
}

// NewMockProvider creates a mock provider using the supplied clock.
// Pass nil to use time.Now.
func NewMockProvider(now func() time.Time) *MockProvider {
	if now == nil {
		now = time.Now
	}
	return &MockProvider{now: now}
}

// FetchCurrent derives conditions from the hour of day: coolest before
// dawn, warmest at midday.
func (p *MockProvider) FetchCurrent(ctx context.Context, lat, lon float64) (*Observation, error) {
	now := p.now()
	hour := now.Hour()

	// Triangle wave peaking at 14:00 local, 58-82 degrees F.
	distance := hour - 14
	if distance < 0 {
		distance = -distance
	}
	temp := 82 - float64(distance)*2
	if temp < 58 {
		temp = 58
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return &Observation{
		TemperatureF: temp,
		FeelsLikeF:   temp,
		Humidity:     50,
		WindMph:      5,
		VisibilityMi: 10,
		UVIndex:      3,
		Condition:    "Clear",
		Sunrise:      midnight.Add(6*time.Hour + 30*time.Minute),
		Sunset:       midnight.Add(19*time.Hour + 30*time.Minute),
	}, nil
}

// FetchForecast produces 3-hourly entries mirroring the current mock curve.
func (p *MockProvider) FetchForecast(ctx context.Context, lat, lon float64, days int) ([]ForecastEntry, error) {
	if days <= 0 {
		days = 1
	}
	now := p.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var entries []ForecastEntry
	for i := 0; i < days*8; i++ {
		at := start.Add(time.Duration(i*3) * time.Hour)
		distance := at.Hour() - 14
		if distance < 0 {
			distance = -distance
		}
		temp := 82 - float64(distance)*2
		if temp < 58 {
			temp = 58
		}
		entries = append(entries, ForecastEntry{
			At:                at,
			TemperatureF:      temp,
			PrecipProbability: 10,
			Condition:         "Clear",
		})
	}
	return entries, nil
}

// FetchAirQuality reports clean air.
func (p *MockProvider) FetchAirQuality(ctx context.Context, lat, lon float64) (float64, error) {
	return 25, nil
}

// FetchLocation echoes the coordinates with a placeholder name.
func (p *MockProvider) FetchLocation(ctx context.Context, lat, lon float64) (*domain.LocationData, error) {
	return &domain.LocationData{
		Latitude:  lat,
		Longitude: lon,
		City:      "Hometown",
		Country:   "US",
	}, nil
}
