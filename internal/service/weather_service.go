package service

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/forkcast/forkcast/internal/calendar"
	"github.com/forkcast/forkcast/internal/domain"
	"github.com/forkcast/forkcast/internal/repository"
	"github.com/forkcast/forkcast/internal/weather"
)

const (
	// forecastCacheTTL bounds how long a cached daily aggregate is served
	// before a live refetch.
	forecastCacheTTL = time.Hour

	// providerTimeout caps each upstream weather call so a slow provider
	// cannot stall request handling.
	providerTimeout = 5 * time.Second
)

// WeatherService assembles weather context snapshots and daily forecasts
// for a user. Every method degrades to deterministic mock data rather
// than failing when the live provider is missing or errors.
type WeatherService interface {
	BuildContext(ctx context.Context, user *domain.User) (*domain.WeatherContext, error)
	Forecast(ctx context.Context, user *domain.User, days int) ([]domain.ForecastDay, error)
}

type weatherService struct {
	provider weather.Provider
	mock     weather.Provider
	cache    repository.ForecastCacheRepository
	now      func() time.Time
}

// NewWeatherService creates a new weather service. provider may be nil,
// in which case all data comes from the mock. now may be nil to use
// time.Now.
func NewWeatherService(provider weather.Provider, cache repository.ForecastCacheRepository, now func() time.Time) WeatherService {
	if now == nil {
		now = time.Now
	}
	return &weatherService{
		provider: provider,
		mock:     weather.NewMockProvider(now),
		cache:    cache,
		now:      now,
	}
}

// BuildContext fetches current conditions, air quality, and location
// concurrently, then derives the calendar fields from the user's local
// clock. Each section falls back to mock data independently so one
// failed upstream call never empties the whole snapshot.
func (s *weatherService) BuildContext(ctx context.Context, user *domain.User) (*domain.WeatherContext, error) {
	now := s.now().In(user.Location())
	lat, lon := user.Latitude, user.Longitude

	var (
		wg       sync.WaitGroup
		obs      *weather.Observation
		aqi      float64
		precip   float64
		location *domain.LocationData
		obsMock  bool
	)

	wg.Add(4)

	go func() {
		defer wg.Done()
		obs, obsMock = s.fetchCurrent(ctx, lat, lon)
	}()

	go func() {
		defer wg.Done()
		aqi = s.fetchAirQuality(ctx, lat, lon)
	}()

	go func() {
		defer wg.Done()
		precip = s.fetchPrecipChance(ctx, lat, lon)
	}()

	go func() {
		defer wg.Done()
		location = s.fetchLocation(ctx, user)
	}()

	wg.Wait()

	sun := buildSunData(obs.Sunrise, obs.Sunset, now)

	return &domain.WeatherContext{
		Weather: domain.WeatherData{
			FeelsLikeF:    obs.FeelsLikeF,
			TemperatureF:  obs.TemperatureF,
			Humidity:      obs.Humidity,
			WindMph:       obs.WindMph,
			AQI:           aqi,
			Precipitation: precip,
			UVIndex:       obs.UVIndex,
			VisibilityMi:  obs.VisibilityMi,
			Condition:     obs.Condition,
			IsMock:        obsMock,
		},
		Sun:         sun,
		Location:    *location,
		Now:         now,
		IsWeeknight: calendar.IsWeeknight(now),
		TimeOfDay:   calendar.TimeOfDayFor(now),
		Season:      domain.SeasonForMonth(now.Month()),
		Month:       now.Month(),
	}, nil
}

// Forecast returns day-level aggregates for the next `days` days,
// serving fresh cache rows and refetching the rest in a single provider
// call. Cache write failures are logged, not surfaced.
func (s *weatherService) Forecast(ctx context.Context, user *domain.User, days int) ([]domain.ForecastDay, error) {
	if days <= 0 {
		days = 5
	}
	now := s.now().In(user.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	result := make([]domain.ForecastDay, 0, days)
	missing := false
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i)
		cached, err := s.cache.GetByDate(ctx, user.ID, date)
		if err == nil && cached.Fresh(s.now(), forecastCacheTTL) {
			result = append(result, *cached)
			continue
		}
		missing = true
		break
	}
	if !missing {
		return result, nil
	}

	entries := s.fetchForecast(ctx, user.Latitude, user.Longitude, days)
	aggregated := aggregateForecast(entries, today, days, user.ID, s.now())

	for i := range aggregated {
		if err := s.cache.Upsert(ctx, &aggregated[i]); err != nil {
			log.Printf("[weather] forecast cache upsert failed for %s: %v", aggregated[i].Date.Format("2006-01-02"), err)
		}
	}
	return aggregated, nil
}

func (s *weatherService) fetchCurrent(ctx context.Context, lat, lon float64) (*weather.Observation, bool) {
	if s.provider != nil {
		fetchCtx, cancel := context.WithTimeout(ctx, providerTimeout)
		defer cancel()
		if obs, err := s.provider.FetchCurrent(fetchCtx, lat, lon); err == nil {
			return obs, false
		} else {
			log.Printf("[weather] current conditions fetch failed, using mock: %v", err)
		}
	}
	obs, _ := s.mock.FetchCurrent(ctx, lat, lon)
	return obs, true
}

func (s *weatherService) fetchAirQuality(ctx context.Context, lat, lon float64) float64 {
	if s.provider != nil {
		fetchCtx, cancel := context.WithTimeout(ctx, providerTimeout)
		defer cancel()
		if aqi, err := s.provider.FetchAirQuality(fetchCtx, lat, lon); err == nil {
			return aqi
		} else {
			log.Printf("[weather] air quality fetch failed, using mock: %v", err)
		}
	}
	aqi, _ := s.mock.FetchAirQuality(ctx, lat, lon)
	return aqi
}

func (s *weatherService) fetchLocation(ctx context.Context, user *domain.User) *domain.LocationData {
	if s.provider != nil {
		fetchCtx, cancel := context.WithTimeout(ctx, providerTimeout)
		defer cancel()
		if loc, err := s.provider.FetchLocation(fetchCtx, user.Latitude, user.Longitude); err == nil {
			return loc
		} else {
			log.Printf("[weather] location fetch failed, using stored profile: %v", err)
		}
	}
	// Prefer the city stored on the profile over the mock placeholder.
	loc, _ := s.mock.FetchLocation(ctx, user.Latitude, user.Longitude)
	if user.City != "" {
		loc.City = user.City
	}
	loc.Timezone = user.Timezone
	return loc
}

func (s *weatherService) fetchForecast(ctx context.Context, lat, lon float64, days int) []weather.ForecastEntry {
	if s.provider != nil {
		fetchCtx, cancel := context.WithTimeout(ctx, providerTimeout)
		defer cancel()
		if entries, err := s.provider.FetchForecast(fetchCtx, lat, lon, days); err == nil {
			return entries
		} else {
			log.Printf("[weather] forecast fetch failed, using mock: %v", err)
		}
	}
	entries, _ := s.mock.FetchForecast(ctx, lat, lon, days)
	return entries
}

// fetchPrecipChance derives today's precipitation probability from the
// sub-daily forecast, taking the worst entry of the day. Current-conditions
// payloads carry rain volume but no probability, so the forecast is the
// only source for this field.
func (s *weatherService) fetchPrecipChance(ctx context.Context, lat, lon float64) float64 {
	chance := 0.0
	for _, e := range s.fetchForecast(ctx, lat, lon, 1) {
		if e.PrecipProbability > chance {
			chance = e.PrecipProbability
		}
	}
	return chance
}

// buildSunData derives sunrise/sunset offsets relative to now. Offsets
// for events already past are zero.
func buildSunData(sunrise, sunset, now time.Time) domain.SunData {
	sun := domain.SunData{
		Sunrise:   sunrise,
		Sunset:    sunset,
		IsDaytime: now.After(sunrise) && now.Before(sunset),
	}
	if sunset.After(now) {
		sun.MinutesToSunset = int(sunset.Sub(now).Minutes())
	}
	if sunrise.After(now) {
		sun.MinutesToSunrise = int(sunrise.Sub(now).Minutes())
	}
	return sun
}

// aggregateForecast rolls sub-daily forecast entries up into per-day
// rows: high, low, mean temperature, most frequent condition, and
// rounded average precipitation probability.
func aggregateForecast(entries []weather.ForecastEntry, start time.Time, days int, userID uuid.UUID, fetchedAt time.Time) []domain.ForecastDay {
	type bucket struct {
		high, low, tempSum, precipSum float64
		count                         int
		conditionCounts               map[string]int
		mode                          string
		modeCount                     int
	}

	buckets := make(map[string]*bucket, days)
	for _, e := range entries {
		key := e.At.Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				high:            e.TemperatureF,
				low:             e.TemperatureF,
				conditionCounts: make(map[string]int),
			}
			buckets[key] = b
		}
		b.high = math.Max(b.high, e.TemperatureF)
		b.low = math.Min(b.low, e.TemperatureF)
		b.tempSum += e.TemperatureF
		b.precipSum += e.PrecipProbability
		b.count++
		b.conditionCounts[e.Condition]++
		if b.conditionCounts[e.Condition] > b.modeCount {
			b.mode = e.Condition
			b.modeCount = b.conditionCounts[e.Condition]
		}
	}

	result := make([]domain.ForecastDay, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		b, ok := buckets[date.Format("2006-01-02")]
		if !ok || b.count == 0 {
			continue
		}
		result = append(result, domain.ForecastDay{
			UserID:        userID,
			Date:          date,
			HighF:         b.high,
			LowF:          b.low,
			CurrentF:      math.Round(b.tempSum/float64(b.count)*10) / 10,
			Condition:     b.mode,
			Precipitation: math.Round(b.precipSum / float64(b.count)),
			FetchedAt:     fetchedAt,
		})
	}
	return result
}
