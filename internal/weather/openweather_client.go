package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/forkcast/forkcast/internal/domain"
	"github.com/forkcast/forkcast/pkg/units"
)

const (
	defaultBaseURL = "https://api.openweathermap.org"

	// requestTimeout bounds every provider call so a slow upstream can
	// never stall a suggestion request.
	requestTimeout = 5 * time.Second

	metersPerMile = 1609.344
)

// OpenWeatherClient implements Provider against the OpenWeather API.
type OpenWeatherClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherClient creates a provider client.
// Returns nil if apiKey is empty; callers treat a nil client as "not configured".
func NewOpenWeatherClient(apiKey, baseURL string) *OpenWeatherClient {
	if apiKey == "" {
		return nil
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenWeatherClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type currentPayload struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Visibility float64 `json:"visibility"`
	Sys        struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
}

// FetchCurrent reads current conditions. Temperatures arrive in Kelvin and
// wind in m/s; conversion to display units happens here, once.
func (c *OpenWeatherClient) FetchCurrent(ctx context.Context, lat, lon float64) (*Observation, error) {
	if c == nil {
		return nil, ErrProviderUnavailable
	}

	var payload currentPayload
	if err := c.get(ctx, "/data/2.5/weather", lat, lon, nil, &payload); err != nil {
		return nil, err
	}

	// UVIndex stays zero here: the free current-weather payload does not
	// carry it, only the paid One Call endpoint does.
	obs := &Observation{
		TemperatureF: units.KelvinToFahrenheit(payload.Main.Temp),
		FeelsLikeF:   units.KelvinToFahrenheit(payload.Main.FeelsLike),
		Humidity:     payload.Main.Humidity,
		WindMph:      units.MetersPerSecondToMph(payload.Wind.Speed),
		VisibilityMi: payload.Visibility / metersPerMile,
		Sunrise:      time.Unix(payload.Sys.Sunrise, 0).UTC(),
		Sunset:       time.Unix(payload.Sys.Sunset, 0).UTC(),
	}
	if len(payload.Weather) > 0 {
		obs.Condition = payload.Weather[0].Main
	}
	return obs, nil
}

type forecastPayload struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Pop     float64 `json:"pop"` // probability of precipitation, 0-1
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
	} `json:"list"`
}

// FetchForecast reads 3-hourly forecast entries covering up to days days.
func (c *OpenWeatherClient) FetchForecast(ctx context.Context, lat, lon float64, days int) ([]ForecastEntry, error) {
	if c == nil {
		return nil, ErrProviderUnavailable
	}
	if days <= 0 {
		days = 1
	}

	// The 3-hourly endpoint returns 8 entries per day.
	count := days * 8
	extra := url.Values{"cnt": []string{strconv.Itoa(count)}}

	var payload forecastPayload
	if err := c.get(ctx, "/data/2.5/forecast", lat, lon, extra, &payload); err != nil {
		return nil, err
	}

	entries := make([]ForecastEntry, 0, len(payload.List))
	for _, item := range payload.List {
		entry := ForecastEntry{
			At:                time.Unix(item.Dt, 0).UTC(),
			TemperatureF:      units.KelvinToFahrenheit(item.Main.Temp),
			PrecipProbability: item.Pop * 100,
		}
		if len(item.Weather) > 0 {
			entry.Condition = item.Weather[0].Main
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

type airQualityPayload struct {
	List []struct {
		Main struct {
			AQI float64 `json:"aqi"` // 1-5 category index
		} `json:"main"`
	} `json:"list"`
}

// FetchAirQuality returns an AQI reading on the US-EPA 0-500 scale,
// mapped from the provider's 1-5 category via fixed midpoints.
func (c *OpenWeatherClient) FetchAirQuality(ctx context.Context, lat, lon float64) (float64, error) {
	if c == nil {
		return 0, ErrProviderUnavailable
	}

	var payload airQualityPayload
	if err := c.get(ctx, "/data/2.5/air_pollution", lat, lon, nil, &payload); err != nil {
		return 0, err
	}
	if len(payload.List) == 0 {
		return 0, fmt.Errorf("%w: empty air quality list", ErrProviderResponse)
	}

	// Provider categories 1-5 roughly track EPA bands 0-50 .. 201-300.
	raw := (payload.List[0].Main.AQI - 1) * 75
	return units.AqiToMidpoint(raw), nil
}

type geoPayload []struct {
	Name    string `json:"name"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// FetchLocation reverse-geocodes coordinates into a place name.
func (c *OpenWeatherClient) FetchLocation(ctx context.Context, lat, lon float64) (*domain.LocationData, error) {
	if c == nil {
		return nil, ErrProviderUnavailable
	}

	var payload geoPayload
	if err := c.get(ctx, "/geo/1.0/reverse", lat, lon, url.Values{"limit": []string{"1"}}, &payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty reverse geocode result", ErrProviderResponse)
	}

	return &domain.LocationData{
		Latitude:  lat,
		Longitude: lon,
		City:      payload[0].Name,
		Region:    payload[0].State,
		Country:   payload[0].Country,
	}, nil
}

func (c *OpenWeatherClient) get(ctx context.Context, path string, lat, lon float64, extra url.Values, out any) error {
	q := url.Values{
		"lat":   []string{strconv.FormatFloat(lat, 'f', 4, 64)},
		"lon":   []string{strconv.FormatFloat(lon, 'f', 4, 64)},
		"appid": []string{c.apiKey},
	}
	for k, vs := range extra {
		q[k] = vs
	}

	reqURL := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderRequest, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrProviderRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrProviderResponse, err)
	}
	return nil
}
