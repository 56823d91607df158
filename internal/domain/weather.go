package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimeOfDay buckets the local clock into coarse periods.
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
	TimeOfDayEvening   TimeOfDay = "evening"
	TimeOfDayNight     TimeOfDay = "night"
)

// Season is a calendar-fixed season (northern-hemisphere month ranges,
// deliberately not hemisphere-aware).
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

// SeasonForMonth maps a calendar month to its fixed season
// (spring=Mar-May, summer=Jun-Aug, fall=Sep-Nov, winter=Dec-Feb).
func SeasonForMonth(m time.Month) Season {
	switch {
	case m >= time.March && m <= time.May:
		return SeasonSpring
	case m >= time.June && m <= time.August:
		return SeasonSummer
	case m >= time.September && m <= time.November:
		return SeasonFall
	default:
		return SeasonWinter
	}
}

// WeatherData is the current-conditions portion of a weather context.
// Temperatures are Fahrenheit, wind is mph.
type WeatherData struct {
	FeelsLikeF    float64 `json:"feels_like_f"`
	TemperatureF  float64 `json:"temperature_f"`
	Humidity      float64 `json:"humidity"`
	Precipitation float64 `json:"precipitation"` // probability, 0-100
	WindMph       float64 `json:"wind_mph"`
	AQI           float64 `json:"aqi"`
	UVIndex       float64 `json:"uv_index"`
	VisibilityMi  float64 `json:"visibility_mi"`
	Condition     string  `json:"condition"`
	IsMock        bool    `json:"is_mock"`
}

// SunData describes sunrise/sunset relative to "now".
type SunData struct {
	Sunrise          time.Time `json:"sunrise"`
	Sunset           time.Time `json:"sunset"`
	MinutesToSunset  int       `json:"minutes_to_sunset"`
	MinutesToSunrise int       `json:"minutes_to_sunrise"`
	IsDaytime        bool      `json:"is_daytime"`
}

// LocationData identifies where the weather applies.
type LocationData struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone"`
}

// WeatherContext is an immutable per-request snapshot combining provider
// data with derived calendar fields. It is never persisted; only daily
// forecast aggregates are cached.
type WeatherContext struct {
	Weather     WeatherData  `json:"weather"`
	Sun         SunData      `json:"sun"`
	Location    LocationData `json:"location"`
	Now         time.Time    `json:"now"`
	IsWeeknight bool         `json:"is_weeknight"` // Monday through Thursday
	TimeOfDay   TimeOfDay    `json:"time_of_day"`
	Season      Season       `json:"season"`
	Month       time.Month   `json:"month"`
}

// ForecastDay is a cached day-level forecast aggregate, upserted by date.
/// Cache entries are advisory: consumers fall back to a live fetch (and
// then to mock data) on miss or staleness.
type ForecastDay struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_forecast_user_date" json:"user_id"`
	Date          time.Time `gorm:"type:date;not null;uniqueIndex:idx_forecast_user_date" json:"date"`
	HighF         float64   `gorm:"not null" json:"high_f"`
	LowF          float64   `gorm:"not null" json:"low_f"`
	CurrentF      float64   `gorm:"not null" json:"current_f"`
	Condition     string    `gorm:"type:varchar(64);not null" json:"condition"`
	Precipitation float64   `gorm:"not null" json:"precipitation"` // rounded average probability %
	FetchedAt     time.Time `gorm:"not null" json:"fetched_at"`
}

func (ForecastDay) TableName() string {
	return "forecast_days"
}

// Fresh reports whether the cache row is still within its validity window.
func (f *ForecastDay) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(f.FetchedAt) < ttl
}
