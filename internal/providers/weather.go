// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package providers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vibecompass/internal/cache"
	"github.com/tomtom215/vibecompass/internal/geo"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

const forecastPath = "/v1/forecast"

// dailyFields are the Open-Meteo daily variables requested, in order.
const dailyFields = "temperature_2m_max,precipitation_sum,wind_speed_10m_max,weather_code"

// ErrNoForecast is returned when the upstream has no data for the day.
var ErrNoForecast = errors.New("no forecast for requested day")

// WeatherClient fetches daily forecasts from an Open-Meteo compatible API.
type WeatherClient struct {
	client *Client
}

// NewWeatherClient creates a weather provider on top of client.
func NewWeatherClient(client *Client) *WeatherClient {
	return &WeatherClient{client: client}
}

// openMeteoResponse is the subset of the forecast response that is used.
// Values are pointers because the API reports missing data as null.
type openMeteoResponse struct {
	Daily struct {
		Time          []string   `json:"time"`
		MaxTemp       []*float64 `json:"temperature_2m_max"`
		Precipitation []*float64 `json:"precipitation_sum"`
		WindSpeed     []*float64 `json:"wind_speed_10m_max"`
		WeatherCode   []*int     `json:"weather_code"`
	} `json:"daily"`
}

// Forecast implements recommend.WeatherProvider.
func (w *WeatherClient) Forecast(ctx context.Context, at geo.Point, day time.Time) (recommend.Forecast, error) {
	if !at.Valid() {
		return recommend.Forecast{}, fmt.Errorf("forecast: invalid location %v", at)
	}
	if day.IsZero() {
		day = time.Now()
	}
	date := day.Format(time.DateOnly)

	key := cache.GenerateKey("weather", struct {
		Lat  float64
		Lng  float64
		Date string
	}{math.Round(at.Lat*100) / 100, math.Round(at.Lng*100) / 100, date})

	var fc recommend.Forecast
	if w.client.cacheGet(ctx, key, &fc) {
		return fc, nil
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(at.Lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(at.Lng, 'f', 4, 64))
	params.Set("daily", dailyFields)
	params.Set("start_date", date)
	params.Set("end_date", date)
	params.Set("timezone", "auto")

	body, err := w.client.Get(ctx, forecastPath, params)
	if err != nil {
		return recommend.Forecast{}, err
	}

	fc, err = parseForecast(body, date)
	if err != nil {
		return recommend.Forecast{}, fmt.Errorf("%s: %w", w.client.Name(), err)
	}

	w.client.cachePut(ctx, key, fc)
	return fc, nil
}

func parseForecast(body []byte, date string) (recommend.Forecast, error) {
	var resp openMeteoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return recommend.Forecast{}, fmt.Errorf("decode forecast: %w", err)
	}

	d := resp.Daily
	idx := -1
	for i, t := range d.Time {
		if t == date {
			idx = i
			break
		}
	}
	if idx < 0 {
		return recommend.Forecast{}, fmt.Errorf("%w: %s", ErrNoForecast, date)
	}

	maxTemp, ok := valueAt(d.MaxTemp, idx)
	if !ok {
		return recommend.Forecast{}, fmt.Errorf("%w: %s has no temperature", ErrNoForecast, date)
	}
	precip, _ := valueAt(d.Precipitation, idx)
	wind, _ := valueAt(d.WindSpeed, idx)

	code := -1
	if idx < len(d.WeatherCode) && d.WeatherCode[idx] != nil {
		code = *d.WeatherCode[idx]
	}

	return recommend.Forecast{
		MaxTempC:        maxTemp,
		PrecipitationMM: precip,
		WindKPH:         wind,
		Condition:       ConditionForCode(code),
	}, nil
}

func valueAt(values []*float64, i int) (float64, bool) {
	if i >= len(values) || values[i] == nil {
		return 0, false
	}
	return *values[i], true
}

// ConditionForCode maps a WMO weather interpretation code to a condition
// name. Unknown codes map to "unknown".
func ConditionForCode(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code == 1 || code == 2:
		return "partly_cloudy"
	case code == 3:
		return "overcast"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case code >= 61 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "showers"
	case code == 85 || code == 86:
		return "snow_showers"
	case code == 95 || code == 96 || code == 99:
		return "thunderstorm"
	default:
		return "unknown"
	}
}

var _ recommend.WeatherProvider = (*WeatherClient)(nil)
