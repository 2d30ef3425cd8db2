// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package challenge

import (
	"testing"

	"github.com/tomtom215/vibecompass/internal/recommend"
)

func known(temp, rain, wind float64, cond string) recommend.WeatherContext {
	return recommend.WeatherContext{
		Known: true,
		Forecast: recommend.Forecast{
			MaxTempC:        temp,
			PrecipitationMM: rain,
			WindKPH:         wind,
			Condition:       cond,
		},
	}
}

func TestAssess(t *testing.T) {
	outdoor := recommend.Activity{Setting: recommend.SettingOutdoor}
	indoor := recommend.Activity{Setting: recommend.SettingIndoor}
	either := recommend.Activity{Setting: recommend.SettingEither}

	tests := []struct {
		name     string
		activity recommend.Activity
		subtype  string
		weather  recommend.WeatherContext
		want     recommend.Suitability
	}{
		{"indoor ignores storms", indoor, "", known(20, 30, 80, "Thunderstorm"), recommend.SuitabilityGood},
		{"indoor without forecast", indoor, "", recommend.WeatherContext{}, recommend.SuitabilityGood},
		{"outdoor unknown", outdoor, "hiking", recommend.WeatherContext{}, recommend.SuitabilityUnknown},
		{"outdoor mild", outdoor, "hiking", known(20, 0, 10, "Clear"), recommend.SuitabilityGood},
		{"outdoor drizzle", outdoor, "hiking", known(20, 2, 10, "Drizzle"), recommend.SuitabilityOK},
		{"outdoor downpour", outdoor, "hiking", known(20, 12, 10, "Rain"), recommend.SuitabilityBad},
		{"outdoor storm", outdoor, "hiking", known(20, 0, 10, "Thunderstorm"), recommend.SuitabilityBad},
		{"outdoor heat", outdoor, "hiking", known(36, 0, 10, "Clear"), recommend.SuitabilityBad},
		{"outdoor cool", outdoor, "hiking", known(9, 0, 10, "Clear"), recommend.SuitabilityOK},
		{"water warm", outdoor, "kayaking", known(24, 0, 10, "Clear"), recommend.SuitabilityGood},
		{"water mild", outdoor, "kayaking", known(17, 0, 10, "Clear"), recommend.SuitabilityOK},
		{"water cold", outdoor, "surfing", known(12, 0, 10, "Clear"), recommend.SuitabilityBad},
		{"snow freezing", outdoor, "skiing", known(-4, 8, 20, "Snow"), recommend.SuitabilityGood},
		{"snow slushy", outdoor, "skiing", known(4, 0, 20, "Cloudy"), recommend.SuitabilityOK},
		{"snow thaw", outdoor, "skiing", known(10, 0, 20, "Clear"), recommend.SuitabilityBad},
		{"either softens bad", either, "sauna", known(20, 12, 10, "Rain"), recommend.SuitabilityOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Assess(&tt.activity, tt.subtype, tt.weather); got != tt.want {
				t.Errorf("Assess() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWeatherScoreAveragesSubtypes(t *testing.T) {
	a := recommend.Activity{
		Setting:  recommend.SettingOutdoor,
		Subtypes: []string{"kayaking", "hiking"},
	}
	// kayaking ok (17°C), hiking good.
	got := weatherScore(&a, known(17, 0, 10, "Clear"))
	if !approxEqual(got, 0.8) {
		t.Errorf("weatherScore() = %v, want 0.8", got)
	}
	if s := overallSuitability(&a, known(17, 0, 10, "Clear")); s != recommend.SuitabilityGood {
		t.Errorf("overallSuitability() = %q, want good", s)
	}
	if s := overallSuitability(&a, recommend.WeatherContext{}); s != recommend.SuitabilityUnknown {
		t.Errorf("overallSuitability() without forecast = %q, want unknown", s)
	}
}
