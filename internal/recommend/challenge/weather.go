// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package challenge

import (
	"strings"

	"github.com/tomtom215/vibecompass/internal/recommend"
)

// Outdoor comfort thresholds.
const (
	heavyRainMM   = 5.0
	lightRainMM   = 1.0
	galeKPH       = 40.0
	breezyKPH     = 25.0
	coldC         = 5.0
	coolC         = 12.0
	warmC         = 28.0
	hotC          = 33.0
	waterMinC     = 20.0
	waterColdC    = 15.0
	snowMaxC      = 2.0
	snowThawC     = 5.0
	snowMaxWindKP = 50.0
)

// waterSubtypes need warm air to be enjoyable.
var waterSubtypes = map[string]struct{}{
	"kayaking":       {},
	"canoeing":       {},
	"paddleboarding": {},
	"surfing":        {},
	"swimming":       {},
	"open_water":     {},
	"rafting":        {},
	"sailing":        {},
}

// snowSubtypes need freezing temperatures.
var snowSubtypes = map[string]struct{}{
	"skiing":       {},
	"snowboarding": {},
	"snowshoeing":  {},
	"ice_skating":  {},
}

// suitabilityScore maps a verdict to the weather sub-score. Unknown weather
// is treated like "ok".
var suitabilityScore = map[recommend.Suitability]float64{
	recommend.SuitabilityGood:    1.0,
	recommend.SuitabilityOK:      0.6,
	recommend.SuitabilityBad:     0.2,
	recommend.SuitabilityUnknown: 0.6,
}

// Assess judges whether the weather suits one subtype of an activity.
// Indoor activities are always good. Activities that can move indoors are
// never worse than ok.
func Assess(a *recommend.Activity, subtype string, w recommend.WeatherContext) recommend.Suitability {
	if a.Setting == recommend.SettingIndoor {
		return recommend.SuitabilityGood
	}
	if !w.Known {
		return recommend.SuitabilityUnknown
	}

	var s recommend.Suitability
	subtype = strings.ToLower(subtype)
	if _, ok := waterSubtypes[subtype]; ok {
		s = assessWater(w.Forecast)
	} else if _, ok := snowSubtypes[subtype]; ok {
		s = assessSnow(w.Forecast)
	} else {
		s = assessOutdoor(w.Forecast)
	}

	if a.Setting == recommend.SettingEither && s == recommend.SuitabilityBad {
		return recommend.SuitabilityOK
	}
	return s
}

func stormy(f recommend.Forecast) bool {
	c := strings.ToLower(f.Condition)
	return strings.Contains(c, "storm") || strings.Contains(c, "thunder")
}

func assessOutdoor(f recommend.Forecast) recommend.Suitability {
	switch {
	case stormy(f), f.PrecipitationMM > heavyRainMM, f.WindKPH > galeKPH,
		f.MaxTempC < coldC, f.MaxTempC > hotC:
		return recommend.SuitabilityBad
	case f.PrecipitationMM > lightRainMM, f.WindKPH > breezyKPH,
		f.MaxTempC < coolC, f.MaxTempC > warmC:
		return recommend.SuitabilityOK
	default:
		return recommend.SuitabilityGood
	}
}

func assessWater(f recommend.Forecast) recommend.Suitability {
	switch {
	case stormy(f), f.WindKPH > galeKPH, f.MaxTempC < waterColdC:
		return recommend.SuitabilityBad
	case f.MaxTempC < waterMinC, f.PrecipitationMM > heavyRainMM, f.WindKPH > breezyKPH:
		return recommend.SuitabilityOK
	default:
		return recommend.SuitabilityGood
	}
}

func assessSnow(f recommend.Forecast) recommend.Suitability {
	switch {
	case stormy(f), f.WindKPH > snowMaxWindKP, f.MaxTempC > snowThawC:
		return recommend.SuitabilityBad
	case f.MaxTempC > snowMaxC:
		return recommend.SuitabilityOK
	default:
		return recommend.SuitabilityGood
	}
}

// subtypesOf returns the subtypes an activity is assessed on.
func subtypesOf(a *recommend.Activity) []string {
	if len(a.Subtypes) > 0 {
		return a.Subtypes
	}
	return []string{""}
}

// weatherScore is the mean suitability score across the activity's subtypes.
func weatherScore(a *recommend.Activity, w recommend.WeatherContext) float64 {
	subtypes := subtypesOf(a)
	sum := 0.0
	for _, st := range subtypes {
		sum += suitabilityScore[Assess(a, st, w)]
	}
	return sum / float64(len(subtypes))
}

// overallSuitability collapses the per-subtype verdicts into one badge tier.
func overallSuitability(a *recommend.Activity, w recommend.WeatherContext) recommend.Suitability {
	if a.Setting != recommend.SettingIndoor && !w.Known {
		return recommend.SuitabilityUnknown
	}
	switch score := weatherScore(a, w); {
	case score >= 0.75:
		return recommend.SuitabilityGood
	case score >= 0.5:
		return recommend.SuitabilityOK
	default:
		return recommend.SuitabilityBad
	}
}
