// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package challenge

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vibecompass/internal/geo"
	"github.com/tomtom215/vibecompass/internal/metrics"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

// maxVenuesPerChallenge bounds the verified venues attached to a challenge.
const maxVenuesPerChallenge = 3

// Assembler turns selected challenge candidates into recommendations by
// attaching travel, forecast, verified venues and rationale text.
type Assembler struct {
	cfg      recommend.ChallengeConfig
	ontology recommend.Ontology
	verifier recommend.VenueVerifier
	weather  recommend.WeatherProvider
	logger   zerolog.Logger
}

// NewAssembler creates an assembler. weather may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAssembler(
	cfg recommend.ChallengeConfig,
	ont recommend.Ontology,
	verifier recommend.VenueVerifier,
	weather recommend.WeatherProvider,
	logger zerolog.Logger,
) *Assembler {
	return &Assembler{
		cfg:      cfg,
		ontology: ont,
		verifier: verifier,
		weather:  weather,
		logger:   logger,
	}
}

// Assemble builds a recommendation for every candidate concurrently. A
// candidate whose assembly fails is dropped and logged; siblings are
// unaffected. The result keeps the input order.
//
//nolint:gocritic // hugeParam: in passed by value for immutability
func (a *Assembler) Assemble(
	ctx context.Context,
	budget *CallBudget,
	cands []recommend.ChallengeCandidate,
	in recommend.ChallengeInput,
) []recommend.ChallengeRecommendation {
	results := make([]*recommend.ChallengeRecommendation, len(cands))

	var wg sync.WaitGroup
	for i := range cands {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, err := a.assembleOne(ctx, budget, &cands[i], in)
			if err != nil {
				reason := dropReason(err)
				metrics.RecordChallengeDropped(reason)
				a.logger.Warn().
					Err(err).
					Str("request_id", in.RequestID).
					Str("candidate_id", cands[i].ID).
					Str("reason", reason).
					Msg("dropping challenge candidate")
				return
			}
			results[i] = &rec
		}(i)
	}
	wg.Wait()

	out := make([]recommend.ChallengeRecommendation, 0, len(cands))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

//nolint:gocritic // hugeParam: in passed by value for immutability
func (a *Assembler) assembleOne(
	ctx context.Context,
	budget *CallBudget,
	c *recommend.ChallengeCandidate,
	in recommend.ChallengeInput,
) (recommend.ChallengeRecommendation, error) {
	region, dest, ok := destination(&c.Candidate, &c.Activity, a.ontology)
	if !ok {
		dest = in.Location
	}
	if region == "" {
		region = "local"
	}

	rec := recommend.ChallengeRecommendation{
		ChallengeCandidate: *c,
		Region:             region,
		Travel:             EstimateTravel(geo.DistanceKm(in.Location, dest)),
	}

	rec.Forecast = a.forecast(ctx, budget, &c.Activity, dest, in)

	venues, err := a.verify(ctx, budget, c, region, dest)
	if err != nil {
		return recommend.ChallengeRecommendation{}, err
	}
	rec.Venues = venues

	rec.WhyNow = WhyNow(&c.Activity, in.Time, rec.Forecast)
	rec.SafetyHint = SafetyHint(&c.Activity, rec.Forecast)
	rec.ChallengeLevel = ChallengeLevel(c.Activity.Difficulty, len(c.Factors))
	rec.ComfortZoneStretch = StretchDescriptions(c, in.User.Normalize(), in.RadiusKm)
	return rec, nil
}

// forecast fetches the destination forecast. Failures yield an unknown badge
// and never drop the candidate.
//
//nolint:gocritic // hugeParam: in passed by value for immutability
func (a *Assembler) forecast(
	ctx context.Context,
	budget *CallBudget,
	act *recommend.Activity,
	dest geo.Point,
	in recommend.ChallengeInput,
) recommend.ForecastBadge {
	wc := in.Weather
	if a.weather != nil {
		var fc recommend.Forecast
		err := budget.Do(ctx, ProviderWeather, func(ctx context.Context) error {
			var err error
			fc, err = a.weather.Forecast(ctx, dest, in.Time.Now)
			return err
		})
		if err != nil {
			a.logger.Debug().Err(err).Str("request_id", in.RequestID).Msg("destination forecast unavailable")
			wc = recommend.WeatherContext{}
		} else {
			wc = recommend.WeatherContext{Forecast: fc, Known: true}
		}
	}

	badge := recommend.ForecastBadge{
		Condition:   "unknown",
		Suitability: overallSuitability(act, wc),
	}
	if wc.Known {
		badge.Condition = wc.Forecast.Condition
		badge.MaxTempC = wc.Forecast.MaxTempC
	}
	return badge
}

// verify asks the venue verifier for real venues and keeps the usable ones,
// best rated first.
func (a *Assembler) verify(
	ctx context.Context,
	budget *CallBudget,
	c *recommend.ChallengeCandidate,
	region string,
	dest geo.Point,
) ([]recommend.Venue, error) {
	if a.verifier == nil {
		return nil, fmt.Errorf("%w: no venue verifier configured", recommend.ErrNoVenues)
	}

	q := recommend.VerifyQuery{
		Region:   region,
		Center:   dest,
		RadiusKm: a.cfg.VerifyRadiusKm,
		Keywords: verifyKeywords(c),
	}

	var raw []recommend.Venue
	err := budget.Do(ctx, ProviderVenues, func(ctx context.Context) error {
		var err error
		raw, err = a.verifier.Verify(ctx, q)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("verify venues in %s: %w", region, err)
	}

	venues := make([]recommend.Venue, 0, len(raw))
	for _, v := range raw {
		if v.Name == "" || v.Rating <= 0 || math.IsNaN(v.Rating) || !v.Location.Known() {
			continue
		}
		venues = append(venues, v)
	}
	if len(venues) == 0 {
		return nil, fmt.Errorf("%w in %s for %s", recommend.ErrNoVenues, region, c.Activity.ID)
	}

	sort.SliceStable(venues, func(i, j int) bool {
		if venues[i].Rating != venues[j].Rating {
			return venues[i].Rating > venues[j].Rating
		}
		if venues[i].ReviewCount != venues[j].ReviewCount {
			return venues[i].ReviewCount > venues[j].ReviewCount
		}
		return venues[i].ID < venues[j].ID
	})
	if len(venues) > maxVenuesPerChallenge {
		venues = venues[:maxVenuesPerChallenge]
	}
	return venues, nil
}

func verifyKeywords(c *recommend.ChallengeCandidate) []string {
	if len(c.Activity.Subtypes) > 0 {
		return append([]string(nil), c.Activity.Subtypes...)
	}
	if c.Subtype != "" {
		return []string{c.Subtype}
	}
	return []string{string(c.Bucket)}
}

func dropReason(err error) string {
	switch {
	case errors.Is(err, recommend.ErrNoVenues):
		return "no_venues"
	case errors.Is(err, recommend.ErrBudgetExhausted):
		return "budget"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, recommend.ErrProviderUnavailable):
		return "provider_unavailable"
	default:
		return "error"
	}
}

// ChallengeLevel is the larger of the declared difficulty and the fired
// factor share scaled to five, clamped to [1, 5].
func ChallengeLevel(difficulty, factors int) int {
	level := int(math.Ceil(float64(factors) * 5 / recommend.ChallengeFactorCount))
	if difficulty > level {
		level = difficulty
	}
	if level < 1 {
		return 1
	}
	if level > 5 {
		return 5
	}
	return level
}

// SafetyHint returns advice for hard activities, or "".
func SafetyHint(act *recommend.Activity, badge recommend.ForecastBadge) string {
	if act.Difficulty < hardDifficulty {
		return ""
	}
	parts := []string{fmt.Sprintf("%s is rated %d/5 for difficulty; go with a guide or an experienced partner", act.Name, act.Difficulty)}
	if act.TypicalDurationHours > longDurationHours {
		parts = append(parts, "plan for a full day and tell someone your route")
	}
	if badge.Suitability == recommend.SuitabilityBad {
		parts = append(parts, "the forecast is poor, so consider another day")
	}
	return strings.Join(parts, ". ") + "."
}

// WhyNow builds the short timing rationale from season, forecast and weekday.
func WhyNow(act *recommend.Activity, tc recommend.TimeContext, badge recommend.ForecastBadge) string {
	parts := make([]string, 0, 2)

	for _, s := range act.Seasonality {
		if s == string(tc.Season) {
			parts = append(parts, fmt.Sprintf("%s is peak season for %s", capitalize(s), strings.ToLower(act.Name)))
			break
		}
	}

	if badge.Suitability == recommend.SuitabilityGood && act.Setting != recommend.SettingIndoor && badge.Condition != "unknown" {
		parts = append(parts, fmt.Sprintf("the forecast looks right: %s, %.0f°C", strings.ToLower(badge.Condition), badge.MaxTempC))
	}

	if len(parts) < 2 {
		switch tc.Weekday {
		case time.Friday, time.Saturday, time.Sunday:
			parts = append(parts, "the weekend leaves room for something new")
		default:
			parts = append(parts, fmt.Sprintf("%s is a good day to break the routine", tc.Weekday))
		}
	}

	parts[0] = capitalize(parts[0])
	return strings.Join(parts, ", and ") + "."
}

// StretchDescriptions explains every fired factor in user-facing terms.
func StretchDescriptions(c *recommend.ChallengeCandidate, user recommend.UserProfile, radiusKm float64) []string {
	out := make([]string, 0, len(c.Factors))
	for _, f := range c.Factors {
		switch f {
		case recommend.FactorEnergy:
			out = append(out, fmt.Sprintf("More intense than your usual %s-energy pace", user.Energy))
		case recommend.FactorSetting:
			out = append(out, fmt.Sprintf("Takes you %s when you usually prefer %s", c.Activity.Setting, user.Setting))
		case recommend.FactorDifficulty:
			out = append(out, fmt.Sprintf("Difficulty %d/5 is above your openness level of %d", c.Activity.Difficulty, user.Openness))
		case recommend.FactorNovelty:
			out = append(out, fmt.Sprintf("Something you have not tried: %s", strings.ToLower(c.Activity.Name)))
		case recommend.FactorTravel:
			if c.DistanceKm != nil {
				out = append(out, fmt.Sprintf("A %.0f km trip beyond your usual %.0f km radius", *c.DistanceKm, radiusKm))
			} else {
				out = append(out, "A trip beyond your usual radius")
			}
		case recommend.FactorOpportunity:
			out = append(out, "A seasonal or weather window that will not last")
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
