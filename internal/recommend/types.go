// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package recommend

import (
	"context"
	"strings"
	"time"

	"github.com/tomtom215/vibecompass/internal/geo"
)

// Bucket is a coarse activity category. The set is closed: any string the
// providers emit that is not a known bucket maps to BucketOther so that the
// scoring and diversity stages always agree on the category.
type Bucket string

const (
	BucketCulture       Bucket = "culture"
	BucketNature        Bucket = "nature"
	BucketAdventure     Bucket = "adventure"
	BucketSocial        Bucket = "social"
	BucketWellness      Bucket = "wellness"
	BucketNightlife     Bucket = "nightlife"
	BucketSports        Bucket = "sports"
	BucketFood          Bucket = "food"
	BucketEntertainment Bucket = "entertainment"
	BucketOther         Bucket = "other"
)

// knownBuckets is the bucket registry.
var knownBuckets = map[Bucket]struct{}{
	BucketCulture:       {},
	BucketNature:        {},
	BucketAdventure:     {},
	BucketSocial:        {},
	BucketWellness:      {},
	BucketNightlife:     {},
	BucketSports:        {},
	BucketFood:          {},
	BucketEntertainment: {},
	BucketOther:         {},
}

// ParseBucket normalizes a free-text category into a registered Bucket.
func ParseBucket(s string) Bucket {
	b := Bucket(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := knownBuckets[b]; ok {
		return b
	}
	return BucketOther
}

// Buckets returns every registered bucket in a stable order.
func Buckets() []Bucket {
	return []Bucket{
		BucketCulture, BucketNature, BucketAdventure, BucketSocial, BucketWellness,
		BucketNightlife, BucketSports, BucketFood, BucketEntertainment, BucketOther,
	}
}

// EnergyLevel is the ordered energy scale shared by venues, vibes and users.
type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

// ParseEnergy returns the energy level for s, or "" when s is not a level.
func ParseEnergy(s string) EnergyLevel {
	switch EnergyLevel(strings.ToLower(strings.TrimSpace(s))) {
	case EnergyLow:
		return EnergyLow
	case EnergyMedium:
		return EnergyMedium
	case EnergyHigh:
		return EnergyHigh
	default:
		return ""
	}
}

// Rank returns the position of the level on the low-medium-high scale,
// or -1 for an unknown level.
func (e EnergyLevel) Rank() int {
	switch e {
	case EnergyLow:
		return 0
	case EnergyMedium:
		return 1
	case EnergyHigh:
		return 2
	default:
		return -1
	}
}

// Adjacent reports whether two known levels are one step apart.
func (e EnergyLevel) Adjacent(other EnergyLevel) bool {
	a, b := e.Rank(), other.Rank()
	if a < 0 || b < 0 {
		return false
	}
	return a-b == 1 || b-a == 1
}

// SocialPreference is how many people the user wants around.
type SocialPreference string

const (
	SocialAlone      SocialPreference = "alone"
	SocialIntimate   SocialPreference = "intimate"
	SocialSmallGroup SocialPreference = "small_group"
	SocialCrowd      SocialPreference = "crowd"
)

// VenueSocialLevel is the inferred crowd level of a venue.
type VenueSocialLevel string

const (
	VenueSolitary VenueSocialLevel = "solitary"
	VenueIntimate VenueSocialLevel = "intimate"
	VenueSocial   VenueSocialLevel = "social"
	VenueCrowded  VenueSocialLevel = "crowded"
)

// BudgetTier is the user's spending tier.
type BudgetTier string

const (
	BudgetFree   BudgetTier = "free"
	BudgetLow    BudgetTier = "low"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
	BudgetAny    BudgetTier = "any"
)

// PriceRange returns the inclusive provider price levels (0-4) the tier allows.
// Unknown tiers allow everything.
func (b BudgetTier) PriceRange() (lo, hi int) {
	switch b {
	case BudgetFree:
		return 0, 0
	case BudgetLow:
		return 0, 1
	case BudgetMedium:
		return 1, 2
	case BudgetHigh:
		return 2, 4
	default:
		return 0, 4
	}
}

// Allows reports whether a provider price level falls inside the tier.
func (b BudgetTier) Allows(priceLevel int) bool {
	lo, hi := b.PriceRange()
	return priceLevel >= lo && priceLevel <= hi
}

// Setting is where an activity takes place.
type Setting string

const (
	SettingIndoor  Setting = "indoor"
	SettingOutdoor Setting = "outdoor"
	SettingEither  Setting = "either"
)

// ParseSetting returns the setting for s, defaulting to SettingEither.
func ParseSetting(s string) Setting {
	switch Setting(strings.ToLower(strings.TrimSpace(s))) {
	case SettingIndoor:
		return SettingIndoor
	case SettingOutdoor:
		return SettingOutdoor
	default:
		return SettingEither
	}
}

// Season is a meteorological season.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// SeasonAllYear marks activities that are available in every season.
const SeasonAllYear = "all-season"

// Candidate is a venue returned by the candidate pool. Scoring stages never
// modify it; derived values live on ScoredCandidate.
type Candidate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Bucket      Bucket    `json:"bucket"`
	Subtype     string    `json:"subtype,omitempty"`
	Location    geo.Point `json:"location"`
	Region      string    `json:"region,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	ReviewCount int       `json:"review_count"`
	PriceLevel  *int      `json:"price_level,omitempty"`
	Types       []string  `json:"types,omitempty"`
}

// HasType reports whether the candidate carries the provider type tag t.
func (c *Candidate) HasType(t string) bool {
	for _, ct := range c.Types {
		if strings.EqualFold(ct, t) {
			return true
		}
	}
	return false
}

// VibeProfile is the structured form of the user's free-text vibe, produced
// by a VibeParser. It is read-only for the pipeline.
type VibeProfile struct {
	Energy     EnergyLevel      `json:"energy"`
	Social     SocialPreference `json:"social"`
	Mood       string           `json:"mood"`
	Categories []Bucket         `json:"categories,omitempty"`
	Budget     BudgetTier       `json:"budget"`
	Keywords   []string         `json:"keywords,omitempty"`
	Confidence float64          `json:"confidence"`
}

// DefaultVibeProfile is used whenever the vibe cannot be parsed.
func DefaultVibeProfile() VibeProfile {
	return VibeProfile{
		Energy:     EnergyMedium,
		Social:     SocialSmallGroup,
		Mood:       "relaxed",
		Budget:     BudgetAny,
		Confidence: 0,
	}
}

// UserProfile holds the user's stated preferences.
type UserProfile struct {
	Interests []string    `json:"interests,omitempty"`
	Energy    EnergyLevel `json:"energy_level,omitempty"`
	Setting   Setting     `json:"indoor_outdoor,omitempty"`
	Openness  int         `json:"openness_score,omitempty"`
}

// Normalize fills missing or out-of-range fields with defaults
// (energy=medium, openness=3, setting=either).
func (u UserProfile) Normalize() UserProfile {
	if u.Energy.Rank() < 0 {
		u.Energy = EnergyMedium
	}
	if u.Openness < 1 || u.Openness > 5 {
		u.Openness = 3
	}
	if u.Setting != SettingIndoor && u.Setting != SettingOutdoor {
		u.Setting = SettingEither
	}
	return u
}

// HasInterest reports whether s is one of the user's interests.
func (u UserProfile) HasInterest(s string) bool {
	for _, i := range u.Interests {
		if strings.EqualFold(strings.TrimSpace(i), s) {
			return true
		}
	}
	return false
}

// ScoredCandidate is a candidate with every pipeline score attached.
type ScoredCandidate struct {
	Candidate

	VibeScore         float64 `json:"vibe_score"`
	FeasibilityScore  float64 `json:"feasibility_score"`
	PersonalizedScore float64 `json:"personalized_score"`

	// Boosted is set when a domain booster raised PersonalizedScore.
	Boosted     bool   `json:"boosted,omitempty"`
	BoostDomain string `json:"boost_domain,omitempty"`

	// FeasibilityReasons explain the feasibility score for the UI.
	FeasibilityReasons []string `json:"feasibility_reasons,omitempty"`
}

// DiversityStats summarizes how diverse a selection is.
type DiversityStats struct {
	UniqueBuckets  int     `json:"unique_buckets"`
	UniqueSubtypes int     `json:"unique_subtypes"`
	UniqueRegions  int     `json:"unique_regions"`
	DiversityScore float64 `json:"diversity_score"`
}

// Override records a domain swap that replaced a diversified entry.
type Override struct {
	Domain      string `json:"domain"`
	InsertedID  string `json:"inserted_id"`
	DisplacedID string `json:"displaced_id"`
}

// SelectionResult is the output of the diversity stage.
type SelectionResult struct {
	Items     []ScoredCandidate `json:"items"`
	Stats     DiversityStats    `json:"stats"`
	Overrides []Override        `json:"overrides,omitempty"`

	// Denominator is min(N, |input|) of the selection, kept so that later
	// stages can recompute Stats after modifying Items.
	Denominator int `json:"-"`
}

// ChallengeFactor names one reason a candidate stretches the user.
type ChallengeFactor string

const (
	FactorEnergy      ChallengeFactor = "energy_stretch"
	FactorSetting     ChallengeFactor = "setting_stretch"
	FactorDifficulty  ChallengeFactor = "difficulty_stretch"
	FactorNovelty     ChallengeFactor = "novel_subtype"
	FactorTravel      ChallengeFactor = "travel_stretch"
	FactorOpportunity ChallengeFactor = "seasonal_opportunity"
)

// ChallengeFactorCount is the number of factors the finder evaluates.
const ChallengeFactorCount = 6

// Activity is the ontology definition the challenge stages reason about.
type Activity struct {
	ID                   string      `json:"id" yaml:"id"`
	Name                 string      `json:"name" yaml:"name"`
	Category             Bucket      `json:"category" yaml:"category"`
	Subtypes             []string    `json:"subtypes" yaml:"subtypes"`
	Energy               EnergyLevel `json:"energy" yaml:"energy"`
	Setting              Setting     `json:"setting" yaml:"setting"`
	Seasonality          []string    `json:"seasonality,omitempty" yaml:"seasonality"`
	Difficulty           int         `json:"difficulty" yaml:"difficulty"`
	Regions              []string    `json:"regions,omitempty" yaml:"regions"`
	TypicalDurationHours float64     `json:"typical_duration_hours" yaml:"typical_duration_hours"`
	MatchTypes           []string    `json:"-" yaml:"match_types"`
}

// ChallengeSubScores is the breakdown of a challenge score.
type ChallengeSubScores struct {
	Weather  float64 `json:"weather"`
	Travel   float64 `json:"travel"`
	Novelty  float64 `json:"novelty"`
	Seasonal float64 `json:"seasonal"`
	Safety   float64 `json:"safety"`
}

// ChallengeCandidate is a candidate that stretches the user's comfort zone.
type ChallengeCandidate struct {
	ScoredCandidate

	Activity       Activity           `json:"activity"`
	DistanceKm     *float64           `json:"distance_km,omitempty"`
	ChallengeScore float64            `json:"challenge_score"`
	SubScores      ChallengeSubScores `json:"sub_scores"`
	Factors        []ChallengeFactor  `json:"factors"`
}

// TransportMode is the suggested way to reach a challenge.
type TransportMode string

const (
	TransportDrive  TransportMode = "drive"
	TransportTrain  TransportMode = "train"
	TransportFlight TransportMode = "flight"
)

// TravelEstimate describes the trip to a challenge region.
type TravelEstimate struct {
	DistanceKm       float64       `json:"distance_km"`
	DrivingTimeHours float64       `json:"driving_time_hours"`
	TransportMode    TransportMode `json:"transport_mode"`
	Feasible         bool          `json:"feasible"`
}

// Suitability is the weather verdict for an activity.
type Suitability string

const (
	SuitabilityGood    Suitability = "good"
	SuitabilityOK      Suitability = "ok"
	SuitabilityBad     Suitability = "bad"
	SuitabilityUnknown Suitability = "unknown"
)

// ForecastBadge is the compact forecast shown next to a challenge.
type ForecastBadge struct {
	Condition   string      `json:"condition"`
	Suitability Suitability `json:"suitability"`
	MaxTempC    float64     `json:"max_temp_c"`
}

// Venue is a verified, named place returned by a VenueVerifier.
type Venue struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    geo.Point `json:"location"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count,omitempty"`
}

// ChallengeRecommendation is a challenge ready to be shown to the user.
type ChallengeRecommendation struct {
	ChallengeCandidate

	Region             string         `json:"region"`
	Travel             TravelEstimate `json:"travel"`
	Forecast           ForecastBadge  `json:"forecast"`
	SafetyHint         string         `json:"safety_hint,omitempty"`
	WhyNow             string         `json:"why_now"`
	ChallengeLevel     int            `json:"challenge_level"`
	ComfortZoneStretch []string       `json:"comfort_zone_stretch"`
	Venues             []Venue        `json:"venues"`
}

// TimeContext is the temporal context of a request.
type TimeContext struct {
	Now     time.Time    `json:"now"`
	Season  Season       `json:"season"`
	Weekday time.Weekday `json:"weekday"`
}

// Forecast is one day of weather for a location.
type Forecast struct {
	MaxTempC        float64 `json:"max_temp_c"`
	PrecipitationMM float64 `json:"precipitation_mm"`
	WindKPH         float64 `json:"wind_kph"`
	Condition       string  `json:"condition"`
}

// WeatherContext is the weather at the user's location. Known is false when
// the weather provider could not be reached.
type WeatherContext struct {
	Forecast Forecast `json:"forecast"`
	Known    bool     `json:"known"`
}

// FeasibilityStats summarizes feasibility across the scored pool.
type FeasibilityStats struct {
	Candidates         int     `json:"candidates"`
	AverageFeasibility float64 `json:"average_feasibility"`
	AverageRating      float64 `json:"average_rating"`
	RatedCandidates    int     `json:"rated_candidates"`
	LowConfidence      int     `json:"low_confidence"`
}

// Request is a recommendation request.
type Request struct {
	RequestID string      `json:"request_id,omitempty"`
	Vibe      VibeProfile `json:"vibe"`
	User      UserProfile `json:"user"`
	Location  geo.Point   `json:"location"`

	// RadiusKm bounds the candidate pool and defines "travel stretch".
	// Defaults to Config.Pool.DefaultRadiusKm when zero.
	RadiusKm float64 `json:"radius_km,omitempty"`

	// Types optionally restricts the pool to provider type tags.
	Types []string `json:"types,omitempty"`

	// ExplorationWeight optionally raises the exploration bias, typically
	// supplied by an external learned model.
	ExplorationWeight *float64 `json:"exploration_weight,omitempty"`

	// Now overrides the request time; zero means time.Now().
	Now time.Time `json:"now,omitempty"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID       string     `json:"request_id"`
	TotalCandidates int        `json:"total_candidates"`
	Excluded        []string   `json:"excluded,omitempty"`
	Overrides       []Override `json:"overrides,omitempty"`
	ActiveDomains   []string   `json:"active_domains,omitempty"`
	Season          Season     `json:"season"`
	WeatherKnown    bool       `json:"weather_known"`
	LatencyMS       int64      `json:"latency_ms"`
	Timestamp       time.Time  `json:"timestamp"`
}

// Response is the pipeline output consumed by the API layer.
type Response struct {
	TopFive          []ScoredCandidate         `json:"top_five"`
	Challenges       []ChallengeRecommendation `json:"challenges"`
	DiversityStats   DiversityStats            `json:"diversity_stats"`
	FeasibilityStats FeasibilityStats          `json:"feasibility_stats"`
	Metadata         ResponseMetadata          `json:"metadata"`
}

// PoolQuery selects candidates from a CandidatePool.
type PoolQuery struct {
	Center   geo.Point
	RadiusKm float64
	Types    []string
	Keywords []string
	Limit    int
}

// Matches applies the type and keyword filters of q to c. A candidate
// matches when it carries any of q.Types, and when any of q.Keywords occurs
// in its name, subtype or types. Empty filters match everything.
func (q *PoolQuery) Matches(c *Candidate) bool {
	if len(q.Types) > 0 {
		ok := false
		for _, t := range q.Types {
			if c.HasType(t) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	if len(q.Keywords) == 0 {
		return true
	}
	haystack := strings.ToLower(c.Name + " " + c.Subtype + " " + strings.Join(c.Types, " "))
	for _, kw := range q.Keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" && strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// CandidatePool returns raw venue candidates around a location.
type CandidatePool interface {
	Candidates(ctx context.Context, q PoolQuery) ([]Candidate, error)
}

// WeatherProvider returns a one-day forecast for a location.
type WeatherProvider interface {
	Forecast(ctx context.Context, at geo.Point, day time.Time) (Forecast, error)
}

// VerifyQuery asks a VenueVerifier for real venues.
type VerifyQuery struct {
	Region   string
	Center   geo.Point
	RadiusKm float64
	Keywords []string
}

// VenueVerifier returns rated, geolocated venues for a region. Implementations
// must honor the context deadline.
type VenueVerifier interface {
	Verify(ctx context.Context, q VerifyQuery) ([]Venue, error)
}

// Ontology resolves candidates to activity definitions and regions to
// coordinates. It is read-only.
type Ontology interface {
	ActivityFor(c *Candidate) (Activity, bool)
	RegionCenter(name string) (geo.Point, bool)
}
