package forecast

import "github.com/payequity/equisim/internal/domain"

// LevelCategory groups job levels into the pay-band categories the uplift
// matrix is keyed by.
type LevelCategory string

const (
	CategoryCompetent LevelCategory = "competent"
	CategoryAdvanced  LevelCategory = "advanced"
	CategoryExpert    LevelCategory = "expert"
)

// levelCategories maps job level to pay-band category. Levels 1-3 are the
// core band, 4-6 the senior band; both cycle competent/advanced/expert.
var levelCategories = map[int]LevelCategory{
	1: CategoryCompetent,
	2: CategoryAdvanced,
	3: CategoryExpert,
	4: CategoryCompetent,
	5: CategoryAdvanced,
	6: CategoryExpert,
}

// upliftComponents holds the additive rate components for one rating row of
// the uplift matrix.
type upliftComponents struct {
	baseline    float64
	performance float64
	byCategory  map[LevelCategory]float64
}

// upliftMatrix is the annual salary increase lookup: the applied rate is
// baseline + performance + the level-category component.
var upliftMatrix = map[domain.Rating]upliftComponents{
	domain.RatingNotMet: {
		baseline:    0.0125,
		performance: 0.0,
		byCategory:  map[LevelCategory]float64{CategoryCompetent: 0.0, CategoryAdvanced: 0.0075, CategoryExpert: 0.01},
	},
	domain.RatingPartiallyMet: {
		baseline:    0.0125,
		performance: 0.0,
		byCategory:  map[LevelCategory]float64{CategoryCompetent: 0.0, CategoryAdvanced: 0.0075, CategoryExpert: 0.01},
	},
	domain.RatingAchieving: {
		baseline:    0.0125,
		performance: 0.0125,
		byCategory:  map[LevelCategory]float64{CategoryCompetent: 0.005, CategoryAdvanced: 0.0075, CategoryExpert: 0.01},
	},
	domain.RatingHighPerforming: {
		baseline:    0.0125,
		performance: 0.0225,
		byCategory:  map[LevelCategory]float64{CategoryCompetent: 0.005, CategoryAdvanced: 0.0075, CategoryExpert: 0.01},
	},
	domain.RatingExceeding: {
		baseline:    0.0125,
		performance: 0.030,
		byCategory:  map[LevelCategory]float64{CategoryCompetent: 0.005, CategoryAdvanced: 0.0075, CategoryExpert: 0.01},
	},
}

// performanceVariance estimates the year-on-year volatility of increases by
// rating, used as a dispersion hint by downstream consumers.
var performanceVariance = map[domain.Rating]float64{
	domain.RatingNotMet:         0.005,
	domain.RatingPartiallyMet:   0.008,
	domain.RatingAchieving:      0.010,
	domain.RatingHighPerforming: 0.015,
	domain.RatingExceeding:      0.020,
}
