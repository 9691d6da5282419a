package forecast

import "github.com/payequity/equisim/internal/domain"

// Scenario names a performance trajectory assumption.
type Scenario string

const (
	ScenarioConservative Scenario = "conservative"
	ScenarioRealistic    Scenario = "realistic"
	ScenarioOptimistic   Scenario = "optimistic"
)

// DefaultScenarios is the canonical trio produced for every projection.
var DefaultScenarios = []Scenario{ScenarioConservative, ScenarioRealistic, ScenarioOptimistic}

// ScenarioPathLength is the length of every base rating path.
const ScenarioPathLength = 5

func ratings(rs ...domain.Rating) []domain.Rating { return rs }

// ratingProgressions holds the base five-year rating paths per current
// rating and scenario.
var ratingProgressions = map[domain.Rating]map[Scenario][]domain.Rating{
	domain.RatingNotMet: {
		ScenarioConservative: ratings(domain.RatingNotMet, domain.RatingNotMet, domain.RatingPartiallyMet, domain.RatingPartiallyMet, domain.RatingAchieving),
		ScenarioRealistic:    ratings(domain.RatingNotMet, domain.RatingPartiallyMet, domain.RatingAchieving, domain.RatingAchieving, domain.RatingHighPerforming),
		ScenarioOptimistic:   ratings(domain.RatingPartiallyMet, domain.RatingAchieving, domain.RatingHighPerforming, domain.RatingHighPerforming, domain.RatingExceeding),
	},
	domain.RatingPartiallyMet: {
		ScenarioConservative: ratings(domain.RatingPartiallyMet, domain.RatingPartiallyMet, domain.RatingAchieving, domain.RatingAchieving, domain.RatingAchieving),
		ScenarioRealistic:    ratings(domain.RatingPartiallyMet, domain.RatingAchieving, domain.RatingAchieving, domain.RatingHighPerforming, domain.RatingHighPerforming),
		ScenarioOptimistic:   ratings(domain.RatingAchieving, domain.RatingHighPerforming, domain.RatingHighPerforming, domain.RatingExceeding, domain.RatingExceeding),
	},
	domain.RatingAchieving: {
		ScenarioConservative: ratings(domain.RatingAchieving, domain.RatingAchieving, domain.RatingAchieving, domain.RatingHighPerforming, domain.RatingHighPerforming),
		ScenarioRealistic:    ratings(domain.RatingAchieving, domain.RatingAchieving, domain.RatingHighPerforming, domain.RatingHighPerforming, domain.RatingExceeding),
		ScenarioOptimistic:   ratings(domain.RatingAchieving, domain.RatingHighPerforming, domain.RatingHighPerforming, domain.RatingExceeding, domain.RatingExceeding),
	},
	domain.RatingHighPerforming: {
		ScenarioConservative: ratings(domain.RatingHighPerforming, domain.RatingHighPerforming, domain.RatingHighPerforming, domain.RatingHighPerforming, domain.RatingExceeding),
		ScenarioRealistic:    ratings(domain.RatingHighPerforming, domain.RatingHighPerforming, domain.RatingExceeding, domain.RatingExceeding, domain.RatingExceeding),
		ScenarioOptimistic:   ratings(domain.RatingHighPerforming, domain.RatingExceeding, domain.RatingExceeding, domain.RatingExceeding, domain.RatingExceeding),
	},
	domain.RatingExceeding: {
		ScenarioConservative: ratings(domain.RatingExceeding, domain.RatingExceeding, domain.RatingHighPerforming, domain.RatingHighPerforming, domain.RatingExceeding),
		ScenarioRealistic:    ratings(domain.RatingExceeding, domain.RatingExceeding, domain.RatingExceeding, domain.RatingExceeding, domain.RatingExceeding),
		ScenarioOptimistic:   ratings(domain.RatingExceeding, domain.RatingExceeding, domain.RatingExceeding, domain.RatingExceeding, domain.RatingExceeding),
	},
}

// ScenarioPaths bundles the three canonical rating paths for one starting
// rating.
type ScenarioPaths struct {
	Conservative []domain.Rating `json:"conservative"`
	Realistic    []domain.Rating `json:"realistic"`
	Optimistic   []domain.Rating `json:"optimistic"`
}

// Path returns the rating path for the named scenario, falling back to the
// realistic path for unknown names.
func (sp ScenarioPaths) Path(s Scenario) []domain.Rating {
	switch s {
	case ScenarioConservative:
		return sp.Conservative
	case ScenarioOptimistic:
		return sp.Optimistic
	default:
		return sp.Realistic
	}
}
