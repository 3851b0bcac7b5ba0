package preset

// Characteristics describes a project for preset selection. Levels are on a
// 1-10 scale and durations are in days. Zero means unknown and never
// satisfies a comparison.
type Characteristics struct {
	TeamSize           int     `json:"teamSize"`
	ProjectDuration    float64 `json:"projectDuration"`
	UncertaintyLevel   float64 `json:"uncertaintyLevel"`
	QualityRequirement float64 `json:"qualityRequirement"`
	TimeConstraint     float64 `json:"timeConstraint"`
	BudgetConstraint   float64 `json:"budgetConstraint"`
	IsAgile            bool    `json:"isAgile"`
	IsResearch         bool    `json:"isResearch"`
	IsEnterprise       bool    `json:"isEnterprise"`
}

type rule struct {
	preset Name
	match  func(c Characteristics) bool
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{Enterprise, func(c Characteristics) bool { return c.IsEnterprise || c.TeamSize > 20 }},
	{Research, func(c Characteristics) bool { return c.IsResearch || c.UncertaintyLevel > 8 }},
	{AgileSprint, func(c Characteristics) bool {
		return c.IsAgile || (c.TimeConstraint > 7 && below(c.ProjectDuration, 90))
	}},
	{RapidPrototype, func(c Characteristics) bool { return below(c.ProjectDuration, 14) && c.TimeConstraint > 8 }},
	{LeanStartup, func(c Characteristics) bool {
		return c.UncertaintyLevel > 6 && c.TimeConstraint > 6 && below(float64(c.TeamSize), 10)
	}},
	{Maintenance, func(c Characteristics) bool { return below(c.QualityRequirement, 6) && below(c.UncertaintyLevel, 4) }},
	{Waterfall, func(c Characteristics) bool { return below(c.UncertaintyLevel, 4) && c.QualityRequirement > 8 }},
	{CriticalChain, func(c Characteristics) bool { return c.BudgetConstraint > 7 || c.TeamSize > 10 }},
}

// Recommend picks a preset for the project.
func Recommend(c Characteristics) Name {
	for _, r := range rules {
		if r.match(c) {
			return r.preset
		}
	}
	return AgileSprint
}

func below(v, limit float64) bool {
	return v > 0 && v < limit
}
