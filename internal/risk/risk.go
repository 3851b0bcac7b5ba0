// Package risk scores a schedule against a table of heuristic rules.
package risk

import (
	"github.com/joshharrison/taskflow/internal/resource"
	"github.com/joshharrison/taskflow/internal/task"
)

// Category groups risk factors and their mitigations.
type Category string

const (
	CategorySchedule  Category = "SCHEDULE"
	CategoryResource  Category = "RESOURCE"
	CategoryTechnical Category = "TECHNICAL"
	CategoryQuality   Category = "QUALITY"
)

// Input is everything a rule may inspect.
type Input struct {
	Tasks        []task.Task
	CriticalPath []string
	Utilization  []resource.Utilization
}

// Rule is one entry of the rule table. Score is stored rather than derived
// from Probability*Impact so published values stay exact.
type Rule struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Probability float64
	Impact      float64
	Score       float64
	Predicate   func(Input) bool
	Affected    func(Input) []string // ids of the tasks the factor concerns

	// Contingency plan text, used when Score exceeds ContingencyThreshold.
	Plan     string
	Triggers []string
	Actions  []string
}

// Factor is a triggered rule.
type Factor struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Probability float64  `json:"probability"`
	Impact      float64  `json:"impact"`
	RiskScore       float64  `json:"riskScore"`
	AffectedTaskIDs []string `json:"affectedTaskIds"`
}

// ContingencyPlan is a prepared response to a high-scoring factor.
type ContingencyPlan struct {
	ID                string   `json:"id"`
	RiskID            string   `json:"riskId"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	TriggerConditions []string `json:"triggerConditions"`
	Actions           []string `json:"actions"`
	EstimatedCost     float64  `json:"estimatedCost"`
	EstimatedTime     float64  `json:"estimatedTime"`
}

// Assessment is the outcome of evaluating all rules.
type Assessment struct {
	OverallRiskLevel      float64           `json:"overallRiskLevel"`
	RiskFactors           []Factor          `json:"riskFactors"`
	MitigationSuggestions []string          `json:"mitigationSuggestions"`
	ContingencyPlans      []ContingencyPlan `json:"contingencyPlans"`
}

// Has reports whether a factor with the given id was triggered.
func (a Assessment) Has(id string) bool {
	for _, f := range a.RiskFactors {
		if f.ID == id {
			return true
		}
	}
	return false
}

// Assess evaluates DefaultRules.
func Assess(in Input) Assessment {
	return AssessWith(DefaultRules, in)
}

// AssessWith evaluates rules in order against in.
func AssessWith(rules []Rule, in Input) Assessment {
	a := Assessment{
		RiskFactors:           []Factor{},
		MitigationSuggestions: []string{},
		ContingencyPlans:      []ContingencyPlan{},
	}
	seen := make(map[string]bool)
	var total float64

	for _, r := range rules {
		if r.Predicate == nil || !r.Predicate(in) {
			continue
		}
		affected := []string{}
		if r.Affected != nil {
			affected = append(affected, r.Affected(in)...)
		}
		a.RiskFactors = append(a.RiskFactors, Factor{
			ID:              r.ID,
			Name:            r.Name,
			Description:     r.Description,
			Category:        r.Category,
			Probability:     r.Probability,
			Impact:          r.Impact,
			RiskScore:       r.Score,
			AffectedTaskIDs: affected,
		})
		total += r.Score

		for _, m := range Mitigations[r.Category] {
			if !seen[m] {
				seen[m] = true
				a.MitigationSuggestions = append(a.MitigationSuggestions, m)
			}
		}

		if r.Score > ContingencyThreshold {
			a.ContingencyPlans = append(a.ContingencyPlans, ContingencyPlan{
				ID:                "contingency-" + r.ID,
				RiskID:            r.ID,
				Name:              r.Name + " contingency",
				Description:       r.Plan,
				TriggerConditions: append([]string{}, r.Triggers...),
				Actions:           append([]string{}, r.Actions...),
				EstimatedCost:     r.Impact * 1000,
				EstimatedTime:     r.Impact * 2,
			})
		}
	}

	if n := len(a.RiskFactors); n > 0 {
		a.OverallRiskLevel = total / float64(n)
	}
	return a
}
