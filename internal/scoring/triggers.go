package scoring

import "strings"

// Dimension is one of the five fixed axes a job posting is scored on.
type Dimension string

const (
	DimensionSafetyBaseline Dimension = "Safety Baseline"
	DimensionADHDWiring     Dimension = "ADHD Wiring"
	DimensionCapabilityFit  Dimension = "Capability Fit"
	DimensionCoRegulation   Dimension = "Co-Regulation"
	DimensionFinancial      Dimension = "Financial Security"
)

// baselineScore is every dimension's starting score before triggers apply.
const baselineScore = 50.0

// dimensionOrder fixes both the trigger evaluation order and the order of
// DimensionResult entries in the output.
var dimensionOrder = []Dimension{
	DimensionSafetyBaseline,
	DimensionADHDWiring,
	DimensionCapabilityFit,
	DimensionCoRegulation,
	DimensionFinancial,
}

// dimensionWeights sum to exactly 1.0.
var dimensionWeights = map[Dimension]float64{
	DimensionSafetyBaseline: 0.30,
	DimensionADHDWiring:     0.20,
	DimensionCapabilityFit:  0.25,
	DimensionCoRegulation:   0.15,
	DimensionFinancial:      0.10,
}

// Risk tiers for the overall score. The strings are API contract.
const (
	RiskRed    = "red"
	RiskYellow = "yellow"
	RiskGreen  = "green"
)

// Per-dimension risk labels.
const (
	DimensionRiskCritical = "Critical"
	DimensionRiskCaution  = "Caution"
	DimensionRiskSafe     = "Safe"
)

// riskSummaries holds the fixed summary line per risk tier.
var riskSummaries = map[string]string{
	RiskRed:    "Predicted collapse",
	RiskYellow: "Proceed with caution",
	RiskGreen:  "Safe for your pattern",
}

const negotiationHandoffClause = "Negotiate explicit handoff clause"

// trigger is a single keyword rule against the lower-cased job text. Matching
// is plain substring membership, not tokenized or word-boundary aware.
type trigger struct {
	dimension Dimension
	anyOf     []string // trigger fires when any phrase is present
	noneOf    []string // ...unless any of these phrases is also present
	points    float64  // signed; applied once even when several phrases match
	scaled    bool     // multiply by (11 - trauma value) / 10 for the dimension
	flag      string   // recorded as a green flag (points > 0) or red flag
}

func (t trigger) matches(job string) bool {
	hit := false
	for _, phrase := range t.anyOf {
		if strings.Contains(job, phrase) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	for _, phrase := range t.noneOf {
		if strings.Contains(job, phrase) {
			return false
		}
	}
	return true
}

// triggerTable is the complete rule set, grouped by dimension in evaluation
// order. Rows are independent: a posting can fire both the positive and the
// negative rule of the same dimension.
var triggerTable = []trigger{
	{dimension: DimensionSafetyBaseline, anyOf: []string{"remote-first"}, points: 30, scaled: true, flag: "Remote-first"},
	{dimension: DimensionSafetyBaseline, anyOf: []string{"on-site", "relocation"}, points: -40, scaled: true, flag: "On-site requirement"},
	{dimension: DimensionADHDWiring, anyOf: []string{"deep work", "focus time"}, points: 40, scaled: true, flag: "Deep work protected"},
	{dimension: DimensionADHDWiring, anyOf: []string{"fast-paced", "multitasking"}, points: -30, scaled: true, flag: "High context switching"},
	{dimension: DimensionCapabilityFit, anyOf: []string{"automation", "strategy"}, points: 35, flag: "Strategic/automation focus"},
	{dimension: DimensionCoRegulation, anyOf: []string{"collaborative", "team-oriented"}, points: 20, scaled: true, flag: "Collaborative culture"},
	{dimension: DimensionCoRegulation, anyOf: []string{"independent"}, noneOf: []string{"team"}, points: -15, scaled: true, flag: "Potentially isolated"},
	{dimension: DimensionFinancial, anyOf: []string{"transparent pay", "salary range"}, points: 25, scaled: true, flag: "Salary transparency"},
}
