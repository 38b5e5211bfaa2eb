package scoring

import (
	"fmt"
	"math"
	"strings"
)

// ScoringEngine scores job postings against a user's five-dimension trauma
// profile. It is a pure computation: no I/O, no shared state, safe for
// concurrent use.
type ScoringEngine struct{}

// NewScoringEngine creates a new scoring engine instance
func NewScoringEngine() *ScoringEngine {
	return &ScoringEngine{}
}

// ProfileInput holds the user's self-reported trauma values, one per
// dimension. Values are integers 1-10 where a low value means high
// vulnerability on that axis. Range checking happens at the API boundary;
// the engine assumes valid input.
type ProfileInput struct {
	SafetyBaseline int `json:"safety_baseline" binding:"required,min=1,max=10"`
	ADHDWiring     int `json:"adhd_wiring" binding:"required,min=1,max=10"`
	Capability     int `json:"capability" binding:"required,min=1,max=10"`
	CoRegulation   int `json:"co_regulation" binding:"required,min=1,max=10"`
	Financial      int `json:"financial" binding:"required,min=1,max=10"`
}

// valueFor returns the trauma value for a dimension. The mapping is explicit
// so that a change to a display name can never silently break the lookup.
func (p ProfileInput) valueFor(d Dimension) int {
	switch d {
	case DimensionSafetyBaseline:
		return p.SafetyBaseline
	case DimensionADHDWiring:
		return p.ADHDWiring
	case DimensionCapabilityFit:
		return p.Capability
	case DimensionCoRegulation:
		return p.CoRegulation
	case DimensionFinancial:
		return p.Financial
	}
	return 0
}

// DimensionResult is the per-dimension breakdown of a scan.
type DimensionResult struct {
	Dimension           string  `json:"dimension"`
	BaseScore           float64 `json:"base_score"`
	TraumaAdjustedScore float64 `json:"trauma_adjusted_score"`
	Weight              float64 `json:"weight"`
	MatchPercentage     float64 `json:"match_percentage"`
	RiskLevel           string  `json:"risk_level"`
	Critical            bool    `json:"critical"`
}

// ScanResult is the full outcome of scoring one job posting. All slices keep
// insertion order, which follows the fixed trigger evaluation order.
type ScanResult struct {
	OverallScore          float64           `json:"overall_score"`
	RiskLevel             string            `json:"risk_level"`
	Summary               string            `json:"summary"`
	DimensionalMatch      []DimensionResult `json:"dimensional_match"`
	CriticalGaps          []string          `json:"critical_gaps"`
	NegotiationPriorities []string          `json:"negotiation_priorities"`
	RedFlags              []string          `json:"red_flags"`
	GreenFlags            []string          `json:"green_flags"`
}

// Score evaluates a job posting against a profile. Text is matched
// case-insensitively; empty text simply triggers nothing. The call never
// fails for range-checked profiles.
func (e *ScoringEngine) Score(jobText string, profile ProfileInput) *ScanResult {
	job := strings.ToLower(jobText)

	result := &ScanResult{
		DimensionalMatch:      make([]DimensionResult, 0, len(dimensionOrder)),
		CriticalGaps:          []string{},
		NegotiationPriorities: []string{},
		RedFlags:              []string{},
		GreenFlags:            []string{},
	}

	scores := make(map[Dimension]float64, len(dimensionOrder))
	for _, dim := range dimensionOrder {
		scores[dim] = baselineScore
	}

	for _, tr := range triggerTable {
		if !tr.matches(job) {
			continue
		}
		points := tr.points
		if tr.scaled {
			points *= traumaFactor(profile.valueFor(tr.dimension))
		}
		scores[tr.dimension] += points
		if tr.points > 0 {
			result.GreenFlags = append(result.GreenFlags, tr.flag)
		} else {
			result.RedFlags = append(result.RedFlags, tr.flag)
		}
	}

	var total float64
	for _, dim := range dimensionOrder {
		base := clampScore(scores[dim])
		weight := dimensionWeights[dim]
		total += base * weight

		trauma := profile.valueFor(dim)
		critical := isCritical(base, trauma)

		result.DimensionalMatch = append(result.DimensionalMatch, DimensionResult{
			Dimension:           string(dim),
			BaseScore:           base,
			TraumaAdjustedScore: base * traumaFactor(trauma),
			Weight:              weight,
			MatchPercentage:     math.Round(base*10) / 10,
			RiskLevel:           dimensionRiskLevel(base, critical),
			Critical:            critical,
		})

		if critical {
			result.CriticalGaps = append(result.CriticalGaps, fmt.Sprintf("%s: %.0f/100", dim, base))
			if strings.Contains(string(dim), "ADHD") {
				result.NegotiationPriorities = append(result.NegotiationPriorities, negotiationHandoffClause)
			}
		}
	}

	result.OverallScore = math.Round(total*100) / 100
	result.RiskLevel = overallRiskLevel(result.OverallScore)
	result.Summary = riskSummaries[result.RiskLevel]

	return result
}

// traumaFactor converts a 1-10 trauma value into a severity multiplier:
// 1 (most vulnerable) yields 1.0, 10 (least vulnerable) yields 0.1.
func traumaFactor(value int) float64 {
	return float64(11-value) / 10
}

// clampScore bounds a dimension score to [0, 100].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// isCritical marks a dimension that is both weak and a high-vulnerability
// axis for this specific user.
func isCritical(base float64, trauma int) bool {
	return base < 50 && trauma <= 4
}

func dimensionRiskLevel(base float64, critical bool) string {
	if critical {
		return DimensionRiskCritical
	}
	if base < 75 {
		return DimensionRiskCaution
	}
	return DimensionRiskSafe
}

func overallRiskLevel(score float64) string {
	switch {
	case score < 50:
		return RiskRed
	case score < 75:
		return RiskYellow
	default:
		return RiskGreen
	}
}
