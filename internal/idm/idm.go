// Package idm defines the Insights Data Model, the canonical document
// compiled from upstream assessment phase outputs and consumed by all
// report generation.
package idm

// ChapterCode identifies one of the 4 top-level assessment chapters.
type ChapterCode string

const (
	GE ChapterCode = "GE" // Growth Engine
	PH ChapterCode = "PH" // Performance & Health
	PL ChapterCode = "PL" // People & Leadership
	RS ChapterCode = "RS" // Resilience & Safeguards
)

// ChapterCodes lists the chapter codes in canonical order.
var ChapterCodes = []ChapterCode{GE, PH, PL, RS}

// DimensionCode identifies one of the 12 assessed business areas.
type DimensionCode string

const (
	STR DimensionCode = "STR" // Strategy
	SAL DimensionCode = "SAL" // Sales
	MKT DimensionCode = "MKT" // Marketing
	CXP DimensionCode = "CXP" // Customer Experience
	OPS DimensionCode = "OPS" // Operations
	FIN DimensionCode = "FIN" // Financials
	HRS DimensionCode = "HRS" // Human Resources
	LDG DimensionCode = "LDG" // Leadership & Governance
	TIN DimensionCode = "TIN" // Technology & Innovation
	IDS DimensionCode = "IDS" // IT, Data & Systems
	RMS DimensionCode = "RMS" // Risk Management & Sustainability
	CMP DimensionCode = "CMP" // Compliance
)

// DimensionCodes lists the dimension codes in canonical order. Builders and
// validators iterate this slice so output ordering is deterministic.
var DimensionCodes = []DimensionCode{
	STR, SAL, MKT, CXP, OPS, FIN, HRS, LDG, TIN, IDS, RMS, CMP,
}

// FindingType classifies a finding.
type FindingType string

const (
	Strength    FindingType = "strength"
	Gap         FindingType = "gap"
	RiskFinding FindingType = "risk"
	Opportunity FindingType = "opportunity"
)

// Horizon is a recommendation's target implementation timeframe bucket.
type Horizon string

const (
	NinetyDays       Horizon = "90_days"
	TwelveMonths     Horizon = "12_months"
	TwentyFourMonths Horizon = "24_months_plus"
)

// Band is a qualitative performance tier derived from a numeric score.
type Band string

const (
	Critical    Band = "Critical"
	Attention   Band = "Attention"
	Proficiency Band = "Proficiency"
	Excellence  Band = "Excellence"
)

// Trajectory indicates score direction across assessment periods.
type Trajectory string

const (
	Improving Trajectory = "Improving"
	Flat      Trajectory = "Flat"
	Declining Trajectory = "Declining"
)

// Meta records run identity and versioning for one compiled document.
type Meta struct {
	AssessmentRunID    string `json:"assessment_run_id"`
	CompanyProfileID   string `json:"company_profile_id"`
	CreatedAt          string `json:"created_at"`
	MethodologyVersion string `json:"methodology_version"`
	ScoringVersion     string `json:"scoring_version"`
	IDMSchemaVersion   string `json:"idm_schema_version"`
}

// Benchmark positions a score against a peer group.
type Benchmark struct {
	PeerPercentile  float64 `json:"peer_percentile"`
	BandDescription string  `json:"band_description"`
}

// Chapter is one of 4 major assessment groupings. Its score is the
// arithmetic mean of its dimensions' scores, rounded to 1 decimal place.
type Chapter struct {
	ChapterCode          ChapterCode `json:"chapter_code"`
	Name                 string      `json:"name"`
	ScoreOverall         float64     `json:"score_overall"`
	ScoreBand            Band        `json:"score_band"`
	Benchmark            *Benchmark  `json:"benchmark,omitempty"`
	PreviousScoreOverall *float64    `json:"previous_score_overall,omitempty"`
}

// SubIndicator is a finer-grained facet within a dimension. Its id is
// globally unique and prefixed with the owning dimension's code.
type SubIndicator struct {
	ID                      string         `json:"id"`
	DimensionCode           DimensionCode  `json:"dimension_code"`
	Name                    string         `json:"name"`
	Score                   float64        `json:"score"`
	ScoreBand               Band           `json:"score_band,omitempty"`
	ContributingQuestionIDs []string       `json:"contributing_question_ids"`
}

// Dimension is one of 12 assessed business areas, owned by exactly one chapter.
type Dimension struct {
	DimensionCode        DimensionCode  `json:"dimension_code"`
	ChapterCode          ChapterCode    `json:"chapter_code"`
	Name                 string         `json:"name"`
	Description          string         `json:"description"`
	ScoreOverall         float64        `json:"score_overall"`
	ScoreBand            Band           `json:"score_band"`
	SubIndicators        []SubIndicator `json:"sub_indicators"`
	Benchmark            *Benchmark     `json:"benchmark,omitempty"`
	PreviousScoreOverall *float64       `json:"previous_score_overall,omitempty"`
}

// Question maps one questionnaire response to a dimension and sub-indicator.
// RawResponse is opaque; NormalizedScore is present only when the raw value
// was numeric and mappable to the 0-100 scale.
type Question struct {
	QuestionID      string        `json:"question_id"`
	DimensionCode   DimensionCode `json:"dimension_code"`
	SubIndicatorID  string        `json:"sub_indicator_id"`
	RawResponse     any           `json:"raw_response"`
	NormalizedScore *float64      `json:"normalized_score,omitempty"`
}

// EvidenceRefs ties findings to their supporting questions, metrics, or
// benchmark comparisons. Rich upstream sources additionally carry free-text
// evidence lines plus impact and root-cause context, preserved verbatim.
type EvidenceRefs struct {
	QuestionIDs []string `json:"question_ids,omitempty"`
	Metrics     []string `json:"metrics,omitempty"`
	Benchmarks  []string `json:"benchmarks,omitempty"`
	Evidence    []string `json:"evidence,omitempty"`
	ImpactLevel string   `json:"impact_level,omitempty"`
	RootCause   string   `json:"root_cause,omitempty"`
}

// Finding is a discrete insight tied to a dimension.
type Finding struct {
	ID              string        `json:"id"`
	DimensionCode   DimensionCode `json:"dimension_code"`
	SubIndicatorID  string        `json:"sub_indicator_id,omitempty"`
	Type            FindingType   `json:"type"`
	Severity        Level         `json:"severity"`
	ConfidenceLevel Level         `json:"confidence_level"`
	ShortLabel      string        `json:"short_label"`
	Narrative       string        `json:"narrative"`
	EvidenceRefs    *EvidenceRefs `json:"evidence_refs,omitempty"`
}

// Recommendation is a prioritized improvement initiative.
type Recommendation struct {
	ID                   string        `json:"id"`
	DimensionCode        DimensionCode `json:"dimension_code"`
	LinkedFindingIDs     []string      `json:"linked_finding_ids"`
	Theme                string        `json:"theme"`
	PriorityRank         int           `json:"priority_rank"`
	ImpactScore          float64       `json:"impact_score"`
	EffortScore          float64       `json:"effort_score"`
	Horizon              Horizon       `json:"horizon"`
	RequiredCapabilities []string      `json:"required_capabilities,omitempty"`
	ActionSteps          []string      `json:"action_steps"`
	ExpectedOutcomes     string        `json:"expected_outcomes"`
}

// QuickWin flags a recommendation as high impact, low effort. It is a
// reference, not a standalone entity.
type QuickWin struct {
	RecommendationID string `json:"recommendation_id"`
}

// Risk is an identified business risk tied to a dimension.
type Risk struct {
	ID                      string        `json:"id"`
	DimensionCode           DimensionCode `json:"dimension_code"`
	Severity                Level         `json:"severity"`
	Likelihood              Level         `json:"likelihood"`
	Narrative               string        `json:"narrative"`
	LinkedRecommendationIDs []string      `json:"linked_recommendation_ids,omitempty"`
	Category                string        `json:"category,omitempty"`
}

// RoadmapPhase groups recommendations into one implementation window.
type RoadmapPhase struct {
	ID                      string   `json:"id"`
	Name                    string   `json:"name"`
	TimeHorizon             string   `json:"time_horizon"`
	LinkedRecommendationIDs []string `json:"linked_recommendation_ids"`
	Narrative               string   `json:"narrative"`
}

// Roadmap is the ordered implementation plan.
type Roadmap struct {
	Phases []RoadmapPhase `json:"phases"`
}

// ScoresSummary is the document-level rollup.
type ScoresSummary struct {
	OverallHealthScore float64    `json:"overall_health_score"`
	Descriptor         string     `json:"descriptor"`
	Trajectory         Trajectory `json:"trajectory"`
	KeyImperatives     []string   `json:"key_imperatives"`
}

// IDM is the complete Insights Data Model document. It is constructed once
// per assessment run from immutable upstream phase inputs and never mutated
// after validation.
type IDM struct {
	Meta            Meta             `json:"meta"`
	Chapters        []Chapter        `json:"chapters"`
	Dimensions      []Dimension      `json:"dimensions"`
	Questions       []Question       `json:"questions"`
	Findings        []Finding        `json:"findings"`
	Recommendations []Recommendation `json:"recommendations"`
	QuickWins       []QuickWin       `json:"quick_wins"`
	Risks           []Risk           `json:"risks"`
	Roadmap         Roadmap          `json:"roadmap"`
	ScoresSummary   ScoresSummary    `json:"scores_summary"`
}

// FindingByID returns the finding with the given id, or nil.
func (d *IDM) FindingByID(id string) *Finding {
	for i := range d.Findings {
		if d.Findings[i].ID == id {
			return &d.Findings[i]
		}
	}
	return nil
}

// RecommendationByID returns the recommendation with the given id, or nil.
func (d *IDM) RecommendationByID(id string) *Recommendation {
	for i := range d.Recommendations {
		if d.Recommendations[i].ID == id {
			return &d.Recommendations[i]
		}
	}
	return nil
}
