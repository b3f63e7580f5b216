// Package validate checks a compiled document against its structural
// contract: required fields, numeric ranges, enum membership, cardinality,
// and referential integrity between linked ids. Validation fails closed:
// every violation is reported with a field path and the caller decides
// whether to reject or proceed.
package validate

import (
	"fmt"
	"strings"

	"idm-compiler/internal/idm"
	"idm-compiler/internal/taxonomy"
)

// Violation is one failed check, located by a dotted field path.
type Violation struct {
	Path   string
	Reason string
}

func (v Violation) String() string { return v.Path + ": " + v.Reason }

type checker struct {
	doc        *idm.IDM
	violations []Violation
}

func (c *checker) addf(path, format string, args ...any) {
	c.violations = append(c.violations, Violation{Path: path, Reason: fmt.Sprintf(format, args...)})
}

// Check validates the whole document and returns every violation found.
// A nil result means the document satisfies the schema.
func Check(doc *idm.IDM) []Violation {
	c := &checker{doc: doc}
	c.checkMeta()
	c.checkChapters()
	c.checkDimensions()
	c.checkQuestions()
	c.checkFindings()
	c.checkRecommendations()
	c.checkQuickWins()
	c.checkRisks()
	c.checkRoadmap()
	c.checkScoresSummary()
	return c.violations
}

func (c *checker) checkMeta() {
	m := c.doc.Meta
	if m.AssessmentRunID == "" {
		c.addf("meta.assessment_run_id", "required")
	}
	if m.CompanyProfileID == "" {
		c.addf("meta.company_profile_id", "required")
	}
	if m.CreatedAt == "" {
		c.addf("meta.created_at", "required")
	}
	if m.IDMSchemaVersion == "" {
		c.addf("meta.idm_schema_version", "required")
	}
}

func (c *checker) checkChapters() {
	if len(c.doc.Chapters) != len(idm.ChapterCodes) {
		c.addf("chapters", "expected %d chapters, got %d", len(idm.ChapterCodes), len(c.doc.Chapters))
	}
	seen := map[idm.ChapterCode]bool{}
	for i, ch := range c.doc.Chapters {
		path := fmt.Sprintf("chapters[%d]", i)
		if !validChapter(ch.ChapterCode) {
			c.addf(path+".chapter_code", "unknown chapter code %q", ch.ChapterCode)
			continue
		}
		if seen[ch.ChapterCode] {
			c.addf(path+".chapter_code", "duplicate chapter %s", ch.ChapterCode)
		}
		seen[ch.ChapterCode] = true
		if ch.Name == "" {
			c.addf(path+".name", "required")
		}
		c.checkScore(path+".score_overall", ch.ScoreOverall)
		c.checkBand(path+".score_band", ch.ScoreBand)
		c.checkBenchmark(path+".benchmark", ch.Benchmark)
	}
}

func (c *checker) checkDimensions() {
	if len(c.doc.Dimensions) != len(idm.DimensionCodes) {
		c.addf("dimensions", "expected %d dimensions, got %d", len(idm.DimensionCodes), len(c.doc.Dimensions))
	}
	seenDims := map[idm.DimensionCode]bool{}
	seenSubs := map[string]bool{}
	for i, d := range c.doc.Dimensions {
		path := fmt.Sprintf("dimensions[%d]", i)
		if !validDimension(d.DimensionCode) {
			c.addf(path+".dimension_code", "unknown dimension code %q", d.DimensionCode)
			continue
		}
		if seenDims[d.DimensionCode] {
			c.addf(path+".dimension_code", "duplicate dimension %s", d.DimensionCode)
		}
		seenDims[d.DimensionCode] = true

		if !validChapter(d.ChapterCode) {
			c.addf(path+".chapter_code", "unknown chapter code %q", d.ChapterCode)
		} else if owner := taxonomy.ChapterFor(d.DimensionCode); d.ChapterCode != owner {
			c.addf(path+".chapter_code", "dimension %s belongs to chapter %s, not %s",
				d.DimensionCode, owner, d.ChapterCode)
		}
		if d.Name == "" {
			c.addf(path+".name", "required")
		}
		c.checkScore(path+".score_overall", d.ScoreOverall)
		c.checkBand(path+".score_band", d.ScoreBand)
		c.checkBenchmark(path+".benchmark", d.Benchmark)

		if n := len(d.SubIndicators); n < 3 || n > 5 {
			c.addf(path+".sub_indicators", "expected 3-5 sub-indicators, got %d", n)
		}
		for j, sub := range d.SubIndicators {
			subPath := fmt.Sprintf("%s.sub_indicators[%d]", path, j)
			if sub.ID == "" {
				c.addf(subPath+".id", "required")
				continue
			}
			if !strings.HasPrefix(sub.ID, string(d.DimensionCode)+"_") {
				c.addf(subPath+".id", "id %q not prefixed with owning dimension %s", sub.ID, d.DimensionCode)
			}
			if seenSubs[sub.ID] {
				c.addf(subPath+".id", "duplicate sub-indicator id %q", sub.ID)
			}
			seenSubs[sub.ID] = true
			if sub.DimensionCode != d.DimensionCode {
				c.addf(subPath+".dimension_code", "expected %s, got %s", d.DimensionCode, sub.DimensionCode)
			}
			c.checkScore(subPath+".score", sub.Score)
			if sub.ScoreBand != "" {
				c.checkBand(subPath+".score_band", sub.ScoreBand)
			}
		}
	}
}

func (c *checker) checkQuestions() {
	seen := map[string]bool{}
	for i, q := range c.doc.Questions {
		path := fmt.Sprintf("questions[%d]", i)
		if q.QuestionID == "" {
			c.addf(path+".question_id", "required")
		} else if seen[q.QuestionID] {
			c.addf(path+".question_id", "duplicate question id %q", q.QuestionID)
		}
		seen[q.QuestionID] = true
		if !validDimension(q.DimensionCode) {
			c.addf(path+".dimension_code", "unknown dimension code %q", q.DimensionCode)
		}
		if q.SubIndicatorID == "" {
			c.addf(path+".sub_indicator_id", "required")
		}
		if q.NormalizedScore != nil {
			c.checkScore(path+".normalized_score", *q.NormalizedScore)
		}
	}
}

func (c *checker) checkFindings() {
	seen := map[string]bool{}
	for i, f := range c.doc.Findings {
		path := fmt.Sprintf("findings[%d]", i)
		if f.ID == "" {
			c.addf(path+".id", "required")
		} else if seen[f.ID] {
			c.addf(path+".id", "duplicate finding id %q", f.ID)
		}
		seen[f.ID] = true
		if !validDimension(f.DimensionCode) {
			c.addf(path+".dimension_code", "unknown dimension code %q", f.DimensionCode)
		}
		switch f.Type {
		case idm.Strength, idm.Gap, idm.RiskFinding, idm.Opportunity:
		default:
			c.addf(path+".type", "unknown finding type %q", f.Type)
		}
		if f.Severity.IsZero() {
			c.addf(path+".severity", "required")
		}
		if f.Narrative == "" {
			c.addf(path+".narrative", "required")
		}
	}
}

func (c *checker) checkRecommendations() {
	seen := map[string]bool{}
	for i, r := range c.doc.Recommendations {
		path := fmt.Sprintf("recommendations[%d]", i)
		if r.ID == "" {
			c.addf(path+".id", "required")
		} else if seen[r.ID] {
			c.addf(path+".id", "duplicate recommendation id %q", r.ID)
		}
		seen[r.ID] = true
		if !validDimension(r.DimensionCode) {
			c.addf(path+".dimension_code", "unknown dimension code %q", r.DimensionCode)
		}
		if r.PriorityRank <= 0 {
			c.addf(path+".priority_rank", "must be positive, got %d", r.PriorityRank)
		}
		c.checkScore(path+".impact_score", r.ImpactScore)
		c.checkScore(path+".effort_score", r.EffortScore)
		switch r.Horizon {
		case idm.NinetyDays, idm.TwelveMonths, idm.TwentyFourMonths:
		default:
			c.addf(path+".horizon", "unknown horizon %q", r.Horizon)
		}
		if len(r.ActionSteps) == 0 {
			c.addf(path+".action_steps", "must not be empty")
		}
		for j, id := range r.LinkedFindingIDs {
			if c.doc.FindingByID(id) == nil {
				c.addf(fmt.Sprintf("%s.linked_finding_ids[%d]", path, j), "no finding with id %q", id)
			}
		}
	}
}

func (c *checker) checkQuickWins() {
	for i, qw := range c.doc.QuickWins {
		path := fmt.Sprintf("quick_wins[%d]", i)
		if qw.RecommendationID == "" {
			c.addf(path+".recommendation_id", "required")
			continue
		}
		if c.doc.RecommendationByID(qw.RecommendationID) == nil {
			c.addf(path+".recommendation_id", "no recommendation with id %q", qw.RecommendationID)
		}
	}
}

func (c *checker) checkRisks() {
	seen := map[string]bool{}
	for i, r := range c.doc.Risks {
		path := fmt.Sprintf("risks[%d]", i)
		if r.ID == "" {
			c.addf(path+".id", "required")
		} else if seen[r.ID] {
			c.addf(path+".id", "duplicate risk id %q", r.ID)
		}
		seen[r.ID] = true
		if !validDimension(r.DimensionCode) {
			c.addf(path+".dimension_code", "unknown dimension code %q", r.DimensionCode)
		}
		if r.Severity.IsZero() {
			c.addf(path+".severity", "required")
		}
		if r.Narrative == "" {
			c.addf(path+".narrative", "required")
		}
		for j, id := range r.LinkedRecommendationIDs {
			if c.doc.RecommendationByID(id) == nil {
				c.addf(fmt.Sprintf("%s.linked_recommendation_ids[%d]", path, j), "no recommendation with id %q", id)
			}
		}
	}
}

func (c *checker) checkRoadmap() {
	if len(c.doc.Roadmap.Phases) == 0 {
		c.addf("roadmap.phases", "must not be empty")
	}
	for i, p := range c.doc.Roadmap.Phases {
		path := fmt.Sprintf("roadmap.phases[%d]", i)
		if p.ID == "" {
			c.addf(path+".id", "required")
		}
		if p.Name == "" {
			c.addf(path+".name", "required")
		}
		for j, id := range p.LinkedRecommendationIDs {
			if c.doc.RecommendationByID(id) == nil {
				c.addf(fmt.Sprintf("%s.linked_recommendation_ids[%d]", path, j), "no recommendation with id %q", id)
			}
		}
	}
}

func (c *checker) checkScoresSummary() {
	s := c.doc.ScoresSummary
	c.checkScore("scores_summary.overall_health_score", s.OverallHealthScore)
	if s.Descriptor == "" {
		c.addf("scores_summary.descriptor", "required")
	}
	switch s.Trajectory {
	case idm.Improving, idm.Flat, idm.Declining:
	default:
		c.addf("scores_summary.trajectory", "unknown trajectory %q", s.Trajectory)
	}
}

func (c *checker) checkScore(path string, v float64) {
	if v < 0 || v > 100 {
		c.addf(path, "score %v out of range [0,100]", v)
	}
}

func (c *checker) checkBand(path string, b idm.Band) {
	switch b {
	case idm.Critical, idm.Attention, idm.Proficiency, idm.Excellence:
	default:
		c.addf(path, "unknown band %q", b)
	}
}

func (c *checker) checkBenchmark(path string, b *idm.Benchmark) {
	if b == nil {
		return
	}
	if b.PeerPercentile < 0 || b.PeerPercentile > 100 {
		c.addf(path+".peer_percentile", "percentile %v out of range [0,100]", b.PeerPercentile)
	}
}

func validChapter(code idm.ChapterCode) bool {
	for _, c := range idm.ChapterCodes {
		if c == code {
			return true
		}
	}
	return false
}

func validDimension(code idm.DimensionCode) bool {
	for _, c := range idm.DimensionCodes {
		if c == code {
			return true
		}
	}
	return false
}
