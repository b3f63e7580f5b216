// Package compiler assembles the Insights Data Model from the upstream
// phase documents. Compilation is deterministic for a fixed input set and
// fixed Options: builders iterate canonical code order and sorted response
// keys, and ids come from the injected generator.
package compiler

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"idm-compiler/internal/extract"
	"idm-compiler/internal/idm"
	"idm-compiler/internal/phases"
	"idm-compiler/internal/scoring"
	"idm-compiler/internal/taxonomy"
)

const (
	methodologyVersion = "1.0.0"
	scoringVersion     = "1.0.0"
	schemaVersion      = "1.0.0"
)

// Options injects the compiler's nondeterministic inputs. Zero values fall
// back to wall clock time and random UUIDs. A non-empty CompanyProfileID
// overrides the phase 1 company id in every output document.
type Options struct {
	Now              func() time.Time
	NewID            func() string
	CompanyProfileID string
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) newID() string {
	if o.NewID != nil {
		return o.NewID()
	}
	return uuid.NewString()
}

// Compiler compiles one assessment run. Construct with New, then call
// Compile once; the enrichment accessors are valid afterwards.
type Compiler struct {
	set    *phases.Set
	opts   Options
	scores []extract.CategoryScore
	source string
}

// New selects the score source for the input set and prepares a compiler.
func New(set *phases.Set, opts Options) *Compiler {
	scores, source := extract.Scores(set)
	return &Compiler{set: set, opts: opts, scores: scores, source: source}
}

// CategoryScores returns the extracted per-dimension scores.
func (c *Compiler) CategoryScores() []extract.CategoryScore { return c.scores }

// Source names the score source used for this run.
func (c *Compiler) Source() string { return c.source }

// UsingRich reports whether the categorized analysis drove extraction.
func (c *Compiler) UsingRich() bool { return c.set.HasRich() }

// companyID resolves the company id: the option override wins, then the
// phase 1 declaration, then empty.
func (c *Compiler) companyID() string {
	if c.opts.CompanyProfileID != "" {
		return c.opts.CompanyProfileID
	}
	return c.set.CompanyProfileID()
}

// Compile builds the complete document.
func (c *Compiler) Compile() *idm.IDM {
	companyID := c.companyID()
	if companyID == "" {
		companyID = c.opts.newID()
	}

	meta := idm.Meta{
		AssessmentRunID:    c.opts.newID(),
		CompanyProfileID:   companyID,
		CreatedAt:          c.opts.now().UTC().Format(time.RFC3339),
		MethodologyVersion: methodologyVersion,
		ScoringVersion:     scoringVersion,
		IDMSchemaVersion:   schemaVersion,
	}

	questions := c.buildQuestions()
	dimensions := c.buildDimensions(questions)
	chapters := c.buildChapters(dimensions)
	findings := c.buildFindings(dimensions)
	recommendations := c.buildRecommendations(dimensions, findings)
	quickWins := c.buildQuickWins(recommendations)
	risks := c.buildRisks(findings)
	roadmap := c.buildRoadmap(recommendations)
	summary := c.buildScoresSummary(chapters, dimensions)

	return &idm.IDM{
		Meta:            meta,
		Chapters:        chapters,
		Dimensions:      dimensions,
		Questions:       questions,
		Findings:        findings,
		Recommendations: recommendations,
		QuickWins:       quickWins,
		Risks:           risks,
		Roadmap:         roadmap,
		ScoresSummary:   summary,
	}
}

// buildQuestions maps scalar webhook responses to Question entries. Keys
// are visited sorted so numbering is stable; nested objects and arrays are
// configuration noise and skipped.
func (c *Compiler) buildQuestions() []idm.Question {
	var questions []idm.Question

	for _, ck := range taxonomy.CategoryKeys {
		data := c.set.Webhook.Category(ck.Key)
		num := 1
		for _, key := range sortedKeys(data) {
			value := data[key]
			if value == nil {
				continue
			}
			switch value.(type) {
			case map[string]any, []any:
				continue
			}

			questionID := fmt.Sprintf("%s_q%d", ck.Key, num)
			subID := fmt.Sprintf("%s_%03d", ck.Dimension, num)
			if m := taxonomy.QuestionByID(questionID); m != nil {
				subID = m.SubIndicatorID
			}

			questions = append(questions, idm.Question{
				QuestionID:      questionID,
				DimensionCode:   ck.Dimension,
				SubIndicatorID:  subID,
				RawResponse:     value,
				NormalizedScore: normalizeResponse(value),
			})
			num++
		}
	}
	return questions
}

func normalizeResponse(value any) *float64 {
	var v float64
	switch n := value.(type) {
	case float64:
		v = n
	case int:
		v = float64(n)
	default:
		return nil
	}
	var normalized float64
	switch {
	case v >= 1 && v <= 5:
		normalized = ((v - 1) / 4) * 100
	case v >= 0 && v <= 100:
		normalized = v
	default:
		return nil
	}
	return &normalized
}

func (c *Compiler) buildDimensions(questions []idm.Question) []idm.Dimension {
	contributing := map[string][]string{}
	for _, q := range questions {
		contributing[q.SubIndicatorID] = append(contributing[q.SubIndicatorID], q.QuestionID)
	}

	var dimensions []idm.Dimension
	for _, cat := range c.scores {
		info := taxonomy.Dimensions[cat.DimensionCode]
		dimensions = append(dimensions, idm.Dimension{
			DimensionCode: cat.DimensionCode,
			ChapterCode:   info.Chapter,
			Name:          info.Name,
			Description:   info.Description,
			ScoreOverall:  cat.Score,
			ScoreBand:     scoring.Band(cat.Score),
			SubIndicators: buildSubIndicators(cat.DimensionCode, cat.Score, contributing),
			Benchmark: &idm.Benchmark{
				PeerPercentile:  float64(cat.Percentile),
				BandDescription: fmt.Sprintf("Peer %dth percentile", cat.Percentile),
			},
		})
	}
	return dimensions
}

// buildSubIndicators spreads the catalog entries around the dimension
// score: positions 0..4 take offsets -10,-5,0,+5,+10, clamped to [0,100].
func buildSubIndicators(code idm.DimensionCode, dimScore float64, contributing map[string][]string) []idm.SubIndicator {
	defs := taxonomy.SubIndicators[code]
	out := make([]idm.SubIndicator, 0, len(defs))
	for i, def := range defs {
		score := scoring.Clamp(dimScore + float64(i-2)*5)
		out = append(out, idm.SubIndicator{
			ID:                      def.ID,
			DimensionCode:           code,
			Name:                    def.Name,
			Score:                   score,
			ScoreBand:               scoring.Band(score),
			ContributingQuestionIDs: append([]string{}, contributing[def.ID]...),
		})
	}
	return out
}

func (c *Compiler) buildChapters(dimensions []idm.Dimension) []idm.Chapter {
	var chapters []idm.Chapter
	for _, chapterCode := range idm.ChapterCodes {
		var dimScores []float64
		for _, d := range dimensions {
			if d.ChapterCode == chapterCode {
				dimScores = append(dimScores, d.ScoreOverall)
			}
		}
		score := 60.0
		if len(dimScores) > 0 {
			score = scoring.ChapterScore(dimScores)
		}
		chapters = append(chapters, idm.Chapter{
			ChapterCode:  chapterCode,
			Name:         taxonomy.ChapterNames[chapterCode],
			ScoreOverall: score,
			ScoreBand:    scoring.Band(score),
		})
	}
	return chapters
}

var levelTitles = map[string]string{
	"critical": "Critical",
	"high":     "High",
	"medium":   "Medium",
	"low":      "Low",
}

func titleLevel(s string) string {
	if t, ok := levelTitles[strings.ToLower(s)]; ok {
		return t
	}
	return "Medium"
}

// buildFindings turns rich strengths and weaknesses into findings when the
// categorized analysis is present; otherwise findings are generated from
// score tiers. Dimensions in the proficiency tier produce nothing in
// fallback mode.
func (c *Compiler) buildFindings(dimensions []idm.Dimension) []idm.Finding {
	if c.UsingRich() {
		return c.richFindings()
	}
	return scoreFindings(dimensions)
}

func (c *Compiler) richFindings() []idm.Finding {
	var findings []idm.Finding
	next := 1
	id := func() string {
		s := fmt.Sprintf("finding-%03d", next)
		next++
		return s
	}

	for _, cat := range c.set.Phase15.CategoryAnalyses {
		code := taxonomy.NormalizeDimensionCode(cat.CategoryCode)

		for _, s := range cat.Strengths {
			label := s.Title
			if label == "" {
				label = "Strength Identified"
			}
			impact := s.ImpactLevel
			if impact == "" {
				impact = "medium"
			}
			findings = append(findings, idm.Finding{
				ID:              id(),
				DimensionCode:   code,
				Type:            idm.Strength,
				Severity:        idm.LabelLevel("Low"),
				ConfidenceLevel: idm.LabelLevel("High"),
				ShortLabel:      label,
				Narrative:       s.Description,
				EvidenceRefs: &idm.EvidenceRefs{
					Evidence:    append([]string{}, s.Evidence...),
					ImpactLevel: impact,
				},
			})
		}

		for _, w := range cat.Weaknesses {
			severity := w.Severity
			if severity == "" {
				severity = "medium"
			}
			findingType := idm.Gap
			switch strings.ToLower(severity) {
			case "critical", "high":
				findingType = idm.RiskFinding
			}

			label := w.Title
			if label == "" {
				label = "Gap Identified"
			}
			narrative := w.Description
			if w.RootCause != "" {
				narrative += " Root cause: " + w.RootCause
			}

			findings = append(findings, idm.Finding{
				ID:              id(),
				DimensionCode:   code,
				Type:            findingType,
				Severity:        idm.LabelLevel(titleLevel(severity)),
				ConfidenceLevel: idm.LabelLevel("High"),
				ShortLabel:      label,
				Narrative:       narrative,
				EvidenceRefs: &idm.EvidenceRefs{
					Evidence:  append([]string{}, w.Evidence...),
					RootCause: w.RootCause,
				},
			})
		}
	}
	return findings
}

func scoreFindings(dimensions []idm.Dimension) []idm.Finding {
	var findings []idm.Finding
	for _, dim := range dimensions {
		switch {
		case dim.ScoreOverall >= 80:
			findings = append(findings, idm.Finding{
				ID:              fmt.Sprintf("finding-strength-%s", dim.DimensionCode),
				DimensionCode:   dim.DimensionCode,
				Type:            idm.Strength,
				Severity:        idm.LabelLevel("Low"),
				ConfidenceLevel: idm.LabelLevel("High"),
				ShortLabel:      fmt.Sprintf("%s Excellence", dim.Name),
				Narrative: fmt.Sprintf(
					"%s demonstrates strong performance at %s/100, placing it in the Excellence tier. This represents a competitive advantage.",
					dim.Name, formatScore(dim.ScoreOverall)),
				EvidenceRefs: &idm.EvidenceRefs{Metrics: []string{fmt.Sprintf("%s_score", dim.DimensionCode)}},
			})
		case dim.ScoreOverall >= 40 && dim.ScoreOverall < 60:
			findings = append(findings, idm.Finding{
				ID:              fmt.Sprintf("finding-gap-%s", dim.DimensionCode),
				DimensionCode:   dim.DimensionCode,
				Type:            idm.Gap,
				Severity:        idm.LabelLevel("Medium"),
				ConfidenceLevel: idm.LabelLevel("High"),
				ShortLabel:      fmt.Sprintf("%s Performance Gap", dim.Name),
				Narrative: fmt.Sprintf(
					"%s shows moderate performance at %s/100. This gap presents improvement opportunities that should be addressed within 6-12 months.",
					dim.Name, formatScore(dim.ScoreOverall)),
				EvidenceRefs: &idm.EvidenceRefs{Metrics: []string{fmt.Sprintf("%s_score", dim.DimensionCode)}},
			})
		case dim.ScoreOverall < 40:
			findings = append(findings, idm.Finding{
				ID:              fmt.Sprintf("finding-risk-%s", dim.DimensionCode),
				DimensionCode:   dim.DimensionCode,
				Type:            idm.RiskFinding,
				Severity:        idm.LabelLevel("Critical"),
				ConfidenceLevel: idm.LabelLevel("High"),
				ShortLabel:      fmt.Sprintf("%s Critical Underperformance", dim.Name),
				Narrative: fmt.Sprintf(
					"%s is at critical levels with a score of %s/100. Immediate intervention is required to mitigate business risk.",
					dim.Name, formatScore(dim.ScoreOverall)),
				EvidenceRefs: &idm.EvidenceRefs{Metrics: []string{fmt.Sprintf("%s_score", dim.DimensionCode)}},
			})
		}
	}
	return findings
}

func linkedGapRiskIDs(findings []idm.Finding, code idm.DimensionCode) []string {
	var ids []string
	for _, f := range findings {
		if f.DimensionCode == code && (f.Type == idm.Gap || f.Type == idm.RiskFinding) {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

var (
	effortHorizons = map[string]idm.Horizon{
		"low":    idm.NinetyDays,
		"medium": idm.TwelveMonths,
		"high":   idm.TwentyFourMonths,
	}
	impactScores = map[string]float64{"high": 85, "medium": 65, "low": 45}
	effortScores = map[string]float64{"low": 30, "medium": 55, "high": 80}
)

// buildRecommendations converts rich quick-win suggestions into ranked
// recommendations, appending up to 5 strategic items from the run-level
// opportunities. In fallback mode low-scoring dimensions with gap or risk
// findings drive generic improvement initiatives.
func (c *Compiler) buildRecommendations(dimensions []idm.Dimension, findings []idm.Finding) []idm.Recommendation {
	if c.UsingRich() {
		return c.richRecommendations(findings)
	}
	return scoreRecommendations(dimensions, findings)
}

func (c *Compiler) richRecommendations(findings []idm.Finding) []idm.Recommendation {
	var recs []idm.Recommendation
	rank := 1

	for _, cat := range c.set.Phase15.CategoryAnalyses {
		code := taxonomy.NormalizeDimensionCode(cat.CategoryCode)

		for _, qw := range cat.QuickWins {
			// Unrecognized effort labels take the quick-win horizon but a
			// middling effort score.
			effort := strings.ToLower(qw.Effort)
			horizon, ok := effortHorizons[effort]
			if !ok {
				horizon = idm.NinetyDays
			}
			effortScore, ok := effortScores[effort]
			if !ok {
				effortScore = 55
			}
			impact := strings.ToLower(qw.Impact)
			if _, ok := impactScores[impact]; !ok {
				impact = "medium"
			}

			linked := linkedGapRiskIDs(findings, code)
			if len(linked) > 3 {
				linked = linked[:3]
			}
			if linked == nil {
				linked = []string{}
			}

			theme := qw.Title
			if theme == "" {
				theme = "Improvement Initiative"
			}
			description := qw.Description
			if description == "" {
				description = "Implement improvement initiative"
			}
			timeline := qw.Timeline
			if timeline == "" {
				timeline = "90 days"
			}
			outcomes := qw.Description
			if qw.EstimatedROI != "" {
				outcomes += " Expected ROI: " + qw.EstimatedROI
			}
			capability := cat.CategoryName
			if capability == "" {
				capability = string(code)
			}

			recs = append(recs, idm.Recommendation{
				ID:                   fmt.Sprintf("rec-%03d", rank),
				DimensionCode:        code,
				LinkedFindingIDs:     linked,
				Theme:                theme,
				PriorityRank:         rank,
				ImpactScore:          impactScores[impact],
				EffortScore:          effortScore,
				Horizon:              horizon,
				RequiredCapabilities: []string{capability, "Change Management"},
				ActionSteps: []string{
					description,
					fmt.Sprintf("Target timeline: %s", timeline),
					"Monitor progress and measure outcomes",
					"Document learnings and best practices",
				},
				ExpectedOutcomes: outcomes,
			})
			rank++
		}
	}

	if summary := c.set.Phase15.OverallSummary; summary != nil {
		opportunities := summary.TopOpportunities
		if len(opportunities) > 5 {
			opportunities = opportunities[:5]
		}
		for _, opp := range opportunities {
			recs = append(recs, idm.Recommendation{
				ID:                   fmt.Sprintf("rec-%03d", rank),
				DimensionCode:        idm.STR,
				LinkedFindingIDs:     []string{},
				Theme:                opp,
				PriorityRank:         rank,
				ImpactScore:          80,
				EffortScore:          60,
				Horizon:              idm.TwelveMonths,
				RequiredCapabilities: []string{"Strategic Planning", "Cross-functional Leadership"},
				ActionSteps: []string{
					fmt.Sprintf("Strategic opportunity: %s", opp),
					"Develop detailed implementation plan",
					"Assign executive sponsor and project team",
					"Establish milestones and success metrics",
				},
				ExpectedOutcomes: fmt.Sprintf("Strategic improvement through: %s", opp),
			})
			rank++
		}
	}

	return recs
}

func scoreRecommendations(dimensions []idm.Dimension, findings []idm.Finding) []idm.Recommendation {
	sorted := make([]idm.Dimension, len(dimensions))
	copy(sorted, dimensions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ScoreOverall < sorted[j].ScoreOverall
	})

	var recs []idm.Recommendation
	rank := 1
	for _, dim := range sorted {
		if dim.ScoreOverall >= 80 {
			continue
		}
		linked := linkedGapRiskIDs(findings, dim.DimensionCode)
		if len(linked) == 0 {
			continue
		}

		var horizon idm.Horizon
		switch {
		case dim.ScoreOverall < 40:
			horizon = idm.NinetyDays
		case dim.ScoreOverall < 60:
			horizon = idm.TwelveMonths
		default:
			horizon = idm.TwentyFourMonths
		}

		effortScore := 50.0
		if dim.ScoreOverall < 40 {
			effortScore = 70.0
		}
		target := dim.ScoreOverall + 20
		if target > 100 {
			target = 100
		}

		recs = append(recs, idm.Recommendation{
			ID:                   fmt.Sprintf("rec-%s-%d", dim.DimensionCode, rank),
			DimensionCode:        dim.DimensionCode,
			LinkedFindingIDs:     linked,
			Theme:                fmt.Sprintf("%s Improvement Initiative", dim.Name),
			PriorityRank:         rank,
			ImpactScore:          100 - dim.ScoreOverall,
			EffortScore:          effortScore,
			Horizon:              horizon,
			RequiredCapabilities: []string{dim.Name, "Change Management"},
			ActionSteps: []string{
				fmt.Sprintf("Conduct detailed %s assessment", strings.ToLower(dim.Name)),
				"Develop improvement plan with measurable KPIs",
				"Implement quick wins within first 30 days",
				"Monitor progress and adjust approach",
				"Document and share best practices",
			},
			ExpectedOutcomes: fmt.Sprintf(
				"Improve %s score from %s to %s within the target horizon.",
				dim.Name, formatScore(dim.ScoreOverall), formatScore(target)),
		})
		rank++
	}
	return recs
}

// buildQuickWins flags the low-effort, high-impact recommendations. The
// rich path caps at 10 and backfills 90-day items when fewer than 5 match;
// the fallback path requires a 90-day horizon and backfills by
// impact-to-effort ratio when fewer than 3 match.
func (c *Compiler) buildQuickWins(recs []idm.Recommendation) []idm.QuickWin {
	var wins []idm.QuickWin
	selected := map[string]bool{}
	add := func(id string) {
		wins = append(wins, idm.QuickWin{RecommendationID: id})
		selected[id] = true
	}

	if c.UsingRich() {
		for _, rec := range recs {
			if rec.EffortScore <= 40 && rec.ImpactScore >= 60 {
				add(rec.ID)
				if len(wins) >= 10 {
					break
				}
			}
		}
		if len(wins) < 5 {
			for _, rec := range recs {
				if rec.Horizon == idm.NinetyDays && !selected[rec.ID] {
					add(rec.ID)
					if len(wins) >= 10 {
						break
					}
				}
			}
		}
		return wins
	}

	for _, rec := range recs {
		if rec.ImpactScore >= 60 && rec.EffortScore < 50 && rec.Horizon == idm.NinetyDays {
			add(rec.ID)
		}
	}
	if len(wins) < 3 {
		ranked := make([]idm.Recommendation, len(recs))
		copy(ranked, recs)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ratio(ranked[i]) > ratio(ranked[j])
		})
		if len(ranked) > 5 {
			ranked = ranked[:5]
		}
		for _, rec := range ranked {
			if !selected[rec.ID] {
				add(rec.ID)
			}
			if len(wins) >= 5 {
				break
			}
		}
	}
	return wins
}

func ratio(r idm.Recommendation) float64 {
	effort := r.EffortScore
	if effort < 1 {
		effort = 1
	}
	return r.ImpactScore / effort
}

// severityMatrix derives risk severity from likelihood and impact levels.
var severityMatrix = map[[2]string]string{
	{"High", "High"}:     "Critical",
	{"High", "Medium"}:   "High",
	{"Medium", "High"}:   "High",
	{"Medium", "Medium"}: "Medium",
	{"Low", "High"}:      "Medium",
	{"High", "Low"}:      "Medium",
	{"Medium", "Low"}:    "Low",
	{"Low", "Medium"}:    "Low",
	{"Low", "Low"}:       "Low",
}

func (c *Compiler) buildRisks(findings []idm.Finding) []idm.Risk {
	if c.UsingRich() {
		return c.richRisks()
	}
	return findingRisks(findings)
}

func (c *Compiler) richRisks() []idm.Risk {
	var risks []idm.Risk
	next := 1
	for _, cat := range c.set.Phase15.CategoryAnalyses {
		code := taxonomy.NormalizeDimensionCode(cat.CategoryCode)

		for _, cr := range cat.CategoryRisks {
			likelihood := titleLevel(cr.Likelihood)
			impact := titleLevel(cr.Impact)
			severity, ok := severityMatrix[[2]string{likelihood, impact}]
			if !ok {
				severity = "Medium"
			}

			narrative := cr.Description
			if cr.Mitigation != "" {
				narrative += " Mitigation: " + cr.Mitigation
			}
			category := cat.CategoryName
			if category == "" {
				category = taxonomy.Dimensions[code].Name
			}

			risks = append(risks, idm.Risk{
				ID:            fmt.Sprintf("risk-%03d", next),
				DimensionCode: code,
				Severity:      idm.LabelLevel(severity),
				Likelihood:    idm.LabelLevel(likelihood),
				Narrative:     narrative,
				Category:      category,
			})
			next++
		}
	}
	return risks
}

func findingRisks(findings []idm.Finding) []idm.Risk {
	var risks []idm.Risk
	for _, f := range findings {
		if f.Type != idm.RiskFinding && f.Severity.Label != "Critical" {
			continue
		}
		risks = append(risks, idm.Risk{
			ID:            fmt.Sprintf("risk-%s", f.ID),
			DimensionCode: f.DimensionCode,
			Severity:      f.Severity,
			Likelihood:    idm.LabelLevel("High"),
			Narrative:     f.Narrative,
			Category:      taxonomy.Dimensions[f.DimensionCode].Name,
		})
	}
	return risks
}

// buildRoadmap groups recommendations into up to three horizon phases.
// With no recommendations at all, a single continuous-improvement phase
// keeps the roadmap non-empty.
func (c *Compiler) buildRoadmap(recs []idm.Recommendation) idm.Roadmap {
	byHorizon := func(h idm.Horizon) []string {
		var ids []string
		for _, r := range recs {
			if r.Horizon == h {
				ids = append(ids, r.ID)
			}
		}
		return ids
	}

	var phases []idm.RoadmapPhase
	if ids := byHorizon(idm.NinetyDays); len(ids) > 0 {
		phases = append(phases, idm.RoadmapPhase{
			ID:                      "phase-1",
			Name:                    "Foundation & Quick Wins",
			TimeHorizon:             "0-90 days",
			LinkedRecommendationIDs: ids,
			Narrative:               "Focus on immediate value creation through quick wins and critical risk mitigation. Build momentum with visible early successes.",
		})
	}
	if ids := byHorizon(idm.TwelveMonths); len(ids) > 0 {
		phases = append(phases, idm.RoadmapPhase{
			ID:                      "phase-2",
			Name:                    "Core Capability Building",
			TimeHorizon:             "3-12 months",
			LinkedRecommendationIDs: ids,
			Narrative:               "Implement foundational improvements across key dimensions. Establish new processes and capabilities.",
		})
	}
	if ids := byHorizon(idm.TwentyFourMonths); len(ids) > 0 {
		phases = append(phases, idm.RoadmapPhase{
			ID:                      "phase-3",
			Name:                    "Strategic Transformation",
			TimeHorizon:             "12-24+ months",
			LinkedRecommendationIDs: ids,
			Narrative:               "Execute long-term strategic initiatives. Transform organizational capabilities for sustained competitive advantage.",
		})
	}

	if len(phases) == 0 {
		var ids []string
		for i, r := range recs {
			if i >= 3 {
				break
			}
			ids = append(ids, r.ID)
		}
		if ids == nil {
			ids = []string{}
		}
		phases = append(phases, idm.RoadmapPhase{
			ID:                      "phase-continuous",
			Name:                    "Continuous Improvement",
			TimeHorizon:             "Ongoing",
			LinkedRecommendationIDs: ids,
			Narrative:               "Maintain focus on continuous improvement across all dimensions to sustain excellence.",
		})
	}

	return idm.Roadmap{Phases: phases}
}

func (c *Compiler) buildScoresSummary(chapters []idm.Chapter, dimensions []idm.Dimension) idm.ScoresSummary {
	overall := 60.0
	if len(chapters) > 0 {
		var scores []float64
		for _, ch := range chapters {
			scores = append(scores, ch.ScoreOverall)
		}
		overall = scoring.OverallHealthScore(scores)
	}

	improving, declining := 0, 0
	for _, cat := range c.scores {
		switch cat.Trend {
		case "improving":
			improving++
		case "declining":
			declining++
		}
	}
	trajectory := idm.Flat
	if improving > declining+2 {
		trajectory = idm.Improving
	} else if declining > improving+2 {
		trajectory = idm.Declining
	}

	sorted := make([]idm.Dimension, len(dimensions))
	copy(sorted, dimensions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ScoreOverall < sorted[j].ScoreOverall
	})
	var imperatives []string
	for i, dim := range sorted {
		if i >= 3 {
			break
		}
		imperatives = append(imperatives,
			fmt.Sprintf("Improve %s (currently %s/100)", dim.Name, formatScore(dim.ScoreOverall)))
	}

	return idm.ScoresSummary{
		OverallHealthScore: overall,
		Descriptor:         scoring.HealthDescriptor(overall),
		Trajectory:         trajectory,
		KeyImperatives:     imperatives,
	}
}

// CrossCategoryInsights returns the rich source's cross-category insight
// block for output enrichment, or nil.
func (c *Compiler) CrossCategoryInsights() any {
	if c.set.Phase15 == nil {
		return nil
	}
	return c.set.Phase15.CrossCategoryInsights
}

// OverallHealth returns the rich source's run-level health rollup for
// output enrichment, or nil.
func (c *Compiler) OverallHealth() map[string]any {
	if c.set.Phase15 == nil || c.set.Phase15.OverallSummary == nil {
		return nil
	}
	s := c.set.Phase15.OverallSummary
	return map[string]any{
		"score":             s.HealthScore,
		"status":            s.HealthStatus,
		"trajectory":        s.Trajectory,
		"top_strengths":     stringList(s.TopStrengths),
		"top_weaknesses":    stringList(s.TopWeaknesses),
		"top_risks":         stringList(s.TopRisks),
		"top_opportunities": stringList(s.TopOpportunities),
	}
}

func stringList(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

// formatScore renders a score without a forced decimal: 42 not 42.0, but
// 42.5 stays 42.5.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
