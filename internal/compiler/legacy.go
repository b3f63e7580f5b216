package compiler

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"idm-compiler/internal/extract"
	"idm-compiler/internal/idm"
	"idm-compiler/internal/scoring"
)

const legacyCompilerVersion = "2.0.0"

// Phase4Summary builds the legacy phase-4 summaries document. The format
// predates the IDM and is kept for downstream consumers that have not
// migrated; its schema is free-form JSON.
func (c *Compiler) Phase4Summary() map[string]any {
	companyID := c.companyID()
	if companyID == "" {
		companyID = "unknown"
	}

	return map[string]any{
		"phase":              "phase_4",
		"status":             "complete",
		"company_profile_id": companyID,
		"phase3_reference":   fmt.Sprintf("phase3-results-%s", companyID),
		"summaries": map[string]any{
			"strength_summary":      c.strengthSummary(),
			"challenge_summary":     c.challengeSummary(),
			"trajectory_summary":    c.trajectorySummary(),
			"aspirational_outcome":  c.aspirationalOutcome(),
			"findings":              c.legacyFindings(),
			"health_status":         c.healthStatus(),
			"performance_analysis":  c.performanceAnalysis(),
			"imperatives":           c.imperatives(),
			"financial_projections": financialProjections(),
			"quick_wins":            legacyQuickWins(),
			"trend_analysis":        c.trendAnalysis(),
			"benchmarking":          c.benchmarking(),
			"risk_assessment":       c.riskAssessment(),
			"interdependencies":     interdependencies(),
		},
		"metadata": map[string]any{
			"compiled_at":      c.opts.now().UTC().Format(time.RFC3339),
			"compiler_version": legacyCompilerVersion,
			"data_sources": map[string]any{
				"phase1":  len(c.set.Phase1) > 0,
				"phase2":  len(c.set.Phase2) > 0,
				"phase3":  len(c.set.Phase3) > 0,
				"webhook": c.set.Webhook != nil,
			},
		},
	}
}

func (c *Compiler) topByScore() []extract.CategoryScore {
	sorted := make([]extract.CategoryScore, len(c.scores))
	copy(sorted, c.scores)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	return sorted
}

func (c *Compiler) bottomByScore() []extract.CategoryScore {
	sorted := make([]extract.CategoryScore, len(c.scores))
	copy(sorted, c.scores)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })
	return sorted
}

func (c *Compiler) averageScore() float64 {
	if len(c.scores) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range c.scores {
		total += s.Score
	}
	return total / float64(len(c.scores))
}

func (c *Compiler) strengthSummary() string {
	var parts []string
	for _, cat := range c.topByScore()[:min(3, len(c.scores))] {
		if cat.Score >= 70 {
			parts = append(parts, fmt.Sprintf("%s (%.0f/100)", cat.Name, cat.Score))
		}
	}
	if len(parts) == 0 {
		return "Organization shows foundational capabilities requiring optimization"
	}
	return strings.Join(parts, " | ")
}

func (c *Compiler) challengeSummary() string {
	var parts []string
	for _, cat := range c.bottomByScore()[:min(3, len(c.scores))] {
		if cat.Score < 60 {
			parts = append(parts, fmt.Sprintf("%s (%.0f/100)", cat.Name, cat.Score))
		}
	}
	if len(parts) == 0 {
		return "No critical challenges identified"
	}
	return strings.Join(parts, " | ")
}

func (c *Compiler) trajectorySummary() string {
	avg := c.averageScore()
	declining := 0
	for _, cat := range c.scores {
		if cat.Trend == "declining" {
			declining++
		}
	}
	switch {
	case declining >= 3:
		return fmt.Sprintf("Declining trajectory (avg: %.0f/100) - %d categories declining", avg, declining)
	case declining >= 2:
		return fmt.Sprintf("Mixed trajectory (avg: %.0f/100) with concerning decline in %d areas", avg, declining)
	}
	return fmt.Sprintf("Stable trajectory (avg: %.0f/100) with improvement opportunities", avg)
}

func (c *Compiler) aspirationalOutcome() string {
	target := math.Min(c.averageScore()+15, 95)
	return fmt.Sprintf("Transform to industry-leading performance (target: %.0f/100) through systematic excellence initiatives", target)
}

func (c *Compiler) legacyFindings() []map[string]any {
	findings := []map[string]any{}
	if len(c.scores) == 0 {
		return findings
	}
	weakest := c.bottomByScore()[0]
	if weakest.Score < 50 {
		gapPct := (70 - weakest.Score) / 70 * 100
		severity := "High"
		if weakest.Score < 40 {
			severity = "Critical"
		}
		findings = append(findings, map[string]any{
			"title":          fmt.Sprintf("%s Critical Underperformance", weakest.Name),
			"description":    fmt.Sprintf("Score of %.0f/100 represents %.0f%% gap vs benchmark", weakest.Score, gapPct),
			"severity":       severity,
			"affected_areas": []string{weakest.Name},
			"timeframe":      "Immediate action required",
		})
	}
	return findings
}

func (c *Compiler) healthStatus() map[string]any {
	avg := c.averageScore()
	descriptor := scoring.HealthDescriptor(avg)
	return map[string]any{
		"descriptor":  descriptor,
		"score":       scoring.Round1(avg),
		"explanation": fmt.Sprintf("Overall business health score of %.1f/100 indicates %s organizational state", avg, strings.ToLower(descriptor)),
	}
}

func (c *Compiler) performanceAnalysis() map[string]any {
	top := c.topByScore()[:min(3, len(c.scores))]
	bottom := c.bottomByScore()[:min(3, len(c.scores))]

	sum := func(cats []extract.CategoryScore) float64 {
		total := 0.0
		for _, cat := range cats {
			total += cat.Score
		}
		return total
	}
	names := func(cats []extract.CategoryScore) []string {
		out := make([]string, 0, len(cats))
		for _, cat := range cats {
			out = append(out, cat.Name)
		}
		return out
	}

	return map[string]any{
		"top3_categories":        names(top),
		"top_performance_avg":    scoring.Round1(sum(top) / 3),
		"bottom3_categories":     names(bottom),
		"bottom_performance_avg": scoring.Round1(sum(bottom) / 3),
		"performance_gap":        scoring.Round1((sum(top) - sum(bottom)) / 3),
	}
}

func (c *Compiler) imperatives() []map[string]any {
	if len(c.scores) == 0 {
		return []map[string]any{}
	}
	weakest := c.bottomByScore()[0]
	return []map[string]any{{
		"title":        fmt.Sprintf("Transform %s", weakest.Name),
		"priority":     "Critical",
		"description":  fmt.Sprintf("Address %.0f/100 performance gap", weakest.Score),
		"timeframe":    "0-6 months",
		"expected_roi": 5.0,
	}}
}

func financialProjections() map[string]any {
	return map[string]any{
		"90_day_value":        1250000,
		"annual_value":        5000000,
		"roi_90day":           8.3,
		"investment_required": 150000,
	}
}

func legacyQuickWins() []map[string]any {
	return []map[string]any{{
		"title":          "Process Optimization Initiative",
		"timeframe":      "30 days",
		"investment":     50000,
		"expected_value": 400000,
		"roi":            8.0,
	}}
}

func (c *Compiler) trendAnalysis() map[string]any {
	byTrend := func(trend string) []string {
		out := []string{}
		for _, cat := range c.scores {
			if cat.Trend == trend {
				out = append(out, cat.Name)
			}
		}
		return out
	}
	return map[string]any{
		"declining_categories": byTrend("declining"),
		"stable_categories":    byTrend("stable"),
		"improving_categories": byTrend("improving"),
	}
}

func (c *Compiler) benchmarking() map[string]any {
	total := 0
	categories := map[string]any{}
	for _, cat := range c.scores {
		total += cat.Percentile
		categories[cat.Name] = cat.Percentile
	}
	overall := 0
	if len(c.scores) > 0 {
		overall = int(math.Round(float64(total) / float64(len(c.scores))))
	}
	return map[string]any{
		"overall_percentile": overall,
		"categories":         categories,
	}
}

func (c *Compiler) riskAssessment() map[string]any {
	highRisk := []string{}
	for _, cat := range c.scores {
		if cat.Score < 45 {
			highRisk = append(highRisk, cat.Name)
		}
	}
	priority := "Standard"
	if len(highRisk) > 0 {
		priority = "Immediate"
	}
	return map[string]any{
		"high_risk_areas":     highRisk,
		"risk_count":          len(highRisk),
		"mitigation_priority": priority,
	}
}

func interdependencies() []map[string]any {
	return []map[string]any{{
		"source":      "People Leadership",
		"impacts":     []string{"Operations", "Revenue", "Financial"},
		"description": "Cultural health affects all organizational dimensions",
	}}
}

// MasterAnalysis assembles the combined document bundling the raw phase
// inputs, the legacy summary, and a profile of the compiled IDM.
func (c *Compiler) MasterAnalysis(doc *idm.IDM, phase4 map[string]any, idmPath string, issues []string) map[string]any {
	phasesIncluded := []string{"phase1", "phase2", "phase3", "phase4"}
	categoriesIntegrated := 0
	dataSource := "webhook_calculation"
	if c.UsingRich() {
		phasesIncluded = []string{"phase1", "phase1_5", "phase2", "phase3", "phase4"}
		categoriesIntegrated = len(c.set.Phase15.CategoryAnalyses)
		dataSource = "phase1_5_output"
	}

	phaseDocs := map[string]any{
		"phase1": c.set.Phase1,
		"phase2": c.set.Phase2,
		"phase3": c.set.Phase3,
		"phase4": phase4,
	}
	if c.UsingRich() {
		phaseDocs["phase1_5"] = c.set.Phase15
	}

	return map[string]any{
		"meta": map[string]any{
			"company_profile_id": doc.Meta.CompanyProfileID,
			"generated_at":       c.opts.now().UTC().Format(time.RFC3339),
			"phases_included":    phasesIncluded,
			"idm_path":           idmPath,
			"phase1_5_integration": map[string]any{
				"used":                  c.UsingRich(),
				"categories_integrated": categoriesIntegrated,
				"data_source":           dataSource,
				"validation_issues":     issues,
			},
		},
		"phases": phaseDocs,
		"idm_summary": map[string]any{
			"overall_health_score":        doc.ScoresSummary.OverallHealthScore,
			"trajectory":                  doc.ScoresSummary.Trajectory,
			"chapters_count":              len(doc.Chapters),
			"dimensions_count":            len(doc.Dimensions),
			"findings_count":              len(doc.Findings),
			"recommendations_count":       len(doc.Recommendations),
			"quick_wins_count":            len(doc.QuickWins),
			"risks_count":                 len(doc.Risks),
			"has_cross_category_insights": c.CrossCategoryInsights() != nil,
			"has_phase15_health":          c.OverallHealth() != nil,
		},
	}
}
