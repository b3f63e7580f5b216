package compiler

import (
	"fmt"
	"math"

	"idm-compiler/internal/phases"
)

// expectedRichCodes are the category codes a complete rich document carries.
// ITD and IDS are interchangeable legacy spellings of the same dimension.
var expectedRichCodes = []string{
	"STR", "SAL", "MKT", "CXP", "OPS", "FIN",
	"HRS", "LDG", "TIN", "ITD", "IDS", "RMS", "CMP",
}

// IntegrationReport cross-checks the compiled scores against the rich
// source. Issues are advisory: MISSING and SCORE MISMATCH point at upstream
// problems, LOW CONTENT and WARNING at thin analysis. In fallback mode the
// report is a single INFO line.
func (c *Compiler) IntegrationReport() []string {
	var issues []string

	if !c.UsingRich() {
		return []string{"INFO: rich categorized analysis not used (fallback mode)"}
	}

	byCode := map[string]phases.CategoryAnalysis{}
	for _, cat := range c.set.Phase15.CategoryAnalyses {
		byCode[cat.CategoryCode] = cat
	}

	for _, code := range expectedRichCodes {
		if _, ok := byCode[code]; ok {
			continue
		}
		if code == "ITD" {
			if _, ok := byCode["IDS"]; ok {
				continue
			}
		}
		if code == "IDS" {
			if _, ok := byCode["ITD"]; ok {
				continue
			}
		}
		issues = append(issues, fmt.Sprintf("MISSING: category %s not in rich analysis", code))
	}

	for _, score := range c.scores {
		cat, ok := byCode[string(score.DimensionCode)]
		if !ok {
			continue
		}
		if math.Abs(score.Score-cat.OverallScore) > 0.1 {
			issues = append(issues, fmt.Sprintf(
				"SCORE MISMATCH: %s expected %v, got %v",
				score.DimensionCode, cat.OverallScore, score.Score))
		}
	}

	var strengths, weaknesses, quickWins int
	for _, cat := range byCode {
		strengths += len(cat.Strengths)
		weaknesses += len(cat.Weaknesses)
		quickWins += len(cat.QuickWins)
	}
	if strengths < 12 {
		issues = append(issues, fmt.Sprintf("LOW CONTENT: only %d strengths found (expected 36+)", strengths))
	}
	if weaknesses < 12 {
		issues = append(issues, fmt.Sprintf("LOW CONTENT: only %d weaknesses found (expected 36+)", weaknesses))
	}
	if quickWins < 12 {
		issues = append(issues, fmt.Sprintf("LOW CONTENT: only %d quick wins found (expected 24+)", quickWins))
	}

	if c.set.Phase15.CrossCategoryInsights == nil {
		issues = append(issues, "WARNING: no cross-category insights found in rich analysis")
	}
	if c.set.Phase15.OverallSummary == nil {
		issues = append(issues, "WARNING: no overall summary found in rich analysis")
	}

	return issues
}
