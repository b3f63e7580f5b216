// Package extract derives the twelve per-dimension category scores from
// whichever upstream source is available. The rich categorized analysis is
// authoritative; the raw questionnaire payload is the fallback; a fixed
// default table is the last resort. Every source yields one score per
// dimension on the 0-100 scale.
package extract

import (
	"sort"
	"strings"

	"idm-compiler/internal/idm"
	"idm-compiler/internal/phases"
	"idm-compiler/internal/scoring"
	"idm-compiler/internal/taxonomy"
)

// CategoryScore is one extracted dimension score with its benchmark context.
// Weight is the share of the overall score, uniform across dimensions.
type CategoryScore struct {
	Name           string
	DimensionCode  idm.DimensionCode
	Score          float64
	BenchmarkScore float64
	Weight         float64
	Trend          string
	Percentile     int
}

const uniformWeight = 1.0 / 12

// Source produces category scores from one kind of upstream document.
type Source interface {
	Name() string
	Available() bool
	Extract() []CategoryScore
}

// Select returns the highest-priority available source for the set.
func Select(set *phases.Set) Source {
	sources := []Source{
		&richSource{set: set},
		&rawResponseSource{webhook: set.Webhook},
	}
	for _, s := range sources {
		if s.Available() {
			return s
		}
	}
	return defaultSource{}
}

// Scores runs the selected source and enforces the twelve-entry invariant:
// dimensions the source did not produce are backfilled from the default
// table, and the result is in canonical dimension order.
func Scores(set *phases.Set) ([]CategoryScore, string) {
	src := Select(set)

	byCode := map[idm.DimensionCode]CategoryScore{}
	for _, s := range src.Extract() {
		if _, ok := byCode[s.DimensionCode]; !ok {
			byCode[s.DimensionCode] = s
		}
	}

	out := make([]CategoryScore, 0, len(idm.DimensionCodes))
	for _, row := range (defaultSource{}).Extract() {
		if s, ok := byCode[row.DimensionCode]; ok {
			out = append(out, s)
			continue
		}
		out = append(out, row)
	}
	return out, src.Name()
}

// richSource reads scores straight out of the categorized analysis. The
// per-category score is taken as-is; the percentile averages the benchmark
// comparison positions; the run-level trajectory applies to every category.
type richSource struct {
	set *phases.Set
}

func (s *richSource) Name() string { return "phase1_5" }

func (s *richSource) Available() bool { return s.set.HasRich() }

var positionPercentiles = map[string]int{
	"poor":      20,
	"average":   50,
	"good":      70,
	"excellent": 90,
}

var trajectoryTrends = map[string]string{
	"Declining": "declining",
	"Stable":    "stable",
	"Improving": "improving",
}

func (s *richSource) Extract() []CategoryScore {
	doc := s.set.Phase15

	trend := "stable"
	if doc.OverallSummary != nil {
		if t, ok := trajectoryTrends[doc.OverallSummary.Trajectory]; ok {
			trend = t
		}
	}

	var out []CategoryScore
	for _, cat := range doc.CategoryAnalyses {
		code := taxonomy.NormalizeDimensionCode(cat.CategoryCode)
		out = append(out, CategoryScore{
			Name:           cat.CategoryName,
			DimensionCode:  code,
			Score:          cat.OverallScore,
			BenchmarkScore: taxonomy.BenchmarkFor(string(code)),
			Weight:         uniformWeight,
			Trend:          trend,
			Percentile:     positionPercentile(cat.BenchmarkComparisons),
		})
	}
	return out
}

func positionPercentile(comparisons []phases.BenchmarkComparison) int {
	if len(comparisons) == 0 {
		return 50
	}
	sum := 0
	for _, bc := range comparisons {
		p, ok := positionPercentiles[bc.Position]
		if !ok {
			p = 50
		}
		sum += p
	}
	return sum / len(comparisons)
}

// rawResponseSource computes scores from the flat questionnaire payload.
// Numeric answers on the 1-5 scale map to 0-100 at full weight; values
// already on 0-100 count at half weight; a category with no numeric
// answers scores 60.0.
type rawResponseSource struct {
	webhook phases.Webhook
}

func (s *rawResponseSource) Name() string { return "webhook" }

// Available requires the payload to have loaded, even when it decoded to
// zero categories: an empty payload scores every category at 60.0. Only an
// absent webhook falls through to the default table.
func (s *rawResponseSource) Available() bool { return s.webhook != nil }

// categoryNames are the display names used when building scores without an
// upstream document naming them. RMS keeps its short historical form here.
var categoryNames = map[idm.DimensionCode]string{
	idm.STR: "Strategy",
	idm.SAL: "Sales",
	idm.MKT: "Marketing",
	idm.CXP: "Customer Experience",
	idm.OPS: "Operations",
	idm.FIN: "Financials",
	idm.HRS: "Human Resources",
	idm.LDG: "Leadership & Governance",
	idm.TIN: "Technology & Innovation",
	idm.IDS: "IT, Data & Systems",
	idm.RMS: "Risk Management",
	idm.CMP: "Compliance",
}

func (s *rawResponseSource) Extract() []CategoryScore {
	var out []CategoryScore
	for _, ck := range taxonomy.CategoryKeys {
		code := ck.Dimension
		data := s.webhook.Category(ck.Key)
		score := categoryScore(data)
		benchmark := taxonomy.BenchmarkFor(string(code))
		out = append(out, CategoryScore{
			Name:           categoryNames[code],
			DimensionCode:  code,
			Score:          score,
			BenchmarkScore: benchmark,
			Weight:         uniformWeight,
			Trend:          trendFromResponses(data),
			Percentile:     benchmarkPercentile(score, benchmark),
		})
	}
	return out
}

func categoryScore(data map[string]any) float64 {
	if len(data) == 0 {
		return 60.0
	}
	var weightedSum, totalWeight float64
	for _, key := range sortedKeys(data) {
		v, ok := asNumber(data[key])
		if !ok {
			continue
		}
		switch {
		case v >= 1 && v <= 5:
			weightedSum += ((v - 1) / 4) * 100
			totalWeight += 1.0
		case v >= 0 && v <= 100:
			weightedSum += v * 0.5
			totalWeight += 0.5
		}
	}
	if totalWeight == 0 {
		return 60.0
	}
	return scoring.Round1(weightedSum / totalWeight)
}

// trendFromResponses keys off growth-rate style answers. The first growth
// field breaking a threshold decides.
func trendFromResponses(data map[string]any) string {
	for _, key := range sortedKeys(data) {
		if !strings.Contains(strings.ToLower(key), "growth") {
			continue
		}
		v, ok := asNumber(data[key])
		if !ok {
			continue
		}
		if v > 15 {
			return "improving"
		}
		if v < -5 {
			return "declining"
		}
	}
	return "stable"
}

// benchmarkPercentile ranks a 0-100 score against the 1-5 benchmark by
// converting back to the five-point scale and bucketing the ratio.
func benchmarkPercentile(score, benchmark float64) int {
	if benchmark == 0 {
		return 50
	}
	ratio := (score/100*4 + 1) / benchmark
	switch {
	case ratio >= 1.2:
		return 90
	case ratio >= 1.0:
		return 75
	case ratio >= 0.8:
		return 50
	case ratio >= 0.6:
		return 25
	}
	return 10
}

// defaultSource is the fixed table used when nothing upstream yields a
// single score.
type defaultSource struct{}

func (defaultSource) Name() string { return "defaults" }

func (defaultSource) Available() bool { return true }

func (defaultSource) Extract() []CategoryScore {
	rows := []struct {
		code       idm.DimensionCode
		score      float64
		benchmark  float64
		trend      string
		percentile int
	}{
		{idm.STR, 68, 3.5, "stable", 60},
		{idm.SAL, 72, 3.6, "stable", 65},
		{idm.MKT, 42, 3.4, "declining", 35},
		{idm.CXP, 85, 3.7, "stable", 80},
		{idm.OPS, 78, 3.5, "stable", 70},
		{idm.FIN, 70, 3.6, "stable", 60},
		{idm.HRS, 55, 3.3, "declining", 45},
		{idm.LDG, 48, 3.4, "declining", 40},
		{idm.TIN, 75, 3.5, "improving", 70},
		{idm.IDS, 90, 3.5, "stable", 85},
		{idm.RMS, 45, 3.4, "declining", 38},
		{idm.CMP, 72, 3.6, "stable", 65},
	}
	out := make([]CategoryScore, 0, len(rows))
	for _, r := range rows {
		out = append(out, CategoryScore{
			Name:           categoryNames[r.code],
			DimensionCode:  r.code,
			Score:          r.score,
			BenchmarkScore: r.benchmark,
			Weight:         uniformWeight,
			Trend:          r.trend,
			Percentile:     r.percentile,
		})
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
