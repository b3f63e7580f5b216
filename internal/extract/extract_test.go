package extract

import (
	"testing"

	"idm-compiler/internal/idm"
	"idm-compiler/internal/phases"
)

func TestScoresAlwaysTwelve(t *testing.T) {
	// Empty set → default table.
	set := &phases.Set{}
	scores, source := Scores(set)
	if len(scores) != 12 {
		t.Fatalf("default extraction yielded %d scores, want 12", len(scores))
	}
	if source != "defaults" {
		t.Errorf("source = %q, want defaults", source)
	}

	// Loaded-but-empty webhook → webhook source, every category at the
	// no-answers score of 60.0. Only a nil webhook falls to the table.
	set = &phases.Set{Webhook: phases.Webhook{}}
	scores, source = Scores(set)
	if source != "webhook" {
		t.Errorf("source = %q, want webhook", source)
	}
	if len(scores) != 12 {
		t.Fatalf("empty webhook extraction yielded %d scores, want 12", len(scores))
	}
	for _, s := range scores {
		if s.Score != 60.0 {
			t.Errorf("empty webhook score for %s = %v, want 60.0", s.DimensionCode, s.Score)
		}
	}

	// Partial webhook → twelve scores from the webhook source.
	set = &phases.Set{Webhook: phases.Webhook{"strategy": {"q1": 4.0}}}
	scores, source = Scores(set)
	if len(scores) != 12 {
		t.Fatalf("webhook extraction yielded %d scores, want 12", len(scores))
	}
	if source != "webhook" {
		t.Errorf("source = %q, want webhook", source)
	}

	// Rich document wins over webhook.
	set = &phases.Set{
		Phase15: &phases.Phase15Document{
			CategoryAnalyses: []phases.CategoryAnalysis{
				{CategoryCode: "STR", CategoryName: "Strategy", OverallScore: 70},
			},
		},
		Webhook: phases.Webhook{"strategy": {"q1": 4.0}},
	}
	scores, source = Scores(set)
	if source != "phase1_5" {
		t.Errorf("source = %q, want phase1_5", source)
	}
	// Partial rich document: STR comes from the analysis, the other eleven
	// backfill from the default table, in canonical order.
	if len(scores) != 12 {
		t.Fatalf("rich extraction yielded %d scores, want 12", len(scores))
	}
	if scores[0].DimensionCode != idm.STR || scores[0].Score != 70 {
		t.Errorf("scores[0] = %s/%v, want STR/70 from the rich analysis", scores[0].DimensionCode, scores[0].Score)
	}
	if scores[1].DimensionCode != idm.SAL || scores[1].Score != 72 {
		t.Errorf("scores[1] = %s/%v, want SAL/72 from the default table", scores[1].DimensionCode, scores[1].Score)
	}
}

func TestRichExtraction(t *testing.T) {
	set := &phases.Set{
		Phase15: &phases.Phase15Document{
			CategoryAnalyses: []phases.CategoryAnalysis{
				{
					CategoryCode: "ITD", CategoryName: "IT, Data & Systems", OverallScore: 81.5,
					BenchmarkComparisons: []phases.BenchmarkComparison{
						{Position: "good"}, {Position: "excellent"}, {Position: "unknown"},
					},
				},
			},
			OverallSummary: &phases.OverallSummary{Trajectory: "Improving"},
		},
	}
	scores := (&richSource{set: set}).Extract()
	if len(scores) != 1 {
		t.Fatalf("got %d scores, want 1", len(scores))
	}
	s := scores[0]
	// Legacy ITD code normalizes to IDS.
	if s.DimensionCode != idm.IDS {
		t.Errorf("dimension = %s, want IDS", s.DimensionCode)
	}
	if s.Score != 81.5 {
		t.Errorf("score = %v, want 81.5", s.Score)
	}
	// (70 + 90 + 50) / 3 = 70; unknown positions count as average.
	if s.Percentile != 70 {
		t.Errorf("percentile = %d, want 70", s.Percentile)
	}
	// Run-level trajectory applies to every category.
	if s.Trend != "improving" {
		t.Errorf("trend = %q, want improving", s.Trend)
	}
}

func TestRichDefaultPercentileAndTrend(t *testing.T) {
	set := &phases.Set{
		Phase15: &phases.Phase15Document{
			CategoryAnalyses: []phases.CategoryAnalysis{
				{CategoryCode: "STR", CategoryName: "Strategy", OverallScore: 60},
			},
		},
	}
	s := (&richSource{set: set}).Extract()[0]
	if s.Percentile != 50 {
		t.Errorf("percentile with no comparisons = %d, want 50", s.Percentile)
	}
	if s.Trend != "stable" {
		t.Errorf("trend with no summary = %q, want stable", s.Trend)
	}
}

func TestCategoryScore(t *testing.T) {
	// 1-5 scale answers map to 0-100 at full weight: (4-1)/4*100 = 75,
	// (2-1)/4*100 = 25, mean 50.
	if got := categoryScore(map[string]any{"a": 4.0, "b": 2.0}); got != 50.0 {
		t.Errorf("categoryScore(4, 2) = %v, want 50.0", got)
	}
	// 0-100 values count at half weight: (75*1.0 + 80*0.5) / 1.5 = 76.7.
	if got := categoryScore(map[string]any{"a": 4.0, "b": 80.0}); got != 76.7 {
		t.Errorf("categoryScore(4, 80) = %v, want 76.7", got)
	}
	// Non-numeric answers are ignored; none numeric → 60.0.
	if got := categoryScore(map[string]any{"a": "yes", "b": "no"}); got != 60.0 {
		t.Errorf("categoryScore(text only) = %v, want 60.0", got)
	}
	if got := categoryScore(nil); got != 60.0 {
		t.Errorf("categoryScore(nil) = %v, want 60.0", got)
	}
}

func TestTrendFromResponses(t *testing.T) {
	if got := trendFromResponses(map[string]any{"revenue_growth": 20.0}); got != "improving" {
		t.Errorf("growth 20 = %q, want improving", got)
	}
	if got := trendFromResponses(map[string]any{"revenue_growth": -10.0}); got != "declining" {
		t.Errorf("growth -10 = %q, want declining", got)
	}
	if got := trendFromResponses(map[string]any{"revenue_growth": 5.0}); got != "stable" {
		t.Errorf("growth 5 = %q, want stable", got)
	}
	if got := trendFromResponses(map[string]any{"headcount": 50.0}); got != "stable" {
		t.Errorf("no growth key = %q, want stable", got)
	}
}

func TestBenchmarkPercentile(t *testing.T) {
	// Score 100 vs benchmark 3.5 → ratio 5/3.5 ≈ 1.43 → 90.
	if got := benchmarkPercentile(100, 3.5); got != 90 {
		t.Errorf("benchmarkPercentile(100, 3.5) = %d, want 90", got)
	}
	// Score 62.5 → 3.5 on the five-point scale, ratio 1.0 → 75.
	if got := benchmarkPercentile(62.5, 3.5); got != 75 {
		t.Errorf("benchmarkPercentile(62.5, 3.5) = %d, want 75", got)
	}
	// Score 45 → 2.8, ratio 0.8 → 50.
	if got := benchmarkPercentile(45, 3.5); got != 50 {
		t.Errorf("benchmarkPercentile(45, 3.5) = %d, want 50", got)
	}
	// Score 30 → 2.2, ratio ≈ 0.63 → 25.
	if got := benchmarkPercentile(30, 3.5); got != 25 {
		t.Errorf("benchmarkPercentile(30, 3.5) = %d, want 25", got)
	}
	// Score 0 → 1.0, ratio ≈ 0.29 → 10.
	if got := benchmarkPercentile(0, 3.5); got != 10 {
		t.Errorf("benchmarkPercentile(0, 3.5) = %d, want 10", got)
	}
	// Zero benchmark guards the division.
	if got := benchmarkPercentile(50, 0); got != 50 {
		t.Errorf("benchmarkPercentile(50, 0) = %d, want 50", got)
	}
}

func TestDefaultTable(t *testing.T) {
	scores := defaultSource{}.Extract()
	if len(scores) != 12 {
		t.Fatalf("default table has %d rows, want 12", len(scores))
	}
	byCode := map[idm.DimensionCode]CategoryScore{}
	for _, s := range scores {
		byCode[s.DimensionCode] = s
	}
	if s := byCode[idm.MKT]; s.Score != 42 || s.Trend != "declining" || s.Percentile != 35 {
		t.Errorf("MKT default = %+v, want score 42, declining, percentile 35", s)
	}
	if s := byCode[idm.IDS]; s.Score != 90 || s.Trend != "stable" || s.Percentile != 85 {
		t.Errorf("IDS default = %+v, want score 90, stable, percentile 85", s)
	}
}
