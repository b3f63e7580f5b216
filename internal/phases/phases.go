// Package phases models the upstream assessment phase documents and loads
// them tolerantly: a missing or malformed file is recorded as a warning and
// treated as empty, never aborting the run. Only a total absence of usable
// input is fatal, and that decision belongs to the caller.
package phases

import (
	"encoding/json"
	"fmt"
	"os"
)

// CategoryAnalysis is one per-dimension entry of the rich phase 1.5 output.
type CategoryAnalysis struct {
	CategoryCode         string                `json:"categoryCode"`
	CategoryName         string                `json:"categoryName"`
	OverallScore         float64               `json:"overallScore"`
	Strengths            []Strength            `json:"strengths,omitempty"`
	Weaknesses           []Weakness            `json:"weaknesses,omitempty"`
	QuickWins            []QuickWinEntry       `json:"quickWins,omitempty"`
	CategoryRisks        []CategoryRisk        `json:"categoryRisks,omitempty"`
	BenchmarkComparisons []BenchmarkComparison `json:"benchmarkComparisons,omitempty"`
}

// Strength is one identified strength within a category analysis.
type Strength struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Evidence    []string `json:"evidence,omitempty"`
	ImpactLevel string   `json:"impactLevel,omitempty"`
}

// Weakness is one identified weakness; severity drives gap-vs-risk
// classification downstream.
type Weakness struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    string   `json:"severity,omitempty"`
	RootCause   string   `json:"rootCause,omitempty"`
	Evidence    []string `json:"evidence,omitempty"`
}

// QuickWinEntry is one upstream quick-win suggestion. Impact and effort are
// qualitative labels (low/medium/high).
type QuickWinEntry struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Impact       string `json:"impact,omitempty"`
	Effort       string `json:"effort,omitempty"`
	Timeline     string `json:"timeline,omitempty"`
	EstimatedROI string `json:"estimatedROI,omitempty"`
}

// CategoryRisk is one upstream risk entry with qualitative likelihood and
// impact labels.
type CategoryRisk struct {
	Description string `json:"description"`
	Likelihood  string `json:"likelihood,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Mitigation  string `json:"mitigation,omitempty"`
}

// BenchmarkComparison positions the company against one peer metric.
// Position is one of poor/average/good/excellent.
type BenchmarkComparison struct {
	Metric   string `json:"metric,omitempty"`
	Position string `json:"position"`
}

// OverallSummary is the run-level rollup of the rich source.
type OverallSummary struct {
	HealthScore      float64  `json:"healthScore"`
	HealthStatus     string   `json:"healthStatus"`
	Trajectory       string   `json:"trajectory"`
	TopStrengths     []string `json:"topStrengths,omitempty"`
	TopWeaknesses    []string `json:"topWeaknesses,omitempty"`
	TopRisks         []string `json:"topRisks,omitempty"`
	TopOpportunities []string `json:"topOpportunities,omitempty"`
}

// Phase15Document is the rich categorized analysis. When present with
// populated category analyses it is the authoritative score source.
type Phase15Document struct {
	CategoryAnalyses      []CategoryAnalysis `json:"categoryAnalyses"`
	OverallSummary        *OverallSummary    `json:"overallSummary,omitempty"`
	CrossCategoryInsights any                `json:"crossCategoryInsights,omitempty"`
}

// Webhook is the raw questionnaire payload: flat key/value maps per
// snake_case category name. Values are numeric or textual.
type Webhook map[string]map[string]any

// Category returns the response map for one category key, or nil.
func (w Webhook) Category(key string) map[string]any {
	if w == nil {
		return nil
	}
	return w[key]
}

// Set holds all upstream documents for one compilation run. Phase 1-3
// outputs are free-form; the rich and webhook documents are typed.
type Set struct {
	Phase1  map[string]any
	Phase2  map[string]any
	Phase3  map[string]any
	Phase15 *Phase15Document
	Webhook Webhook
}

// HasRich reports whether the rich phase 1.5 source is usable, i.e. present
// with at least one category analysis.
func (s *Set) HasRich() bool {
	return s.Phase15 != nil && len(s.Phase15.CategoryAnalyses) > 0
}

// HasAnySource reports whether any upstream document loaded at all. A
// webhook that decoded to zero categories still counts as loaded.
func (s *Set) HasAnySource() bool {
	return len(s.Phase1) > 0 || len(s.Phase2) > 0 || len(s.Phase3) > 0 ||
		s.Phase15 != nil || s.Webhook != nil
}

// CompanyProfileID returns the company id declared by phase 1, or "".
func (s *Set) CompanyProfileID() string {
	if id, ok := s.Phase1["company_profile_id"].(string); ok {
		return id
	}
	return ""
}

// Paths names the upstream files for one run. Every path is optional.
type Paths struct {
	Phase1  string
	Phase2  string
	Phase3  string
	Phase15 string
	Webhook string
}

// LoadReport accumulates per-file load problems. They are warnings, not
// errors: compilation proceeds through the fallback chain regardless.
type LoadReport struct {
	Warnings []string
}

func (r *LoadReport) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// LoadSet reads every provided path, substituting empty documents for
// anything missing or unparseable.
func LoadSet(paths Paths) (Set, LoadReport) {
	var set Set
	var report LoadReport

	set.Phase1 = loadFreeform(paths.Phase1, "phase1", &report)
	set.Phase2 = loadFreeform(paths.Phase2, "phase2", &report)
	set.Phase3 = loadFreeform(paths.Phase3, "phase3", &report)

	if paths.Phase15 != "" {
		var doc Phase15Document
		if readJSON(paths.Phase15, "phase1.5", &doc, &report) {
			set.Phase15 = &doc
		}
	}
	if paths.Webhook != "" {
		set.Webhook = loadWebhook(paths.Webhook, &report)
	}

	return set, report
}

func loadFreeform(path, name string, report *LoadReport) map[string]any {
	if path == "" {
		return map[string]any{}
	}
	var doc map[string]any
	if !readJSON(path, name, &doc, report) {
		return map[string]any{}
	}
	return doc
}

// loadWebhook decodes category-by-category so one malformed category does
// not discard the whole payload. A nil return means the file was missing or
// unreadable; a loaded-but-empty payload returns a non-nil empty map.
func loadWebhook(path string, report *LoadReport) Webhook {
	var raw map[string]json.RawMessage
	if !readJSON(path, "webhook", &raw, report) {
		return nil
	}
	out := Webhook{}
	for key, msg := range raw {
		var category map[string]any
		if err := json.Unmarshal(msg, &category); err != nil {
			report.warnf("webhook: category %q is not an object, skipping", key)
			continue
		}
		out[key] = category
	}
	return out
}

func readJSON(path, name string, v any, report *LoadReport) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			report.warnf("%s: %s not found, treating as empty", name, path)
		} else {
			report.warnf("%s: reading %s: %v", name, path, err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		report.warnf("%s: parsing %s: %v, treating as empty", name, path, err)
		return false
	}
	return true
}
