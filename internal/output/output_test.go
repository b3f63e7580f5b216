package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"idm-compiler/internal/compiler"
	"idm-compiler/internal/phases"
)

func TestTimestamp(t *testing.T) {
	ts := Timestamp(time.Date(2025, 6, 1, 12, 30, 45, 123_000_000, time.UTC))
	if ts != "2025-06-01T12-30-45-123Z" {
		t.Errorf("Timestamp = %q, want 2025-06-01T12-30-45-123Z", ts)
	}
}

func TestPaths(t *testing.T) {
	got := IDMPath("out", "acme", "2025-06-01T12-30-45-123Z")
	want := filepath.Join("out", "idm-acme-2025-06-01T12-30-45-123Z.json")
	if got != want {
		t.Errorf("IDMPath = %q, want %q", got, want)
	}
	got = Phase4Path("out", "acme", "ts")
	if got != filepath.Join("out", "phase4-summaries-acme-ts.json") {
		t.Errorf("Phase4Path = %q", got)
	}
	got = MasterPath("out", "acme", "ts")
	if got != filepath.Join("out", "master-analysis-acme-ts.json") {
		t.Errorf("MasterPath = %q", got)
	}
}

func TestWriteIDMEnrichment(t *testing.T) {
	set := &phases.Set{}
	doc := compiler.New(set, compiler.Options{}).Compile()

	dir := t.TempDir()
	path := filepath.Join(dir, "idm.json")
	enrich := Enrichment{
		CrossCategoryInsights: []any{"insight one"},
		OverallHealth:         map[string]any{"score": 68.0},
	}
	if err := WriteIDM(path, doc, enrich); err != nil {
		t.Fatalf("WriteIDM: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("parse back: %v", err)
	}

	// Core schema keys survive alongside the merged enrichments.
	for _, key := range []string{"meta", "chapters", "dimensions", "scores_summary",
		"cross_category_insights", "phase15_overall_health"} {
		if _, ok := m[key]; !ok {
			t.Errorf("output missing key %q", key)
		}
	}
	health, ok := m["phase15_overall_health"].(map[string]any)
	if !ok || health["score"] != 68.0 {
		t.Errorf("phase15_overall_health = %v, want score 68", m["phase15_overall_health"])
	}
}

func TestWriteIDMNoEnrichment(t *testing.T) {
	set := &phases.Set{}
	doc := compiler.New(set, compiler.Options{}).Compile()

	dir := t.TempDir()
	path := filepath.Join(dir, "idm.json")
	if err := WriteIDM(path, doc, Enrichment{}); err != nil {
		t.Fatalf("WriteIDM: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("parse back: %v", err)
	}
	if _, ok := m["cross_category_insights"]; ok {
		t.Error("cross_category_insights present without enrichment")
	}
	if _, ok := m["phase15_overall_health"]; ok {
		t.Error("phase15_overall_health present without enrichment")
	}
}
