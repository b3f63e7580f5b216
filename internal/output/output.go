// Package output serialises compiled documents to disk. The canonical
// document is written through a map so run-level enrichments can be merged
// without widening the core schema.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"idm-compiler/internal/idm"
)

// Enrichment carries the optional rich-source blocks merged into the
// serialised document alongside the core fields.
type Enrichment struct {
	CrossCategoryInsights any
	OverallHealth         map[string]any
}

// WriteIDM writes the document as indented JSON, merging enrichment keys
// when present. The core schema is never altered, only extended.
func WriteIDM(path string, doc *idm.IDM, enrich Enrichment) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("idm: marshal: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("idm: remarshal: %w", err)
	}
	if enrich.CrossCategoryInsights != nil {
		m["cross_category_insights"] = enrich.CrossCategoryInsights
	}
	if enrich.OverallHealth != nil {
		m["phase15_overall_health"] = enrich.OverallHealth
	}
	return WriteDocument(path, m)
}

// WriteDocument writes any value as indented JSON.
func WriteDocument(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Timestamp renders a filename-safe UTC timestamp with millisecond
// precision.
func Timestamp(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s-%03dZ", t.Format("2006-01-02T15-04-05"), t.Nanosecond()/1e6)
}

// IDMPath names the canonical document file for one run.
func IDMPath(dir, companyID, ts string) string {
	return filepath.Join(dir, fmt.Sprintf("idm-%s-%s.json", companyID, ts))
}

// Phase4Path names the legacy summaries file for one run.
func Phase4Path(dir, companyID, ts string) string {
	return filepath.Join(dir, fmt.Sprintf("phase4-summaries-%s-%s.json", companyID, ts))
}

// MasterPath names the combined analysis file for one run.
func MasterPath(dir, companyID, ts string) string {
	return filepath.Join(dir, fmt.Sprintf("master-analysis-%s-%s.json", companyID, ts))
}
