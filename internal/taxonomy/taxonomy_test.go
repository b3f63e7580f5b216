package taxonomy

import (
	"strings"
	"testing"

	"idm-compiler/internal/idm"
)

func TestChapterPartition(t *testing.T) {
	// The 4 chapters partition the 12 dimensions exactly.
	seen := map[idm.DimensionCode]bool{}
	total := 0
	for _, ch := range idm.ChapterCodes {
		for _, code := range DimensionsForChapter(ch) {
			if seen[code] {
				t.Errorf("dimension %s assigned to more than one chapter", code)
			}
			seen[code] = true
			total++
			if got := ChapterFor(code); got != ch {
				t.Errorf("ChapterFor(%s) = %s, want %s", code, got, ch)
			}
		}
	}
	if total != 12 {
		t.Errorf("chapters cover %d dimensions, want 12", total)
	}
}

func TestNormalizeDimensionCode(t *testing.T) {
	if got := NormalizeDimensionCode("ITD"); got != idm.IDS {
		t.Errorf("NormalizeDimensionCode(ITD) = %s, want IDS", got)
	}
	if got := NormalizeDimensionCode("STR"); got != idm.STR {
		t.Errorf("NormalizeDimensionCode(STR) = %s, want STR", got)
	}
}

func TestSubIndicatorCatalog(t *testing.T) {
	ids := map[string]bool{}
	for _, code := range idm.DimensionCodes {
		defs := SubIndicators[code]
		if len(defs) != 5 {
			t.Errorf("%s has %d sub-indicators, want 5", code, len(defs))
		}
		for _, def := range defs {
			if !strings.HasPrefix(def.ID, string(code)+"_") {
				t.Errorf("sub-indicator %s not prefixed with %s_", def.ID, code)
			}
			if ids[def.ID] {
				t.Errorf("duplicate sub-indicator id %s", def.ID)
			}
			ids[def.ID] = true
			if def.Name == "" {
				t.Errorf("sub-indicator %s has empty name", def.ID)
			}
		}
	}
}

func TestQuestionMappings(t *testing.T) {
	seen := map[string]bool{}
	for _, q := range QuestionMappings {
		if seen[q.QuestionID] {
			t.Errorf("duplicate question id %s", q.QuestionID)
		}
		seen[q.QuestionID] = true
		if _, ok := Dimensions[q.DimensionCode]; !ok {
			t.Errorf("question %s maps to unknown dimension %s", q.QuestionID, q.DimensionCode)
		}
		found := false
		for _, def := range SubIndicators[q.DimensionCode] {
			if def.ID == q.SubIndicatorID {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("question %s maps to unknown sub-indicator %s", q.QuestionID, q.SubIndicatorID)
		}
	}

	if q := QuestionByID("nonexistent"); q != nil {
		t.Errorf("QuestionByID(nonexistent) = %v, want nil", q)
	}
	if len(QuestionMappings) > 0 {
		first := QuestionMappings[0]
		got := QuestionByID(first.QuestionID)
		if got == nil || got.SubIndicatorID != first.SubIndicatorID {
			t.Errorf("QuestionByID(%s) = %v, want %v", first.QuestionID, got, first)
		}
	}
}

func TestBenchmarkFor(t *testing.T) {
	if got := BenchmarkFor("STR"); got != Benchmarks[idm.STR] {
		t.Errorf("BenchmarkFor(STR) = %v, want %v", got, Benchmarks[idm.STR])
	}
	// Legacy code folds to IDS before lookup.
	if got := BenchmarkFor("ITD"); got != Benchmarks[idm.IDS] {
		t.Errorf("BenchmarkFor(ITD) = %v, want %v", got, Benchmarks[idm.IDS])
	}
	if got := BenchmarkFor("XXX"); got != DefaultBenchmark {
		t.Errorf("BenchmarkFor(XXX) = %v, want default %v", got, DefaultBenchmark)
	}
}

func TestCategoryKeys(t *testing.T) {
	if len(CategoryKeys) != 12 {
		t.Fatalf("CategoryKeys has %d entries, want 12", len(CategoryKeys))
	}
	seen := map[idm.DimensionCode]bool{}
	for _, ck := range CategoryKeys {
		if seen[ck.Dimension] {
			t.Errorf("dimension %s appears twice in CategoryKeys", ck.Dimension)
		}
		seen[ck.Dimension] = true
	}
}
