package validate

import (
	"strings"
	"testing"

	"idm-compiler/internal/compiler"
	"idm-compiler/internal/idm"
	"idm-compiler/internal/phases"
)

func TestCompiledDocumentPasses(t *testing.T) {
	// A default-source compilation must satisfy the schema end to end.
	set := &phases.Set{}
	doc := compiler.New(set, compiler.Options{}).Compile()
	if violations := Check(doc); len(violations) != 0 {
		t.Errorf("compiled document has %d violations:", len(violations))
		for _, v := range violations {
			t.Errorf("  %s", v)
		}
	}
}

func TestBrokenReferencesFlagged(t *testing.T) {
	set := &phases.Set{}
	doc := compiler.New(set, compiler.Options{}).Compile()

	doc.Recommendations[0].LinkedFindingIDs = []string{"finding-nonexistent"}
	doc.QuickWins = doc.QuickWins[:1]
	doc.QuickWins[0].RecommendationID = "rec-nonexistent"
	doc.Roadmap.Phases[0].LinkedRecommendationIDs = []string{"rec-ghost"}

	violations := Check(doc)
	wantPaths := []string{
		"recommendations[0].linked_finding_ids[0]",
		"quick_wins[0].recommendation_id",
		"roadmap.phases[0].linked_recommendation_ids[0]",
	}
	for _, want := range wantPaths {
		found := false
		for _, v := range violations {
			if v.Path == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing violation at %s; got %v", want, violations)
		}
	}
}

func TestCardinalityFlagged(t *testing.T) {
	set := &phases.Set{}
	doc := compiler.New(set, compiler.Options{}).Compile()

	doc.Chapters = doc.Chapters[:3]
	doc.Dimensions[0].SubIndicators = doc.Dimensions[0].SubIndicators[:2]

	violations := Check(doc)
	foundChapters, foundSubs := false, false
	for _, v := range violations {
		if v.Path == "chapters" {
			foundChapters = true
		}
		if v.Path == "dimensions[0].sub_indicators" {
			foundSubs = true
		}
	}
	if !foundChapters {
		t.Error("truncated chapters not flagged")
	}
	if !foundSubs {
		t.Error("2 sub-indicators not flagged (minimum is 3)")
	}
}

func TestRangeAndEnumFlagged(t *testing.T) {
	set := &phases.Set{}
	doc := compiler.New(set, compiler.Options{}).Compile()

	doc.Dimensions[0].ScoreOverall = 120
	doc.Recommendations[0].Horizon = "6_weeks"
	doc.Findings[0].Type = "observation"
	doc.Meta.CompanyProfileID = ""

	violations := Check(doc)
	wantSubstrings := []string{
		"score 120 out of range",
		`unknown horizon "6_weeks"`,
		`unknown finding type "observation"`,
	}
	for _, want := range wantSubstrings {
		found := false
		for _, v := range violations {
			if strings.Contains(v.Reason, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing violation containing %q; got %v", want, violations)
		}
	}
	found := false
	for _, v := range violations {
		if v.Path == "meta.company_profile_id" {
			found = true
		}
	}
	if !found {
		t.Error("empty company profile id not flagged")
	}
}

func TestMissingSeverityFlagged(t *testing.T) {
	set := &phases.Set{}
	doc := compiler.New(set, compiler.Options{}).Compile()

	doc.Findings[0].Severity = idm.Level{}

	violations := Check(doc)
	found := false
	for _, v := range violations {
		if v.Path == "findings[0].severity" {
			found = true
		}
	}
	if !found {
		t.Errorf("empty finding severity not flagged; got %v", violations)
	}
}

func TestChapterOwnershipFlagged(t *testing.T) {
	set := &phases.Set{}
	doc := compiler.New(set, compiler.Options{}).Compile()

	// Move a dimension into the wrong chapter.
	doc.Dimensions[0].ChapterCode = "RS"

	violations := Check(doc)
	found := false
	for _, v := range violations {
		if v.Path == "dimensions[0].chapter_code" {
			found = true
		}
	}
	if !found {
		t.Errorf("misassigned chapter not flagged; got %v", violations)
	}
}
