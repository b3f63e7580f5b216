package qa

import (
	"strings"
	"testing"
)

func TestExpectedConfidence(t *testing.T) {
	if got := ExpectedConfidence(500); got != "high" {
		t.Errorf("ExpectedConfidence(500) = %q, want high", got)
	}
	if got := ExpectedConfidence(499); got != "medium" {
		t.Errorf("ExpectedConfidence(499) = %q, want medium", got)
	}
	if got := ExpectedConfidence(50); got != "medium" {
		t.Errorf("ExpectedConfidence(50) = %q, want medium", got)
	}
	if got := ExpectedConfidence(49); got != "low" {
		t.Errorf("ExpectedConfidence(49) = %q, want low", got)
	}
}

func TestPercentileBand(t *testing.T) {
	if got := PercentileBand(75); got != "top_quartile" {
		t.Errorf("PercentileBand(75) = %q, want top_quartile", got)
	}
	if got := PercentileBand(74.9); got != "above_average" {
		t.Errorf("PercentileBand(74.9) = %q, want above_average", got)
	}
	if got := PercentileBand(50); got != "above_average" {
		t.Errorf("PercentileBand(50) = %q, want above_average", got)
	}
	if got := PercentileBand(25); got != "average" {
		t.Errorf("PercentileBand(25) = %q, want average", got)
	}
	if got := PercentileBand(24.9); got != "below_average" {
		t.Errorf("PercentileBand(24.9) = %q, want below_average", got)
	}
}

func TestNarrativeIssuesClean(t *testing.T) {
	narrative := "Your score of 72 places you in the 65th percentile of peer companies, above the industry average of 61."
	if issues := NarrativeIssues(narrative); len(issues) != 0 {
		t.Errorf("clean narrative flagged: %v", issues)
	}
}

func TestNarrativeIssuesShortAndEmpty(t *testing.T) {
	if issues := NarrativeIssues(""); len(issues) != 1 || issues[0] != "narrative is empty" {
		t.Errorf("empty narrative = %v", issues)
	}
	issues := NarrativeIssues("Too short.")
	if len(issues) != 1 || !strings.Contains(issues[0], "too short") {
		t.Errorf("short narrative = %v", issues)
	}
}

func TestNarrativeIssuesRenderingFailures(t *testing.T) {
	// Bad values and unresolved placeholders are the critical failures.
	narrative := "Your score of undefined places you in the {percentile} percentile of peer companies versus 61."
	issues := NarrativeIssues(narrative)
	foundBad, foundPlaceholder := false, false
	for _, issue := range issues {
		if strings.Contains(issue, `"undefined"`) {
			foundBad = true
		}
		if strings.Contains(issue, "unresolved template placeholder") {
			foundPlaceholder = true
		}
	}
	if !foundBad {
		t.Errorf("undefined value not flagged: %v", issues)
	}
	if !foundPlaceholder {
		t.Errorf("placeholder not flagged: %v", issues)
	}
}

func TestNarrativeIssuesStyle(t *testing.T) {
	// Lowercase start, no period, informal word, repeated word.
	narrative := "your score of 42 is kinda low low low against the 35th percentile of peer companies overall"
	issues := NarrativeIssues(narrative)
	wantSubstrings := []string{
		"capital letter",
		"end with period",
		"informal language",
		"repeated word",
	}
	for _, want := range wantSubstrings {
		found := false
		for _, issue := range issues {
			if strings.Contains(issue, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing issue containing %q; got %v", want, issues)
		}
	}
}

func TestNarrativeIssuesMissingContext(t *testing.T) {
	narrative := "This statement is long enough to pass the length check but it names nothing that positions the result."
	issues := NarrativeIssues(narrative)
	wantSubstrings := []string{
		"missing percentile",
		"peer group",
		"missing numeric values",
	}
	for _, want := range wantSubstrings {
		found := false
		for _, issue := range issues {
			if strings.Contains(issue, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing issue containing %q; got %v", want, issues)
		}
	}
}
