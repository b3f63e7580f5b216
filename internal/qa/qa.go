// Package qa holds the post-hoc quality checks run against an already
// compiled document: confidence-vs-peer-count consistency and narrative
// prose heuristics. These are consumers of the document, not producers,
// and all results are advisory.
package qa

import (
	"fmt"
	"regexp"
	"strings"

	"idm-compiler/internal/idm"
)

// ExpectedConfidence maps a benchmark peer-group size to the confidence
// label the document should carry.
func ExpectedConfidence(peerCount int) string {
	switch {
	case peerCount >= 500:
		return "high"
	case peerCount >= 50:
		return "medium"
	}
	return "low"
}

// PercentileBand maps a peer percentile to its comparison band label.
func PercentileBand(percentile float64) string {
	switch {
	case percentile >= 75:
		return "top_quartile"
	case percentile >= 50:
		return "above_average"
	case percentile >= 25:
		return "average"
	}
	return "below_average"
}

// Report is the outcome of one check pass. Passed is false only when a
// critical issue was found; Checks record what was verified.
type Report struct {
	Passed bool
	Checks []string
	Issues []string
}

// CheckBenchmarks verifies every benchmark percentile sits in the
// plausible 1-99 range and that the band description mentions its own
// percentile value.
func CheckBenchmarks(doc *idm.IDM) Report {
	report := Report{Passed: true}
	check := func(path string, b *idm.Benchmark) {
		if b == nil {
			report.Issues = append(report.Issues, fmt.Sprintf("%s: benchmark missing", path))
			report.Passed = false
			return
		}
		if b.PeerPercentile < 1 || b.PeerPercentile > 99 {
			report.Issues = append(report.Issues,
				fmt.Sprintf("%s: peer_percentile=%v out of valid range (1-99)", path, b.PeerPercentile))
			report.Passed = false
			return
		}
		report.Checks = append(report.Checks,
			fmt.Sprintf("%s: peer_percentile=%v (valid range 1-99)", path, b.PeerPercentile))
		if b.BandDescription != "" && !strings.Contains(b.BandDescription, fmt.Sprintf("%d", int(b.PeerPercentile))) {
			report.Issues = append(report.Issues,
				fmt.Sprintf("%s: band description %q does not mention percentile %v",
					path, b.BandDescription, b.PeerPercentile))
		}
	}

	for _, d := range doc.Dimensions {
		check(fmt.Sprintf("dimensions[%s]", d.DimensionCode), d.Benchmark)
	}
	for _, ch := range doc.Chapters {
		if ch.Benchmark != nil {
			check(fmt.Sprintf("chapters[%s]", ch.ChapterCode), ch.Benchmark)
		}
	}
	return report
}

var (
	percentilePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d{1,2}(?:st|nd|rd|th)\s+percentile`),
		regexp.MustCompile(`(?i)top\s+\d{1,2}%`),
		regexp.MustCompile(`(?i)\d{1,2}%\s+of`),
	}
	placeholderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\{[a-zA-Z_]+\}`),
		regexp.MustCompile(`\[\s*[A-Z_]+\s*\]`),
		regexp.MustCompile(`\$\{[^}]+\}`),
		regexp.MustCompile(`%[a-z]+%`),
	}
	informalPattern = regexp.MustCompile(`(?i)\b(kinda|sorta|gonna|wanna|lol|omg|wtf|tbh|imo)\b`)
	numberPattern   = regexp.MustCompile(`\b\d+\.?\d*\b`)
)

var badValues = []string{"undefined", "null", "nan", "[object", "object]"}

var peerKeywords = []string{"peer", "industry", "companies", "businesses", "average", "compared", "benchmark"}

// NarrativeIssues runs the prose-quality heuristics over one benchmark
// narrative. An empty result means the text meets the bar: 50-500 chars,
// mentions a percentile and at least two numbers, carries peer context,
// reads as a proper sentence, and shows no template-rendering artifacts.
func NarrativeIssues(narrative string) []string {
	var issues []string

	if narrative == "" {
		return []string{"narrative is empty"}
	}
	if len(narrative) < 50 {
		return []string{fmt.Sprintf("narrative too short (%d chars, min 50)", len(narrative))}
	}

	hasPercentile := false
	for _, p := range percentilePatterns {
		if p.MatchString(narrative) {
			hasPercentile = true
			break
		}
	}
	if !hasPercentile {
		issues = append(issues, "missing percentile value in narrative")
	}

	lower := strings.ToLower(narrative)
	for _, bad := range badValues {
		if strings.Contains(lower, bad) {
			issues = append(issues, fmt.Sprintf("contains %q - template rendering failed", bad))
		}
	}

	for _, p := range placeholderPatterns {
		if p.MatchString(narrative) {
			issues = append(issues, "contains unresolved template placeholder")
			break
		}
	}

	hasPeerContext := false
	for _, kw := range peerKeywords {
		if strings.Contains(lower, kw) {
			hasPeerContext = true
			break
		}
	}
	if !hasPeerContext {
		issues = append(issues, "missing peer group/comparison context")
	}

	first := narrative[0]
	if first < 'A' || first > 'Z' {
		issues = append(issues, "doesn't start with capital letter")
	}
	if !strings.HasSuffix(strings.TrimRight(narrative, " \t\n"), ".") {
		issues = append(issues, "doesn't end with period")
	}

	if informalPattern.MatchString(narrative) {
		issues = append(issues, "contains informal language")
	}

	if len(numberPattern.FindAllString(narrative, -1)) < 2 {
		issues = append(issues, "missing numeric values (should have score and average)")
	}

	if len(narrative) > 500 {
		issues = append(issues, fmt.Sprintf("narrative too long (%d chars, max 500)", len(narrative)))
	}

	words := strings.Fields(lower)
	for i := 0; i+2 < len(words); i++ {
		if words[i] == words[i+1] && words[i] == words[i+2] {
			issues = append(issues, fmt.Sprintf("repeated word pattern detected: %q", words[i]))
			break
		}
	}

	return issues
}

// criticalMarkers flag narrative issues severe enough to fail the pass.
var criticalMarkers = []string{"undefined", "null", "template", "empty"}

// CheckNarratives runs the prose heuristics over every finding narrative
// in the document. Only rendering failures fail the report; style issues
// stay advisory.
func CheckNarratives(doc *idm.IDM) Report {
	report := Report{Passed: true}
	for _, f := range doc.Findings {
		issues := NarrativeIssues(f.Narrative)
		if len(issues) == 0 {
			report.Checks = append(report.Checks, fmt.Sprintf("finding %s: narrative ok", f.ID))
			continue
		}
		for _, issue := range issues {
			report.Issues = append(report.Issues, fmt.Sprintf("finding %s: %s", f.ID, issue))
			for _, marker := range criticalMarkers {
				if strings.Contains(issue, marker) {
					report.Passed = false
				}
			}
		}
	}
	return report
}
