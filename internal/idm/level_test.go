package idm

import (
	"encoding/json"
	"testing"
)

func TestLevelJSONRoundTrip(t *testing.T) {
	// A label round-trips as a JSON string.
	data, err := json.Marshal(LabelLevel("High"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"High"` {
		t.Errorf("label marshals to %s, want \"High\"", data)
	}
	var l Level
	if err := json.Unmarshal(data, &l); err != nil {
		t.Fatal(err)
	}
	if l.IsNum || l.Label != "High" {
		t.Errorf("round-trip = %+v, want label High", l)
	}

	// A number round-trips as a JSON number.
	data, err = json.Marshal(NumericLevel(3.5))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "3.5" {
		t.Errorf("numeric marshals to %s, want 3.5", data)
	}
	if err := json.Unmarshal(data, &l); err != nil {
		t.Fatal(err)
	}
	if !l.IsNum || l.Numeric != 3.5 {
		t.Errorf("round-trip = %+v, want numeric 3.5", l)
	}

	if err := json.Unmarshal([]byte(`{"label": "High"}`), &l); err == nil {
		t.Error("object accepted as level, want error")
	}
}

func TestLevelRank(t *testing.T) {
	order := []Level{LabelLevel("Low"), LabelLevel("Medium"), LabelLevel("High"), LabelLevel("Critical")}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Errorf("%s should rank above %s", order[i].Label, order[i-1].Label)
		}
	}
	if NumericLevel(2.5).Rank() != 2.5 {
		t.Errorf("numeric rank = %v, want 2.5", NumericLevel(2.5).Rank())
	}
	if LabelLevel("unknown").Rank() != 0 {
		t.Errorf("unknown label rank = %v, want 0", LabelLevel("unknown").Rank())
	}
}

func TestLevelIsZero(t *testing.T) {
	if !(Level{}).IsZero() {
		t.Error("zero level should report IsZero")
	}
	if LabelLevel("Low").IsZero() {
		t.Error("labeled level should not report IsZero")
	}
	if NumericLevel(0).IsZero() {
		t.Error("numeric zero level carries a value")
	}
}

func TestFindingByID(t *testing.T) {
	doc := &IDM{
		Findings:        []Finding{{ID: "finding-001"}, {ID: "finding-002"}},
		Recommendations: []Recommendation{{ID: "rec-001"}},
	}
	if f := doc.FindingByID("finding-002"); f == nil || f.ID != "finding-002" {
		t.Errorf("FindingByID(finding-002) = %v", f)
	}
	if f := doc.FindingByID("finding-404"); f != nil {
		t.Errorf("FindingByID(finding-404) = %v, want nil", f)
	}
	if r := doc.RecommendationByID("rec-001"); r == nil {
		t.Error("RecommendationByID(rec-001) = nil")
	}
	if r := doc.RecommendationByID("rec-404"); r != nil {
		t.Errorf("RecommendationByID(rec-404) = %v, want nil", r)
	}
}
