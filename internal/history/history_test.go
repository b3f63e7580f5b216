package history

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordTrend(t *testing.T) {
	store := openTestStore(t)

	trend, err := store.Record(Run{
		AssessmentRunID:  "run-1",
		CompanyProfileID: "acme",
		OverallScore:     60.5,
		Descriptor:       "Needs Improvement",
		Trajectory:       "Flat",
		Source:           "defaults",
		IDMPath:          "out/idm-1.json",
	})
	if err != nil {
		t.Fatalf("first Record: %v", err)
	}
	if trend.Label != "FIRST_RUN" {
		t.Errorf("first trend = %q, want FIRST_RUN", trend.Label)
	}

	trend, err = store.Record(Run{
		AssessmentRunID:  "run-2",
		CompanyProfileID: "acme",
		OverallScore:     65.7,
		Descriptor:       "Fair Health",
		Trajectory:       "Improving",
		Source:           "webhook",
		IDMPath:          "out/idm-2.json",
	})
	if err != nil {
		t.Fatalf("second Record: %v", err)
	}
	if trend.Label != "IMPROVING" {
		t.Errorf("second trend = %q, want IMPROVING", trend.Label)
	}
	if trend.Previous != 60.5 || trend.Current != 65.7 {
		t.Errorf("trend scores = %v→%v, want 60.5→65.7", trend.Previous, trend.Current)
	}
	if delta := trend.Delta; delta < 5.19 || delta > 5.21 {
		t.Errorf("trend delta = %v, want 5.2", delta)
	}

	trend, err = store.Record(Run{
		AssessmentRunID:  "run-3",
		CompanyProfileID: "acme",
		OverallScore:     65.7,
		Source:           "webhook",
	})
	if err != nil {
		t.Fatalf("third Record: %v", err)
	}
	if trend.Label != "SAME" {
		t.Errorf("third trend = %q, want SAME", trend.Label)
	}
}

func TestTrendIsolatedPerCompany(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Record(Run{AssessmentRunID: "a1", CompanyProfileID: "acme", OverallScore: 70}); err != nil {
		t.Fatal(err)
	}
	trend, err := store.Record(Run{AssessmentRunID: "b1", CompanyProfileID: "other", OverallScore: 40})
	if err != nil {
		t.Fatal(err)
	}
	// A different company's runs never contribute to the trend.
	if trend.Label != "FIRST_RUN" {
		t.Errorf("other company trend = %q, want FIRST_RUN", trend.Label)
	}
}

func TestRuns(t *testing.T) {
	store := openTestStore(t)
	for i, score := range []float64{50, 55, 60} {
		if _, err := store.Record(Run{
			AssessmentRunID:  []string{"r1", "r2", "r3"}[i],
			CompanyProfileID: "acme",
			OverallScore:     score,
		}); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.Runs("acme", 2)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	// Newest first.
	if runs[0].AssessmentRunID != "r3" || runs[1].AssessmentRunID != "r2" {
		t.Errorf("run order = %s, %s, want r3, r2", runs[0].AssessmentRunID, runs[1].AssessmentRunID)
	}

	prev, err := store.Previous("nobody")
	if err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if prev != nil {
		t.Errorf("Previous(nobody) = %+v, want nil", prev)
	}
}
