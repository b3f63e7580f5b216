package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"idm-compiler/internal/compiler"
	"idm-compiler/internal/config"
	"idm-compiler/internal/history"
	"idm-compiler/internal/idm"
	"idm-compiler/internal/output"
	"idm-compiler/internal/phases"
	"idm-compiler/internal/qa"
	"idm-compiler/internal/taxonomy"
	"idm-compiler/internal/validate"
)

func main() {
	var (
		phase1       = flag.String("phase1", "", "Path to phase 1 output JSON")
		phase2       = flag.String("phase2", "", "Path to phase 2 output JSON")
		phase3       = flag.String("phase3", "", "Path to phase 3 output JSON")
		phase15      = flag.String("phase15", "", "Path to phase 1.5 categorized analysis JSON (authoritative when present)")
		webhook      = flag.String("webhook", "", "Path to raw questionnaire webhook JSON")
		outDir       = flag.String("out", "", "Output directory (overrides config)")
		configPath   = flag.String("config", "", "Path to settings YAML")
		company      = flag.String("company", "", "Company profile id override")
		ciMode       = flag.Bool("ci", false, "CI mode: suppress progress output, print a one-line JSON summary")
		minScore     = flag.Float64("min-score", -1, "Fail (exit 2) when overall health score is below this (-1 = from config)")
		noHistory    = flag.Bool("no-history", false, "Skip recording the run in the history database")
		validateOnly = flag.Bool("validate-only", false, "Compile and validate without writing outputs")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *outDir != "" {
		settings.OutputDir = *outDir
	}
	gate := settings.MinHealthScore
	if *minScore >= 0 {
		gate = *minScore
	}
	for code, benchmark := range settings.Benchmarks {
		taxonomy.Benchmarks[taxonomy.NormalizeDimensionCode(code)] = benchmark
	}

	set, report := phases.LoadSet(phases.Paths{
		Phase1:  *phase1,
		Phase2:  *phase2,
		Phase3:  *phase3,
		Phase15: *phase15,
		Webhook: *webhook,
	})
	for _, w := range report.Warnings {
		log.Printf("load: %s", w)
	}
	if !set.HasAnySource() {
		log.Fatalf("no usable input: every phase document was missing or empty")
	}

	comp := compiler.New(&set, compiler.Options{CompanyProfileID: *company})
	issues := comp.IntegrationReport()
	if !*ciMode {
		fmt.Println("Integration validation:")
		for _, issue := range issues {
			fmt.Println("  -", issue)
		}
	}

	doc := comp.Compile()

	violations := validate.Check(doc)
	for _, v := range violations {
		log.Printf("validate: %s", v)
	}

	if *validateOnly {
		if len(violations) > 0 {
			os.Exit(1)
		}
		if !*ciMode {
			fmt.Println("Validation passed.")
		}
		return
	}

	if !*ciMode {
		for _, issue := range qa.CheckBenchmarks(doc).Issues {
			fmt.Println("QA:", issue)
		}
		for _, issue := range qa.CheckNarratives(doc).Issues {
			fmt.Println("QA:", issue)
		}
	}

	if err := os.MkdirAll(settings.OutputDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	ts := output.Timestamp(time.Now().UTC())
	companyID := doc.Meta.CompanyProfileID
	idmPath := output.IDMPath(settings.OutputDir, companyID, ts)
	phase4Path := output.Phase4Path(settings.OutputDir, companyID, ts)
	masterPath := output.MasterPath(settings.OutputDir, companyID, ts)

	phase4 := comp.Phase4Summary()
	if err := output.WriteDocument(phase4Path, phase4); err != nil {
		log.Fatalf("write phase 4 summary: %v", err)
	}
	enrich := output.Enrichment{
		CrossCategoryInsights: comp.CrossCategoryInsights(),
		OverallHealth:         comp.OverallHealth(),
	}
	if err := output.WriteIDM(idmPath, doc, enrich); err != nil {
		log.Fatalf("write idm: %v", err)
	}
	master := comp.MasterAnalysis(doc, phase4, idmPath, issues)
	if err := output.WriteDocument(masterPath, master); err != nil {
		log.Fatalf("write master analysis: %v", err)
	}

	trend := history.Trend{Label: "HISTORY_SKIPPED"}
	if !*noHistory {
		trend = recordHistory(settings.HistoryDB, doc, comp.Source(), idmPath)
	}

	if !*ciMode {
		fmt.Println("Compilation complete.")
		fmt.Println("  IDM:             ", idmPath)
		fmt.Println("  Phase 4 summary: ", phase4Path)
		fmt.Println("  Master analysis: ", masterPath)
		fmt.Printf("Overall health: %v (%s), trajectory %s, source %s\n",
			doc.ScoresSummary.OverallHealthScore, doc.ScoresSummary.Descriptor,
			doc.ScoresSummary.Trajectory, comp.Source())
		printTrend(trend)
	} else {
		printCISummary(doc, comp.Source(), gate, len(violations), trend, idmPath)
	}
	exitWithPolicy(doc.ScoresSummary.OverallHealthScore, gate, len(violations), *ciMode)
}

// recordHistory never fails the run: a broken history database degrades to a
// HISTORY_SKIPPED trend with a logged warning.
func recordHistory(dbPath string, doc *idm.IDM, source, idmPath string) history.Trend {
	store, err := history.Open(dbPath)
	if err != nil {
		log.Printf("history: %v", err)
		return history.Trend{Label: "HISTORY_SKIPPED"}
	}
	defer store.Close()

	trend, err := store.Record(history.Run{
		AssessmentRunID:  doc.Meta.AssessmentRunID,
		CompanyProfileID: doc.Meta.CompanyProfileID,
		OverallScore:     doc.ScoresSummary.OverallHealthScore,
		Descriptor:       doc.ScoresSummary.Descriptor,
		Trajectory:       string(doc.ScoresSummary.Trajectory),
		Source:           source,
		IDMPath:          idmPath,
		CreatedAt:        doc.Meta.CreatedAt,
	})
	if err != nil {
		log.Printf("history: %v", err)
		return history.Trend{Label: "HISTORY_SKIPPED"}
	}
	return trend
}

func printTrend(trend history.Trend) {
	switch trend.Label {
	case "FIRST_RUN":
		fmt.Println("Trend: FIRST_RUN (no previous run for this company)")
	case "HISTORY_SKIPPED":
		fmt.Println("Trend: HISTORY_SKIPPED")
	default:
		fmt.Printf("Trend: %s (%+.1f vs previous %.1f)\n", trend.Label, trend.Delta, trend.Previous)
	}
}

func printCISummary(doc *idm.IDM, source string, gate float64, violations int, trend history.Trend, idmPath string) {
	status := "PASSED"
	if violations > 0 {
		status = "SCHEMA_FAILED"
	} else if gate > 0 && doc.ScoresSummary.OverallHealthScore < gate {
		status = "SCORE_FAILED"
	}
	summary := map[string]any{
		"assessment_run_id":    doc.Meta.AssessmentRunID,
		"company_profile_id":   doc.Meta.CompanyProfileID,
		"overall_health_score": doc.ScoresSummary.OverallHealthScore,
		"descriptor":           doc.ScoresSummary.Descriptor,
		"trajectory":           doc.ScoresSummary.Trajectory,
		"score_source":         source,
		"dimensions":           len(doc.Dimensions),
		"findings":             len(doc.Findings),
		"recommendations":      len(doc.Recommendations),
		"quick_wins":           len(doc.QuickWins),
		"risks":                len(doc.Risks),
		"schema_violations":    violations,
		"trend":                trend.Label,
		"trend_delta":          trend.Delta,
		"idm_path":             idmPath,
		"status":               status,
	}
	data, err := json.Marshal(summary)
	if err != nil {
		log.Fatalf("ci summary: %v", err)
	}
	fmt.Println(string(data))
}

func exitWithPolicy(score, gate float64, violations int, quiet bool) {
	if violations > 0 {
		if !quiet {
			fmt.Printf("Status: FAILED (%d schema violations)\n", violations)
		}
		os.Exit(1)
	}
	if gate > 0 && score < gate {
		if !quiet {
			fmt.Printf("Status: FAILED (overall health %.1f below minimum %.1f)\n", score, gate)
		}
		os.Exit(2)
	}
	if !quiet {
		fmt.Println("Status: PASSED")
	}
}
