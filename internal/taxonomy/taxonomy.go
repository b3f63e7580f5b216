// Package taxonomy holds the fixed assessment framework: 4 chapters,
// 12 dimensions, the sub-indicator catalog, and the questionnaire mapping.
// These are compiled-in reference tables; changing the framework means
// changing a table here, not logic elsewhere.
package taxonomy

import "idm-compiler/internal/idm"

// ChapterNames maps each chapter code to its display name.
var ChapterNames = map[idm.ChapterCode]string{
	idm.GE: "Growth Engine",
	idm.PH: "Performance & Health",
	idm.PL: "People & Leadership",
	idm.RS: "Resilience & Safeguards",
}

// DimensionInfo is the static metadata for one dimension.
type DimensionInfo struct {
	Name        string
	Description string
	Chapter     idm.ChapterCode
}

// Dimensions maps each dimension code to its metadata. Every dimension
// belongs to exactly one chapter; the 4 chapters partition all 12 codes.
var Dimensions = map[idm.DimensionCode]DimensionInfo{
	idm.STR: {"Strategy", "Strategic planning, market positioning, and growth strategy", idm.GE},
	idm.SAL: {"Sales", "Sales effectiveness, pipeline management, and revenue generation", idm.GE},
	idm.MKT: {"Marketing", "Brand awareness, customer acquisition, and marketing ROI", idm.GE},
	idm.CXP: {"Customer Experience", "Customer satisfaction, retention, and experience quality", idm.GE},
	idm.OPS: {"Operations", "Operational efficiency, process optimization, and workflow management", idm.PH},
	idm.FIN: {"Financials", "Financial health, profitability, and fiscal management", idm.PH},
	idm.HRS: {"Human Resources", "Talent management, culture, and employee engagement", idm.PL},
	idm.LDG: {"Leadership & Governance", "Leadership effectiveness, decision-making, and organizational governance", idm.PL},
	idm.TIN: {"Technology & Innovation", "Technology adoption, innovation culture, and digital transformation", idm.RS},
	idm.IDS: {"IT, Data & Systems", "IT infrastructure, data management, and cybersecurity", idm.RS},
	idm.RMS: {"Risk Management & Sustainability", "Risk identification, mitigation, and business continuity", idm.RS},
	idm.CMP: {"Compliance", "Regulatory compliance, policy adherence, and legal requirements", idm.RS},
}

// ChapterFor returns the owning chapter for a dimension code.
func ChapterFor(code idm.DimensionCode) idm.ChapterCode {
	return Dimensions[code].Chapter
}

// DimensionsForChapter returns the dimension codes owned by a chapter,
// in canonical order.
func DimensionsForChapter(chapter idm.ChapterCode) []idm.DimensionCode {
	var out []idm.DimensionCode
	for _, code := range idm.DimensionCodes {
		if Dimensions[code].Chapter == chapter {
			out = append(out, code)
		}
	}
	return out
}

// NormalizeDimensionCode folds legacy dimension codes into their canonical
// form. ITD is a historical synonym for IDS and appears in older phase 1.5
// outputs; normalization happens here, once, at the ingestion boundary.
func NormalizeDimensionCode(code string) idm.DimensionCode {
	if code == "ITD" {
		return idm.IDS
	}
	return idm.DimensionCode(code)
}

// SubIndicatorDef is one catalog entry. IDs are dimension-prefixed and
// globally unique (STR_001 .. CMP_005).
type SubIndicatorDef struct {
	ID   string
	Name string
}

// SubIndicators is the fixed per-dimension sub-indicator catalog.
var SubIndicators = map[idm.DimensionCode][]SubIndicatorDef{
	idm.STR: {
		{"STR_001", "Competitive Differentiation"},
		{"STR_002", "Market Position"},
		{"STR_003", "Growth Planning"},
		{"STR_004", "Strategic Review Process"},
		{"STR_005", "Exit/Growth Strategy"},
	},
	idm.SAL: {
		{"SAL_001", "Sales Target Alignment"},
		{"SAL_002", "Pipeline Management"},
		{"SAL_003", "Sales Cycle Efficiency"},
		{"SAL_004", "Customer Retention"},
		{"SAL_005", "Upselling Effectiveness"},
	},
	idm.MKT: {
		{"MKT_001", "Brand Awareness"},
		{"MKT_002", "Customer Targeting"},
		{"MKT_003", "Marketing Economics (CAC/LTV)"},
		{"MKT_004", "Marketing ROI"},
		{"MKT_005", "Channel Strategy"},
	},
	idm.CXP: {
		{"CXP_001", "Customer Feedback Systems"},
		{"CXP_002", "Customer Satisfaction"},
		{"CXP_003", "Net Promoter Score"},
		{"CXP_004", "Issue Resolution"},
		{"CXP_005", "Response Time"},
	},
	idm.OPS: {
		{"OPS_001", "Operational Efficiency"},
		{"OPS_002", "Process Documentation"},
		{"OPS_003", "Operational Reliability"},
		{"OPS_004", "Lean Practices"},
		{"OPS_005", "Resource Utilization"},
	},
	idm.FIN: {
		{"FIN_001", "Financial Controls"},
		{"FIN_002", "Cash Management"},
		{"FIN_003", "Profitability"},
		{"FIN_004", "Financial Planning"},
		{"FIN_005", "Growth Readiness"},
	},
	idm.HRS: {
		{"HRS_001", "HR Infrastructure"},
		{"HRS_002", "Company Culture"},
		{"HRS_003", "Talent Acquisition"},
		{"HRS_004", "Employee Development"},
		{"HRS_005", "Performance Management"},
	},
	idm.LDG: {
		{"LDG_001", "Leadership Effectiveness"},
		{"LDG_002", "Decision-Making Structure"},
		{"LDG_003", "Board Oversight"},
		{"LDG_004", "Leadership Culture"},
		{"LDG_005", "Development & Mentorship"},
	},
	idm.TIN: {
		{"TIN_001", "Technology Investment"},
		{"TIN_002", "Innovation Culture"},
		{"TIN_003", "Technology Adoption"},
		{"TIN_004", "Automation Utilization"},
		{"TIN_005", "Innovation Impact"},
	},
	idm.IDS: {
		{"IDS_001", "IT Infrastructure"},
		{"IDS_002", "Network Effectiveness"},
		{"IDS_003", "Cybersecurity"},
		{"IDS_004", "Data Management"},
		{"IDS_005", "IT Scalability"},
	},
	idm.RMS: {
		{"RMS_001", "Risk Outlook"},
		{"RMS_002", "Risk Identification"},
		{"RMS_003", "Risk Mitigation"},
		{"RMS_004", "Business Continuity"},
		{"RMS_005", "Strategic Adaptability"},
	},
	idm.CMP: {
		{"CMP_001", "Compliance Awareness"},
		{"CMP_002", "Policy Adherence"},
		{"CMP_003", "Compliance Monitoring"},
		{"CMP_004", "Documentation"},
		{"CMP_005", "Incident Reporting"},
	},
}

// Benchmarks is the per-dimension peer benchmark on the 1-5 questionnaire
// scale, used by the fallback percentile calculation.
var Benchmarks = map[idm.DimensionCode]float64{
	idm.STR: 3.5, idm.SAL: 3.6, idm.MKT: 3.4, idm.CXP: 3.7,
	idm.OPS: 3.5, idm.FIN: 3.6, idm.HRS: 3.3, idm.LDG: 3.4,
	idm.TIN: 3.5, idm.IDS: 3.5, idm.RMS: 3.4, idm.CMP: 3.6,
}

// DefaultBenchmark is used when a dimension has no benchmark entry.
const DefaultBenchmark = 3.5

// BenchmarkFor returns the peer benchmark for a dimension code, accepting
// legacy codes.
func BenchmarkFor(code string) float64 {
	if b, ok := Benchmarks[NormalizeDimensionCode(code)]; ok {
		return b
	}
	return DefaultBenchmark
}

// CategoryKey is one webhook payload category keyed by its snake_case name.
type CategoryKey struct {
	Key       string
	Dimension idm.DimensionCode
}

// CategoryKeys maps webhook payload keys to dimension codes, in canonical
// dimension order. Raw questionnaire payloads are keyed by these names.
var CategoryKeys = []CategoryKey{
	{"strategy", idm.STR},
	{"sales", idm.SAL},
	{"marketing", idm.MKT},
	{"customer_experience", idm.CXP},
	{"operations", idm.OPS},
	{"financials", idm.FIN},
	{"human_resources", idm.HRS},
	{"leadership", idm.LDG},
	{"technology", idm.TIN},
	{"it_infrastructure", idm.IDS},
	{"risk_management", idm.RMS},
	{"compliance", idm.CMP},
}
