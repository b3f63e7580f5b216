package taxonomy

import "idm-compiler/internal/idm"

// QuestionMapping ties one questionnaire question to its dimension,
// sub-indicator, and scoring weight.
type QuestionMapping struct {
	QuestionID     string
	DimensionCode  idm.DimensionCode
	SubIndicatorID string
	Weight         float64
}

// QuestionMappings is the fixed 87-question catalog.
var QuestionMappings = []QuestionMapping{
	// Strategy (STR) - 7 questions
	{"strategy_q1", idm.STR, "STR_001", 1.0},
	{"strategy_q2", idm.STR, "STR_002", 1.0},
	{"strategy_q3", idm.STR, "STR_003", 1.0},
	{"strategy_q4", idm.STR, "STR_003", 1.0},
	{"strategy_q5", idm.STR, "STR_003", 1.5},
	{"strategy_q6", idm.STR, "STR_004", 1.0},
	{"strategy_q7", idm.STR, "STR_005", 1.5},

	// Sales (SAL) - 8 questions
	{"sales_q1", idm.SAL, "SAL_001", 0.5},
	{"sales_q2", idm.SAL, "SAL_001", 1.0},
	{"sales_q3", idm.SAL, "SAL_002", 1.5},
	{"sales_q4", idm.SAL, "SAL_003", 1.0},
	{"sales_q5", idm.SAL, "SAL_003", 1.0},
	{"sales_q6", idm.SAL, "SAL_003", 1.0},
	{"sales_q7", idm.SAL, "SAL_004", 1.0},
	{"sales_q8", idm.SAL, "SAL_005", 1.0},

	// Marketing (MKT) - 9 questions
	{"marketing_q1", idm.MKT, "MKT_001", 1.0},
	{"marketing_q2", idm.MKT, "MKT_005", 0.5},
	{"marketing_q3", idm.MKT, "MKT_005", 0.5},
	{"marketing_q4", idm.MKT, "MKT_005", 0.5},
	{"marketing_q5", idm.MKT, "MKT_002", 1.5},
	{"marketing_q6", idm.MKT, "MKT_003", 1.0},
	{"marketing_q7", idm.MKT, "MKT_003", 1.0},
	{"marketing_q8", idm.MKT, "MKT_003", 1.0},
	{"marketing_q9", idm.MKT, "MKT_004", 1.0},

	// Customer Experience (CXP) - 7 questions
	{"customer_experience_q1", idm.CXP, "CXP_001", 1.0},
	{"customer_experience_q2", idm.CXP, "CXP_002", 1.5},
	{"customer_experience_q3", idm.CXP, "CXP_003", 1.5},
	{"customer_experience_q4", idm.CXP, "CXP_002", 1.0},
	{"customer_experience_q5", idm.CXP, "CXP_002", 1.0},
	{"customer_experience_q6", idm.CXP, "CXP_004", 1.0},
	{"customer_experience_q7", idm.CXP, "CXP_005", 1.0},

	// Operations (OPS) - 6 questions
	{"operations_q1", idm.OPS, "OPS_001", 1.5},
	{"operations_q2", idm.OPS, "OPS_002", 1.0},
	{"operations_q3", idm.OPS, "OPS_005", 1.0},
	{"operations_q4", idm.OPS, "OPS_003", 1.5},
	{"operations_q5", idm.OPS, "OPS_004", 1.0},
	{"operations_q6", idm.OPS, "OPS_005", 1.0},

	// Financials (FIN) - 12 questions
	{"financials_q1", idm.FIN, "FIN_001", 1.0},
	{"financials_q2", idm.FIN, "FIN_002", 1.0},
	{"financials_q3", idm.FIN, "FIN_001", 1.0},
	{"financials_q4", idm.FIN, "FIN_002", 1.0},
	{"financials_q5", idm.FIN, "FIN_002", 1.0},
	{"financials_q6", idm.FIN, "FIN_002", 1.5},
	{"financials_q7", idm.FIN, "FIN_003", 1.5},
	{"financials_q8", idm.FIN, "FIN_003", 1.0},
	{"financials_q9", idm.FIN, "FIN_002", 1.0},
	{"financials_q10", idm.FIN, "FIN_004", 1.0},
	{"financials_q11", idm.FIN, "FIN_004", 1.0},
	{"financials_q12", idm.FIN, "FIN_005", 1.5},

	// Human Resources (HRS) - 7 questions
	{"human_resources_q1", idm.HRS, "HRS_001", 1.5},
	{"human_resources_q2", idm.HRS, "HRS_002", 1.5},
	{"human_resources_q3", idm.HRS, "HRS_003", 1.0},
	{"human_resources_q4", idm.HRS, "HRS_004", 1.0},
	{"human_resources_q5", idm.HRS, "HRS_002", 1.5},
	{"human_resources_q6", idm.HRS, "HRS_002", 1.5},
	{"human_resources_q7", idm.HRS, "HRS_005", 1.0},

	// Leadership & Governance (LDG) - 7 questions
	{"leadership_q1", idm.LDG, "LDG_001", 1.5},
	{"leadership_q2", idm.LDG, "LDG_002", 1.0},
	{"leadership_q3", idm.LDG, "LDG_003", 1.0},
	{"leadership_q4", idm.LDG, "LDG_003", 0.5},
	{"leadership_q5", idm.LDG, "LDG_002", 1.5},
	{"leadership_q6", idm.LDG, "LDG_004", 1.0},
	{"leadership_q7", idm.LDG, "LDG_005", 1.0},

	// Technology & Innovation (TIN) - 7 questions
	{"technology_q1", idm.TIN, "TIN_001", 1.0},
	{"technology_q2", idm.TIN, "TIN_005", 1.0},
	{"technology_q3", idm.TIN, "TIN_002", 1.0},
	{"technology_q4", idm.TIN, "TIN_003", 1.0},
	{"technology_q5", idm.TIN, "TIN_003", 1.0},
	{"technology_q6", idm.TIN, "TIN_004", 1.5},
	{"technology_q7", idm.TIN, "TIN_005", 1.0},

	// IT, Data & Systems (IDS) - 7 questions
	{"it_infrastructure_q1", idm.IDS, "IDS_001", 1.5},
	{"it_infrastructure_q2", idm.IDS, "IDS_002", 1.0},
	{"it_infrastructure_q3", idm.IDS, "IDS_003", 2.0},
	{"it_infrastructure_q4", idm.IDS, "IDS_004", 1.5},
	{"it_infrastructure_q5", idm.IDS, "IDS_004", 1.0},
	{"it_infrastructure_q6", idm.IDS, "IDS_005", 1.5},
	{"it_infrastructure_q7", idm.IDS, "IDS_001", 1.0},

	// Risk Management & Sustainability (RMS) - 8 questions
	{"risk_management_q1", idm.RMS, "RMS_001", 1.5},
	{"risk_management_q2", idm.RMS, "RMS_002", 1.0},
	{"risk_management_q3", idm.RMS, "RMS_003", 1.5},
	{"risk_management_q4", idm.RMS, "RMS_004", 1.5},
	{"risk_management_q5", idm.RMS, "RMS_003", 1.5},
	{"risk_management_q6", idm.RMS, "RMS_004", 1.5},
	{"risk_management_q7", idm.RMS, "RMS_004", 1.0},
	{"risk_management_q8", idm.RMS, "RMS_005", 1.0},

	// Compliance (CMP) - 8 questions
	{"compliance_q1", idm.CMP, "CMP_001", 1.5},
	{"compliance_q2", idm.CMP, "CMP_002", 1.5},
	{"compliance_q3", idm.CMP, "CMP_001", 1.0},
	{"compliance_q4", idm.CMP, "CMP_003", 1.5},
	{"compliance_q5", idm.CMP, "CMP_003", 1.0},
	{"compliance_q6", idm.CMP, "CMP_004", 1.0},
	{"compliance_q7", idm.CMP, "CMP_005", 1.0},
	{"compliance_q8", idm.CMP, "CMP_001", 0.5},
}

// QuestionByID returns the catalog mapping for a question id, or nil when
// the question is not in the fixed catalog.
func QuestionByID(id string) *QuestionMapping {
	for i := range QuestionMappings {
		if QuestionMappings[i].QuestionID == id {
			return &QuestionMappings[i]
		}
	}
	return nil
}
