package model

import "strings"

// Jurisdiction is the court system whose rules govern a case.
type Jurisdiction string

const (
	JurisdictionCA      Jurisdiction = "CA"
	JurisdictionNY      Jurisdiction = "NY"
	JurisdictionTX      Jurisdiction = "TX"
	JurisdictionFederal Jurisdiction = "FEDERAL"

	// DefaultJurisdiction applies when a submission omits the field.
	DefaultJurisdiction = JurisdictionCA
)

// CaseType is the civil matter category a client is defending against.
type CaseType string

const (
	CaseTypeEviction    CaseType = "EVICTION"
	CaseTypeDebt        CaseType = "DEBT"
	CaseTypeWage        CaseType = "WAGE"
	CaseTypeImmigration CaseType = "IMMIGRATION"
	CaseTypeBenefits    CaseType = "BENEFITS"

	// DefaultCaseType applies when a submission omits the field.
	DefaultCaseType = CaseTypeEviction
)

// ParseJurisdiction normalizes a jurisdiction code. Unknown codes are kept
// (upper-cased) so new jurisdictions flow through without a code change.
func ParseJurisdiction(s string) Jurisdiction {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultJurisdiction
	}
	return Jurisdiction(s)
}

// ParseCaseType normalizes a case type code, defaulting to EVICTION.
func ParseCaseType(s string) CaseType {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultCaseType
	}
	return CaseType(s)
}

// Known reports whether j is one of the predefined jurisdictions.
func (j Jurisdiction) Known() bool {
	switch j {
	case JurisdictionCA, JurisdictionNY, JurisdictionTX, JurisdictionFederal:
		return true
	}
	return false
}

// Known reports whether c is one of the predefined case types.
func (c CaseType) Known() bool {
	switch c {
	case CaseTypeEviction, CaseTypeDebt, CaseTypeWage, CaseTypeImmigration, CaseTypeBenefits:
		return true
	}
	return false
}

// CaseRequest is one user submission: the extracted, already truncated text
// of every uploaded document plus the case classification.
type CaseRequest struct {
	DocumentText string
	Jurisdiction Jurisdiction
	CaseType     CaseType
}

// NewCaseRequest builds a CaseRequest, applying defaults for empty codes.
func NewCaseRequest(text, jurisdiction, caseType string) CaseRequest {
	return CaseRequest{
		DocumentText: text,
		Jurisdiction: ParseJurisdiction(jurisdiction),
		CaseType:     ParseCaseType(caseType),
	}
}

// Document is a single uploaded file before text extraction.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// IsPDF reports whether the document should go through PDF extraction.
func (d Document) IsPDF() bool {
	ct := strings.ToLower(d.ContentType)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct == "application/pdf"
}

// AnalysisDepth labels how thorough a single combined analysis should be.
type AnalysisDepth string

const (
	DepthQuick         AnalysisDepth = "Quick Review"
	DepthStandard      AnalysisDepth = "Standard Analysis"
	DepthComprehensive AnalysisDepth = "Comprehensive Defense"

	// DefaultPageLimit is used when a submission omits pageLimit.
	DefaultPageLimit = "25"
)

// DepthForPageLimit maps the page limit selected in the UI to a depth label.
func DepthForPageLimit(pageLimit string) AnalysisDepth {
	switch strings.TrimSpace(pageLimit) {
	case "10":
		return DepthQuick
	case "25":
		return DepthStandard
	default:
		return DepthComprehensive
	}
}
