package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJurisdiction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Jurisdiction
	}{
		{"", JurisdictionCA},
		{"  ", JurisdictionCA},
		{"ny", JurisdictionNY},
		{"TX", JurisdictionTX},
		{"federal", JurisdictionFederal},
		{"wa", Jurisdiction("WA")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseJurisdiction(tt.in))
		})
	}
}

func TestParseCaseType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CaseTypeEviction, ParseCaseType(""))
	assert.Equal(t, CaseTypeDebt, ParseCaseType("debt"))
	assert.Equal(t, CaseTypeBenefits, ParseCaseType(" BENEFITS "))
	assert.Equal(t, CaseType("CUSTODY"), ParseCaseType("custody"))
}

func TestKnownCodes(t *testing.T) {
	t.Parallel()

	assert.True(t, JurisdictionFederal.Known())
	assert.False(t, Jurisdiction("WA").Known())
	assert.True(t, CaseTypeImmigration.Known())
	assert.False(t, CaseType("CUSTODY").Known())
}

func TestNewCaseRequest(t *testing.T) {
	t.Parallel()

	req := NewCaseRequest("text", "", "wage")
	assert.Equal(t, "text", req.DocumentText)
	assert.Equal(t, JurisdictionCA, req.Jurisdiction)
	assert.Equal(t, CaseTypeWage, req.CaseType)
}

func TestDocumentIsPDF(t *testing.T) {
	t.Parallel()

	assert.True(t, Document{ContentType: "application/pdf"}.IsPDF())
	assert.True(t, Document{ContentType: "Application/PDF; charset=binary"}.IsPDF())
	assert.False(t, Document{ContentType: "text/plain"}.IsPDF())
	assert.False(t, Document{}.IsPDF())
}

func TestDepthForPageLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DepthQuick, DepthForPageLimit("10"))
	assert.Equal(t, DepthStandard, DepthForPageLimit("25"))
	assert.Equal(t, DepthStandard, DepthForPageLimit(DefaultPageLimit))
	assert.Equal(t, DepthComprehensive, DepthForPageLimit("50"))
	assert.Equal(t, DepthComprehensive, DepthForPageLimit(""))
}
