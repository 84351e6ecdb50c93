package analyzer

import (
	"strings"
	"testing"
	"time"
)

func TestAnalyze_CountsKeywords(t *testing.T) {
	text := "This Agreement is made between the parties. The tenant shall pay rent to the landlord as set out in the lease."

	a := Analyze(text)

	// agreement, parties(+party inside it), tenant, shall, landlord, lease ...
	if a.KeywordCount < 6 {
		t.Errorf("KeywordCount = %d, want at least 6", a.KeywordCount)
	}
	if !a.IsFinding() {
		t.Error("contract-heavy text should cross the finding threshold")
	}
	if a.WordCount != len(strings.Fields(text)) {
		t.Errorf("WordCount = %d, want %d", a.WordCount, len(strings.Fields(text)))
	}
}

func TestAnalyze_CaseInsensitive(t *testing.T) {
	lower := Analyze("agreement contract lease")
	upper := Analyze("AGREEMENT CONTRACT LEASE")
	if lower.KeywordCount != upper.KeywordCount {
		t.Errorf("case should not matter: %d vs %d", lower.KeywordCount, upper.KeywordCount)
	}
}

func TestAnalyze_BelowThreshold(t *testing.T) {
	a := Analyze("The weather today is sunny with a light agreement of clouds.")
	if a.IsFinding() {
		t.Errorf("one keyword hit (count=%d) should not be a finding", a.KeywordCount)
	}
}

func TestAnalyze_EmptyText(t *testing.T) {
	a := Analyze("")
	if a.KeywordCount != 0 || a.WordCount != 0 {
		t.Errorf("empty text: KeywordCount=%d WordCount=%d, want 0/0", a.KeywordCount, a.WordCount)
	}
	if a.KeywordDensity != 0 {
		t.Errorf("KeywordDensity = %f, want 0 (no division by zero)", a.KeywordDensity)
	}
}

func TestAnalyze_ProbabilityClamped(t *testing.T) {
	// Pure keyword soup gives density ≥ 1, probability must clamp at 0.95.
	a := Analyze("contract contract contract contract")
	if a.ContractProbability > 0.95 {
		t.Errorf("ContractProbability = %f, want ≤ 0.95", a.ContractProbability)
	}
}

func TestMockResult_PDF(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := MockResult("pdf", 4200, now)

	if !r.Success {
		t.Error("Success = false, want true")
	}
	if r.Analysis.DocumentType != "Residential Lease Agreement" {
		t.Errorf("DocumentType = %q", r.Analysis.DocumentType)
	}
	if r.Analysis.PageCount != 3 {
		t.Errorf("PageCount = %d, want 3 for pdf", r.Analysis.PageCount)
	}
	if r.Analysis.WordCount != 4200 {
		t.Errorf("WordCount = %d, want 4200", r.Analysis.WordCount)
	}
	if r.Analysis.AnalyzedAt != "2025-06-01T12:00:00Z" {
		t.Errorf("AnalyzedAt = %q", r.Analysis.AnalyzedAt)
	}
}

func TestMockResult_UnknownTypeFallsBackToText(t *testing.T) {
	r := MockResult("docx", 0, time.Now())
	if r.Analysis.DocumentType != "Service Agreement" {
		t.Errorf("DocumentType = %q, want the text analysis", r.Analysis.DocumentType)
	}
	if r.Analysis.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1 for non-pdf", r.Analysis.PageCount)
	}
	if r.Analysis.WordCount != 1200 {
		t.Errorf("WordCount = %d, want default 1200", r.Analysis.WordCount)
	}
}
