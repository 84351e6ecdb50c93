// Package analyzer scores text for contract-like language and produces the
// canned analysis the bookmarklet shows in mock mode. DOM scanning and all
// presentation stay in the browser; this package only deals in plain text.
package analyzer

import (
	"strings"
	"time"
)

// MinKeywordCount is the detection threshold: a block of text with fewer
// keyword hits than this is not considered a contract finding.
const MinKeywordCount = 3

// maxContentLength caps how much of the analyzed text is echoed back.
const maxContentLength = 50000

// keywords is the fixed contract-detection vocabulary. Matching is literal,
// case-insensitive substring counting — "shall" inside "marshall" counts,
// which overcounts slightly but has proven good enough for detection.
var keywords = []string{
	"agreement", "contract", "lease", "rental", "terms and conditions",
	"whereas", "party", "parties", "covenant", "hereby", "witnesseth",
	"consideration", "bind", "binding", "obligation", "shall",
	"tenant", "landlord", "lessor", "lessee", "licensor", "licensee",
	"purchase agreement", "sale agreement", "employment agreement",
	"non-disclosure", "confidentiality", "amendment", "addendum",
}

// KeywordHit records one matched keyword and how often it occurred.
type KeywordHit struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// TextAnalysis is the result of scoring a block of text.
type TextAnalysis struct {
	Length              int          `json:"length"`
	WordCount           int          `json:"wordCount"`
	KeywordCount        int          `json:"keywordCount"`
	FoundKeywords       []KeywordHit `json:"foundKeywords"`
	KeywordDensity      float64      `json:"keywordDensity"`
	ContractProbability float64      `json:"contractProbability"`
	Content             string       `json:"content"`
}

// IsFinding reports whether the text crosses the detection threshold.
func (a *TextAnalysis) IsFinding() bool {
	return a.KeywordCount >= MinKeywordCount
}

// Analyze counts contract keywords in text and derives density and a
// clamped probability score.
func Analyze(text string) *TextAnalysis {
	lower := strings.ToLower(text)
	words := strings.Fields(lower)

	total := 0
	hits := []KeywordHit{}
	for _, kw := range keywords {
		n := strings.Count(lower, kw)
		if n > 0 {
			total += n
			hits = append(hits, KeywordHit{Keyword: kw, Count: n})
		}
	}

	density := 0.0
	if len(words) > 0 {
		density = float64(total) / float64(len(words))
	}
	probability := density * 100
	if probability > 0.95 {
		probability = 0.95
	}

	content := text
	if len(content) > maxContentLength {
		content = content[:maxContentLength]
	}

	return &TextAnalysis{
		Length:              len(text),
		WordCount:           len(words),
		KeywordCount:        total,
		FoundKeywords:       hits,
		KeywordDensity:      density,
		ContractProbability: probability,
		Content:             content,
	}
}

// Analysis is the contract-analysis payload returned to the bookmarklet.
type Analysis struct {
	Summary        string   `json:"summary"`
	KeyTerms       []string `json:"keyTerms"`
	RiskLevel      string   `json:"riskLevel"`
	RiskFactors    []string `json:"riskFactors"`
	Confidence     float64  `json:"confidence"`
	DocumentType   string   `json:"documentType"`
	AnalyzedAt     string   `json:"analyzedAt"`
	ProcessingTime string   `json:"processingTime"`
	WordCount      int      `json:"wordCount"`
	PageCount      int      `json:"pageCount"`
}

// Result wraps an Analysis with API metadata.
type Result struct {
	Success  bool     `json:"success"`
	Analysis Analysis `json:"analysis"`
	Metadata struct {
		APIVersion string `json:"apiVersion"`
		Model      string `json:"model"`
	} `json:"metadata"`
}

// MockResult returns the canned analysis for a document type ("pdf" or
// "text"; anything else falls back to "text"). The real analysis backend is
// not part of this service — the canned responses keep the demo flow
// working end to end.
func MockResult(docType string, wordCount int, now time.Time) *Result {
	a, ok := mockAnalyses[docType]
	if !ok {
		a = mockAnalyses["text"]
	}

	a.AnalyzedAt = now.UTC().Format(time.RFC3339)
	a.ProcessingTime = "2.3s"
	if wordCount > 0 {
		a.WordCount = wordCount
	} else {
		a.WordCount = 1200
	}
	if docType == "pdf" {
		a.PageCount = 3
	} else {
		a.PageCount = 1
	}

	r := &Result{Success: true, Analysis: a}
	r.Metadata.APIVersion = "1.0.0"
	r.Metadata.Model = "contract-analyzer-v1"
	return r
}

var mockAnalyses = map[string]Analysis{
	"pdf": {
		Summary: "This PDF appears to be a rental lease agreement with standard residential terms. " +
			"The document includes provisions for rent, security deposits, and tenant obligations.",
		KeyTerms: []string{
			"Monthly Rent: $2,500 (due 1st of month)",
			"Security Deposit: $2,500 (refundable)",
			"Lease Term: 12 months",
			"Late Fee: $50 (after 5th of month)",
			"Pet Policy: No pets allowed",
		},
		RiskLevel:    "Medium",
		RiskFactors:  []string{"Standard late fees", "Security deposit equal to rent"},
		Confidence:   0.87,
		DocumentType: "Residential Lease Agreement",
	},
	"text": {
		Summary: "The detected text contains contract language typical of a service agreement or " +
			"terms of use document. Key provisions relate to user obligations and service limitations.",
		KeyTerms: []string{
			"Service Term: As specified in order",
			"Payment Terms: Net 30 days",
			"Cancellation: 30 days written notice",
			"Liability: Limited to service fees",
			"Governing Law: State of incorporation",
		},
		RiskLevel:    "Low",
		RiskFactors:  []string{"Standard liability limitations"},
		Confidence:   0.73,
		DocumentType: "Service Agreement",
	},
}
