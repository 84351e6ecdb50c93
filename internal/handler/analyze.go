package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/legalforensics/leadcapture/internal/analyzer"
	"github.com/legalforensics/leadcapture/internal/apperror"
)

// AnalyzeHandler serves the contract-analysis endpoint the bookmarklet
// calls when mock mode is off. Scoring and the canned responses come
// straight from internal/analyzer; there is no service layer in between
// because there is no policy to enforce beyond input validation.
type AnalyzeHandler struct {
	logger *slog.Logger
}

// NewAnalyzeHandler creates an AnalyzeHandler.
func NewAnalyzeHandler(logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{logger: logger}
}

type analyzeRequest struct {
	Type    string `json:"type"`    // "pdf" or "text"
	Content string `json:"content"` // extracted document text
}

type analyzeResponse struct {
	Success   bool                   `json:"success"`
	Detection *analyzer.TextAnalysis `json:"detection"`
	Analysis  analyzer.Analysis      `json:"analysis"`
	Metadata  any                    `json:"metadata"`
	Timestamp string                 `json:"timestamp"`
}

// HandleAnalyze scores the submitted text and returns the analysis payload.
//
// HTTP: POST /api/analyze
// BODY: {"type": "text", "content": "..."}
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid analyze JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:     "Invalid JSON body",
			Timestamp: timestamp(),
		})
		return
	}

	if req.Content == "" {
		writeError(w, apperror.ValidationFailed("content", "content is required"))
		return
	}

	detection := analyzer.Analyze(req.Content)
	if !detection.IsFinding() {
		writeError(w, apperror.ValidationFailed("content",
			"Text does not contain enough contract language to analyze"))
		return
	}

	result := analyzer.MockResult(req.Type, detection.WordCount, time.Now())

	h.logger.Info("contract analysis served",
		slog.String("type", req.Type),
		slog.Int("keywordCount", detection.KeywordCount),
	)

	writeJSON(w, http.StatusOK, analyzeResponse{
		Success:   true,
		Detection: detection,
		Analysis:  result.Analysis,
		Metadata:  result.Metadata,
		Timestamp: timestamp(),
	})
}
