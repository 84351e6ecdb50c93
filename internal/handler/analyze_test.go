package handler_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/legalforensics/leadcapture/internal/handler"
)

func newAnalyzeHandler() *handler.AnalyzeHandler {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return handler.NewAnalyzeHandler(logger)
}

func TestHandleAnalyze(t *testing.T) {
	contractText := "This Lease Agreement is entered into between the parties. " +
		"The tenant shall pay rent monthly and the landlord shall maintain the premises."

	t.Run("contract text gets an analysis", func(t *testing.T) {
		h := newAnalyzeHandler()

		body, _ := json.Marshal(map[string]string{"type": "pdf", "content": contractText})
		rr := postJSON(t, h.HandleAnalyze, "/api/analyze", string(body))

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Success   bool `json:"success"`
			Detection struct {
				KeywordCount int `json:"keywordCount"`
			} `json:"detection"`
			Analysis struct {
				DocumentType string `json:"documentType"`
				PageCount    int    `json:"pageCount"`
			} `json:"analysis"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.GreaterOrEqual(t, resp.Detection.KeywordCount, 3)
		assert.Equal(t, "Residential Lease Agreement", resp.Analysis.DocumentType)
		assert.Equal(t, 3, resp.Analysis.PageCount)
	})

	t.Run("non-contract text is rejected", func(t *testing.T) {
		h := newAnalyzeHandler()

		rr := postJSON(t, h.HandleAnalyze, "/api/analyze",
			`{"type":"text","content":"The quick brown fox jumps over the lazy dog."}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "contract language")
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		h := newAnalyzeHandler()

		rr := postJSON(t, h.HandleAnalyze, "/api/analyze", `{"type":"text","content":""}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "content is required")
	})

	t.Run("invalid JSON is rejected", func(t *testing.T) {
		h := newAnalyzeHandler()

		rr := postJSON(t, h.HandleAnalyze, "/api/analyze", `{"type":`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
