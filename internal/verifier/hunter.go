// Package verifier talks to the Hunter.io email-verifier API.
//
// The client deliberately reports upstream failures as errors instead of
// inventing a result: whether a failed verification should sink the request
// is a business decision, so the service layer makes it explicitly (see
// Fallback). This keeps the "never hard-fail user-facing verification"
// policy a visible branch in the caller rather than a catch-all here.
package verifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/legalforensics/leadcapture/internal/apperror"
)

const (
	// DefaultBaseURL is the production Hunter.io endpoint. Tests point the
	// client at an httptest server instead.
	DefaultBaseURL = "https://api.hunter.io"

	// requestTimeout bounds a single verification call. The old worker let
	// these calls hang until the platform killed them; registrations would
	// stall for the whole platform timeout when Hunter.io misbehaved.
	requestTimeout = 10 * time.Second
)

// Outcome is the result of verifying one address.
type Outcome struct {
	Email    string  `json:"email"`
	Valid    bool    `json:"valid"`
	Score    int     `json:"score"`
	Status   string  `json:"status"`
	Fallback bool    `json:"fallback,omitempty"`
	Message  string  `json:"message,omitempty"`
	Details  Details `json:"details,omitempty"`
}

// Details carries the per-check breakdown Hunter returns.
type Details struct {
	Disposable bool `json:"disposable"`
	Webmail    bool `json:"webmail"`
	MXRecord   bool `json:"mxRecord"`
	SMTPServer bool `json:"smtpServer"`
	SMTPCheck  bool `json:"smtpCheck"`
}

// hunterResponse mirrors the fields we use from GET /v2/email-verifier.
type hunterResponse struct {
	Data struct {
		Status     string `json:"status"`
		Score      int    `json:"score"`
		Disposable bool   `json:"disposable"`
		Webmail    bool   `json:"webmail"`
		MXRecords  bool   `json:"mx_records"`
		SMTPServer bool   `json:"smtp_server"`
		SMTPCheck  bool   `json:"smtp_check"`
	} `json:"data"`
}

// Client calls the Hunter.io API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a Client. baseURL may be empty, in which case the production
// endpoint is used.
func New(baseURL, apiKey string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

// Verify checks one address with Hunter.io.
//
// A non-2xx status or transport failure returns an apperror.ErrUpstream —
// the caller decides whether to substitute Fallback(email). A missing API
// key returns apperror.ErrConfig, which IS fatal: the endpoint refuses to
// pretend it verified anything when it was never configured to.
func (c *Client) Verify(ctx context.Context, email string) (*Outcome, error) {
	if c.apiKey == "" {
		return nil, apperror.ConfigMissing("API key")
	}

	u := fmt.Sprintf("%s/v2/email-verifier?email=%s&api_key=%s",
		c.baseURL, url.QueryEscape(email), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("verifier: building request: %w", err)
	}

	// Never log the key itself.
	c.logger.Info("calling Hunter.io API", slog.String("email", email))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperror.Upstream("Hunter.io", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("Hunter.io non-2xx response", slog.Int("status", resp.StatusCode))
		return nil, apperror.Upstream("Hunter.io", fmt.Errorf("status %d", resp.StatusCode))
	}

	var hr hunterResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return nil, apperror.Upstream("Hunter.io", fmt.Errorf("decoding response: %w", err))
	}

	status := hr.Data.Status
	if status == "" {
		status = "unknown"
	}

	outcome := &Outcome{
		Email:  email,
		Valid:  status == "valid" || status == "accept_all",
		Score:  hr.Data.Score,
		Status: status,
		Details: Details{
			Disposable: hr.Data.Disposable,
			Webmail:    hr.Data.Webmail,
			MXRecord:   hr.Data.MXRecords,
			SMTPServer: hr.Data.SMTPServer,
			SMTPCheck:  hr.Data.SMTPCheck,
		},
	}

	c.logger.Info("Hunter.io response received",
		slog.String("email", email),
		slog.String("status", outcome.Status),
		slog.Int("score", outcome.Score),
	)

	return outcome, nil
}

// Fallback is the neutral, low-confidence outcome substituted when the
// verification service is unavailable. It is a 200-level answer on purpose:
// a Hunter.io outage must never block a lead from registering or a visitor
// from submitting the form.
func Fallback(email string) *Outcome {
	return &Outcome{
		Email:    email,
		Valid:    false,
		Score:    0,
		Status:   "unknown",
		Fallback: true,
		Message:  "Verification service unavailable",
	}
}
