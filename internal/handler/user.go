// Package handler contains the HTTP layer: request parsing, response
// writing, and nothing else. Business rules live in internal/service.
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/legalforensics/leadcapture/internal/service"
)

// UserHandler serves the lead-capture endpoints.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleVerifyEmail verifies one address.
//
// HTTP: POST /api/verify-email
// BODY: {"email": "jane@example.com"}
//
// The response is 200 even when the verification service is down — the
// service layer substitutes the neutral fallback outcome. Only a malformed
// email (400) or a missing API key (500) fail the request.
func (h *UserHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid verify-email JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:     "Invalid JSON body",
			Timestamp: timestamp(),
		})
		return
	}

	h.logger.Info("email verification request",
		slog.String("email", req.Email),
		slog.String("ip", clientIP(r)),
	)

	outcome, err := h.users.VerifyEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// HandleRegister registers a new lead.
//
// HTTP: POST /api/register
// BODY: {"firstName": "...", "lastName": "...", "email": "..."}
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid register JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:     "Invalid JSON body",
			Timestamp: timestamp(),
		})
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"userId":    user.ID,
		"message":   "User registered successfully",
		"timestamp": timestamp(),
	})
}

// HandleList returns users with pagination, search and aggregate stats.
//
// HTTP: GET /api/users?page=1&limit=50&search=doe
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := h.users.List(r.Context(), service.ListOptions{
		Page:   page,
		Limit:  limit,
		Search: q.Get("search"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleDownloadCSV streams all users as a CSV attachment. With nothing to
// export it answers 200 JSON instead of an empty file, so the dashboard can
// show "No users to export" rather than downloading a header-only CSV.
//
// HTTP: GET /api/download-csv
func (h *UserHandler) HandleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	content, count, err := h.users.ExportCSV(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if count == 0 {
		writeSuccess(w, "Success", map[string]string{"message": "No users to export"})
		return
	}

	filename := fmt.Sprintf("legal_forensics_users_%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(content)); err != nil {
		h.logger.Error("failed to write CSV response", slog.String("error", err.Error()))
	}
}

// HandleDelete removes a user by ID.
//
// HTTP: DELETE /api/users/{id}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.users.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, fmt.Sprintf("User with ID %s deleted successfully", id), nil)
}

// HandleNotFound answers unknown routes with the endpoint catalogue — the
// 404 doubles as minimal API discovery for bookmarklet developers.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error": "Endpoint not found",
		"availableEndpoints": []string{
			"POST /api/verify-email - Verify email address",
			"POST /api/register - Register new user",
			"GET /api/users - Get users with pagination",
			"GET /api/download-csv - Download users CSV",
			"POST /api/analyze - Analyze contract text",
		},
		"timestamp": timestamp(),
	})
}

// clientIP strips the port from RemoteAddr; chi's RealIP middleware has
// already substituted any forwarded address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
