// Package service contains the business logic layer.
//
// The split mirrors the rest of the codebase's layering: handlers parse
// HTTP and write responses, services enforce the rules (validation,
// duplicate policy, the verification fallback), repositories persist.
// Services accept interfaces and primitives, never *http.Request, so the
// same logic could back a CLI import tool or a batch job unchanged.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/legalforensics/leadcapture/internal/apperror"
	"github.com/legalforensics/leadcapture/internal/model"
	"github.com/legalforensics/leadcapture/internal/repository"
	"github.com/legalforensics/leadcapture/internal/verifier"
)

// Validation constants.
const (
	MaxEmailLength  = 254
	MaxFieldLength  = 100
	MinNameLength   = 2
	DefaultPageSize = 50
)

// emailPattern is intentionally loose — "something@something.tld" with no
// whitespace. Real validation is Hunter.io's job; this only rejects input
// that cannot possibly be an address.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailVerifier is the slice of the verifier client the service needs.
// Tests substitute a stub to exercise the fallback policy.
type EmailVerifier interface {
	Verify(ctx context.Context, email string) (*verifier.Outcome, error)
}

// UserService handles lead registration, listing, export and deletion.
type UserService struct {
	repo     repository.UserRepository
	verifier EmailVerifier
	logger   *slog.Logger

	// now is swappable so tests can pin "today" for the stats counters.
	now func() time.Time
}

// NewUserService creates a UserService.
func NewUserService(repo repository.UserRepository, v EmailVerifier, logger *slog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		verifier: v,
		logger:   logger,
		now:      time.Now,
	}
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return len(s) <= MaxEmailLength && emailPattern.MatchString(s)
}

// sanitize trims whitespace and truncates to the field limit.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > MaxFieldLength {
		s = s[:MaxFieldLength]
	}
	return s
}

// normalizeEmail lower-cases and trims so case/whitespace variants of the
// same address compare equal everywhere (duplicate check, index key).
func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// VerifyEmail checks an address against the verification service.
//
// Upstream failure is absorbed here: the caller gets the neutral fallback
// outcome and a 200, never an error. The one exception is a missing API
// key — that is an operator mistake and surfaces as a configuration error
// rather than a fake "unknown" verdict.
func (s *UserService) VerifyEmail(ctx context.Context, email string) (*verifier.Outcome, error) {
	email = strings.TrimSpace(email)
	if email == "" || !ValidEmail(email) {
		return nil, apperror.ValidationFailed("email", "Invalid email format")
	}

	outcome, err := s.verifier.Verify(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrConfig) {
			return nil, err
		}
		s.logger.Error("email verification unavailable, using fallback",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return verifier.Fallback(email), nil
	}

	return outcome, nil
}

// RegisterInput is the raw registration payload plus request provenance.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	IPAddress string
	UserAgent string
}

// Register validates, verifies (best effort) and persists a new lead.
//
// The verification call is advisory: if Hunter.io is down the lead is
// stored with emailVerified=false and a zero score. A store failure, by
// contrast, is fatal — there is nothing useful to tell the caller if the
// user was never persisted.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if strings.TrimSpace(in.FirstName) == "" ||
		strings.TrimSpace(in.LastName) == "" ||
		strings.TrimSpace(in.Email) == "" {
		return nil, apperror.ValidationFailed("", "Missing required fields")
	}

	email := normalizeEmail(in.Email)
	if !ValidEmail(email) {
		return nil, apperror.ValidationFailed("email", "Invalid email format")
	}

	firstName := sanitize(in.FirstName)
	lastName := sanitize(in.LastName)
	if len(firstName) < MinNameLength || len(lastName) < MinNameLength {
		return nil, apperror.ValidationFailed("", "Names must be at least 2 characters")
	}

	// Best-effort verification. Only an exact "valid" verdict marks the
	// lead verified; "accept_all" is good enough for the standalone
	// verify endpoint but not for flagging a stored record.
	emailVerified := false
	hunterScore := 0
	outcome, err := s.verifier.Verify(ctx, email)
	switch {
	case err == nil:
		emailVerified = outcome.Status == "valid"
		hunterScore = outcome.Score
	case errors.Is(err, apperror.ErrConfig):
		return nil, err
	default:
		s.logger.Warn("email verification failed during registration",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
	}

	now := s.now().UTC().Format(time.RFC3339)
	user := &model.User{
		FirstName:        firstName,
		LastName:         lastName,
		Email:            email,
		EmailVerified:    emailVerified,
		HunterScore:      hunterScore,
		RegistrationDate: now,
		LastLogin:        now,
		Status:           "active",
		Metadata: model.Metadata{
			IPAddress:          in.IPAddress,
			UserAgent:          in.UserAgent,
			RegistrationSource: "web",
		},
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrDuplicate) {
			s.logger.Warn("duplicate registration attempt", slog.String("email", email))
			return nil, err
		}
		s.logger.Error("failed to persist user",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, apperror.StorageFailed("Registration")
	}

	s.logger.Info("user registered",
		slog.String("userId", user.ID),
		slog.String("email", user.Email),
		slog.Bool("verified", user.EmailVerified),
	)

	return user, nil
}

// ListOptions control listing.
type ListOptions struct {
	Page   int
	Limit  int
	Search string
}

// Pagination describes the returned page.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Stats aggregates over the filtered (not paginated) set.
type Stats struct {
	TotalUsers         int    `json:"totalUsers"`
	VerifiedEmails     int    `json:"verifiedEmails"`
	TodayRegistrations int    `json:"todayRegistrations"`
	AvgHunterScore     string `json:"avgHunterScore"`
}

// UserPage is one page of (possibly filtered) users plus aggregates.
type UserPage struct {
	Users      []model.User `json:"users"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	Pagination Pagination   `json:"pagination"`
	Stats      Stats        `json:"stats"`
}

// List returns a page of users. Search is a case-insensitive substring
// match over first name, last name and email. Stats are computed on the
// filtered set, so a search for "doe" reports totals about the Does only.
func (s *UserService) List(ctx context.Context, opts ListOptions) (*UserPage, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = DefaultPageSize
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}

	filtered := users
	if search := strings.ToLower(strings.TrimSpace(opts.Search)); search != "" {
		filtered = make([]model.User, 0, len(users))
		for _, u := range users {
			if strings.Contains(strings.ToLower(u.FirstName), search) ||
				strings.Contains(strings.ToLower(u.LastName), search) ||
				strings.Contains(strings.ToLower(u.Email), search) {
				filtered = append(filtered, u)
			}
		}
	}

	total := len(filtered)
	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &UserPage{
		Users: filtered[start:end],
		Total: total,
		Page:  opts.Page,
		Limit: opts.Limit,
		Pagination: Pagination{
			Page:  opts.Page,
			Limit: opts.Limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(opts.Limit))),
		},
		Stats: s.computeStats(filtered),
	}, nil
}

func (s *UserService) computeStats(users []model.User) Stats {
	stats := Stats{
		TotalUsers:     len(users),
		AvgHunterScore: "0.00",
	}

	today := s.now()
	scoreSum := 0
	for _, u := range users {
		if u.EmailVerified {
			stats.VerifiedEmails++
		}
		if u.RegisteredOn(today) {
			stats.TodayRegistrations++
		}
		scoreSum += u.HunterScore
	}
	if len(users) > 0 {
		stats.AvgHunterScore = fmt.Sprintf("%.2f", float64(scoreSum)/float64(len(users)))
	}
	return stats
}

// Delete removes a user by exact ID.
func (s *UserService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "user ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete user",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return apperror.StorageFailed("Deletion")
	}

	s.logger.Info("user deleted", slog.String("id", id))
	return nil
}
