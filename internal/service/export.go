package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/legalforensics/leadcapture/internal/model"
)

// csvHeader is the fixed 11-column export layout the dashboard's download
// button has always produced. Column order is part of the contract.
var csvHeader = []string{
	"ID",
	"First Name",
	"Last Name",
	"Email",
	"Email Verified",
	"Hunter Score",
	"Registration Date",
	"Last Login",
	"Status",
	"IP Address",
	"User Agent",
}

// ExportCSV renders every stored user (pagination does not apply to
// exports) as CSV and returns the content plus the row count. A count of
// zero means there is nothing to download and the caller should answer
// with a message instead of an empty file.
//
// Quoting matches the historical format: only names and the user agent are
// wrapped in double quotes, and embedded quotes or commas inside those
// fields are NOT escaped. Spreadsheet apps tolerate it and the downstream
// import scripts split on the quoted form; switching to strict CSV quoting
// would change every existing consumer's parse.
func (s *UserService) ExportCSV(ctx context.Context) (string, int, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to load users for export", slog.String("error", err.Error()))
		return "", 0, fmt.Errorf("exporting users: %w", err)
	}

	if len(users) == 0 {
		return "", 0, nil
	}

	rows := make([]string, 0, len(users)+1)
	rows = append(rows, strings.Join(csvHeader, ","))
	for _, u := range users {
		rows = append(rows, csvRow(u))
	}

	s.logger.Info("CSV generated", slog.Int("userCount", len(users)))
	return strings.Join(rows, "\n"), len(users), nil
}

func csvRow(u model.User) string {
	lastLogin := u.LastLogin
	if lastLogin == "" {
		lastLogin = "Never"
	}
	status := u.Status
	if status == "" {
		status = "active"
	}
	ip := u.Metadata.IPAddress
	if ip == "" {
		ip = "Unknown"
	}
	userAgent := u.Metadata.UserAgent
	if userAgent == "" {
		userAgent = "Unknown"
	}

	fields := []string{
		u.ID,
		`"` + u.FirstName + `"`,
		`"` + u.LastName + `"`,
		u.Email,
		yesNo(u.EmailVerified),
		fmt.Sprint(u.HunterScore),
		u.RegistrationDate,
		lastLogin,
		status,
		ip,
		`"` + userAgent + `"`,
	}
	return strings.Join(fields, ",")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
