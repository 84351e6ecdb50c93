// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a captured lead.
//
// The JSON field names match the shape the dashboard and bookmarklet already
// consume (camelCase, metadata nested), so the Go rewrite is wire-compatible
// with the previous worker deployment.
//
// WHY Email AS THE UNIQUE KEY?
// Leads arrive from a public form — there is no login, no password, nothing
// else to identify a person by. The email is lower-cased and trimmed before
// any comparison so "A@x.com" and "a@x.com " are the same lead.
type User struct {
	ID               string   `json:"id"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Email            string   `json:"email"`
	EmailVerified    bool     `json:"emailVerified"`
	HunterScore      int      `json:"hunterScore"`
	RegistrationDate string   `json:"registrationDate"` // RFC 3339
	LastLogin        string   `json:"lastLogin"`        // RFC 3339
	Status           string   `json:"status"`
	Metadata         Metadata `json:"metadata"`
}

// Metadata records where a registration came from.
type Metadata struct {
	IPAddress          string `json:"ipAddress"`
	UserAgent          string `json:"userAgent"`
	RegistrationSource string `json:"registrationSource"`
}

// RegisteredOn reports whether the user registered on the given calendar day.
// Comparison is by date string, not elapsed duration — a registration at
// 23:59 still counts as "today" one minute later, matching the dashboard's
// todayRegistrations counter.
func (u *User) RegisteredOn(day time.Time) bool {
	t, err := time.Parse(time.RFC3339, u.RegistrationDate)
	if err != nil {
		return false
	}
	return t.Format("2006-01-02") == day.Format("2006-01-02")
}
