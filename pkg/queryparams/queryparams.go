// Package queryparams builds the canonical list-query parameters shared by
// the appointment and doctor listing endpoints.
package queryparams

import (
	"strings"

	"github.com/medibook/medibook-api/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// TabUpcoming is the client-facing alias for confirmed appointments.
const TabUpcoming = "upcoming"

// ListParams is the canonical {status, page, limit, name?, date?} filter.
// An empty Status or Name means no filter, not no results.
type ListParams struct {
	Status string `json:"status" query:"status"`
	Page   int    `json:"page" query:"page"`
	Limit  int    `json:"limit" query:"limit"`
	Name   string `json:"name,omitempty" query:"name"`
	Date   string `json:"date,omitempty" query:"date"`
}

// Normalize applies the default and tie-break policy: "all" (any case) and
// blanks collapse to no filter, the upcoming tab maps to the confirmed
// status, and page/limit get sane bounds.
func Normalize(p ListParams) ListParams {
	p.Status = normalizeToken(p.Status)
	if p.Status == TabUpcoming {
		p.Status = string(models.StatusConfirmed)
	}
	p.Name = strings.TrimSpace(p.Name)
	if strings.EqualFold(p.Name, "all") {
		p.Name = ""
	}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "all" {
		return ""
	}
	return s
}

// Offset converts page/limit into a SQL offset.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// HasStatus reports whether a status filter is applied.
func (p ListParams) HasStatus() bool { return p.Status != "" }

// MatchesAny reports whether any of the fields contains the query as a
// case-insensitive substring. An empty query matches everything.
func MatchesAny(query string, fields ...string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// MatchDoctor applies the free-text filter across the searchable doctor
// fields: doctor name, specialty name and clinic name.
func MatchDoctor(query string, d models.Doctor) bool {
	return MatchesAny(query, d.FullName, d.Specialty.Name, d.Clinic.Name)
}
