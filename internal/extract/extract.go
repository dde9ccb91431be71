// Package extract pulls client and session details out of raw booking-page
// text pasted from the browser. It is an ordered chain of best-effort
// pattern matches behind a stable interface; callers must treat every
// field as optional and let the user correct the result.
package extract

import (
	"regexp"
	"strings"
)

// PartialContactInfo is whatever the heuristics managed to recover.
// Empty fields mean "not found", never an error.
type PartialContactInfo struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	SessionTitle string `json:"session_title,omitempty"`
	SessionTime  string `json:"session_time,omitempty"`
}

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?1?[\s.\-]?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)

	// Labeled lines win over positional guesses.
	labeledNameRe    = regexp.MustCompile(`(?im)^\s*(?:client|name|customer)\s*[:\-]\s*(.+)$`)
	labeledSessionRe = regexp.MustCompile(`(?im)^\s*(?:session|shoot|booking)\s*[:\-]\s*(.+)$`)

	// Session titles as they appear on booking pages: "Fall Mini Session",
	// "Newborn Session", etc.
	titleRe = regexp.MustCompile(`(?im)^.*\b(?:mini\s+)?(?:session|minis|shoot)s?\b.*$`)

	// "Saturday, Oct 12 at 3:30 PM" and similar.
	dateTimeRe = regexp.MustCompile(`(?i)(?:(?:mon|tues?|wednes|thurs?|fri|satur|sun)day,?\s+)?(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?(?:\s+(?:at\s+)?\d{1,2}:\d{2}\s*(?:am|pm)?)?`)
	timeOnlyRe = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:am|pm)\b`)

	nameLineRe = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z'\-]+){1,2}$`)
)

// Extract runs the heuristic chain over rawText. Later rules only fill
// fields earlier rules left empty, so rule order is load-bearing.
func Extract(rawText string) PartialContactInfo {
	var info PartialContactInfo

	if m := emailRe.FindString(rawText); m != "" {
		info.Email = m
	}
	if m := phoneRe.FindString(rawText); m != "" {
		info.Phone = strings.TrimSpace(m)
	}

	if m := labeledNameRe.FindStringSubmatch(rawText); m != nil {
		info.Name = strings.TrimSpace(m[1])
	}
	if m := labeledSessionRe.FindStringSubmatch(rawText); m != nil {
		info.SessionTitle = strings.TrimSpace(m[1])
	}

	if info.SessionTitle == "" {
		if m := titleRe.FindString(rawText); m != "" {
			info.SessionTitle = strings.TrimSpace(m)
		}
	}

	if m := dateTimeRe.FindString(rawText); m != "" {
		info.SessionTime = strings.TrimSpace(m)
	} else if m := timeOnlyRe.FindString(rawText); m != "" {
		info.SessionTime = m
	}

	if info.Name == "" {
		info.Name = guessNameLine(rawText, info)
	}

	return info
}

// guessNameLine falls back to the first line that looks like a person's
// name and is not already claimed by another field.
func guessNameLine(rawText string, info PartialContactInfo) string {
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !nameLineRe.MatchString(line) {
			continue
		}
		if line == info.SessionTitle || strings.Contains(line, "@") {
			continue
		}
		return line
	}
	return ""
}
