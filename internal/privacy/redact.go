// Package privacy strips personal identifiers from user text before it
// leaves the process or reaches the logs.
package privacy

import (
	"regexp"
	"unicode/utf8"
)

// maxLogRunes bounds message previews written to logs.
const maxLogRunes = 80

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order; card numbers go before phones so a card is not
// half-eaten by the phone pattern.
var rules = []rule{
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[EMAIL]"},
	{regexp.MustCompile(`\b\d{4}[-\s]\d{4}[-\s]\d{4}[-\s]\d{4}\b`), "[CARD]"},
	{regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), "[SSN]"},
	// Aadhaar: 12 digits in groups of four.
	{regexp.MustCompile(`\b\d{4}\s\d{4}\s\d{4}\b`), "[ID]"},
	{regexp.MustCompile(`(\+91[-\s]?)?\b\d{5}\s\d{5}\b`), "[PHONE]"},
	{regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b|\b\d{3}[-.\s]\d{4}\b`), "[PHONE]"},
	{regexp.MustCompile(`(?i)\b(MRN|Medical Record|Patient ID)[-:\s]*[A-Z0-9]{6,}\b`), "[MEDICAL_ID]"},
}

// Redact replaces emails, card numbers, national ids, phone numbers and
// medical record ids with placeholders.
func Redact(text string) string {
	for _, r := range rules {
		text = r.pattern.ReplaceAllString(text, r.placeholder)
	}
	return text
}

// ContainsPII reports whether any redaction rule matches text.
func ContainsPII(text string) bool {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// ForLog returns a redacted, shortened preview of text.
func ForLog(text string) string {
	redacted := Redact(text)
	if utf8.RuneCountInString(redacted) <= maxLogRunes {
		return redacted
	}
	r := []rune(redacted)
	return string(r[:maxLogRunes-3]) + "..."
}
