package privacy

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"email", "My email is john.doe@example.com", "My email is [EMAIL]"},
		{"us phone", "Call me at 555-123-4567", "Call me at [PHONE]"},
		{"indian mobile", "my number is +91 98765 43210", "my number is [PHONE]"},
		{"ten digit run", "reach me on 9876543210 tonight", "reach me on [PHONE] tonight"},
		{"ssn", "My SSN is 123-45-6789", "My SSN is [SSN]"},
		{"card", "Card: 4532-1234-5678-9010", "Card: [CARD]"},
		{"aadhaar", "aadhaar 1234 5678 9012 attached", "aadhaar [ID] attached"},
		{"medical id", "Patient ID: AB123456", "[MEDICAL_ID]"},
		{"several", "Email: test@test.com, Phone: 555-1234", "Email: [EMAIL], Phone: [PHONE]"},
		{"nothing", "I have been feeling low this week", "I have been feeling low this week"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Redact(tt.input))
		})
	}
}

func TestContainsPII(t *testing.T) {
	assert.True(t, ContainsPII("write to me at a@b.io"))
	assert.True(t, ContainsPII("555-1234"))
	assert.False(t, ContainsPII("I slept 8 hours and walked 5 km"))
}

func TestForLog(t *testing.T) {
	assert.Equal(t, "hello [EMAIL]", ForLog("hello x@y.org"))

	long := strings.Repeat("é", 200)
	got := ForLog(long)
	assert.Equal(t, maxLogRunes, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}
