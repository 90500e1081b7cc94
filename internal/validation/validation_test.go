package validation

import (
	"strings"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "Password123!abc", false},
		{"Too short", "Pass1!", true},
		{"Too long", strings.Repeat("Aa1!", 40), true},
		{"No uppercase", "password123!abc", true},
		{"No lowercase", "PASSWORD123!ABC", true},
		{"No digit", "Password!!!!abcd", true},
		{"No special character", "Password1234abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "bird_watcher42", false},
		{"Minimum length", "ab", false},
		{"Too short", "a", true},
		{"Too long", strings.Repeat("a", 31), true},
		{"Spaces", "bird watcher", true},
		{"Punctuation", "bird.watcher", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("someone@example.com"))
	assert.NoError(t, ValidateEmail("first.last+tag@sub.example.co"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.com"))
}

func TestValidateMessageText(t *testing.T) {
	assert.NoError(t, ValidateMessageText("Hello"))
	assert.NoError(t, ValidateMessageText(strings.Repeat("x", models.MaxMessageLength)))
	assert.Error(t, ValidateMessageText(""))
	assert.Error(t, ValidateMessageText("   \t\n"))
	assert.Error(t, ValidateMessageText(strings.Repeat("x", models.MaxMessageLength+1)))

	// length is counted in runes, not bytes
	assert.NoError(t, ValidateMessageText(strings.Repeat("é", models.MaxMessageLength)))
}
