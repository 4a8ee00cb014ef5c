package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSignupFields() (string, string, string, string) {
	return "user", "user@example.com", "foobar", "foobar"
}

func TestValidateUserAcceptsValidFields(t *testing.T) {
	name, email, password, confirmation := validSignupFields()
	errs := ValidateUser(name, email, password, confirmation, true)
	assert.Empty(t, errs)
}

func TestValidateUserName(t *testing.T) {
	_, email, password, confirmation := validSignupFields()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"blank", "", true},
		{"at limit", strings.Repeat("a", 50), false},
		{"over limit", strings.Repeat("a", 51), true},
		// Limits count characters, not bytes.
		{"multibyte at limit", strings.Repeat("é", 50), false},
		{"multibyte over limit", strings.Repeat("é", 51), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateUser(tt.value, email, password, confirmation, true)
			if tt.wantErr {
				assert.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidateUserEmailFormat(t *testing.T) {
	name, _, password, confirmation := validSignupFields()

	valid := []string{"user@foo.com", "THE_USER@foo.bar.org", "first.last@foo.jp"}
	for _, address := range valid {
		errs := ValidateUser(name, address, password, confirmation, true)
		assert.Empty(t, errs, "expected %q to be valid", address)
	}

	invalid := []string{"", "user@foo,com", "user_at_foo.org", "example.user@foo."}
	for _, address := range invalid {
		errs := ValidateUser(name, address, password, confirmation, true)
		assert.NotEmpty(t, errs, "expected %q to be rejected", address)
	}
}

func TestValidateUserPasswordBoundaries(t *testing.T) {
	name, email, _, _ := validSignupFields()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"too short", strings.Repeat("a", 5), true},
		{"minimum", strings.Repeat("a", 6), false},
		{"maximum", strings.Repeat("a", 40), false},
		{"too long", strings.Repeat("a", 41), true},
		// Limits count characters, not bytes.
		{"multibyte minimum", strings.Repeat("é", 6), false},
		{"multibyte maximum", strings.Repeat("é", 40), false},
		{"multibyte too long", strings.Repeat("é", 41), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			password := tt.password
			errs := ValidateUser(name, email, password, password, true)
			if tt.wantErr {
				assert.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidateUserPasswordConfirmation(t *testing.T) {
	name, email, password, _ := validSignupFields()

	errs := ValidateUser(name, email, password, "invalid", true)
	assert.Contains(t, errs, "Password confirmation doesn't match")

	// Mismatch fails regardless of length.
	long := strings.Repeat("a", 40)
	errs = ValidateUser(name, email, long, long+"x", true)
	assert.NotEmpty(t, errs)
}

func TestValidateUserPasswordRequiredOnSignupOnly(t *testing.T) {
	name, email, _, _ := validSignupFields()

	assert.NotEmpty(t, ValidateUser(name, email, "", "", true))

	// A profile edit without a new password skips the password checks.
	assert.Empty(t, ValidateUser(name, email, "", "", false))

	// But supplying one on an edit still validates it.
	assert.NotEmpty(t, ValidateUser(name, email, "short", "short", false))
}
