package model

import (
	"regexp"
	"time"
	"unicode/utf8"
)

const (
	NameMaxLength     = 50
	PasswordMinLength = 6
	PasswordMaxLength = 40
)

var emailRegex = regexp.MustCompile(`(?i)^[\w+\-.]+@[a-z\d\-.]+\.[a-z]+$`)

type User struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Handle            string    `json:"handle"`
	Salt              string    `json:"-"` // Not exposed
	EncryptedPassword string    `json:"-"` // Not exposed
	Admin             bool      `json:"admin"`
	MicropostCount    int       `json:"micropost_count,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ValidateUser checks the user-submitted fields. Password checks only run
// when a password is part of the payload: always at signup
// (passwordRequired), and on updates only when a new password was actually
// supplied.
func ValidateUser(name, email, password, confirmation string, passwordRequired bool) ValidationErrors {
	var errs ValidationErrors

	if name == "" {
		errs = append(errs, "Name can't be blank")
	} else if utf8.RuneCountInString(name) > NameMaxLength {
		errs = append(errs, "Name is too long (maximum is 50 characters)")
	}

	if email == "" {
		errs = append(errs, "Email can't be blank")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "Email is invalid")
	}

	if passwordRequired || password != "" || confirmation != "" {
		if password == "" {
			errs = append(errs, "Password can't be blank")
		} else if utf8.RuneCountInString(password) < PasswordMinLength {
			errs = append(errs, "Password is too short (minimum is 6 characters)")
		} else if utf8.RuneCountInString(password) > PasswordMaxLength {
			errs = append(errs, "Password is too long (maximum is 40 characters)")
		}
		if password != confirmation {
			errs = append(errs, "Password confirmation doesn't match")
		}
	}

	return errs
}
