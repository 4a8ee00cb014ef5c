package model

import (
	"time"
	"unicode/utf8"
)

const ContentMaxLength = 140

// Micropost belongs to exactly one user and is removed with it.
type Micropost struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func ValidateMicropost(content string) ValidationErrors {
	var errs ValidationErrors
	if content == "" {
		errs = append(errs, "Content can't be blank")
	} else if utf8.RuneCountInString(content) > ContentMaxLength {
		errs = append(errs, "Content is too long (maximum is 140 characters)")
	}
	return errs
}
