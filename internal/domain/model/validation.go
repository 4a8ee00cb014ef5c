package model

import (
	"strings"
	"twitter_app/internal/common"
)

// ValidationErrors is the list of per-field messages produced by a rejected
// create or update. It unwraps to common.ErrValidation so handlers can map
// it with errors.Is.
type ValidationErrors []string

func (ve ValidationErrors) Error() string {
	return strings.Join(ve, "; ")
}

func (ve ValidationErrors) Unwrap() error {
	return common.ErrValidation
}
