// Package validate holds the input rules shared by the client and the server.
package validate

import (
	"fmt"

	"github.com/and161185/six-cities/internal/errs"
	"github.com/and161185/six-cities/internal/model"
)

// PasswordInvalidMsg is shown when a password fails the default policy.
const PasswordInvalidMsg = "Password must contain at least one letter and one digit"

// Password requires at least one ASCII digit and one ASCII letter.
func Password(password string) error {
	var digit, letter bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		}
	}
	if !digit || !letter {
		return &errs.ValidationError{Field: "password", Msg: PasswordInvalidMsg}
	}
	return nil
}

// Comment checks text length (in runes) and rating bounds.
func Comment(p model.CommentPost) error {
	n := len([]rune(p.Comment))
	if n < model.CommentMinLen || n > model.CommentMaxLen {
		return &errs.ValidationError{
			Field: "comment",
			Msg:   fmt.Sprintf("must be %d to %d characters", model.CommentMinLen, model.CommentMaxLen),
		}
	}
	if p.Rating < model.RatingMin || p.Rating > model.RatingMax {
		return &errs.ValidationError{
			Field: "rating",
			Msg:   fmt.Sprintf("must be between %d and %d", model.RatingMin, model.RatingMax),
		}
	}
	return nil
}
