package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/and161185/six-cities/internal/errs"
	"github.com/and161185/six-cities/internal/model"
)

func TestComment(t *testing.T) {
	t.Parallel()

	cases := []struct {
		p  model.CommentPost
		ok bool
	}{
		{model.CommentPost{Comment: strings.Repeat("x", 50), Rating: 1}, true},
		{model.CommentPost{Comment: strings.Repeat("я", 300), Rating: 5}, true},
		{model.CommentPost{Comment: strings.Repeat("x", 49), Rating: 3}, false},
		{model.CommentPost{Comment: strings.Repeat("x", 301), Rating: 3}, false},
		{model.CommentPost{Comment: strings.Repeat("x", 60), Rating: 0}, false},
		{model.CommentPost{Comment: strings.Repeat("x", 60), Rating: 6}, false},
	}
	for i, c := range cases {
		err := Comment(c.p)
		if (err == nil) != c.ok {
			t.Fatalf("case %d: err=%v", i, err)
		}
		if err != nil && !errors.Is(err, errs.ErrValidation) {
			t.Fatalf("case %d: want ErrValidation, got %v", i, err)
		}
	}
}

func TestPassword(t *testing.T) {
	t.Parallel()

	for _, pw := range []string{"abc123", "1a", "A9", "pass word 1"} {
		if err := Password(pw); err != nil {
			t.Fatalf("%q rejected: %v", pw, err)
		}
	}
	for _, pw := range []string{"abcdef", "123456", "", "ÄÖÜ123"} {
		var ve *errs.ValidationError
		if err := Password(pw); !errors.As(err, &ve) || ve.Msg != PasswordInvalidMsg {
			t.Fatalf("%q: err=%v", pw, err)
		}
	}
}
