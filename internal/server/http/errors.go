package httpserver

import (
	"errors"
	"net/http"

	"github.com/and161185/six-cities/internal/errs"
	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Error string `json:"error"`
}

// statusOf maps domain errors onto HTTP statuses.
func statusOf(err error) (int, string) {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, errs.ErrRateLimited):
		return http.StatusTooManyRequests, "too many attempts"
	case errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusConflict, "already exists"
	}
	return http.StatusInternalServerError, "internal"
}

func writeError(c *gin.Context, err error) {
	code, msg := statusOf(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(code, errorBody{Error: msg})
}
