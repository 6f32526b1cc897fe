package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// errorCase maps a sentinel error to an HTTP status code.
type errorCase struct {
	err    error
	status int
}

var accountErrorCases = []errorCase{
	{common.ErrInvalidFormat, http.StatusBadRequest},
	{common.ErrInvalidToken, http.StatusBadRequest},
	{common.ErrAlreadyExists, http.StatusConflict},
	{common.ErrAccountNotFound, http.StatusConflict},
	{common.ErrInactiveAccount, http.StatusConflict},
}

// statusFor resolves err against the known cases; anything else is a 500.
func statusFor(err error) int {
	for _, c := range accountErrorCases {
		if errors.Is(err, c.err) {
			return c.status
		}
	}
	return http.StatusInternalServerError
}

func (s *HTTPServer) respondError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: []ErrorDetail{{
		Timestamp: s.now().UTC(),
		Code:      status,
		Detail:    detail,
	}}})
}

// respondFlowError writes err in the error envelope. 500s hide the cause.
func (s *HTTPServer) respondFlowError(c *gin.Context, err error) {
	status := statusFor(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		detail = common.ErrorInternal.Error()
	}
	s.respondError(c, status, detail)
}
