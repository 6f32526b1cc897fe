package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

// AccountFlows is the slice of services.AccountService the handlers use.
type AccountFlows interface {
	SignUp(ctx context.Context, in services.SignUpInput) (*models.Account, error)
	Login(ctx context.Context, token string) (*models.Account, error)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

func (s *HTTPServer) signUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	account, err := s.accounts.SignUp(c.Request.Context(), services.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phones:   toPhones(req.Phones),
	})
	if err != nil {
		s.respondFlowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAccountResponse(account))
}

func (s *HTTPServer) login(c *gin.Context) {
	token, ok := common.StripBearer(c.GetHeader(common.AuthorizationHeaderName))
	if !ok {
		s.respondFlowError(c, common.ErrInvalidToken)
		return
	}

	account, err := s.accounts.Login(c.Request.Context(), token)
	if err != nil {
		s.respondFlowError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAccountResponse(account))
}

func (s *HTTPServer) healthz(c *gin.Context) {
	if s.db != nil {
		if err := s.db.PingContext(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
