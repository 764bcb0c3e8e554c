package backofficeserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authports "github.com/Apurer/go-gin-backoffice/internal/domains/auth/ports"
	apierrors "github.com/Apurer/go-gin-backoffice/internal/shared/errors"
	"github.com/Apurer/go-gin-backoffice/internal/shared/response"
)

// AuthAPI exposes the login endpoint.
type AuthAPI struct {
	service authports.Service
}

func NewAuthAPI(service authports.Service) AuthAPI {
	return AuthAPI{service: service}
}

// Post /api/v1/auth/login/
// Exchanges credentials for an access token
func (api *AuthAPI) Login(c *gin.Context) {
	var payload LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, "", err)
		return
	}
	if strings.TrimSpace(payload.Login) == "" || payload.Password == "" {
		respondProblem(c, apierrors.ErrBadRequest.WithMessage("Invalid login or password"))
		return
	}
	token, err := api.service.Login(c.Request.Context(), payload.Login, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, TokenResponse{Token: token})
}
