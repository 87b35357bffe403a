package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bookitlabs/bookit-server/internal/auth"
)

type AuthHandler struct {
	auth *auth.Service
}

func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Untyped fields on purpose: a wrong type is a validation failure that
// must be indistinguishable from bad credentials.
type LoginRequest struct {
	Identifier any `json:"identifier"`
	Secret     any `json:"secret"`
	ClientType any `json:"client_type"`
}

// Login authenticates staff credentials. Every validation failure —
// missing field, wrong type, bad enum, unknown email, wrong password —
// collapses into the same 401 body so nothing leaks about which part was
// wrong. Rate limiting happens in middleware before this runs.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidCredentials(c)
		return
	}

	identifier, okID := req.Identifier.(string)
	secret, okSecret := req.Secret.(string)
	clientType, okClient := req.ClientType.(string)

	valid := okID && identifier != "" &&
		okSecret && secret != "" &&
		okClient && (clientType == "mobile" || clientType == "web")

	if !valid {
		h.invalidCredentials(c)
		return
	}

	staff, err := h.auth.Authenticate(c.Request.Context(), identifier, secret)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			logrus.WithError(err).Error("login lookup failed")
		}
		h.invalidCredentials(c)
		return
	}

	accessToken, err := h.auth.AccessToken(staff)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	refreshToken, err := h.auth.RefreshToken(staff)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"token_type":    "Bearer",
		"expires_in":    int(auth.AccessTokenTTL.Seconds()),
		"refresh_token": refreshToken,
		"scope":         staff.Role,
	})
}

func (h *AuthHandler) invalidCredentials(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
}
