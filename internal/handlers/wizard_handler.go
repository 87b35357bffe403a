package handlers

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bookitlabs/bookit-server/internal/httperr"
	"github.com/bookitlabs/bookit-server/internal/wizard"
)

// SessionCookieName carries the wizard session ID. Distinct from the
// dashboard's Authorization header; the two never share state.
const SessionCookieName = "bookit_wizard_session"

// CSRFHeader must match the session's token on every wizard mutation.
const CSRFHeader = "X-Wizard-Token"

type WizardHandler struct {
	manager *wizard.Manager
}

func NewWizardHandler(manager *wizard.Manager) *WizardHandler {
	return &WizardHandler{manager: manager}
}

// --------- DTOs ---------

type WizardUpdateRequest struct {
	CurrentStep *int              `json:"current_step"`
	ServiceID   *uint             `json:"service_id"`
	StaffID     *uint             `json:"staff_id"`
	Date        *string           `json:"date"`
	Time        *string           `json:"time"`
	Customer    map[string]string `json:"customer"`
}

func sessionPayload(state *wizard.State, timeRemaining int64) gin.H {
	return gin.H{
		"current_step":   state.CurrentStep,
		"service_id":     state.ServiceID,
		"service_name":   state.ServiceName,
		"staff_id":       state.StaffID,
		"date":           state.Date,
		"time":           state.Time,
		"customer":       state.Customer,
		"created_at":     state.CreatedAt,
		"last_activity":  state.LastActivity,
		"time_remaining": timeRemaining,
		"csrf_token":     state.CSRFToken,
	}
}

// --------- Handlers ---------

// GetSession returns the wizard state, creating a session on first touch.
func (h *WizardHandler) GetSession(c *gin.Context) {
	id, fresh := h.sessionID(c)
	if fresh {
		h.setCookie(c, id)
	}

	state, err := h.manager.Load(c.Request.Context(), id)
	if err != nil {
		logrus.WithError(err).Error("wizard session load failed")
		httperr.Internal(c, "session_unavailable", "Could not load booking session.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sessionPayload(state, h.manager.TimeRemaining(state)),
	})
}

// UpdateSession merges a partial payload into the wizard state. Step
// changes rotate the session cookie.
func (h *WizardHandler) UpdateSession(c *gin.Context) {
	id, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req WizardUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed wizard payload.")
		return
	}

	state, newID, err := h.manager.Apply(c.Request.Context(), id, wizard.Update{
		CurrentStep: req.CurrentStep,
		ServiceID:   req.ServiceID,
		StaffID:     req.StaffID,
		Date:        req.Date,
		Time:        req.Time,
		Customer:    req.Customer,
	})

	if err != nil {
		if httperr.IsBusiness(err, "invalid_step") {
			httperr.BadRequest(c, "invalid_step", "Step must be between 1 and 4.")
			return
		}
		logrus.WithError(err).Error("wizard session update failed")
		httperr.Internal(c, "session_unavailable", "Could not update booking session.")
		return
	}

	if newID != id {
		h.setCookie(c, newID)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sessionPayload(state, h.manager.TimeRemaining(state)),
	})
}

// --------- Session plumbing ---------

func (h *WizardHandler) sessionID(c *gin.Context) (id string, fresh bool) {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie, false
	}
	return h.manager.NewSessionID(), true
}

// requireSession resolves the cookie and verifies the CSRF token against
// the stored session. Mutations without both are rejected.
func (h *WizardHandler) requireSession(c *gin.Context) (string, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie == "" {
		httperr.Forbidden(c, "invalid_token", "Missing booking session.")
		return "", false
	}

	state, err := h.manager.Load(c.Request.Context(), cookie)
	if err != nil {
		logrus.WithError(err).Error("wizard session load failed")
		httperr.Internal(c, "session_unavailable", "Could not load booking session.")
		return "", false
	}

	token := c.GetHeader(CSRFHeader)
	if token == "" || token != state.CSRFToken {
		httperr.Forbidden(c, "invalid_token", "Invalid security token.")
		return "", false
	}

	return cookie, true
}

func (h *WizardHandler) setCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		id,
		int(wizard.SessionTTL.Seconds()),
		"/",
		"",
		!isLocalhost(c.ClientIP()),
		true,
	)
}

func isLocalhost(ip string) bool {
	if ip == "localhost" {
		return true
	}
	parsed := net.ParseIP(ip)
	return parsed != nil && parsed.IsLoopback()
}
