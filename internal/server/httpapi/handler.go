// Package httpapi exposes the SkillGraph backend over JSON/HTTP using gin.
// Authentication endpoints are public; everything under /api/users requires
// a bearer token whose subject matches the addressed user.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillgraph/skillgraph/internal/common"
	"github.com/skillgraph/skillgraph/internal/logging"
	"github.com/skillgraph/skillgraph/internal/models"
)

// UserService is the consumer-side view of the account service, narrowed to
// what the HTTP layer needs.
type UserService interface {
	SignUp(ctx context.Context, name, email, password string) (*models.Identity, string, error)
	LogIn(ctx context.Context, email, password string) (*models.Identity, string, error)
	GoogleAuth(ctx context.Context, googleID, email, name string) (*models.Identity, string, error)
	UpdateAnalysis(ctx context.Context, userID string, analysis *models.SkillAnalysis) error
	UpdateStudyPlan(ctx context.Context, userID string, items []models.StudyPlanItem) error
	UpdateInterviewPrep(ctx context.Context, userID string, questions []models.InterviewQuestion) error
	AppendChatMessage(ctx context.Context, userID string, msg models.ChatMessage) error
	ReadAll(ctx context.Context, userID string) (*models.UserRecord, error)
}

// Handler bundles the route handlers with their dependencies.
type Handler struct {
	service UserService
	logger  logging.Logger
}

func NewHandler(service UserService, logger logging.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// authBody carries the identity projection plus the minted token.
type authBody struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func identityBody(id *models.Identity, token string) authBody {
	return authBody{ID: id.ID, Name: id.Name, Email: id.Email, Token: token}
}

func (h *Handler) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) signUp(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, token, err := h.service.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			c.JSON(http.StatusConflict, gin.H{"error": common.ErrDuplicateIdentity.Error()})
			return
		}
		h.serverError(c, "signup", err)
		return
	}

	c.JSON(http.StatusCreated, identityBody(id, token))
}

func (h *Handler) logIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, token, err := h.service.LogIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredential) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": common.ErrInvalidCredential.Error()})
			return
		}
		h.serverError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, identityBody(id, token))
}

func (h *Handler) googleAuth(c *gin.Context) {
	var req struct {
		GoogleID string `json:"googleId" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, token, err := h.service.GoogleAuth(c.Request.Context(), req.GoogleID, req.Email, req.Name)
	if err != nil {
		h.serverError(c, "google auth", err)
		return
	}

	c.JSON(http.StatusOK, identityBody(id, token))
}

func (h *Handler) updateAnalysis(c *gin.Context) {
	var req struct {
		Analysis *models.SkillAnalysis `json:"analysis"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.UpdateAnalysis(c.Request.Context(), c.Param("userID"), req.Analysis); err != nil {
		h.serverError(c, "update analysis", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) updateStudyPlan(c *gin.Context) {
	var req struct {
		StudyPlan []models.StudyPlanItem `json:"studyPlan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.UpdateStudyPlan(c.Request.Context(), c.Param("userID"), req.StudyPlan); err != nil {
		h.serverError(c, "update study plan", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) updateInterviewPrep(c *gin.Context) {
	var req struct {
		InterviewPrep []models.InterviewQuestion `json:"interviewPrep"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.UpdateInterviewPrep(c.Request.Context(), c.Param("userID"), req.InterviewPrep); err != nil {
		h.serverError(c, "update interview prep", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) appendChat(c *gin.Context) {
	var msg models.ChatMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if msg.Role != models.RoleUser && msg.Role != models.RoleModel {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown chat role"})
		return
	}

	if err := h.service.AppendChatMessage(c.Request.Context(), c.Param("userID"), msg); err != nil {
		h.serverError(c, "append chat", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// readAll answers the full record without the stored credential. An unknown
// user yields an empty object rather than an error, so clients can treat
// absence as "nothing synced yet".
func (h *Handler) readAll(c *gin.Context) {
	rec, err := h.service.ReadAll(c.Request.Context(), c.Param("userID"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		h.serverError(c, "read record", err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	rec.Password = ""
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) serverError(c *gin.Context, op string, err error) {
	h.logger.Error(c.Request.Context(), "request failed", "op", op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": common.ErrInternal.Error()})
}
