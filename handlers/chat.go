package handlers

import (
	"errors"
	"net/http"

	"calbot/config"
	"calbot/services/conversation"
	"calbot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes the conversational booking flow over HTTP.
type ChatHandler struct {
	Svc    conversation.Service
	Logger *zap.Logger
}

func NewChatHandler(svc conversation.Service, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Svc: svc, Logger: logger}
}

// StartSession creates a new chat session and returns its greeting
// transcript along with a bearer token scoped to the session.
func (h *ChatHandler) StartSession(c *gin.Context) {
	session, err := h.Svc.StartSession(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to start chat session", err.Error())
		return
	}

	token, err := utils.GenerateSessionToken(session.SessionID, config.SessionTTL())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue session token", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionID":  session.SessionID,
		"token":      token,
		"stage":      session.Stage.String(),
		"transcript": session.Transcript,
	})
}

// PostTurn submits one user message to the session. Blank messages are a
// no-op and return the current transcript unchanged.
func (h *ChatHandler) PostTurn(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Svc.HandleTurn(c.Request.Context(), sessionID, input.Message)
	if err != nil {
		if errors.Is(err, conversation.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat session not found or expired"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to process turn", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionID":  session.SessionID,
		"stage":      session.Stage.String(),
		"transcript": session.Transcript,
	})
}

// GetSession returns the stored transcript for a session.
func (h *ChatHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	session, err := h.Svc.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, conversation.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat session not found or expired"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch chat session", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionID":  session.SessionID,
		"stage":      session.Stage.String(),
		"transcript": session.Transcript,
	})
}

// EndSession drops the session.
func (h *ChatHandler) EndSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Svc.EndSession(c.Request.Context(), sessionID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to end chat session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ended"})
}
