package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	tsec "github.com/SaurabhVishwakarma412/PedoDerma/tools/security"
)

// Handler issues bearer tokens for a participant id. The real product's
// login/registration flow lives outside this service; this endpoint stands
// in so the messaging surface is exercisable end to end.
type Handler struct {
	opts tsec.Options
}

func NewHandler(opts tsec.Options) *Handler { return &Handler{opts: opts} }

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/api/auth/token", h.handleToken)
}

type tokenRequest struct {
	ParticipantID string `json:"participantId" binding:"required"`
	Role          string `json:"role"`
}

func (h *Handler) handleToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "participantId is required"})
		return
	}

	token, exp, err := tsec.Generate(h.opts, req.ParticipantID, req.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"token":     token,
		"expiresAt": exp.UnixMilli(),
	}})
}
