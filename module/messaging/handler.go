package messaging

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	midsec "github.com/SaurabhVishwakarma412/PedoDerma/middleware/security"
)

// Handler exposes the REST fallback endpoints. These exist so a client with
// a degraded live connection still has a working, if non-instant, chat
// experience; the send here is the backup write of the dual-write design.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// Register mounts the message routes under /api/messages. Every route runs
// behind the auth middleware: the viewer identity always comes from the
// token, never from headers or the body.
func (h *Handler) Register(r gin.IRouter, auth gin.HandlerFunc) {
	g := r.Group("/api/messages", auth)
	g.POST("/send", h.handleSend)
	g.GET("/chat/:counterpartId", h.handleHistory)
	g.GET("/conversations", h.handleConversations)
	g.PUT("/mark-read/:counterpartId", h.handleMarkRead)
}

type sendRequest struct {
	To          string `json:"to" binding:"required"`
	Body        string `json:"body" binding:"required"`
	SentAt      int64  `json:"sentAt"`
	ClientMsgID string `json:"clientMsgId"`
}

func (h *Handler) handleSend(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "missing required fields")
		return
	}

	msg, err := h.svc.Send(c.Request.Context(), SendInput{
		From:        midsec.ParticipantID(c),
		To:          req.To,
		Body:        req.Body,
		SentAt:      req.SentAt,
		ClientMsgID: req.ClientMsgID,
	})
	if err != nil {
		if isInvalidSend(err) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, "failed to save message")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": msg})
}

func (h *Handler) handleHistory(c *gin.Context) {
	viewer := midsec.ParticipantID(c)
	counterpart := c.Param("counterpartId")

	msgs, err := h.svc.History(c.Request.Context(), viewer, counterpart)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": msgs})
}

func (h *Handler) handleConversations(c *gin.Context) {
	convs, err := h.svc.ListConversations(c.Request.Context(), midsec.ParticipantID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load conversations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": convs})
}

func (h *Handler) handleMarkRead(c *gin.Context) {
	viewer := midsec.ParticipantID(c)
	counterpart := c.Param("counterpartId")

	n, err := h.svc.MarkRead(c.Request.Context(), viewer, counterpart)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to mark messages read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"updated": n}})
}

func isInvalidSend(err error) bool {
	return errors.Is(err, ErrMissingParticipant) ||
		errors.Is(err, ErrSameParticipant) ||
		errors.Is(err, ErrEmptyBody)
}

func fail(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"success": false, "message": msg})
}
