package directory

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler { return &Handler{store: store} }

// Register mounts the doctor directory under /api/messages, matching the
// original API surface the messaging screens call.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/api/messages/doctors", h.handleList)
}

func (h *Handler) handleList(c *gin.Context) {
	doctors, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load doctors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": doctors})
}
