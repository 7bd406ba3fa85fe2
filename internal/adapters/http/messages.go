package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linkmeet/linkmeet/internal/app"
	"github.com/linkmeet/linkmeet/internal/domain"
)

type messageHandlers struct {
	messages *app.Messages
}

func (h *messageHandlers) list(c *gin.Context) {
	out, err := h.messages.List(c.Request.Context(), domain.RoomID(c.Param("id")), callerID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, out)
}

func (h *messageHandlers) send(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, fmt.Errorf("%v: %w", err, domain.ErrBadRequest))
		return
	}
	m, err := h.messages.Send(c.Request.Context(), domain.RoomID(c.Param("id")), callerID(c), req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, m)
}

func (h *messageHandlers) delete(c *gin.Context) {
	if err := h.messages.Delete(c.Request.Context(), c.Param("id"), callerID(c)); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{})
}
