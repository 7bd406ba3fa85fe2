package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linkmeet/linkmeet/internal/app"
	"github.com/linkmeet/linkmeet/internal/domain"
)

type roomHandlers struct {
	rooms *app.Rooms
}

type roomRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    *bool  `json:"isPublic"`
	Password    string `json:"password"`
}

func (r roomRequest) params() app.RoomParams {
	public := true
	if r.IsPublic != nil {
		public = *r.IsPublic
	}
	return app.RoomParams{
		Name:        r.Name,
		Description: r.Description,
		IsPublic:    public,
		Password:    r.Password,
	}
}

func (h *roomHandlers) create(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, fmt.Errorf("%v: %w", err, domain.ErrBadRequest))
		return
	}
	room, err := h.rooms.Create(c.Request.Context(), callerID(c), req.params())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, room)
}

func (h *roomHandlers) list(c *gin.Context) {
	rooms, err := h.rooms.ListPublic(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, rooms)
}

func (h *roomHandlers) get(c *gin.Context) {
	room, err := h.rooms.Get(c.Request.Context(), domain.RoomID(c.Param("id")), callerID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, room)
}

func (h *roomHandlers) update(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, fmt.Errorf("%v: %w", err, domain.ErrBadRequest))
		return
	}
	room, err := h.rooms.Update(c.Request.Context(), domain.RoomID(c.Param("id")), callerID(c), req.params())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, room)
}

func (h *roomHandlers) delete(c *gin.Context) {
	if err := h.rooms.Delete(c.Request.Context(), domain.RoomID(c.Param("id")), callerID(c)); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{})
}

func (h *roomHandlers) join(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	// Body is optional for public rooms.
	_ = c.ShouldBindJSON(&req)
	member, err := h.rooms.Join(c.Request.Context(), domain.RoomID(c.Param("id")), callerID(c), req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, member)
}

func (h *roomHandlers) leave(c *gin.Context) {
	if err := h.rooms.Leave(c.Request.Context(), domain.RoomID(c.Param("id")), callerID(c)); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{})
}

func (h *roomHandlers) members(c *gin.Context) {
	members, err := h.rooms.Members(c.Request.Context(), domain.RoomID(c.Param("id")))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, members)
}

func (h *roomHandlers) updateMemberRole(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, fmt.Errorf("%v: %w", err, domain.ErrBadRequest))
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		respondErr(c, err)
		return
	}
	member, err := h.rooms.UpdateMemberRole(c.Request.Context(),
		domain.RoomID(c.Param("id")), callerID(c), domain.UserID(c.Param("userId")), role)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, member)
}

func (h *roomHandlers) removeMember(c *gin.Context) {
	err := h.rooms.RemoveMember(c.Request.Context(),
		domain.RoomID(c.Param("id")), callerID(c), domain.UserID(c.Param("userId")))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{})
}
