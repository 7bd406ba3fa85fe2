package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linkmeet/linkmeet/internal/app"
	"github.com/linkmeet/linkmeet/internal/domain"
)

type accountHandlers struct {
	accounts *app.Accounts
}

func (h *accountHandlers) register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, fmt.Errorf("%v: %w", err, domain.ErrBadRequest))
		return
	}
	sess, err := h.accounts.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, sess)
}

func (h *accountHandlers) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, fmt.Errorf("%v: %w", err, domain.ErrBadRequest))
		return
	}
	sess, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, sess)
}

// logout is a no-op on the server; tokens expire on their own.
func (h *accountHandlers) logout(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{})
}

func (h *accountHandlers) profile(c *gin.Context) {
	user, err := h.accounts.Get(c.Request.Context(), callerID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}

func (h *accountHandlers) listUsers(c *gin.Context) {
	users, err := h.accounts.ListUsers(c.Request.Context(), callerID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, users)
}

func (h *accountHandlers) getUser(c *gin.Context) {
	user, err := h.accounts.GetUser(c.Request.Context(), domain.UserID(c.Param("id")))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}

func (h *accountHandlers) updateStatus(c *gin.Context) {
	var req struct {
		IsOnline *bool `json:"isOnline" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, fmt.Errorf("%v: %w", err, domain.ErrBadRequest))
		return
	}
	user, err := h.accounts.SetOnline(c.Request.Context(),
		callerID(c), domain.UserID(c.Param("id")), *req.IsOnline)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}

func (h *accountHandlers) updateProfile(c *gin.Context) {
	var req struct {
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, fmt.Errorf("%v: %w", err, domain.ErrBadRequest))
		return
	}
	user, err := h.accounts.UpdateProfile(c.Request.Context(), callerID(c), req.Name, req.Avatar)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}
