package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tribute-portal/internal/backend"
	"tribute-portal/internal/models"
)

type UserHandler struct {
	Backend *backend.Client
}

func NewUserHandler(b *backend.Client) *UserHandler {
	return &UserHandler{Backend: b}
}

// ListUsers returns the admin user table, optionally filtered by role and
// status.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Backend.AdminUsers(upstreamCtx(c))
	if err != nil {
		respondError(c, "Could not fetch users", err)
		return
	}

	role, status := c.Query("role"), c.Query("status")
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if role != "" && !strings.EqualFold(u.Role, role) {
			continue
		}
		if status != "" && !strings.EqualFold(u.Status, status) {
			continue
		}
		out = append(out, u)
	}
	c.JSON(http.StatusOK, out)
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active suspended"`
}

func (h *UserHandler) UpdateUserStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.Backend.UpdateUserStatus(upstreamCtx(c), id, req.Status)
	if err != nil {
		respondError(c, "Could not update user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
