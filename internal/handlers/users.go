package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ChangePasswordRequest carries the current password and its replacement.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  models.PublicUser
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/users/me [get]
// @Security     BearerAuth
func (h *Handler) getMe(c *gin.Context) {
	u, err := h.services.Profile(c.Request.Context(), callerID(c))
	if err != nil {
		h.respondError(c, err, "user_profile_failed")
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Change password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      ChangePasswordRequest  true  "Passwords"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/users/me/password [put]
// @Security     BearerAuth
func (h *Handler) changePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	if err := h.services.ChangePassword(c.Request.Context(), callerID(c), req.CurrentPassword, req.NewPassword); err != nil {
		h.respondError(c, err, "user_change_password_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password_changed"})
}
