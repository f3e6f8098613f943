package handler

import (
	"net/http"

	"stored-image-server/internal/modules/common/httpx"
	moduledto "stored-image-server/internal/modules/user/dto"
	userservice "stored-image-server/internal/modules/user/service"
	platformservice "stored-image-server/internal/platform/service"
	"stored-image-server/internal/projection"
	"stored-image-server/internal/session"

	"github.com/gin-gonic/gin"
)

// ListUsers 公开接口，每个用户按调用方投影。
func (h *Handler) ListUsers(c *gin.Context) {
	viewer := session.FromGin(c)
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": projection.Users(users, viewer)})
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		httpx.WriteErrors(c, http.StatusNotFound, userservice.MsgUserNotFound)
		return
	}
	viewer := session.FromGin(c)
	user, err := h.userService.Show(c.Request.Context(), viewer, id)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": projection.User(user, viewer)})
}

// UpdateUser 响应总是带上目标用户尝试之后的状态，有错误时附带 errors。
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		httpx.WriteErrors(c, http.StatusNotFound, userservice.MsgUserNotFound)
		return
	}
	var req moduledto.UpdateUserEnvelope
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteErrors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	viewer := session.FromGin(c)
	user, err := h.userService.Update(c.Request.Context(), viewer, id, req.User)
	if user == nil {
		httpx.WriteServiceError(c, err, "Failed to update user")
		return
	}

	body := gin.H{"user": projection.User(user, viewer)}
	if err == nil {
		c.JSON(http.StatusOK, body)
		return
	}
	serviceErr, ok := platformservice.AsServiceError(err)
	if !ok {
		httpx.WriteServiceError(c, err, "Failed to update user")
		return
	}
	body["errors"] = serviceErr.Messages
	c.JSON(httpx.ServiceErrorStatus(serviceErr.Code), body)
}

// DeleteUser 第一次返回带 DELETE 标记的用户，第二次返回 "<username> DELETED"。
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		httpx.WriteErrors(c, http.StatusNotFound, userservice.MsgUserNotFound)
		return
	}
	viewer := session.FromGin(c)
	result, err := h.userService.Delete(c.Request.Context(), viewer, id)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to delete user")
		return
	}
	if result.Destroyed {
		c.JSON(http.StatusOK, result.User.Username+" DELETED")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": projection.User(result.User, viewer)})
}
