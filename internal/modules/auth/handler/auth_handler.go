package handler

import (
	"fmt"
	"net/http"

	moduledto "stored-image-server/internal/modules/auth/dto"
	"stored-image-server/internal/modules/common/httpx"
	"stored-image-server/internal/projection"
	"stored-image-server/internal/session"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Signup(c *gin.Context) {
	var req moduledto.SignupEnvelope
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteErrors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.authService.Signup(c.Request.Context(), req.User)
	if err != nil {
		httpx.WriteServiceError(c, err, "Signup failed, please try again later")
		return
	}

	c.Header("Location", fmt.Sprintf("/users/%d", user.ID))
	c.JSON(http.StatusCreated, gin.H{
		"user":  projection.User(user, session.ForUser(user)),
		"token": token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req moduledto.LoginEnvelope
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteErrors(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.User.UsernameOrEmail, req.User.Password)
	if err != nil {
		httpx.WriteServiceError(c, err, "Login failed, please try again later")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  projection.User(user, session.ForUser(user)),
		"token": token,
	})
}
