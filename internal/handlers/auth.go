package handlers

import (
	"errors"
	"net/http"

	"hotel_climate/internal/service"

	"github.com/gin-gonic/gin"
)

// signUpRequest registers a guest; phone is optional.
type signUpRequest struct {
	Username string `json:"username" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

type signInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, CodeInvalidInput, "invalid body: "+err.Error(), "bad_request_body", err, "path", c.FullPath())
		return false
	}
	return true
}

// @Summary      Register a guest
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Guest credentials"
// @Success      200   {object}  map[string]int  "id"
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input signUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), input.Username, input.Phone, input.Password)
	if err != nil {
		h.respondError(c, "auth_sign_up_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Guest credentials"
// @Success      200   {object}  map[string]string  "token"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input signInRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrInvalidPassword) {
		h.logAndJSONError(c, http.StatusUnauthorized, CodeUnauthorized, "invalid credentials", "auth_sign_in_failed", err, "username", input.Username)
		return
	}
	if err != nil {
		h.respondError(c, "auth_sign_in_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
