package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const guestIDKey = "userId"

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
			Error: "missing Authorization header",
			Code:  CodeUnauthorized,
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
			Error: "invalid Authorization header format",
			Code:  CodeUnauthorized,
		})
		return
	}

	userId, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
			Error: "invalid or expired token",
			Code:  CodeUnauthorized,
		})
		return
	}

	// store in Gin context
	c.Set(guestIDKey, userId)
	c.Next()
}

// guestID returns the authenticated guest set by userIdMiddleware.
func guestID(c *gin.Context) (int, bool) {
	id, ok := c.Get(guestIDKey)
	if !ok {
		return 0, false
	}
	v, ok := id.(int)
	return v, ok
}

// mustGuestID writes a 401 and returns false when no guest is authenticated.
func mustGuestID(c *gin.Context) (int, bool) {
	id, ok := guestID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Code: CodeUnauthorized})
		return 0, false
	}
	return id, true
}
