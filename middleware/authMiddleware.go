package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/helpers"
	"boutique-tailoring/logger"

	"github.com/gin-gonic/gin"
)

type TokenValidator interface {
	ValidateToken(signedToken string) (*helpers.SignedDetails, error)
}

// Authentication requires a valid token in the "token" header or as a
// bearer token. The claims are stored on the gin context.
func Authentication(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := c.Request.Header.Get("token")
		if clientToken == "" {
			clientToken = strings.TrimSpace(strings.TrimPrefix(c.Request.Header.Get("Authorization"), "Bearer "))
		}
		if clientToken == "" {
			abortUnauthorized(c, fmt.Errorf("%w: no token provided", apperrors.ErrUnauthorized))
			return
		}
		claims, err := tokens.ValidateToken(clientToken)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("uid", claims.Uid)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context(), nil).Debug("request unauthorized", slog.String("error", err.Error()))
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": err.Error(),
		"errors":  []apperrors.FieldError{},
	})
}
