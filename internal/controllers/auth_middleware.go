package controllers

import (
	"strings"

	"github.com/fsdevblog/shortlinks/internal/apperrs"
	"github.com/gin-gonic/gin"
)

// authMiddleware резолвит личность запроса через SSO. В required режиме
// запрос без токена отклоняется, в optional — идет дальше анонимным.
// Предъявленный но невалидный токен отклоняется в обоих режимах.
func (r *Router) authMiddleware(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Личность уже могла быть выставлена optional вариантом выше по стеку.
		if currentIdentity(c) != nil {
			c.Next()
			return
		}

		token := extractToken(c)
		if token == "" {
			if required {
				respondError(c, apperrs.AuthRequired("Auth is required!"))
				return
			}
			c.Next()
			return
		}

		identity, err := r.authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// extractToken достает bearer токен из Authorization заголовка либо из
// query параметра access_token.
func extractToken(c *gin.Context) string {
	header := c.Request.Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return strings.TrimSpace(header)
	}
	return c.Query("access_token")
}
