package controllers

import (
	"net"
	"strings"
	"time"

	"github.com/fsdevblog/shortlinks/internal/auth"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	DefaultRequestTimeout = 3 * time.Second

	identityContextKey = "authIdentity"
)

// clientIP адрес клиента: сначала заголовок CDN, потом peer адрес.
// Если определить не удалось, просмотры пишутся с маркерным значением.
func clientIP(c *gin.Context) string {
	if ip := c.Request.Header.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil && host != "" {
		return host
	}
	if host := strings.TrimSpace(c.Request.RemoteAddr); host != "" {
		return host
	}
	return models.UntrackableIP
}

// currentIdentity типизированно достает личность запроса, выставленную
// auth миддлваре. nil — запрос анонимный.
func currentIdentity(c *gin.Context) *auth.Identity {
	value, ok := c.Get(identityContextKey)
	if !ok {
		return nil
	}
	identity, ok := value.(*auth.Identity)
	if !ok {
		return nil
	}
	return identity
}

// currentUserID указатель на id локального пользователя либо nil.
func currentUserID(c *gin.Context) *uint {
	identity := currentIdentity(c)
	if identity == nil {
		return nil
	}
	id := identity.UserID
	return &id
}

// refererFromRequest значение Referer заголовка либо nil если его нет.
func refererFromRequest(c *gin.Context) *string {
	value := c.Request.Header.Get("Referer")
	if value == "" {
		return nil
	}
	return &value
}
