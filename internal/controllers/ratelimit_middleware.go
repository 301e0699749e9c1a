package controllers

import "github.com/gin-gonic/gin"

// rateLimitMiddleware учитывает запрос в лимитере и отклоняет его при
// исчерпанном лимите. route входит в ключ: лимиты считаются раздельно
// по группам маршрутов.
func (r *Router) rateLimitMiddleware(route string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.limiter == nil {
			c.Next()
			return
		}
		if err := r.limiter.Check(c.Request.Context(), clientIP(c), route); err != nil {
			respondError(c, err)
			return
		}
		c.Next()
	}
}
