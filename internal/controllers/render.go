package controllers

import (
	"fmt"

	"github.com/fsdevblog/shortlinks/internal/apperrs"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// respondSuccess оборачивает полезную нагрузку в success-конверт.
func respondSuccess(c *gin.Context, status int, data gin.H) {
	c.JSON(status, gin.H{"success": data})
}

// respondError отдает error-конверт. Любая ошибка не являющаяся *AppError
// считается внутренней: наружу уходит общий код, детали только в лог.
func respondError(c *gin.Context, err error) {
	var appErr *apperrs.AppError
	if !errors.As(err, &appErr) {
		_ = c.Error(err)
		appErr = apperrs.Internal()
	}

	body := gin.H{
		"code":    appErr.Code,
		"status":  appErr.Status,
		"message": appErr.Message,
	}
	for key, value := range appErr.Data {
		body[key] = value
	}
	if retryAfter, ok := appErr.Data["retry_after"]; ok {
		c.Header("Retry-After", fmt.Sprintf("%v", retryAfter))
	}

	c.AbortWithStatusJSON(appErr.Status, gin.H{"error": body})
}
