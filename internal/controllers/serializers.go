package controllers

import (
	"fmt"
	"net/url"
	"time"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/services"
	"github.com/gin-gonic/gin"
)

// serializeLink общая часть ответа для обоих вариантов ссылки.
func serializeLink(l *models.Link, hash string, baseURL *url.URL, now time.Time) gin.H {
	var expiresAt any
	if l.ExpirationDate != nil {
		expiresAt = l.ExpirationDate.UTC().Unix()
	}
	data := gin.H{
		"id":              l.ID,
		"hash":            hash,
		"expires_at":      expiresAt,
		"is_expired":      l.IsExpired(now),
		"stats_is_public": l.StatsIsPublic,
	}
	if baseURL != nil {
		data["short_url"] = fmt.Sprintf("%s/%s", baseURL, hash)
	}
	return data
}

func serializeURL(u *models.RedirectURL, hash string, baseURL *url.URL, now time.Time) gin.H {
	data := serializeLink(&u.Link, hash, baseURL, now)
	data["redirect_url"] = u.Redirect
	return data
}

func serializePaste(p *models.PasteURL, hash string, baseURL *url.URL, now time.Time) gin.H {
	data := serializeLink(&p.Link, hash, baseURL, now)
	data["text"] = p.Content
	data["language"] = p.Language
	data["burn_after_read"] = p.BurnAfterRead
	return data
}

func serializeStats(summary *services.StatsSummary) gin.H {
	return gin.H{
		"total":       summary.Total,
		"by_referers": summary.ByReferers,
		"by_dates":    summary.ByDates,
	}
}
