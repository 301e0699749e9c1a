package controllers

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fsdevblog/shortlinks/internal/apperrs"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/fsdevblog/shortlinks/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type URLsController struct {
	urlService   *services.URLService
	statsService *services.StatsService
	baseURL      *url.URL
	logger       *logrus.Entry
}

func NewURLsController(urlService *services.URLService, statsService *services.StatsService, baseURL *url.URL, logger *logrus.Logger) *URLsController {
	return &URLsController{
		urlService:   urlService,
		statsService: statsService,
		baseURL:      baseURL,
		logger:       logger.WithField("module", "controller/urls"),
	}
}

type createURLRequest struct {
	URL           string `json:"url"`
	StatsIsPublic bool   `json:"stats_is_public"`
}

func (u *URLsController) Create(c *gin.Context) {
	var req createURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrs.Validation("url is required!"))
		return
	}

	sURL, err := u.urlService.Create(c.Request.Context(), req.URL, req.StatsIsPublic, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{
		"url": serializeURL(sURL, u.urlService.Hash(sURL), u.baseURL, time.Now()),
	})
}

// List все ссылки владельца. Маршрут закрыт required-auth миддлваре.
func (u *URLsController) List(c *gin.Context) {
	ownerID := currentUserID(c)
	if ownerID == nil {
		respondError(c, apperrs.AuthRequired("Auth is required!"))
		return
	}

	urls, err := u.urlService.GetAllByOwnerID(c.Request.Context(), *ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	serialized := make([]gin.H, 0, len(urls))
	for i := range urls {
		serialized = append(serialized, serializeURL(&urls[i], u.urlService.Hash(&urls[i]), u.baseURL, now))
	}
	respondSuccess(c, http.StatusOK, gin.H{"urls": serialized})
}

func (u *URLsController) Info(c *gin.Context) {
	sURL, err := u.fetch(c, false, false)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{
		"url": serializeURL(sURL, u.urlService.Hash(sURL), u.baseURL, time.Now()),
	})
}

// Delete мягкое удаление, только владельцем. Истекшую ссылку удалить можно.
func (u *URLsController) Delete(c *gin.Context) {
	sURL, err := u.fetch(c, true, false)
	if err != nil {
		respondError(c, err)
		return
	}
	if ownErr := services.ValidateOwner(&sURL.Link, currentUserID(c)); ownErr != nil {
		respondError(c, ownErr)
		return
	}
	if delErr := u.urlService.Delete(c.Request.Context(), sURL); delErr != nil {
		respondError(c, delErr)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{})
}

// Open редирект на длинный URL с записью просмотра. Сбой записи просмотра
// редирект не отменяет.
func (u *URLsController) Open(c *gin.Context) {
	sURL, err := u.fetch(c, false, false)
	if err != nil {
		respondError(c, err)
		return
	}

	target := repositories.ViewTarget{Kind: models.LinkKindRedirect, ID: sURL.ID}
	_, viewErr := u.statsService.RecordView(c.Request.Context(), target, clientIP(c), c.Request.UserAgent(), refererFromRequest(c))
	if viewErr != nil {
		u.logger.WithError(viewErr).Warnf("failed to record view for url %d", sURL.ID)
	}

	c.Redirect(http.StatusFound, sURL.Redirect)
}

// Stats статистика ссылки: владельцу либо всем, если она публична.
// После мягкого удаления просмотры сохраняются и остаются доступны
// владельцу, пока он их явно не очистит.
func (u *URLsController) Stats(c *gin.Context) {
	sURL, err := u.fetch(c, true, true)
	if err != nil {
		respondError(c, err)
		return
	}
	if sURL.IsDeleted {
		if ownErr := services.ValidateOwner(&sURL.Link, currentUserID(c)); ownErr != nil {
			respondError(c, ownErr)
			return
		}
	} else {
		if expErr := services.ValidateNotExpired(&sURL.Link, time.Now(), false); expErr != nil {
			respondError(c, expErr)
			return
		}
		if !services.StatsVisible(&sURL.Link, currentUserID(c)) {
			respondError(c, apperrs.Forbidden("you are not the owner of this url!"))
			return
		}
	}

	referersAs, refErr := services.ParseValueAs(c.Query("referers_value_as"))
	if refErr != nil {
		respondError(c, refErr)
		return
	}
	datesAs, datesErr := services.ParseValueAs(c.Query("dates_value_as"))
	if datesErr != nil {
		respondError(c, datesErr)
		return
	}

	target := repositories.ViewTarget{Kind: models.LinkKindRedirect, ID: sURL.ID}
	summary, sumErr := u.statsService.Summary(c.Request.Context(), target, referersAs, datesAs)
	if sumErr != nil {
		respondError(c, sumErr)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"views": serializeStats(summary)})
}

// ClearStats удаляет накопленные просмотры ссылки. Только владельцем,
// в том числе после мягкого удаления самой ссылки.
func (u *URLsController) ClearStats(c *gin.Context) {
	sURL, err := u.fetch(c, true, true)
	if err != nil {
		respondError(c, err)
		return
	}
	if ownErr := services.ValidateOwner(&sURL.Link, currentUserID(c)); ownErr != nil {
		respondError(c, ownErr)
		return
	}

	target := repositories.ViewTarget{Kind: models.LinkKindRedirect, ID: sURL.ID}
	if clearErr := u.statsService.ClearViews(c.Request.Context(), target); clearErr != nil {
		respondError(c, clearErr)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{})
}

// QR код с короткой ссылкой, для печати и шаринга.
func (u *URLsController) QR(c *gin.Context) {
	sURL, err := u.fetch(c, false, false)
	if err != nil {
		respondError(c, err)
		return
	}

	format := c.DefaultQuery("result_type", services.QRFormatSVG)
	scale, scaleErr := intQuery(c, "scale", services.DefaultQRScale)
	if scaleErr != nil {
		respondError(c, scaleErr)
		return
	}
	quietZone, qzErr := intQuery(c, "quiet_zone", services.DefaultQRQuietZone)
	if qzErr != nil {
		respondError(c, qzErr)
		return
	}

	hash := u.urlService.Hash(sURL)
	shortURL := hash
	if u.baseURL != nil {
		shortURL = u.baseURL.String() + "/" + hash
	}

	body, contentType, qrErr := services.GenerateQR(shortURL, format, scale, quietZone)
	if qrErr != nil {
		respondError(c, qrErr)
		return
	}
	c.Data(http.StatusOK, contentType, body)
}

// fetch достает ссылку по хешу из пути и проверяет срок жизни.
func (u *URLsController) fetch(c *gin.Context, allowExpired, includeDeleted bool) (*models.RedirectURL, error) {
	sURL, err := u.urlService.GetByHash(c.Request.Context(), c.Param("hash"), includeDeleted)
	if err != nil {
		return nil, err
	}
	if expErr := services.ValidateNotExpired(&sURL.Link, time.Now(), allowExpired); expErr != nil {
		return nil, expErr
	}
	return sURL, nil
}

// intQuery целочисленный query параметр со значением по умолчанию.
func intQuery(c *gin.Context, name string, defaultValue int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrs.Validation(name + " must be an integer!")
	}
	return value, nil
}
