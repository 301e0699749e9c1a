package controllers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/fsdevblog/shortlinks/internal/apperrs"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/fsdevblog/shortlinks/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PastesController struct {
	pasteService *services.PasteService
	statsService *services.StatsService
	baseURL      *url.URL
	logger       *logrus.Entry
}

func NewPastesController(pasteService *services.PasteService, statsService *services.StatsService, baseURL *url.URL, logger *logrus.Logger) *PastesController {
	return &PastesController{
		pasteService: pasteService,
		statsService: statsService,
		baseURL:      baseURL,
		logger:       logger.WithField("module", "controller/pastes"),
	}
}

type createPasteRequest struct {
	Text          string `json:"text"`
	Language      string `json:"language"`
	StatsIsPublic bool   `json:"stats_is_public"`
	BurnAfterRead bool   `json:"burn_after_read"`
}

func (p *PastesController) Create(c *gin.Context) {
	var req createPasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrs.Validation("text is required!"))
		return
	}

	paste, err := p.pasteService.Create(c.Request.Context(), services.CreatePasteArgs{
		Text:          req.Text,
		Language:      req.Language,
		StatsIsPublic: req.StatsIsPublic,
		BurnAfterRead: req.BurnAfterRead,
		OwnerID:       currentUserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{
		"paste": serializePaste(paste, p.pasteService.Hash(paste), p.baseURL, time.Now()),
	})
}

// List все пасты владельца. Маршрут закрыт required-auth миддлваре.
func (p *PastesController) List(c *gin.Context) {
	ownerID := currentUserID(c)
	if ownerID == nil {
		respondError(c, apperrs.AuthRequired("Auth is required!"))
		return
	}

	pastes, err := p.pasteService.GetAllByOwnerID(c.Request.Context(), *ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	serialized := make([]gin.H, 0, len(pastes))
	for i := range pastes {
		serialized = append(serialized, serializePaste(&pastes[i], p.pasteService.Hash(&pastes[i]), p.baseURL, now))
	}
	respondSuccess(c, http.StatusOK, gin.H{"pastes": serialized})
}

// Read чтение пасты: записывает просмотр, после ответа сжигает пасту
// если у нее взведен burn_after_read. Ответ формируется до сжигания.
func (p *PastesController) Read(c *gin.Context) {
	paste, err := p.fetch(c, false, false)
	if err != nil {
		respondError(c, err)
		return
	}

	target := repositories.ViewTarget{Kind: models.LinkKindPaste, ID: paste.ID}
	_, viewErr := p.statsService.RecordView(c.Request.Context(), target, clientIP(c), c.Request.UserAgent(), refererFromRequest(c))
	if viewErr != nil {
		p.logger.WithError(viewErr).Warnf("failed to record view for paste %d", paste.ID)
	}

	body := serializePaste(paste, p.pasteService.Hash(paste), p.baseURL, time.Now())

	if burnErr := p.pasteService.BurnIfNeeded(c.Request.Context(), paste); burnErr != nil {
		respondError(c, burnErr)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"paste": body})
}

// Delete мягкое удаление, только владельцем. Истекшую пасту удалить можно.
func (p *PastesController) Delete(c *gin.Context) {
	paste, err := p.fetch(c, true, false)
	if err != nil {
		respondError(c, err)
		return
	}
	if ownErr := services.ValidateOwner(&paste.Link, currentUserID(c)); ownErr != nil {
		respondError(c, ownErr)
		return
	}
	if delErr := p.pasteService.Delete(c.Request.Context(), paste); delErr != nil {
		respondError(c, delErr)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{})
}

type patchPasteRequest struct {
	Text     *string `json:"text"`
	Language *string `json:"language"`
}

// Patch меняет текст и/или язык пасты. Только владельцем.
func (p *PastesController) Patch(c *gin.Context) {
	paste, err := p.fetch(c, false, false)
	if err != nil {
		respondError(c, err)
		return
	}
	if ownErr := services.ValidateOwner(&paste.Link, currentUserID(c)); ownErr != nil {
		respondError(c, ownErr)
		return
	}

	var req patchPasteRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondError(c, apperrs.Validation("request body is invalid!"))
		return
	}

	if patchErr := p.pasteService.Patch(c.Request.Context(), paste, req.Text, req.Language); patchErr != nil {
		respondError(c, patchErr)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{
		"paste": serializePaste(paste, p.pasteService.Hash(paste), p.baseURL, time.Now()),
	})
}

// Stats статистика пасты: владельцу либо всем, если она публична.
// После мягкого удаления (включая сожженные пасты) просмотры сохраняются
// и остаются доступны владельцу, пока он их явно не очистит.
func (p *PastesController) Stats(c *gin.Context) {
	paste, err := p.fetch(c, true, true)
	if err != nil {
		respondError(c, err)
		return
	}
	if paste.IsDeleted {
		if ownErr := services.ValidateOwner(&paste.Link, currentUserID(c)); ownErr != nil {
			respondError(c, ownErr)
			return
		}
	} else {
		if expErr := services.ValidateNotExpired(&paste.Link, time.Now(), false); expErr != nil {
			respondError(c, expErr)
			return
		}
		if !services.StatsVisible(&paste.Link, currentUserID(c)) {
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

	target := repositories.ViewTarget{Kind: models.LinkKindPaste, ID: paste.ID}
	summary, sumErr := p.statsService.Summary(c.Request.Context(), target, referersAs, datesAs)
	if sumErr != nil {
		respondError(c, sumErr)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"views": serializeStats(summary)})
}

// ClearStats удаляет накопленные просмотры пасты. Только владельцем,
// в том числе после мягкого удаления самой пасты.
func (p *PastesController) ClearStats(c *gin.Context) {
	paste, err := p.fetch(c, true, true)
	if err != nil {
		respondError(c, err)
		return
	}
	if ownErr := services.ValidateOwner(&paste.Link, currentUserID(c)); ownErr != nil {
		respondError(c, ownErr)
		return
	}

	target := repositories.ViewTarget{Kind: models.LinkKindPaste, ID: paste.ID}
	if clearErr := p.statsService.ClearViews(c.Request.Context(), target); clearErr != nil {
		respondError(c, clearErr)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{})
}

func (p *PastesController) fetch(c *gin.Context, allowExpired, includeDeleted bool) (*models.PasteURL, error) {
	paste, err := p.pasteService.GetByHash(c.Request.Context(), c.Param("hash"), includeDeleted)
	if err != nil {
		return nil, err
	}
	if expErr := services.ValidateNotExpired(&paste.Link, time.Now(), allowExpired); expErr != nil {
		return nil, expErr
	}
	return paste, nil
}
