package services

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
)

// URLRepository хранилище redirect-ссылок.
type URLRepository interface {
	Create(ctx context.Context, sURL *models.RedirectURL) error
	GetByID(ctx context.Context, id uint, includeDeleted bool) (*models.RedirectURL, error)
	GetAllByOwnerID(ctx context.Context, ownerID uint) ([]models.RedirectURL, error)
	Delete(ctx context.Context, sURL *models.RedirectURL) error
}

// PasteRepository хранилище паст.
type PasteRepository interface {
	Create(ctx context.Context, paste *models.PasteURL) error
	GetByID(ctx context.Context, id uint, includeDeleted bool) (*models.PasteURL, error)
	GetAllByOwnerID(ctx context.Context, ownerID uint) ([]models.PasteURL, error)
	Update(ctx context.Context, paste *models.PasteURL, columns map[string]any) error
	Delete(ctx context.Context, paste *models.PasteURL) error
}

// ViewRepository хранилище просмотров.
type ViewRepository interface {
	Create(ctx context.Context, view *models.URLView) error
	CountByTarget(ctx context.Context, target repositories.ViewTarget) (int64, error)
	ListSamplesByTarget(ctx context.Context, target repositories.ViewTarget) ([]repositories.ViewSample, error)
	DeleteByTarget(ctx context.Context, target repositories.ViewTarget) error
}

// DimRepository словарные таблицы user_agents/referers.
type DimRepository interface {
	GetOrCreateUserAgent(ctx context.Context, value string) (*models.UserAgent, error)
	GetOrCreateReferer(ctx context.Context, value string) (*models.Referer, error)
}
