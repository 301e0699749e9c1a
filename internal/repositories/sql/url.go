package sql

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// URLRepo репозиторий redirect-ссылок (таблица `redirect_urls`).
type URLRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewURLRepo(db *gorm.DB, logger *logrus.Logger) *URLRepo {
	return &URLRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/url"),
	}
}

func (u *URLRepo) Create(ctx context.Context, sURL *models.RedirectURL) error {
	if err := u.db.WithContext(ctx).Create(sURL).Error; err != nil {
		u.logger.WithError(err).Errorf("failed to create record %+v", *sURL)
		return convertErrorType(err)
	}
	return nil
}

// GetByID находит redirect-ссылку по числовому id.
// Записи с is_deleted = true по умолчанию не видны.
func (u *URLRepo) GetByID(ctx context.Context, id uint, includeDeleted bool) (*models.RedirectURL, error) {
	var sURL models.RedirectURL
	query := u.db.WithContext(ctx).Where("id = ?", id)
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	if err := query.First(&sURL).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		u.logger.WithError(err).Errorf("failed to get record by id %d", id)
		return nil, convertErrorType(err)
	}
	return &sURL, nil
}

func (u *URLRepo) GetAllByOwnerID(ctx context.Context, ownerID uint) ([]models.RedirectURL, error) {
	var urls []models.RedirectURL
	err := u.db.WithContext(ctx).
		Where("owner_id = ? AND is_deleted = ?", ownerID, false).
		Order("id").
		Find(&urls).Error
	if err != nil {
		u.logger.WithError(err).Errorf("failed to get records by owner id %d", ownerID)
		return nil, convertErrorType(err)
	}
	return urls, nil
}

// Delete мягкое удаление: ставит флаг is_deleted, просмотры не трогает.
func (u *URLRepo) Delete(ctx context.Context, sURL *models.RedirectURL) error {
	sURL.IsDeleted = true
	if err := u.db.WithContext(ctx).Model(sURL).Update("is_deleted", true).Error; err != nil {
		u.logger.WithError(err).Errorf("failed to delete record %d", sURL.ID)
		return convertErrorType(err)
	}
	return nil
}
