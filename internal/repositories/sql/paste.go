package sql

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PasteRepo репозиторий паст (таблица `paste_urls`).
type PasteRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewPasteRepo(db *gorm.DB, logger *logrus.Logger) *PasteRepo {
	return &PasteRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/paste"),
	}
}

func (p *PasteRepo) Create(ctx context.Context, paste *models.PasteURL) error {
	if err := p.db.WithContext(ctx).Create(paste).Error; err != nil {
		p.logger.WithError(err).Errorf("failed to create record %+v", *paste)
		return convertErrorType(err)
	}
	return nil
}

func (p *PasteRepo) GetByID(ctx context.Context, id uint, includeDeleted bool) (*models.PasteURL, error) {
	var paste models.PasteURL
	query := p.db.WithContext(ctx).Where("id = ?", id)
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	if err := query.First(&paste).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		p.logger.WithError(err).Errorf("failed to get record by id %d", id)
		return nil, convertErrorType(err)
	}
	return &paste, nil
}

func (p *PasteRepo) GetAllByOwnerID(ctx context.Context, ownerID uint) ([]models.PasteURL, error) {
	var pastes []models.PasteURL
	err := p.db.WithContext(ctx).
		Where("owner_id = ? AND is_deleted = ?", ownerID, false).
		Order("id").
		Find(&pastes).Error
	if err != nil {
		p.logger.WithError(err).Errorf("failed to get records by owner id %d", ownerID)
		return nil, convertErrorType(err)
	}
	return pastes, nil
}

// Update обновляет только переданные колонки (text/language).
func (p *PasteRepo) Update(ctx context.Context, paste *models.PasteURL, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}
	if err := p.db.WithContext(ctx).Model(paste).Updates(columns).Error; err != nil {
		p.logger.WithError(err).Errorf("failed to update record %d", paste.ID)
		return convertErrorType(err)
	}
	return nil
}

func (p *PasteRepo) Delete(ctx context.Context, paste *models.PasteURL) error {
	paste.IsDeleted = true
	if err := p.db.WithContext(ctx).Model(paste).Update("is_deleted", true).Error; err != nil {
		p.logger.WithError(err).Errorf("failed to delete record %d", paste.ID)
		return convertErrorType(err)
	}
	return nil
}
