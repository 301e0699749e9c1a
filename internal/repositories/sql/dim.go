package sql

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DimRepo get-or-create для словарных таблиц user_agents/referers.
// Вставка идет через ON CONFLICT DO NOTHING по уникальной колонке значения,
// поэтому конкурентное первое обращение не плодит дубликатов.
type DimRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewDimRepo(db *gorm.DB, logger *logrus.Logger) *DimRepo {
	return &DimRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/dim"),
	}
}

func (d *DimRepo) GetOrCreateUserAgent(ctx context.Context, value string) (*models.UserAgent, error) {
	ua := models.UserAgent{Value: value}
	err := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_agent_value"}},
			DoNothing: true,
		}).
		Create(&ua).Error
	if err != nil {
		d.logger.WithError(err).Errorf("failed to upsert user agent %q", value)
		return nil, convertErrorType(err)
	}
	// При конфликте вставка ничего не вернула — перечитываем по значению.
	if ua.ID == 0 {
		if err := d.db.WithContext(ctx).Where("user_agent_value = ?", value).First(&ua).Error; err != nil {
			d.logger.WithError(err).Errorf("failed to get user agent %q", value)
			return nil, convertErrorType(err)
		}
	}
	return &ua, nil
}

func (d *DimRepo) GetOrCreateReferer(ctx context.Context, value string) (*models.Referer, error) {
	ref := models.Referer{Value: value}
	err := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "referer_value"}},
			DoNothing: true,
		}).
		Create(&ref).Error
	if err != nil {
		d.logger.WithError(err).Errorf("failed to upsert referer %q", value)
		return nil, convertErrorType(err)
	}
	if ref.ID == 0 {
		if err := d.db.WithContext(ctx).Where("referer_value = ?", value).First(&ref).Error; err != nil {
			d.logger.WithError(err).Errorf("failed to get referer %q", value)
			return nil, convertErrorType(err)
		}
	}
	return &ref, nil
}
