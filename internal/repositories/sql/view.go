package sql

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ViewRepo репозиторий просмотров (таблица `url_views`).
type ViewRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewViewRepo(db *gorm.DB, logger *logrus.Logger) *ViewRepo {
	return &ViewRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/view"),
	}
}

// targetColumn возвращает имя FK колонки для варианта ссылки.
func targetColumn(target repositories.ViewTarget) (string, error) {
	switch target.Kind {
	case models.LinkKindRedirect:
		return "url_id", nil
	case models.LinkKindPaste:
		return "paste_id", nil
	default:
		return "", fmt.Errorf("unknown link kind %q", target.Kind)
	}
}

func (v *ViewRepo) Create(ctx context.Context, view *models.URLView) error {
	if err := v.db.WithContext(ctx).Create(view).Error; err != nil {
		v.logger.WithError(err).Errorf("failed to create record %+v", *view)
		return convertErrorType(err)
	}
	return nil
}

// CountByTarget общее количество просмотров ссылки.
func (v *ViewRepo) CountByTarget(ctx context.Context, target repositories.ViewTarget) (int64, error) {
	column, err := targetColumn(target)
	if err != nil {
		return 0, repositories.ErrUnknown
	}
	var count int64
	countErr := v.db.WithContext(ctx).
		Model(&models.URLView{}).
		Where(column+" = ?", target.ID).
		Count(&count).Error
	if countErr != nil {
		v.logger.WithError(countErr).Errorf("failed to count views for %s %d", target.Kind, target.ID)
		return 0, convertErrorType(countErr)
	}
	return count, nil
}

// ListSamplesByTarget выборка просмотров для агрегации: момент просмотра и
// развернутое значение referer (LEFT JOIN на таблицу referers).
func (v *ViewRepo) ListSamplesByTarget(ctx context.Context, target repositories.ViewTarget) ([]repositories.ViewSample, error) {
	column, err := targetColumn(target)
	if err != nil {
		return nil, repositories.ErrUnknown
	}

	var rows []struct {
		CreatedAt    time.Time `gorm:"column:created_at"`
		RefererValue *string
	}
	queryErr := v.db.WithContext(ctx).
		Table("url_views").
		Select("url_views.created_at AS created_at, referers.referer_value AS referer_value").
		Joins("LEFT JOIN referers ON referers.id = url_views.referer_id").
		Where("url_views."+column+" = ?", target.ID).
		Order("url_views.id").
		Scan(&rows).Error
	if queryErr != nil {
		v.logger.WithError(queryErr).Errorf("failed to list views for %s %d", target.Kind, target.ID)
		return nil, convertErrorType(queryErr)
	}

	samples := make([]repositories.ViewSample, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, repositories.ViewSample{
			ViewedAt: row.CreatedAt,
			Referer:  row.RefererValue,
		})
	}
	return samples, nil
}

// DeleteByTarget массово удаляет просмотры ссылки (очистка статистики владельцем).
func (v *ViewRepo) DeleteByTarget(ctx context.Context, target repositories.ViewTarget) error {
	column, err := targetColumn(target)
	if err != nil {
		return repositories.ErrUnknown
	}
	deleteErr := v.db.WithContext(ctx).
		Where(column+" = ?", target.ID).
		Delete(&models.URLView{}).Error
	if deleteErr != nil {
		v.logger.WithError(deleteErr).Errorf("failed to delete views for %s %d", target.Kind, target.ID)
		return convertErrorType(deleteErr)
	}
	return nil
}
