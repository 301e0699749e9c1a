package sql

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepo репозиторий локальных пользователей (таблица `users`).
type UserRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewUserRepo(db *gorm.DB, logger *logrus.Logger) *UserRepo {
	return &UserRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/user"),
	}
}

// GetOrCreate находит локального пользователя по subject id внешнего SSO,
// создавая его при первом обращении. Upsert по уникальной колонке user_id.
func (u *UserRepo) GetOrCreate(ctx context.Context, externalID uint) (*models.User, error) {
	user := models.User{ExternalID: externalID}
	err := u.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&user).Error
	if err != nil {
		u.logger.WithError(err).Errorf("failed to upsert user %d", externalID)
		return nil, convertErrorType(err)
	}
	if user.ID == 0 {
		if err := u.db.WithContext(ctx).Where("user_id = ?", externalID).First(&user).Error; err != nil {
			u.logger.WithError(err).Errorf("failed to get user %d", externalID)
			return nil, convertErrorType(err)
		}
	}
	return &user, nil
}
