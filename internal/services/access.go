package services

import (
	"time"

	"github.com/fsdevblog/shortlinks/internal/apperrs"
	"github.com/fsdevblog/shortlinks/internal/models"
)

// Правила доступа к ссылкам. Чистые функции без состояния,
// вся информация приходит параметрами.

// ValidateNotExpired проверяет что ссылка не истекла на момент now.
// Истекшей считается ссылка строго ПОСЛЕ expiration_date: точное равенство
// еще валидно. allowExpired нужен владельцу чтобы удалить истекшую ссылку.
func ValidateNotExpired(l *models.Link, now time.Time, allowExpired bool) error {
	if !allowExpired && l.IsExpired(now) {
		return apperrs.Expired("url is expired!")
	}
	return nil
}

// ValidateOwner проверяет что ссылкой владеет viewerID.
// Анонимный зритель (nil) владельцем не считается никогда, даже для
// анонимно созданных ссылок: анонимное создание лишает прав на управление.
func ValidateOwner(l *models.Link, viewerID *uint) error {
	if viewerID == nil || l.OwnerID == nil || *viewerID != *l.OwnerID {
		return apperrs.Forbidden("you are not the owner of this url!")
	}
	return nil
}

// StatsVisible доступна ли статистика ссылки зрителю:
// либо она публична, либо зритель — владелец.
func StatsVisible(l *models.Link, viewerID *uint) bool {
	if l.StatsIsPublic {
		return true
	}
	return ValidateOwner(l, viewerID) == nil
}
