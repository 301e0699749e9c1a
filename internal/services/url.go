package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/fsdevblog/shortlinks/internal/apperrs"
	"github.com/fsdevblog/shortlinks/internal/hashid"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// urlRegex допустимые значения длинного URL: http(s) ссылки (схема опциональна),
// mailto: и tel:.
var urlRegex = regexp.MustCompile(`^((https://|http://|)([\w_-]+\.){1,3}\w{1,10}(/.*)?|mailto:.*@.*|tel:.*)$`)

// URLService операции над redirect-ссылками.
type URLService struct {
	urlRepo URLRepository
	codec   *hashid.Codec
	logger  *logrus.Entry
}

func NewURLService(urlRepo URLRepository, codec *hashid.Codec, logger *logrus.Logger) *URLService {
	return &URLService{
		urlRepo: urlRepo,
		codec:   codec,
		logger:  logger.WithField("module", "service/url"),
	}
}

// Hash публичный хеш ссылки, вычисляется из id и не хранится.
func (u *URLService) Hash(sURL *models.RedirectURL) string {
	hash, err := u.codec.Encode(sURL.ID)
	if err != nil {
		// Кодек не умеет падать на выданных базой id, сюда можно попасть
		// только при сломанной конфигурации.
		u.logger.WithError(err).Errorf("failed to encode id %d", sURL.ID)
		return ""
	}
	return hash
}

// Create валидирует и нормализует длинный URL, создает запись со сроком
// жизни 14 дней по умолчанию.
func (u *URLService) Create(ctx context.Context, rawURL string, statsIsPublic bool, ownerID *uint) (*models.RedirectURL, error) {
	normalized, validateErr := ValidateLongURL(rawURL)
	if validateErr != nil {
		return nil, validateErr
	}

	expiration := time.Now().UTC().Add(models.DefaultExpirationTTL)
	sURL := models.RedirectURL{
		Link: models.Link{
			ExpirationDate: &expiration,
			StatsIsPublic:  statsIsPublic,
			OwnerID:        ownerID,
		},
		Redirect: normalized,
	}
	if err := u.urlRepo.Create(ctx, &sURL); err != nil {
		return nil, errors.Wrap(err, "create short url")
	}
	return &sURL, nil
}

// GetByHash декодирует хеш и достает запись. Невалидный хеш и отсутствующая
// запись дают одинаковый NotFound — наружу их различать нельзя.
func (u *URLService) GetByHash(ctx context.Context, hash string, includeDeleted bool) (*models.RedirectURL, error) {
	id, decodeErr := u.codec.Decode(hash)
	if decodeErr != nil {
		return nil, apperrs.NotFound("url hash is invalid/not specified")
	}
	sURL, err := u.urlRepo.GetByID(ctx, id, includeDeleted)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrs.NotFound("url hash is invalid/not specified")
		}
		return nil, errors.Wrapf(err, "get short url by hash %s", hash)
	}
	return sURL, nil
}

func (u *URLService) GetAllByOwnerID(ctx context.Context, ownerID uint) ([]models.RedirectURL, error) {
	urls, err := u.urlRepo.GetAllByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrapf(err, "get short urls by owner %d", ownerID)
	}
	return urls, nil
}

// Delete мягкое удаление. Просмотры остаются и чистятся отдельной операцией.
func (u *URLService) Delete(ctx context.Context, sURL *models.RedirectURL) error {
	if err := u.urlRepo.Delete(ctx, sURL); err != nil {
		return errors.Wrapf(err, "delete short url %d", sURL.ID)
	}
	return nil
}

// ValidateLongURL проверяет длинный URL и возвращает его нормализованную
// форму: ссылка без явной схемы получает https://.
func ValidateLongURL(rawURL string) (string, error) {
	if rawURL == "" {
		return "", apperrs.Validation("url is required!")
	}
	if !urlRegex.MatchString(rawURL) {
		return "", apperrs.Validation("url is invalid!")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") &&
		!strings.HasPrefix(rawURL, "mailto:") && !strings.HasPrefix(rawURL, "tel:") {
		rawURL = "https://" + rawURL
	}
	return rawURL, nil
}
