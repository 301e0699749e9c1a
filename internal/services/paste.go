package services

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/fsdevblog/shortlinks/internal/apperrs"
	"github.com/fsdevblog/shortlinks/internal/hashid"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	pasteTextMinLength     = 10
	pasteTextMaxLength     = 4096
	pasteLanguageMaxLength = 20

	// DefaultPasteLanguage язык подсветки по умолчанию.
	DefaultPasteLanguage = "plain"
)

// PasteService операции над пастами.
type PasteService struct {
	pasteRepo PasteRepository
	codec     *hashid.Codec
	logger    *logrus.Entry
}

func NewPasteService(pasteRepo PasteRepository, codec *hashid.Codec, logger *logrus.Logger) *PasteService {
	return &PasteService{
		pasteRepo: pasteRepo,
		codec:     codec,
		logger:    logger.WithField("module", "service/paste"),
	}
}

func (p *PasteService) Hash(paste *models.PasteURL) string {
	hash, err := p.codec.Encode(paste.ID)
	if err != nil {
		p.logger.WithError(err).Errorf("failed to encode id %d", paste.ID)
		return ""
	}
	return hash
}

type CreatePasteArgs struct {
	Text          string
	Language      string
	StatsIsPublic bool
	BurnAfterRead bool
	OwnerID       *uint
}

func (p *PasteService) Create(ctx context.Context, args CreatePasteArgs) (*models.PasteURL, error) {
	if err := ValidatePasteText(args.Text); err != nil {
		return nil, err
	}
	language := args.Language
	if language == "" {
		language = DefaultPasteLanguage
	}
	if err := ValidatePasteLanguage(language); err != nil {
		return nil, err
	}

	expiration := time.Now().UTC().Add(models.DefaultExpirationTTL)
	paste := models.PasteURL{
		Link: models.Link{
			ExpirationDate: &expiration,
			StatsIsPublic:  args.StatsIsPublic,
			OwnerID:        args.OwnerID,
		},
		Content:       args.Text,
		Language:      language,
		BurnAfterRead: args.BurnAfterRead,
	}
	if err := p.pasteRepo.Create(ctx, &paste); err != nil {
		return nil, errors.Wrap(err, "create paste")
	}
	return &paste, nil
}

func (p *PasteService) GetByHash(ctx context.Context, hash string, includeDeleted bool) (*models.PasteURL, error) {
	id, decodeErr := p.codec.Decode(hash)
	if decodeErr != nil {
		return nil, apperrs.NotFound("url hash is invalid/not specified")
	}
	paste, err := p.pasteRepo.GetByID(ctx, id, includeDeleted)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrs.NotFound("url hash is invalid/not specified")
		}
		return nil, errors.Wrapf(err, "get paste by hash %s", hash)
	}
	return paste, nil
}

func (p *PasteService) GetAllByOwnerID(ctx context.Context, ownerID uint) ([]models.PasteURL, error) {
	pastes, err := p.pasteRepo.GetAllByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrapf(err, "get pastes by owner %d", ownerID)
	}
	return pastes, nil
}

// Patch меняет текст и/или язык пасты. nil аргумент — поле не меняется.
func (p *PasteService) Patch(ctx context.Context, paste *models.PasteURL, text, language *string) error {
	columns := make(map[string]any, 2)
	if text != nil {
		if err := ValidatePasteText(*text); err != nil {
			return err
		}
		columns["content"] = *text
		paste.Content = *text
	}
	if language != nil {
		if err := ValidatePasteLanguage(*language); err != nil {
			return err
		}
		columns["language"] = *language
		paste.Language = *language
	}
	if err := p.pasteRepo.Update(ctx, paste, columns); err != nil {
		return errors.Wrapf(err, "patch paste %d", paste.ID)
	}
	return nil
}

func (p *PasteService) Delete(ctx context.Context, paste *models.PasteURL) error {
	if err := p.pasteRepo.Delete(ctx, paste); err != nil {
		return errors.Wrapf(err, "delete paste %d", paste.ID)
	}
	return nil
}

// BurnIfNeeded удаляет пасту после успешного публичного чтения,
// если у нее взведен burn_after_read. Второе чтение увидит NotFound.
func (p *PasteService) BurnIfNeeded(ctx context.Context, paste *models.PasteURL) error {
	if !paste.BurnAfterRead {
		return nil
	}
	return p.Delete(ctx, paste)
}

func ValidatePasteText(text string) error {
	length := utf8.RuneCountInString(text)
	if length < pasteTextMinLength || length > pasteTextMaxLength {
		return apperrs.Validation("Paste text must be from 10 to 4096 characters length!")
	}
	return nil
}

func ValidatePasteLanguage(language string) error {
	length := utf8.RuneCountInString(language)
	if length == 0 || length > pasteLanguageMaxLength {
		return apperrs.Validation("Paste language must be from 1 to 20 characters length!")
	}
	return nil
}
