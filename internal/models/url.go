package models

import "time"

// LinkKind тег варианта короткой ссылки.
type LinkKind string

const (
	LinkKindRedirect LinkKind = "redirect"
	LinkKindPaste    LinkKind = "paste"
)

// DefaultExpirationTTL срок жизни ссылки по умолчанию.
const DefaultExpirationTTL = 14 * 24 * time.Hour

// Link общие поля обоих вариантов ссылки (redirect и paste).
// Публичный хеш не хранится, он вычисляется из ID кодеком при чтении.
type Link struct {
	ID             uint       `json:"id" gorm:"primarykey"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	ExpirationDate *time.Time `json:"expirationDate"` // nil — не истекает никогда
	IsDeleted      bool       `json:"isDeleted" gorm:"not null;default:false"`
	StatsIsPublic  bool       `json:"statsIsPublic" gorm:"not null;default:false"`
	OwnerID        *uint      `json:"ownerID" gorm:"index"` // nil — создана анонимно
}

// IsExpired проверяет истекла ли ссылка на момент now.
// Ровно в момент expiration_date ссылка еще НЕ истекла.
func (l *Link) IsExpired(now time.Time) bool {
	return l.ExpirationDate != nil && now.After(*l.ExpirationDate)
}

// RedirectURL короткая ссылка с редиректом на внешний URL.
type RedirectURL struct {
	Link
	Redirect string `json:"redirect" gorm:"not null"`
}

func (RedirectURL) Kind() LinkKind { return LinkKindRedirect }

// PasteURL короткая ссылка с текстовым содержимым.
type PasteURL struct {
	Link
	Content       string `json:"text" gorm:"size:4096;not null"`
	Language      string `json:"language" gorm:"not null;default:plain"`
	BurnAfterRead bool   `json:"burnAfterRead" gorm:"not null;default:false"`
}

func (PasteURL) Kind() LinkKind { return LinkKindPaste }
