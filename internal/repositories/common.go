package repositories

import (
	"time"

	"github.com/fsdevblog/shortlinks/internal/models"
)

// ViewTarget адресует ссылку, к которой относятся просмотры.
// Kind определяет в какую из взаимоисключающих FK колонок (url_id/paste_id)
// попадет просмотр.
type ViewTarget struct {
	Kind models.LinkKind
	ID   uint
}

// ViewSample проекция одного просмотра для агрегации статистики.
// Referer nil — заголовок Referer отсутствовал.
type ViewSample struct {
	ViewedAt time.Time
	Referer  *string
}
