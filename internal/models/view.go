package models

import "time"

// UntrackableIP сентинел для случая когда адрес клиента определить нельзя.
const UntrackableIP = "untrackable"

// URLView одно событие открытия ссылки или чтения пасты.
// Заполняется ровно один из URLID/PasteID — инвариант проверяется
// сервисным слоем перед вставкой, схема его не навязывает.
// Запись создается один раз и никогда не мутирует.
type URLView struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"createdAt"` // одновременно момент просмотра

	URLID   *uint `json:"urlID" gorm:"index"`
	PasteID *uint `json:"pasteID" gorm:"index"`

	IP          string `json:"ip" gorm:"size:45;not null"`
	UserAgentID uint   `json:"userAgentID" gorm:"not null"`
	RefererID   *uint  `json:"refererID"` // nil — заголовок Referer отсутствовал
}

// UserAgent дедуплицированная строка User-Agent.
type UserAgent struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Value     string    `json:"value" gorm:"column:user_agent_value;uniqueIndex;not null"`
}

// Referer дедуплицированная строка Referer.
type Referer struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Value     string    `json:"value" gorm:"column:referer_value;uniqueIndex;not null"`
}
