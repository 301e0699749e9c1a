package hashid

import (
	"errors"

	hashids "github.com/speps/go-hashids/v2"
)

// ErrInvalidIdentifier возвращается когда хеш не декодируется ровно в один id.
// Мусорные строки, хеши с чужой солью и мульти-сегментные хеши дают одну и ту же ошибку.
var ErrInvalidIdentifier = errors.New("[hashid]: invalid identifier")

// DefaultMinLength минимальная длина публичного хеша.
// Это часть формата выданных ссылок, менять вместе с солью нельзя.
const DefaultMinLength = 6

// Codec обратимое преобразование числового id записи в короткий публичный хеш.
// Соль задается один раз при старте процесса, смена соли инвалидирует все выданные хеши.
type Codec struct {
	h *hashids.HashID
}

func New(salt string, minLength int) (*Codec, error) {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = minLength

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, err
	}
	return &Codec{h: h}, nil
}

// Must создает кодек или паникует. Ошибка тут возможна только при неверной конфигурации.
func Must(salt string, minLength int) *Codec {
	c, err := New(salt, minLength)
	if err != nil {
		panic(err)
	}
	return c
}

// Encode кодирует id записи в публичный хеш.
func (c *Codec) Encode(id uint) (string, error) {
	hash, err := c.h.EncodeInt64([]int64{int64(id)})
	if err != nil {
		return "", err
	}
	return hash, nil
}

// Decode декодирует публичный хеш обратно в id записи.
// Любой хеш который не декодируется ровно в одно неотрицательное число
// отклоняется с ErrInvalidIdentifier.
func (c *Codec) Decode(hash string) (uint, error) {
	if hash == "" {
		return 0, ErrInvalidIdentifier
	}
	ids, err := c.h.DecodeInt64WithError(hash)
	if err != nil || len(ids) != 1 || ids[0] < 0 {
		return 0, ErrInvalidIdentifier
	}
	return uint(ids[0]), nil
}
