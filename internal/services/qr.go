package services

import (
	"fmt"
	"strings"

	"github.com/fsdevblog/shortlinks/internal/apperrs"
	qrcode "github.com/skip2/go-qrcode"
)

// Параметры QR-кода и их допустимые диапазоны.
const (
	QRFormatSVG = "svg"
	QRFormatPNG = "png"
	QRFormatTXT = "txt"

	qrScaleMin = 1
	qrScaleMax = 8

	qrQuietZoneMin = 0
	qrQuietZoneMax = 25

	// DefaultQRScale и DefaultQRQuietZone значения по умолчанию.
	DefaultQRScale     = 3
	DefaultQRQuietZone = 4
)

// GenerateQR кодирует текст в QR-код заданного формата.
// Возвращает тело ответа и content type.
func GenerateQR(text, format string, scale, quietZone int) ([]byte, string, error) {
	if err := ValidateQRParams(format, scale, quietZone); err != nil {
		return nil, "", err
	}

	code, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, "", fmt.Errorf("generate qr code: %w", err)
	}
	code.DisableBorder = quietZone == 0

	switch format {
	case QRFormatTXT:
		return []byte(code.ToSmallString(false)), "text/plain; charset=utf-8", nil
	case QRFormatPNG:
		png, pngErr := code.PNG(-scale)
		if pngErr != nil {
			return nil, "", fmt.Errorf("render qr png: %w", pngErr)
		}
		return png, "image/png", nil
	case QRFormatSVG:
		return renderQRSVG(code.Bitmap(), scale), "image/svg+xml", nil
	default:
		// Недостижимо после валидации.
		return nil, "", apperrs.Validation("result_type is invalid!")
	}
}

// ValidateQRParams проверяет формат и диапазоны параметров.
func ValidateQRParams(format string, scale, quietZone int) error {
	switch format {
	case QRFormatSVG, QRFormatPNG, QRFormatTXT:
	default:
		return apperrs.Validation("result_type must be one of: svg, png, txt!")
	}
	if scale < qrScaleMin || scale > qrScaleMax {
		return apperrs.Validation("scale must be an integer from 1 to 8!")
	}
	if quietZone < qrQuietZoneMin || quietZone > qrQuietZoneMax {
		return apperrs.Validation("quiet_zone must be an integer from 0 to 25!")
	}
	return nil
}

// renderQRSVG рисует битмап кода прямоугольниками размером scale.
func renderQRSVG(bitmap [][]bool, scale int) []byte {
	size := len(bitmap) * scale

	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		size, size, size, size)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#ffffff"/>`, size, size)
	for y, row := range bitmap {
		for x, filled := range row {
			if filled {
				fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="#000000"/>`,
					x*scale, y*scale, scale, scale)
			}
		}
	}
	b.WriteString(`</svg>`)
	return []byte(b.String())
}
