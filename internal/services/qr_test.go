package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQR(t *testing.T) {
	t.Run("svg", func(t *testing.T) {
		body, contentType, err := GenerateQR("https://example.com/abc123", QRFormatSVG, DefaultQRScale, DefaultQRQuietZone)
		require.NoError(t, err)
		assert.Equal(t, "image/svg+xml", contentType)
		assert.Contains(t, string(body), "<svg")
	})

	t.Run("png", func(t *testing.T) {
		body, contentType, err := GenerateQR("https://example.com/abc123", QRFormatPNG, DefaultQRScale, DefaultQRQuietZone)
		require.NoError(t, err)
		assert.Equal(t, "image/png", contentType)
		// PNG сигнатура.
		require.Greater(t, len(body), 8)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, body[:4])
	})

	t.Run("txt", func(t *testing.T) {
		body, contentType, err := GenerateQR("https://example.com/abc123", QRFormatTXT, DefaultQRScale, DefaultQRQuietZone)
		require.NoError(t, err)
		assert.Equal(t, "text/plain; charset=utf-8", contentType)
		assert.NotEmpty(t, body)
	})
}

func TestValidateQRParams(t *testing.T) {
	require.NoError(t, ValidateQRParams(QRFormatSVG, 1, 0))
	require.NoError(t, ValidateQRParams(QRFormatPNG, 8, 25))

	require.Error(t, ValidateQRParams("jpeg", DefaultQRScale, DefaultQRQuietZone))
	require.Error(t, ValidateQRParams(QRFormatSVG, 0, DefaultQRQuietZone))
	require.Error(t, ValidateQRParams(QRFormatSVG, 9, DefaultQRQuietZone))
	require.Error(t, ValidateQRParams(QRFormatSVG, DefaultQRScale, -1))
	require.Error(t, ValidateQRParams(QRFormatSVG, DefaultQRScale, 26))
}
