package hashid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	c, err := New("test-salt", 6)
	require.NoError(t, err)

	ids := []uint{1, 2, 7, 42, 1000, 999999, 1 << 30}
	for _, id := range ids {
		hash, encErr := c.Encode(id)
		require.NoError(t, encErr)
		assert.GreaterOrEqual(t, len(hash), 6)

		decoded, decErr := c.Decode(hash)
		require.NoError(t, decErr)
		assert.Equal(t, id, decoded)
	}
}

func TestCodec_DecodeGarbage(t *testing.T) {
	c := Must("test-salt", 6)

	garbage := []string{
		"",
		" ",
		"!!!",
		"кириллица",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"a b",
		"-1",
	}
	for _, g := range garbage {
		_, err := c.Decode(g)
		assert.ErrorIs(t, err, ErrInvalidIdentifier, "decode %q", g)
	}
}

func TestCodec_SaltSensitivity(t *testing.T) {
	a := Must("salt-a", 6)
	b := Must("salt-b", 6)

	for _, id := range []uint{1, 99, 12345} {
		hash, err := a.Encode(id)
		require.NoError(t, err)

		decoded, decErr := b.Decode(hash)
		if decErr == nil {
			// hashids не гарантирует ошибку на чужой соли,
			// но совпадение id означало бы сломанную соль.
			assert.NotEqual(t, id, decoded)
		}
	}
}

func TestCodec_UniqueHashes(t *testing.T) {
	c := Must("test-salt", 6)

	seen := make(map[string]uint)
	for id := uint(1); id <= 5000; id++ {
		hash, err := c.Encode(id)
		require.NoError(t, err)
		if prev, ok := seen[hash]; ok {
			t.Fatalf("hash collision: id %d and %d both encode to %s", prev, id, hash)
		}
		seen[hash] = id
	}
}
