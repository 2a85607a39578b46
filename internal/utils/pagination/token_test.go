package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	dueDate := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(Cursor{SortTime: dueDate, CreatedAt: createdAt, ID: "demand-1"})
	assert.NotEmpty(t, token, "Token should not be empty")

	c, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, dueDate.Equal(c.SortTime))
	assert.True(t, createdAt.Equal(c.CreatedAt))
	assert.Equal(t, "demand-1", c.ID)

	zero := Cursor{ID: "x"}
	c, err = DecodeToken(EncodeToken(zero))
	require.NoError(t, err)
	assert.True(t, c.SortTime.IsZero())
	assert.True(t, c.CreatedAt.IsZero())
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, err := DecodeToken("!!not-base64!!")
	assert.Error(t, err)

	_, err = DecodeToken("bm9waXBlcw==") // "nopipes"
	assert.Error(t, err)
}

func TestCursor_Before(t *testing.T) {
	day := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	c := Cursor{SortTime: day, CreatedAt: day, ID: "m"}

	assert.True(t, c.Before(day.Add(-time.Hour), day, "z"))
	assert.False(t, c.Before(day.Add(time.Hour), day, "a"))
	assert.True(t, c.Before(day, day.Add(-time.Second), "z"))
	assert.True(t, c.Before(day, day, "a"))
	assert.False(t, c.Before(day, day, "m"))
}
