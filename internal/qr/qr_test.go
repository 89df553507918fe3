package qr

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNG(t *testing.T) {
	data, err := PNG("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", DefaultSize)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
	assert.Equal(t, DefaultSize, img.Bounds().Dy())
}

func TestPNGEmptyContent(t *testing.T) {
	_, err := PNG("", DefaultSize)
	assert.Error(t, err)
}
