package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	c, err := ParseColor(markerFill, 0)
	require.NoError(t, err)
	require.Equal(t, color.NRGBA{R: 0x42, G: 0x99, B: 0xe1, A: 255}, c)
	c, err = ParseColor(axisStroke, 0)
	require.NoError(t, err)
	require.Equal(t, color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 255}, c)
	c, err = ParseColor(pairStroke, pairStrokeOpacity)
	require.NoError(t, err)
	require.Equal(t, uint8(204), c.A)
}

func TestParseColor_Invalid(t *testing.T) {
	for _, hex := range []string{"", "4299e1", "#12", "#gggggg", "#1234567"} {
		_, err := ParseColor(hex, 0)
		require.Error(t, err, hex)
	}
}
