package theme

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrent_CatppuccinMocha(t *testing.T) {
	th := Current()

	require.Equal(t, "catppuccin-mocha", th.Name)
	require.Same(t, th, Current())

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"Primary (Mauve)", th.Primary, "#cba6f7"},
		{"Secondary (Blue)", th.Secondary, "#89b4fa"},
		{"Tertiary (Lavender)", th.Tertiary, "#b4befe"},
		{"BgBase", th.BgBase, "#1e1e2e"},
		{"FgBase (Text)", th.FgBase, "#cdd6f4"},
		{"Error (Red)", th.Error, "#f38ba8"},
		{"BorderDefault (Surface2)", th.BorderDefault, "#585b70"},
		{"BorderFocused (Mauve)", th.BorderFocused, "#cba6f7"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.got, tt.name)
	}
}

func TestStyles_Memoized(t *testing.T) {
	th := NewCatppuccinMocha()
	require.Same(t, th.S(), th.S())
}

func TestInterpolateColor(t *testing.T) {
	require.Equal(t, "#000000", InterpolateColor("#000000", "#ffffff", 0))
	require.Equal(t, "#ffffff", InterpolateColor("#000000", "#ffffff", 1))
	require.Equal(t, "#7f7f7f", InterpolateColor("#000000", "#ffffff", 0.5))
}

func TestParseHexColor(t *testing.T) {
	r, g, b := ParseHexColor("#cba6f7")
	require.Equal(t, [3]uint8{0xcb, 0xa6, 0xf7}, [3]uint8{r, g, b})

	r, g, b = ParseHexColor("bad")
	require.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
}

func TestApplyGradient(t *testing.T) {
	require.Empty(t, ApplyGradient("", "#000000", "#ffffff"))
	require.Contains(t, ApplyGradient("ab", "#000000", "#ffffff"), "a")
}
