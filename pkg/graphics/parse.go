package graphics

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor converts a textual color to a Color. It accepts hex notation
// ("#RGB", "#RRGGBB", "#RRGGBBAA") and the SVG 1.1 color names from
// golang.org/x/image/colornames ("black", "steelblue", ...).
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("graphics: empty color")
	}

	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}

	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return RGBA8(c.R, c.G, c.B, c.A), nil
	}
	return 0, fmt.Errorf("graphics: unknown color name %q", s)
}

func parseHexColor(hex string) (Color, error) {
	switch len(hex) {
	case 3:
		// #RGB -> #RRGGBB
		var expanded strings.Builder
		for _, r := range hex {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		hex = expanded.String()
		fallthrough
	case 6:
		hex += "FF"
		fallthrough
	case 8:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("graphics: invalid hex color %q: %w", "#"+hex, err)
		}
		// Input is RRGGBBAA, storage is AARRGGBB.
		rgb := uint32(v) >> 8
		a := uint32(v) & 0xFF
		return Color(a<<24 | rgb), nil
	default:
		return 0, fmt.Errorf("graphics: invalid hex color length %d", len(hex))
	}
}
