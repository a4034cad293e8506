package util

import (
	"fmt"
	"strings"
)

// ParseHexColor parses a hex color string (#RRGGBB) into RGB components.
func ParseHexColor(hex string) (r, g, b uint8, err error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color length: %s", hex)
	}

	var ri, gi, bi int
	_, err = fmt.Sscanf(hex, "%02x%02x%02x", &ri, &gi, &bi)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %s", hex)
	}

	return uint8(ri), uint8(gi), uint8(bi), nil
}

// HexToRGBA converts a hex color string (#RRGGBB) into normalized RGBA
// components suitable for a GL color uniform. Alpha is always 1.
func HexToRGBA(hex string) ([4]float32, error) {
	r, g, b, err := ParseHexColor(hex)
	if err != nil {
		return [4]float32{}, err
	}
	return [4]float32{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}, nil
}
