package colour

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// IsValidHex reports whether s is exactly three or six hexadecimal digits.
// A leading '#' is not accepted.
func IsValidHex(s string) bool {
	if len(s) != 3 && len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// NormaliseHex cleans a user supplied colour token: surrounding whitespace
// and every '#' are removed and the result is lowercased. The result is not
// validated.
func NormaliseHex(token string) string {
	token = strings.TrimSpace(token)
	token = strings.ReplaceAll(token, "#", "")
	return strings.ToLower(token)
}

// ParseHex decodes a three or six digit hex colour (without '#') into RGB.
func ParseHex(hex string) (RGB, error) {
	if !IsValidHex(hex) {
		return RGB{}, fmt.Errorf("invalid hex colour %q", hex)
	}
	c, err := colorful.Hex("#" + strings.ToLower(hex))
	if err != nil {
		return RGB{}, fmt.Errorf("failed to decode hex colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}
