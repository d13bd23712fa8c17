package services

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ValidateImage reports whether s is decodable base64 under lenient rules:
// characters outside the standard alphabet are skipped, and decoding stops at
// the first completed padding sequence, so trailing data and surplus '=' are
// ignored. The input must be ASCII. A dangling quantum with one data
// character, or an unpadded partial quantum, is rejected.
func ValidateImage(s string) error {
	if _, err := decodeBase64Lenient(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return nil
}

func decodeBase64Lenient(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)*3/4)
	var (
		quad int
		pads int
		left byte
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= utf8.RuneSelf {
			return nil, fmt.Errorf("non-ASCII character at byte %d", i)
		}
		if c == '=' {
			if quad >= 2 {
				pads++
				if quad+pads >= 4 {
					return out, nil
				}
			}
			continue
		}

		v, ok := base64Value(c)
		if !ok {
			continue
		}
		pads = 0

		switch quad {
		case 0:
			left = v
		case 1:
			out = append(out, left<<2|v>>4)
			left = v & 0x0f
		case 2:
			out = append(out, left<<4|v>>2)
			left = v & 0x03
		case 3:
			out = append(out, left<<6|v)
			left = 0
		}
		quad = (quad + 1) % 4
	}

	switch quad {
	case 0:
		return out, nil
	case 1:
		return nil, errors.New("number of data characters is 1 more than a multiple of 4")
	default:
		return nil, errors.New("incorrect padding")
	}
}

func base64Value(c byte) (byte, bool) {
	switch {
	case c >= 'A' && c <= 'Z':
		return c - 'A', true
	case c >= 'a' && c <= 'z':
		return c - 'a' + 26, true
	case c >= '0' && c <= '9':
		return c - '0' + 52, true
	case c == '+':
		return 62, true
	case c == '/':
		return 63, true
	}
	return 0, false
}
