package persist

import (
	"net/url"
	"strings"
)

const upperHex = "0123456789ABCDEF"

// EncodeComponent percent-encodes s the way browsers' encodeURIComponent
// does: ASCII letters, digits and -_.!~*'() pass through, every other byte
// of the UTF-8 encoding becomes %XX.
func EncodeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

// DecodeComponent reverses EncodeComponent. It rejects malformed escapes.
func DecodeComponent(s string) (string, error) {
	return url.PathUnescape(s)
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
