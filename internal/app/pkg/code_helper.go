package pkg

import (
	"crypto/rand"
	"strings"
)

// CodePrefix is the brand prefix of every gift card code.
const CodePrefix = "LIKE"

// codeAlphabet holds 32 unambiguous symbols: uppercase letters and digits
// minus 0/O, 1/I. Codes are read out loud and typed by hand, so the
// confusable glyphs are excluded.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	codeGroups    = 3
	codeGroupSize = 4
)

// GenerateGiftCardCode returns a code of the form LIKE-XXXX-XXXX-XXXX drawn
// from crypto/rand. Twelve characters over a 32-symbol alphabet give 60 bits
// of entropy; uniqueness is still enforced at insert time, not assumed here.
func GenerateGiftCardCode() string {
	buf := make([]byte, codeGroups*codeGroupSize)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}

	var b strings.Builder
	b.WriteString(CodePrefix)
	for i, rb := range buf {
		if i%codeGroupSize == 0 {
			b.WriteByte('-')
		}
		b.WriteByte(codeAlphabet[int(rb)%len(codeAlphabet)])
	}
	return b.String()
}

// NormalizeGiftCardCode upper-cases and trims a user-supplied code so that
// lookups and transitions always hit the same stored value.
func NormalizeGiftCardCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
