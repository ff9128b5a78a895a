package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Slug 去掉重音后将非字母数字替换为下划线并转小写，空结果返回 fallback
func Slug(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	return strings.ToLower(unsafeChars.ReplaceAllString(plain, "_"))
}
