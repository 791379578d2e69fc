package utils

import (
	"crypto/md5"
	"fmt"
)

// HashString returns a hex md5 digest. Used for cache key derivation only.
func HashString(input string) string {
	hash := md5.Sum([]byte(input))
	return fmt.Sprintf("%x", hash)
}

// TranslationKey derives a cache key for a (source, target, text) triple.
func TranslationKey(source, target, text string) string {
	return HashString(source + "|" + target + "|" + text)
}
