package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxSourceLength bounds the size of a formula accepted from untrusted
// callers such as the HTTP service.
const MaxSourceLength = 64 << 10

// ValidateSource checks formula markup received from outside the process.
//
//   - No empty sources
//   - Valid UTF-8
//   - No control characters other than tab, newline and carriage return
//   - At most maxLen bytes; maxLen <= 0 selects [MaxSourceLength]
//
// Markup errors are reported later by the parser.
func ValidateSource(src string, maxLen int) error {
	if maxLen <= 0 {
		maxLen = MaxSourceLength
	}
	if strings.TrimSpace(src) == "" {
		return New(ErrCodeInvalidInput, "formula cannot be empty")
	}
	if len(src) > maxLen {
		return New(ErrCodeInvalidInput, "formula too long (max %d bytes)", maxLen)
	}
	if !utf8.ValidString(src) {
		return New(ErrCodeInvalidInput, "formula is not valid UTF-8")
	}
	for _, r := range src {
		if r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "formula contains control character %U", r)
		}
	}
	return nil
}

// ValidateCacheKey validates a cache key before it is used as a file or
// document name. Keys are produced by cache.Keyer; anything else is
// rejected.
func ValidateCacheKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidPath, "cache key cannot be empty")
	}

	const maxKeyLength = 200
	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidPath, "cache key too long (max %d characters)", maxKeyLength)
	}

	for _, r := range key {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "cache key contains invalid characters")
		}
	}

	if strings.HasPrefix(key, "/") {
		return New(ErrCodeInvalidPath, "cache key must be relative (cannot start with /)")
	}
	if strings.Contains(key, "..") {
		return New(ErrCodeInvalidPath, "cache key cannot contain path traversal sequences (..)")
	}
	if strings.Contains(key, "\\") {
		return New(ErrCodeInvalidPath, "cache key cannot contain backslashes")
	}
	return nil
}

// ValidateURL validates a backend URL for the given schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes %s", strings.Join(schemes, ", "))
}
