package storage

import (
	"regexp"
	"strings"
)

var (
	// https://{bucket}.s3.{region}.amazonaws.com/{key}
	virtualHostedPattern = regexp.MustCompile(`^https?://([a-z0-9][a-z0-9.\-]*)\.s3[.\-]([a-z0-9\-]+)\.amazonaws\.com/(.+)$`)
	// https://s3.{region}.amazonaws.com/{bucket}/{key}
	pathStylePattern = regexp.MustCompile(`^https?://s3[.\-]([a-z0-9\-]+)\.amazonaws\.com/([^/]+)/(.+)$`)
)

// keyPrefixes are the top-level folders used for uploaded objects. A bare
// value with one of these prefixes is already a storage key.
var keyPrefixes = []string{"courses/", "exams/", "materials/", "certificates/"}

// ExtractStorageKey classifies a stored content string and returns the object
// storage key it references, or "" when the value is an external link (for
// example YouTube), plain text, or empty. It is a pure function and never
// fails on malformed input.
func ExtractStorageKey(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	// A previously signed URL carries query parameters; strip them and
	// classify the remainder. The stripped string has no "?" left, so this
	// recurses at most once.
	if idx := strings.Index(raw, "?"); idx >= 0 {
		return ExtractStorageKey(raw[:idx])
	}

	if m := virtualHostedPattern.FindStringSubmatch(raw); m != nil {
		return m[3]
	}
	if m := pathStylePattern.FindStringSubmatch(raw); m != nil {
		return m[3]
	}

	// Relative storage path stored without host, e.g. "courses/12/intro.mp4"
	if !strings.Contains(raw, "://") && strings.Contains(raw, "/") {
		for _, prefix := range keyPrefixes {
			if strings.HasPrefix(raw, prefix) {
				return raw
			}
		}
	}

	return ""
}
