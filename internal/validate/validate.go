package validate

import (
	"regexp"
	"strings"

	"rewear/internal/catalog"
	"rewear/internal/domain"
)

var (
	reEmail    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ        = regexp.MustCompile(`^[A-Za-z0-9 _'\-]{1,50}$`)
	reID       = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reUsername = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)
	reTag      = regexp.MustCompile(`^[A-Za-z0-9\- ]{1,24}$`)
	// relative media path only, e.g. items/<uuid>.jpg; external image URLs
	// are also accepted for seeded demo data
	reMediaPath = regexp.MustCompile(`^items/[A-Za-z0-9_-]{1,64}\.(jpg|jpeg|png)$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUsername.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// ID validates a simple resource identifier (item/user/swap ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Condition accepts the closed condition vocabulary or the "All" sentinel.
func Condition(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == domain.CategoryAll {
		return s, true
	}
	return s, domain.ValidCondition(s)
}

// Category accepts the closed category set or the "All" sentinel.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == domain.CategoryAll {
		return s, true
	}
	return s, domain.ValidCategory(s)
}

// SortKey accepts a known sort key or empty (defaults to newest).
func SortKey(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return s, true
	}
	for _, k := range catalog.SortKeys {
		if s == k {
			return s, true
		}
	}
	return s, false
}

// Points validates a listing point value.
func Points(n int) bool { return n >= 1 && n <= 1000 }

// Tags validates the tag list: at most 10 short tokens.
func Tags(tags []string) bool {
	if len(tags) > 10 {
		return false
	}
	for _, t := range tags {
		if !reTag.MatchString(t) {
			return false
		}
	}
	return true
}

// Image accepts an uploaded media path or an absolute http(s) URL.
func Image(s string) bool {
	s = strings.TrimSpace(s)
	if reMediaPath.MatchString(s) {
		return true
	}
	return (strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")) && len(s) <= 300
}

// Password enforces a length window plus one of each character class.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
