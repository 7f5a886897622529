package utils

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

func ParseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// ClampPage normalizes page/limit query values. page is capped so that
// (page-1)*limit always fits in an int.
func ClampPage(page, limit, defaultLimit, maxLimit int) (int, int) {
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page < 1 {
		page = 1
	}
	if maxPage := math.MaxInt/limit + 1; page > maxPage {
		page = maxPage
	}
	return page, limit
}

// NormalizeUsername trims and NFKC-folds a username so visually identical
// forms (full-width letters, composed accents) map to one identity.
func NormalizeUsername(username string) string {
	return norm.NFKC.String(strings.TrimSpace(username))
}
