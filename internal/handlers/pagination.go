package handlers

import (
	"strconv"
	"strings"

	"elearning/internal/apperr"
	"elearning/internal/store"
)

var errBadPage = apperr.Validation("page and limit must be positive integers")

// parsePaginationParams applies the listing defaults and caps the limit.
func parsePaginationParams(pageStr, limitStr string) (store.Page, error) {
	page := int64(1)
	limit := store.DefaultPageLimit

	if pageStr = strings.TrimSpace(pageStr); pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return store.Page{}, errBadPage
		}
		page = p
	}

	if limitStr = strings.TrimSpace(limitStr); limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return store.Page{}, errBadPage
		}
		limit = l
	}

	return store.NewPage(page, limit), nil
}

// parseLimit reads an optional positive limit with a default.
func parseLimit(raw string, def int64) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return 0, apperr.Validation("limit must be a positive integer")
	}
	if n > store.MaxPageLimit {
		n = store.MaxPageLimit
	}
	return n, nil
}
