package handlers

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

func zapError(err error) zap.Field {
	return zap.Error(err)
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func readQueryInt(r *http.Request, key string) (int, bool) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func sanitizeFilename(value string) string {
	clean := filenameSanitizer.ReplaceAllString(value, "_")
	return strings.Trim(clean, "_")
}
