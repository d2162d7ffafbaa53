package validators

import (
	"net/http"
)

const maxQueryLength = 100

// QueryText returns a trimmed query parameter, cut to a sane length.
func QueryText(r *http.Request, key string) string {
	return SanitizeString(r.URL.Query().Get(key), maxQueryLength)
}
