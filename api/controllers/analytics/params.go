package analytics

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const monthParam = "month"

func exportParams(r *http.Request) (month, format string) {
	month = strings.TrimSpace(chi.URLParam(r, monthParam))
	format = strings.TrimSpace(r.URL.Query().Get("format"))
	return month, format
}

// contentDisposition marks the body as a download. File names are built
// from month names and digits, so quoting is enough.
func contentDisposition(fileName string) string {
	return fmt.Sprintf("attachment; filename=%q", fileName)
}
