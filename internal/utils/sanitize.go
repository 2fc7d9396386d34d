package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var filenamePolicy = bluemonday.StrictPolicy()

// SanitizeFilename strips any markup from a user-supplied file name before
// it is stored or echoed back in error messages.
func SanitizeFilename(name string) string {
	return strings.TrimSpace(filenamePolicy.Sanitize(name))
}
