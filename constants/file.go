package constants

import "strings"

// AllowedExtensions holds the upload file extensions the service accepts.
var AllowedExtensions = map[string]struct{}{
	"csv":  {},
	"xlsx": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// AllowedExt checks if a file extension is in the allowed set.
func AllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}

// ModifiedSuffix is appended to the base name of a processed file.
const ModifiedSuffix = "_modified"
